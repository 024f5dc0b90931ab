package domain

// WebResult is one public web search hit used as research material.
type WebResult struct {
	Title   string
	URL     string
	Content string
}
