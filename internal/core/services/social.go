package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rmayank-24/MarketForgeAI/internal/core/domain"
)

// minDerivedPostChars is the shortest sentence accepted as a padding post.
const minDerivedPostChars = 12

var (
	// postLinePattern matches "1. text", "2) text", "- text", "* text",
	// "• text" and "Day 3: text".
	postLinePattern = regexp.MustCompile(`^\s*(?:\d{1,2}[.)]|[-*•]|(?i:day)\s*\d{1,2}\s*[:.)\-–])\s+(.+)$`)

	// sentenceEnd splits text after terminal punctuation.
	sentenceEnd = regexp.MustCompile(`([.!?])\s+`)

	markdownNoise = strings.NewReplacer("**", "", "__", "")

	headingPrefix = regexp.MustCompile(`^#+\s+`)

	// paragraphBreak separates blank-line delimited paragraphs.
	paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)
)

// minParagraphPosts is the fewest paragraphs read as unmarked posts. A
// single paragraph is usually a refusal or commentary.
const minParagraphPosts = 2

// parsePosts extracts social posts from generated text. It accepts a JSON
// object {"posts": [...]}, a JSON array of strings, or numbered/bulleted
// lines, falling back to blank-line separated paragraphs. Unrecognised text
// yields no posts.
func parsePosts(text string) []string {
	if posts := parseJSONPosts(text); len(posts) > 0 {
		return posts
	}
	if posts := parseLinePosts(text); len(posts) > 0 {
		return posts
	}
	return parseParagraphPosts(text)
}

func parseJSONPosts(text string) []string {
	cleaned := stripCodeFences(text)

	if block := extractBalanced(cleaned, '{', '}'); block != "" {
		var obj struct {
			Posts []json.RawMessage `json:"posts"`
		}
		if err := json.Unmarshal([]byte(block), &obj); err == nil && len(obj.Posts) > 0 {
			return decodePostValues(obj.Posts)
		}
	}

	if block := extractBalanced(cleaned, '[', ']'); block != "" {
		var arr []json.RawMessage
		if err := json.Unmarshal([]byte(block), &arr); err == nil {
			return decodePostValues(arr)
		}
	}
	return nil
}

// decodePostValues accepts plain strings or objects carrying the post under
// "content", "text" or "post".
func decodePostValues(values []json.RawMessage) []string {
	posts := make([]string, 0, len(values))
	for _, raw := range values {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s = cleanPost(s); s != "" {
				posts = append(posts, s)
			}
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			continue
		}
		for _, key := range []string{"content", "text", "post"} {
			if v, ok := obj[key].(string); ok {
				if v = cleanPost(v); v != "" {
					posts = append(posts, v)
				}
				break
			}
		}
	}
	return posts
}

func parseLinePosts(text string) []string {
	var posts []string
	inPost := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			inPost = false
			continue
		}
		if m := postLinePattern.FindStringSubmatch(line); m != nil {
			if p := cleanPost(m[1]); p != "" {
				posts = append(posts, p)
				inPost = true
			}
			continue
		}
		// Continuation of a wrapped post.
		if inPost {
			posts[len(posts)-1] += " " + cleanPost(trimmed)
		}
	}
	return posts
}

// parseParagraphPosts reads each non-empty paragraph as one post. Lead-in
// paragraphs ending in a colon are skipped.
func parseParagraphPosts(text string) []string {
	text = strings.ReplaceAll(stripCodeFences(text), "\r\n", "\n")
	var posts []string
	for _, para := range paragraphBreak.Split(text, -1) {
		p := cleanPost(strings.Join(strings.Fields(para), " "))
		if p == "" || strings.HasSuffix(p, ":") {
			continue
		}
		posts = append(posts, p)
	}
	if len(posts) < minParagraphPosts {
		return nil
	}
	return posts
}

func cleanPost(s string) string {
	s = strings.TrimSpace(markdownNoise.Replace(s))
	s = headingPrefix.ReplaceAllString(s, "")
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// normalisePosts enforces exactly domain.PostCount posts. Excess posts are
// truncated in generation order; a shortfall is padded with sentences
// derived from the ad copy, then the product copy, then a fixed fallback.
// It never calls the generation backend.
func normalisePosts(posts []string, idea string, prior domain.StageOutputs) []string {
	out := make([]string, 0, domain.PostCount)
	seen := make(map[string]bool, domain.PostCount)
	for _, p := range posts {
		if len(out) == domain.PostCount {
			break
		}
		out = append(out, p)
		seen[strings.ToLower(p)] = true
	}

	for _, source := range []string{prior.AdCopy, prior.ProductCopy} {
		for _, sentence := range splitSentences(source) {
			if len(out) == domain.PostCount {
				return out
			}
			key := strings.ToLower(sentence)
			if seen[key] {
				continue
			}
			out = append(out, sentence)
			seen[key] = true
		}
	}

	for len(out) < domain.PostCount {
		out = append(out, fmt.Sprintf("Day %d spotlight: %s", len(out)+1, idea))
	}
	return out
}

// splitSentences breaks text into cleaned sentences long enough to stand
// alone as a post.
func splitSentences(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		if m := postLinePattern.FindStringSubmatch(line); m != nil {
			line = m[1]
		}
		marked := sentenceEnd.ReplaceAllString(line, "$1\n")
		for _, s := range strings.Split(marked, "\n") {
			s = cleanPost(s)
			if len([]rune(s)) >= minDerivedPostChars {
				sentences = append(sentences, s)
			}
		}
	}
	return sentences
}

// stripCodeFences removes markdown code fence lines.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// extractBalanced returns the first balanced open...close block in s,
// ignoring delimiters inside JSON strings.
func extractBalanced(s string, opening, closing byte) string {
	start := strings.IndexByte(s, opening)
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == opening:
			depth++
		case c == closing:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
