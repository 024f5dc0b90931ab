// Package google publishes launch kit schedules to Google Calendar.
//
// Authentication uses an OAuth refresh token obtained once through the
// loopback flow in AuthFlow. Requests are throttled by a token bucket and
// back off after 429 responses.
package google
