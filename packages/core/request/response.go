package request

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Response is what the sender hands back; the core never opens a
// socket itself.
type Response struct {
	Status     int
	StatusText string
	Headers    []Header
	Body       []byte
	Duration   time.Duration
	URL        string
}

func (r *Response) IsSuccess() bool {
	return r.Status >= 200 && r.Status < 300
}

func (r *Response) IsRedirect() bool {
	return r.Status >= 300 && r.Status < 400
}

func (r *Response) IsClientError() bool {
	return r.Status >= 400 && r.Status < 500
}

func (r *Response) IsServerError() bool {
	return r.Status >= 500
}

func (r *Response) Header(key string) (string, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Key, key) {
			return h.Value, true
		}
	}
	return "", false
}

func (r *Response) ContentType() string {
	ct, _ := r.Header("Content-Type")
	return ct
}

func (r *Response) IsJSON() bool {
	return strings.Contains(r.ContentType(), "application/json")
}

func (r *Response) BodyString() string {
	return string(r.Body)
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}

// previewLimit caps the body excerpt stored in history entries.
const previewLimit = 500

// BodyPreview returns a display-safe excerpt of the body: the first
// 500 characters for text, a size note for binary payloads. Truncation
// never splits a UTF-8 sequence.
func (r *Response) BodyPreview() string {
	if !utf8.Valid(r.Body) {
		return "<binary data, " + itoa(len(r.Body)) + " bytes>"
	}
	s := string(r.Body)
	if utf8.RuneCountInString(s) <= previewLimit {
		return s
	}
	runes := 0
	for i := range s {
		if runes == previewLimit {
			return s[:i] + "..."
		}
		runes++
	}
	return s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
