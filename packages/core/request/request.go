// Package request holds the request and response descriptions passed
// between the storage, template and HTTP layers.
package request

import (
	"strings"
	"time"

	"github.com/abdul-hamid-achik/reqvault/packages/core/template"
)

// DefaultTimeout applies when a saved request carries no timeout of
// its own.
const DefaultTimeout = 30 * time.Second

// Header is a single name/value pair. Headers are kept as an ordered
// slice, not a map, so persisted files keep their authoring order.
type Header struct {
	Key   string
	Value string
}

// Request is a fully described HTTP request. After Resolve it is ready
// to hand to the sender.
type Request struct {
	Method          string
	URL             string
	Headers         []Header
	Body            *string
	TimeoutSeconds  *int64
	FollowRedirects bool
}

func New(method, url string) *Request {
	return &Request{
		Method:          strings.ToUpper(method),
		URL:             url,
		FollowRedirects: true,
	}
}

func (r *Request) AddHeader(key, value string) *Request {
	r.Headers = append(r.Headers, Header{Key: key, Value: value})
	return r
}

func (r *Request) SetBody(body string) *Request {
	r.Body = &body
	return r
}

func (r *Request) SetTimeout(seconds int64) *Request {
	r.TimeoutSeconds = &seconds
	return r
}

// Header returns the first header matching key, case-insensitively.
func (r *Request) Header(key string) (string, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Key, key) {
			return h.Value, true
		}
	}
	return "", false
}

func (r *Request) Timeout() time.Duration {
	if r.TimeoutSeconds == nil {
		return DefaultTimeout
	}
	return time.Duration(*r.TimeoutSeconds) * time.Second
}

// Resolve returns a copy with every {{variable}} placeholder in the
// URL, each header value and the body substituted from vars. The
// original request is left untouched so the saved form keeps its
// placeholders.
func (r *Request) Resolve(vars *template.Vars) *Request {
	out := &Request{
		Method:          r.Method,
		URL:             template.Resolve(r.URL, vars),
		FollowRedirects: r.FollowRedirects,
		TimeoutSeconds:  r.TimeoutSeconds,
	}
	for _, h := range r.Headers {
		out.Headers = append(out.Headers, Header{Key: h.Key, Value: template.Resolve(h.Value, vars)})
	}
	if r.Body != nil {
		body := template.Resolve(*r.Body, vars)
		out.Body = &body
	}
	return out
}

// Clone returns a deep copy.
func (r *Request) Clone() *Request {
	out := &Request{
		Method:          r.Method,
		URL:             r.URL,
		FollowRedirects: r.FollowRedirects,
	}
	out.Headers = append(out.Headers, r.Headers...)
	if r.Body != nil {
		body := *r.Body
		out.Body = &body
	}
	if r.TimeoutSeconds != nil {
		t := *r.TimeoutSeconds
		out.TimeoutSeconds = &t
	}
	return out
}

var methods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "HEAD": true, "OPTIONS": true,
}

// ValidMethod reports whether method (any case) is a supported HTTP
// method.
func ValidMethod(method string) bool {
	return methods[strings.ToUpper(method)]
}
