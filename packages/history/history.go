// Package history records sent requests and their responses. The
// canonical store is history.json, round-tripped through the project
// codec; a SQLite index mirrors it for searching.
package history

import (
	"time"

	"github.com/abdul-hamid-achik/reqvault/packages/core/collection"
	"github.com/abdul-hamid-achik/reqvault/packages/core/json"
	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
	"github.com/google/uuid"
)

// MaxEntries caps the persisted history; older entries fall off.
const MaxEntries = 100

// Entry is one recorded exchange.
type Entry struct {
	ID         string
	Timestamp  int64
	DurationMs int64
	Request    RequestRecord
	Response   ResponseRecord
}

// RequestRecord is the request as it was actually sent, placeholders
// already resolved.
type RequestRecord struct {
	Method  string
	URL     string
	Headers []request.Header
	Body    *string
}

// ResponseRecord keeps a truncated preview of the body rather than the
// full payload, so the history file stays small.
type ResponseRecord struct {
	Status      int
	StatusText  string
	Headers     []request.Header
	BodyPreview string
}

// NewEntry snapshots a sent request and its response.
func NewEntry(req *request.Request, resp *request.Response) *Entry {
	record := RequestRecord{
		Method:  req.Method,
		URL:     req.URL,
		Headers: append([]request.Header(nil), req.Headers...),
	}
	if req.Body != nil {
		body := *req.Body
		record.Body = &body
	}

	return &Entry{
		ID:         uuid.NewString(),
		Timestamp:  time.Now().Unix(),
		DurationMs: resp.DurationMs(),
		Request:    record,
		Response: ResponseRecord{
			Status:      resp.Status,
			StatusText:  resp.StatusText,
			Headers:     append([]request.Header(nil), resp.Headers...),
			BodyPreview: resp.BodyPreview(),
		},
	}
}

func (e *Entry) Time() time.Time {
	return time.Unix(e.Timestamp, 0)
}

// ToRequest rebuilds a sendable request from the record, for rerunning
// a history entry.
func (e *Entry) ToRequest() *request.Request {
	req := request.New(e.Request.Method, e.Request.URL)
	req.Headers = append([]request.Header(nil), e.Request.Headers...)
	if e.Request.Body != nil {
		body := *e.Request.Body
		req.Body = &body
	}
	return req
}

// ToValue builds the persisted entry shape.
func (e *Entry) ToValue() *json.Value {
	obj := json.NewObject()
	obj.Set("id", json.NewString(e.ID))
	obj.Set("timestamp", json.NewInt(e.Timestamp))
	obj.Set("duration_ms", json.NewInt(e.DurationMs))

	req := json.NewObject()
	req.Set("method", json.NewString(e.Request.Method))
	req.Set("url", json.NewString(e.Request.URL))
	req.Set("headers", collection.HeadersToValue(e.Request.Headers))
	if e.Request.Body != nil {
		req.Set("body", json.NewString(*e.Request.Body))
	} else {
		req.Set("body", json.NewNull())
	}
	obj.Set("request", req)

	resp := json.NewObject()
	resp.Set("status", json.NewInt(int64(e.Response.Status)))
	resp.Set("status_text", json.NewString(e.Response.StatusText))
	resp.Set("headers", collection.HeadersToValue(e.Response.Headers))
	resp.Set("body_preview", json.NewString(e.Response.BodyPreview))
	obj.Set("response", resp)
	return obj
}

// ToValue renders the whole history, newest first, as the persisted
// top-level array.
func ToValue(entries []*Entry) *json.Value {
	arr := json.NewArray()
	for _, e := range entries {
		arr.Append(e.ToValue())
	}
	return arr
}

// FromValue rebuilds the history list from its persisted shape.
func FromValue(v *json.Value) ([]*Entry, error) {
	items, err := v.AsArray()
	if err != nil {
		return nil, err
	}
	var entries []*Entry
	for _, item := range items {
		e, err := entryFromValue(item)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func entryFromValue(v *json.Value) (*Entry, error) {
	e := &Entry{}
	var err error

	if e.ID, err = stringField(v, "id"); err != nil {
		return nil, err
	}
	if e.Timestamp, err = intField(v, "timestamp"); err != nil {
		return nil, err
	}
	if e.DurationMs, err = intField(v, "duration_ms"); err != nil {
		return nil, err
	}

	reqVal, err := v.Get("request")
	if err != nil {
		return nil, err
	}
	if e.Request.Method, err = stringField(reqVal, "method"); err != nil {
		return nil, err
	}
	if e.Request.URL, err = stringField(reqVal, "url"); err != nil {
		return nil, err
	}
	headers, err := reqVal.Get("headers")
	if err != nil {
		return nil, err
	}
	if e.Request.Headers, err = collection.HeadersFromValue(headers); err != nil {
		return nil, err
	}
	if body, ok := reqVal.Lookup("body"); ok && !body.IsNull() {
		s, err := body.AsString()
		if err != nil {
			return nil, err
		}
		e.Request.Body = &s
	}

	respVal, err := v.Get("response")
	if err != nil {
		return nil, err
	}
	status, err := intField(respVal, "status")
	if err != nil {
		return nil, err
	}
	e.Response.Status = int(status)
	if e.Response.StatusText, err = stringField(respVal, "status_text"); err != nil {
		return nil, err
	}
	headers, err = respVal.Get("headers")
	if err != nil {
		return nil, err
	}
	if e.Response.Headers, err = collection.HeadersFromValue(headers); err != nil {
		return nil, err
	}
	if e.Response.BodyPreview, err = stringField(respVal, "body_preview"); err != nil {
		return nil, err
	}
	return e, nil
}

func stringField(v *json.Value, key string) (string, error) {
	field, err := v.Get(key)
	if err != nil {
		return "", err
	}
	return field.AsString()
}

func intField(v *json.Value, key string) (int64, error) {
	field, err := v.Get(key)
	if err != nil {
		return 0, err
	}
	return field.AsInt()
}

// Prepend inserts a new entry at the front and enforces MaxEntries.
func Prepend(entries []*Entry, e *Entry) []*Entry {
	entries = append([]*Entry{e}, entries...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// Find locates an entry by id or 1-based index.
func Find(entries []*Entry, idOrIndex string) *Entry {
	for _, e := range entries {
		if e.ID == idOrIndex {
			return e
		}
	}
	if n := parseIndex(idOrIndex); n >= 1 && n <= len(entries) {
		return entries[n-1]
	}
	return nil
}

func parseIndex(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
