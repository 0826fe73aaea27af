package collection

import (
	"github.com/abdul-hamid-achik/reqvault/packages/core/json"
	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
)

// ToValue builds the persisted JSON shape:
//
//	{"name": ..., "description": ..., "folders": [...], "requests": [...]}
//
// with headers persisted as [key, value] pairs so the file stays diff-
// friendly and order-preserving.
func (c *Collection) ToValue() *json.Value {
	obj := json.NewObject()
	obj.Set("name", json.NewString(c.Name))
	obj.Set("description", optionalString(c.Description))

	folders := json.NewArray()
	for _, f := range c.Folders {
		folders.Append(f.toValue())
	}
	obj.Set("folders", folders)

	requests := json.NewArray()
	for _, r := range c.Requests {
		requests.Append(r.toValue())
	}
	obj.Set("requests", requests)
	return obj
}

func (f *Folder) toValue() *json.Value {
	obj := json.NewObject()
	obj.Set("name", json.NewString(f.Name))
	obj.Set("description", optionalString(f.Description))

	requests := json.NewArray()
	for _, r := range f.Requests {
		requests.Append(r.toValue())
	}
	obj.Set("requests", requests)

	folders := json.NewArray()
	for _, sub := range f.Folders {
		folders.Append(sub.toValue())
	}
	obj.Set("folders", folders)
	return obj
}

func (r *SavedRequest) toValue() *json.Value {
	obj := json.NewObject()
	obj.Set("id", json.NewString(r.ID))
	obj.Set("name", json.NewString(r.Name))
	if r.Description != nil {
		obj.Set("description", json.NewString(*r.Description))
	}
	obj.Set("method", json.NewString(r.Request.Method))
	obj.Set("url", json.NewString(r.Request.URL))

	headers := json.NewArray()
	for _, h := range r.Request.Headers {
		headers.Append(json.NewArray(json.NewString(h.Key), json.NewString(h.Value)))
	}
	obj.Set("headers", headers)

	if r.Request.Body != nil {
		obj.Set("body", json.NewString(*r.Request.Body))
	} else {
		obj.Set("body", json.NewNull())
	}
	if r.Request.TimeoutSeconds != nil {
		obj.Set("timeout_seconds", json.NewInt(*r.Request.TimeoutSeconds))
	} else {
		obj.Set("timeout_seconds", json.NewNull())
	}
	return obj
}

// FromValue rebuilds a Collection from its persisted shape, enforcing
// the structure with the codec's typed accessors. Shape violations
// surface as TypeMismatch errors carrying the offending path.
func FromValue(v *json.Value) (*Collection, error) {
	name, err := stringField(v, "name")
	if err != nil {
		return nil, err
	}
	c := &Collection{Name: name}

	if c.Description, err = optionalStringField(v, "description"); err != nil {
		return nil, err
	}

	if folders, ok := v.Lookup("folders"); ok {
		if c.Folders, err = foldersFromValue(folders); err != nil {
			return nil, err
		}
	}

	requests, err := v.Get("requests")
	if err != nil {
		return nil, err
	}
	if c.Requests, err = requestsFromValue(requests); err != nil {
		return nil, err
	}
	return c, nil
}

func foldersFromValue(v *json.Value) ([]*Folder, error) {
	items, err := v.AsArray()
	if err != nil {
		return nil, err
	}
	var folders []*Folder
	for _, item := range items {
		f, err := folderFromValue(item)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, nil
}

func folderFromValue(v *json.Value) (*Folder, error) {
	name, err := stringField(v, "name")
	if err != nil {
		return nil, err
	}
	f := &Folder{Name: name}

	if f.Description, err = optionalStringField(v, "description"); err != nil {
		return nil, err
	}

	if requests, ok := v.Lookup("requests"); ok {
		if f.Requests, err = requestsFromValue(requests); err != nil {
			return nil, err
		}
	}
	if folders, ok := v.Lookup("folders"); ok {
		if f.Folders, err = foldersFromValue(folders); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func requestsFromValue(v *json.Value) ([]*SavedRequest, error) {
	items, err := v.AsArray()
	if err != nil {
		return nil, err
	}
	var requests []*SavedRequest
	for _, item := range items {
		r, err := savedRequestFromValue(item)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, nil
}

func savedRequestFromValue(v *json.Value) (*SavedRequest, error) {
	id, err := stringField(v, "id")
	if err != nil {
		return nil, err
	}
	name, err := stringField(v, "name")
	if err != nil {
		return nil, err
	}
	method, err := stringField(v, "method")
	if err != nil {
		return nil, err
	}
	url, err := stringField(v, "url")
	if err != nil {
		return nil, err
	}

	saved := &SavedRequest{
		ID:      id,
		Name:    name,
		Request: request.New(method, url),
	}
	if saved.Description, err = optionalStringField(v, "description"); err != nil {
		return nil, err
	}

	headers, err := v.Get("headers")
	if err != nil {
		return nil, err
	}
	if saved.Request.Headers, err = HeadersFromValue(headers); err != nil {
		return nil, err
	}

	if saved.Request.Body, err = optionalStringField(v, "body"); err != nil {
		return nil, err
	}

	if timeout, ok := v.Lookup("timeout_seconds"); ok && !timeout.IsNull() {
		seconds, err := timeout.AsInt()
		if err != nil {
			return nil, err
		}
		saved.Request.TimeoutSeconds = &seconds
	}
	return saved, nil
}

// HeadersFromValue decodes the persisted [[key, value], ...] header
// shape shared by collections and history entries.
func HeadersFromValue(v *json.Value) ([]request.Header, error) {
	items, err := v.AsArray()
	if err != nil {
		return nil, err
	}
	var headers []request.Header
	for _, item := range items {
		keyVal, err := item.At(0)
		if err != nil {
			return nil, err
		}
		key, err := keyVal.AsString()
		if err != nil {
			return nil, err
		}
		valueVal, err := item.At(1)
		if err != nil {
			return nil, err
		}
		value, err := valueVal.AsString()
		if err != nil {
			return nil, err
		}
		headers = append(headers, request.Header{Key: key, Value: value})
	}
	return headers, nil
}

// HeadersToValue is the inverse of HeadersFromValue.
func HeadersToValue(headers []request.Header) *json.Value {
	arr := json.NewArray()
	for _, h := range headers {
		arr.Append(json.NewArray(json.NewString(h.Key), json.NewString(h.Value)))
	}
	return arr
}

func optionalString(s *string) *json.Value {
	if s == nil {
		return json.NewNull()
	}
	return json.NewString(*s)
}

func stringField(v *json.Value, key string) (string, error) {
	field, err := v.Get(key)
	if err != nil {
		return "", err
	}
	return field.AsString()
}

func optionalStringField(v *json.Value, key string) (*string, error) {
	field, ok := v.Lookup(key)
	if !ok || field.IsNull() {
		return nil, nil
	}
	s, err := field.AsString()
	if err != nil {
		return nil, err
	}
	return &s, nil
}
