// Package collection models saved request collections and their
// persisted JSON shape.
package collection

import (
	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
	"github.com/google/uuid"
)

// Collection is a named group of saved requests, optionally organized
// into nested folders.
type Collection struct {
	Name        string
	Description *string
	Folders     []*Folder
	Requests    []*SavedRequest
}

// Folder groups requests inside a collection and may nest further
// folders.
type Folder struct {
	Name        string
	Description *string
	Requests    []*SavedRequest
	Folders     []*Folder
}

// SavedRequest is one persisted request. The embedded request keeps its
// {{placeholders}} unresolved; resolution happens at send time.
type SavedRequest struct {
	ID          string
	Name        string
	Description *string
	Request     *request.Request
}

func New(name string) *Collection {
	return &Collection{Name: name}
}

func (c *Collection) WithDescription(description string) *Collection {
	c.Description = &description
	return c
}

func NewSavedRequest(name string, req *request.Request) *SavedRequest {
	return &SavedRequest{
		ID:      uuid.NewString(),
		Name:    name,
		Request: req,
	}
}

func (c *Collection) AddRequest(r *SavedRequest) {
	c.Requests = append(c.Requests, r)
}

func (c *Collection) AddFolder(f *Folder) {
	c.Folders = append(c.Folders, f)
}

// FindRequest locates a saved request by id or name, searching folders
// recursively.
func (c *Collection) FindRequest(idOrName string) *SavedRequest {
	if r := findIn(c.Requests, idOrName); r != nil {
		return r
	}
	for _, f := range c.Folders {
		if r := f.FindRequest(idOrName); r != nil {
			return r
		}
	}
	return nil
}

func (f *Folder) FindRequest(idOrName string) *SavedRequest {
	if r := findIn(f.Requests, idOrName); r != nil {
		return r
	}
	for _, sub := range f.Folders {
		if r := sub.FindRequest(idOrName); r != nil {
			return r
		}
	}
	return nil
}

func findIn(requests []*SavedRequest, idOrName string) *SavedRequest {
	for _, r := range requests {
		if r.ID == idOrName || r.Name == idOrName {
			return r
		}
	}
	return nil
}
