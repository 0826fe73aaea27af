// Package insomnia converts Insomnia exports into collections.
package insomnia

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/reqvault/packages/core/collection"
	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
)

// Converter converts Insomnia exports. Insomnia writes YAML or JSON;
// both parse through the same decoder.
type Converter struct {
	collectionName string
}

// Option is a functional option for Converter.
type Option func(*Converter)

// WithCollectionName overrides the imported collection's name.
func WithCollectionName(name string) Option {
	return func(c *Converter) {
		c.collectionName = name
	}
}

// NewConverter creates a new Insomnia converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Export represents an Insomnia export file.
type Export struct {
	Type         string     `yaml:"_type"`
	ExportFormat int        `yaml:"__export_format"`
	Resources    []Resource `yaml:"resources"`
}

// Resource represents an Insomnia resource (request, folder, workspace).
type Resource struct {
	ID          string      `yaml:"_id"`
	Type        string      `yaml:"_type"`
	ParentID    string      `yaml:"parentId"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Method      string      `yaml:"method"`
	URL         string      `yaml:"url"`
	Headers     []Header    `yaml:"headers"`
	Body        *Body       `yaml:"body"`
	Parameters  []Parameter `yaml:"parameters"`
}

// Header represents an Insomnia header.
type Header struct {
	Name     string `yaml:"name"`
	Value    string `yaml:"value"`
	Disabled bool   `yaml:"disabled"`
}

// Body represents an Insomnia request body.
type Body struct {
	MimeType string `yaml:"mimeType"`
	Text     string `yaml:"text"`
}

// Parameter represents an Insomnia query parameter.
type Parameter struct {
	Name     string `yaml:"name"`
	Value    string `yaml:"value"`
	Disabled bool   `yaml:"disabled"`
}

// ConvertFile converts an Insomnia export file into a collection.
func (c *Converter) ConvertFile(path string) (*collection.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return c.Convert(data)
}

// Convert converts raw Insomnia export data into a collection.
// Workspaces become the collection itself, request groups become
// folders, and {{ insomnia vars }} keep their placeholder form.
func (c *Converter) Convert(data []byte) (*collection.Collection, error) {
	var export Export
	if err := yaml.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to parse Insomnia export: %w", err)
	}
	if len(export.Resources) == 0 {
		return nil, fmt.Errorf("no resources in Insomnia export")
	}

	name := c.collectionName
	var workspaceID string
	children := make(map[string][]Resource)

	for _, res := range export.Resources {
		switch res.Type {
		case "workspace":
			workspaceID = res.ID
			if name == "" {
				name = res.Name
			}
		case "request", "request_group":
			children[res.ParentID] = append(children[res.ParentID], res)
		}
	}

	if name == "" {
		name = "imported"
	}
	col := collection.New(name)

	// Requests outside any workspace land at the collection root too.
	roots := children[workspaceID]
	if workspaceID == "" {
		for _, rs := range children {
			roots = append(roots, rs...)
		}
	}

	for _, res := range roots {
		switch res.Type {
		case "request":
			col.AddRequest(c.toSavedRequest(res))
		case "request_group":
			col.AddFolder(c.toFolder(res, children))
		}
	}

	return col, nil
}

func (c *Converter) toFolder(res Resource, children map[string][]Resource) *collection.Folder {
	folder := &collection.Folder{Name: res.Name}
	if res.Description != "" {
		desc := res.Description
		folder.Description = &desc
	}

	for _, child := range children[res.ID] {
		switch child.Type {
		case "request":
			folder.Requests = append(folder.Requests, c.toSavedRequest(child))
		case "request_group":
			folder.Folders = append(folder.Folders, c.toFolder(child, children))
		}
	}
	return folder
}

func (c *Converter) toSavedRequest(res Resource) *collection.SavedRequest {
	method := res.Method
	if method == "" {
		method = "GET"
	}

	req := request.New(method, withParameters(res.URL, res.Parameters))

	for _, h := range res.Headers {
		if h.Disabled {
			continue
		}
		req.AddHeader(h.Name, h.Value)
	}

	if res.Body != nil && res.Body.Text != "" {
		req.SetBody(res.Body.Text)
		if res.Body.MimeType != "" {
			if _, ok := req.Header("Content-Type"); !ok {
				req.AddHeader("Content-Type", res.Body.MimeType)
			}
		}
	}

	saved := collection.NewSavedRequest(res.Name, req)
	if res.Description != "" {
		desc := res.Description
		saved.Description = &desc
	}
	return saved
}

// withParameters appends enabled query parameters to the URL.
func withParameters(rawURL string, params []Parameter) string {
	var pairs []string
	for _, p := range params {
		if p.Disabled || p.Name == "" {
			continue
		}
		pairs = append(pairs, url.QueryEscape(p.Name)+"="+url.QueryEscape(p.Value))
	}
	if len(pairs) == 0 {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + strings.Join(pairs, "&")
}
