// Package env models named variable environments and the persisted
// environment store.
package env

import (
	"github.com/abdul-hamid-achik/reqvault/packages/core/json"
	"github.com/abdul-hamid-achik/reqvault/packages/core/template"
)

// Environment is a named, ordered set of variables.
type Environment struct {
	Name      string
	Variables *template.Vars
}

func NewEnvironment(name string) *Environment {
	return &Environment{Name: name, Variables: template.NewVars()}
}

func (e *Environment) Set(key, value string) {
	e.Variables.Set(key, value)
}

func (e *Environment) Get(key string) (string, bool) {
	return e.Variables.Lookup(key)
}

// Set is the persisted environment store: every environment plus the
// name of the active one, if any.
type Set struct {
	Active       *string
	Environments []*Environment
}

func NewSet() *Set {
	return &Set{}
}

func (s *Set) Add(e *Environment) {
	s.Environments = append(s.Environments, e)
}

func (s *Set) Get(name string) *Environment {
	for _, e := range s.Environments {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (s *Set) Remove(name string) bool {
	for i, e := range s.Environments {
		if e.Name == name {
			s.Environments = append(s.Environments[:i], s.Environments[i+1:]...)
			if s.Active != nil && *s.Active == name {
				s.Active = nil
			}
			return true
		}
	}
	return false
}

func (s *Set) SetActive(name string) {
	s.Active = &name
}

// ActiveEnvironment returns the active environment, or nil when none
// is selected or the selection points at a deleted environment.
func (s *Set) ActiveEnvironment() *Environment {
	if s.Active == nil {
		return nil
	}
	return s.Get(*s.Active)
}

// Vars returns the active environment's variables for template
// resolution; a nil result resolves nothing, leaving placeholders
// visible.
func (s *Set) Vars() *template.Vars {
	if e := s.ActiveEnvironment(); e != nil {
		return e.Variables
	}
	return nil
}

// ToValue builds the persisted shape:
//
//	{"active": ..., "environments": [{"name": ..., "variables": {...}}]}
//
// Variable order inside each environment follows insertion order, so
// the stored file matches how the operator authored it.
func (s *Set) ToValue() *json.Value {
	obj := json.NewObject()
	if s.Active != nil {
		obj.Set("active", json.NewString(*s.Active))
	} else {
		obj.Set("active", json.NewNull())
	}

	envs := json.NewArray()
	for _, e := range s.Environments {
		envs.Append(e.toValue())
	}
	obj.Set("environments", envs)
	return obj
}

func (e *Environment) toValue() *json.Value {
	obj := json.NewObject()
	obj.Set("name", json.NewString(e.Name))

	vars := json.NewObject()
	for _, name := range e.Variables.Names() {
		value, _ := e.Variables.Lookup(name)
		vars.Set(name, json.NewString(value))
	}
	obj.Set("variables", vars)
	return obj
}

// FromValue rebuilds the store from its persisted shape.
func FromValue(v *json.Value) (*Set, error) {
	s := NewSet()

	active, err := v.Get("active")
	if err != nil {
		return nil, err
	}
	if !active.IsNull() {
		name, err := active.AsString()
		if err != nil {
			return nil, err
		}
		s.Active = &name
	}

	envsVal, err := v.Get("environments")
	if err != nil {
		return nil, err
	}
	envs, err := envsVal.AsArray()
	if err != nil {
		return nil, err
	}

	for _, item := range envs {
		e, err := environmentFromValue(item)
		if err != nil {
			return nil, err
		}
		s.Add(e)
	}
	return s, nil
}

func environmentFromValue(v *json.Value) (*Environment, error) {
	nameVal, err := v.Get("name")
	if err != nil {
		return nil, err
	}
	name, err := nameVal.AsString()
	if err != nil {
		return nil, err
	}

	e := NewEnvironment(name)

	varsVal, err := v.Get("variables")
	if err != nil {
		return nil, err
	}
	members, err := varsVal.AsObject()
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		value, err := m.Value.AsString()
		if err != nil {
			return nil, err
		}
		e.Set(m.Key, value)
	}
	return e, nil
}
