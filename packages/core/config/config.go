// Package config holds reqvault's client configuration, persisted as
// config.json through the project codec.
package config

import (
	"github.com/abdul-hamid-achik/reqvault/packages/core/json"
)

// Config is the persisted client configuration. Nil pointers and zero
// values mean "not set": the Get accessors apply the defaults.
type Config struct {
	DefaultEnvironment string
	TimeoutSeconds     int64
	FollowRedirects    *bool
	Verbose            *bool
	NoColor            *bool
}

func Default() *Config {
	return &Config{}
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects defaults to true.
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetVerbose defaults to false.
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor defaults to false.
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetTimeoutSeconds defaults to 30.
func (c *Config) GetTimeoutSeconds() int64 {
	if c.TimeoutSeconds <= 0 {
		return 30
	}
	return c.TimeoutSeconds
}

// ToValue persists only the fields the operator has set, keeping the
// file minimal.
func (c *Config) ToValue() *json.Value {
	obj := json.NewObject()
	if c.DefaultEnvironment != "" {
		obj.Set("default_environment", json.NewString(c.DefaultEnvironment))
	}
	if c.TimeoutSeconds > 0 {
		obj.Set("timeout_seconds", json.NewInt(c.TimeoutSeconds))
	}
	if c.FollowRedirects != nil {
		obj.Set("follow_redirects", json.NewBool(*c.FollowRedirects))
	}
	if c.Verbose != nil {
		obj.Set("verbose", json.NewBool(*c.Verbose))
	}
	if c.NoColor != nil {
		obj.Set("no_color", json.NewBool(*c.NoColor))
	}
	return obj
}

// FromValue rebuilds a Config from its persisted shape.
func FromValue(v *json.Value) (*Config, error) {
	c := Default()

	if field, ok := v.Lookup("default_environment"); ok {
		s, err := field.AsString()
		if err != nil {
			return nil, err
		}
		c.DefaultEnvironment = s
	}
	if field, ok := v.Lookup("timeout_seconds"); ok {
		n, err := field.AsInt()
		if err != nil {
			return nil, err
		}
		c.TimeoutSeconds = n
	}
	var err error
	if c.FollowRedirects, err = boolField(v, "follow_redirects"); err != nil {
		return nil, err
	}
	if c.Verbose, err = boolField(v, "verbose"); err != nil {
		return nil, err
	}
	if c.NoColor, err = boolField(v, "no_color"); err != nil {
		return nil, err
	}
	return c, nil
}

func boolField(v *json.Value, key string) (*bool, error) {
	field, ok := v.Lookup(key)
	if !ok {
		return nil, nil
	}
	b, err := field.AsBool()
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// BoolPtr returns a pointer to b, for setting optional fields.
func BoolPtr(b bool) *bool {
	return &b
}
