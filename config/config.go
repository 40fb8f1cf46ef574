// Package config loads the settings that shape the selector registry and
// parser from yaml and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"github.com/niklasfasching/themecss/css"
)

const EnvPrefix = "THEMECSS_"

type (
	LoggingConfig struct {
		Level string `yaml:"level"`
	}

	// RegistryConfig lists names registered on top of the default registry.
	RegistryConfig struct {
		Attrs       map[string]bool `yaml:"attrs"`
		States      []string        `yaml:"states"`
		UserActions []string        `yaml:"user_actions"`
		Elements    []string        `yaml:"elements"`
		Types       []string        `yaml:"types"`
	}

	Config struct {
		Strict   bool           `yaml:"strict"`
		Flags    []string       `yaml:"flags"`
		Logging  LoggingConfig  `yaml:"logging"`
		Registry RegistryConfig `yaml:"registry"`
	}
)

func Default() *Config {
	return &Config{Strict: true, Logging: LoggingConfig{Level: "normal"}}
}

// Load reads the yaml file at path (if any) on top of the defaults and then
// applies THEMECSS_* environment overrides.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		} else if err := c.Decode(bs); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := LoadEnv(c, EnvPrefix); err != nil {
		return nil, err
	}
	return c, nil
}

// Decode superimposes yaml data on c. Unknown fields are an error.
func (c *Config) Decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("failed to decode configuration data: %w", err)
	}
	return nil
}

// LoadEnv overrides the fields of the struct pointed to by c from environment
// variables named prefix + upper cased field name. Nested structs extend the
// prefix with their own name. Non string values are decoded as json.
func LoadEnv(c any, prefix string) error {
	rt, rc := reflect.TypeOf(c).Elem(), reflect.ValueOf(c).Elem()
	for i := 0; i < rt.NumField(); i++ {
		rft, name := rt.Field(i), prefix+strings.ToUpper(rt.Field(i).Name)
		s, ok := os.LookupEnv(name)
		if !ok && rft.Type.Kind() == reflect.Struct {
			if err := LoadEnv(rc.Field(i).Addr().Interface(), name+"_"); err != nil {
				return err
			}
			continue
		} else if !ok {
			continue
		}
		if rft.Type.Kind() == reflect.String {
			rc.Field(i).SetString(s)
		} else if err := json.Unmarshal([]byte(s), rc.Field(i).Addr().Interface()); err != nil {
			return fmt.Errorf("failed to unmarshal %q(%s) from %q", name, rft.Type, s)
		}
	}
	return nil
}

// NewRegistry returns the sealed default registry extended by c. Every
// failed registration is reported.
func (c *RegistryConfig) NewRegistry() (*css.Registry, error) {
	r, err := css.DefaultRegistry(), error(nil)
	for name, caseSensitive := range c.Attrs {
		_, e := r.RegisterAttr(name, caseSensitive)
		err = multierr.Append(err, e)
	}
	for _, name := range c.States {
		_, e := r.RegisterPseudo(name, css.PseudoOpts{})
		err = multierr.Append(err, e)
	}
	for _, name := range c.UserActions {
		_, e := r.RegisterPseudo(name, css.PseudoOpts{UserAction: true})
		err = multierr.Append(err, e)
	}
	for _, name := range c.Elements {
		_, e := r.RegisterElement(name)
		err = multierr.Append(err, e)
	}
	for _, name := range c.Types {
		err = multierr.Append(err, r.RegisterType(name))
	}
	if err != nil {
		return nil, err
	}
	return r.Seal(), nil
}

// NewParser builds the registry and a parser using c's flags.
func (c *Config) NewParser(log *zap.Logger) (*css.Parser, error) {
	r, err := c.Registry.NewRegistry()
	if err != nil {
		return nil, err
	}
	flags := c.Flags
	if c.Strict {
		flags = append([]string{css.FlagStrictList}, flags...)
	}
	return css.NewParser(r, log, flags...), nil
}
