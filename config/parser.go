// Package config implements hashstore's YAML configuration, including the
// teacher's environment-variable overlay: any field reachable from the
// root Configuration can be overridden by an env var named after its path,
// uppercased and underscore-joined under the HASHSTORE_ prefix (grounded on
// distribution's configuration/parser.go).
package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix env-var overrides are read under.
const EnvPrefix = "HASHSTORE"

// Parser parses a YAML document into a Configuration, then applies any
// matching environment variable overrides.
type Parser struct {
	prefix string
	env    map[string]string
}

// NewParser returns a Parser reading overrides prefixed with prefix.
func NewParser(prefix string) *Parser {
	p := &Parser{prefix: prefix, env: make(map[string]string)}
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			p.env[parts[0]] = parts[1]
		}
	}
	return p
}

// Parse unmarshals in into v, then overlays environment variables: v.Abc
// may be replaced by PREFIX_ABC, v.Abc.Xyz by PREFIX_ABC_XYZ, and so on.
func (p *Parser) Parse(in []byte, v interface{}) error {
	if err := yaml.Unmarshal(in, v); err != nil {
		return fmt.Errorf("config: parsing yaml: %w", err)
	}
	return p.overwriteFields(reflect.ValueOf(v), p.prefix)
}

func (p *Parser) overwriteFields(v reflect.Value, prefix string) error {
	for v.Kind() == reflect.Ptr {
		v = reflect.Indirect(v)
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < v.NumField(); i++ {
		sf := v.Type().Field(i)
		if !v.Field(i).CanSet() {
			continue
		}
		fieldPrefix := strings.ToUpper(prefix + "_" + sf.Name)
		if raw, ok := p.env[fieldPrefix]; ok {
			fieldVal := reflect.New(sf.Type)
			if err := yaml.Unmarshal([]byte(raw), fieldVal.Interface()); err != nil {
				return fmt.Errorf("config: overriding %s: %w", fieldPrefix, err)
			}
			v.Field(i).Set(reflect.Indirect(fieldVal))
		}
		if err := p.overwriteFields(v.Field(i), fieldPrefix); err != nil {
			return err
		}
	}
	return nil
}
