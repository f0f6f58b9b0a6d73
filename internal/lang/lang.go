package lang

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed english.yaml
var english []byte

// Strings is a flat key to text mapping.
type Strings map[string]string

func English() (Strings, error) {
	return Parse(english)
}

func Parse(data []byte) (Strings, error) {
	s := Strings{}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse language strings: %w", err)
	}
	return s, nil
}

// Get returns the text for key, or the key itself when it is not translated.
func (s Strings) Get(key string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return key
}

// Help returns the help text for a config field.
func (s Strings) Help(field string) string {
	return s["hlp_"+field]
}
