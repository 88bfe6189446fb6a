package configuration

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// section wraps a raw ini section and tracks which keys have been consumed,
// so that typos and leftover keys in a config can be reported instead of
// being silently ignored.
type section struct {
	name   string
	values map[string]string
	order  []string
	used   map[string]bool
}

func newSection(name string, iniSection *ini.Section) *section {
	s := &section{
		name:   name,
		values: map[string]string{},
		used:   map[string]bool{},
	}
	for _, key := range iniSection.Keys() {
		if _, ok := s.values[key.Name()]; !ok {
			s.order = append(s.order, key.Name())
		}
		s.values[key.Name()] = key.Value()
	}
	return s
}

// has reports key presence without consuming it.
func (s *section) has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// get returns a required key.
func (s *section) get(key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("section '%s' is missing the required '%s' key", s.name, key)
	}
	s.used[key] = true
	return value, nil
}

// getDefault returns the key value or the fallback when the key is absent.
func (s *section) getDefault(key string, fallback string) string {
	value, ok := s.values[key]
	if !ok {
		return fallback
	}
	s.used[key] = true
	return value
}

// getOptional returns nil when the key is absent.
func (s *section) getOptional(key string) *string {
	value, ok := s.values[key]
	if !ok {
		return nil
	}
	s.used[key] = true
	return &value
}

func (s *section) getInt(key string, fallback int) (int, error) {
	value, ok := s.values[key]
	if !ok {
		return fallback, nil
	}
	s.used[key] = true
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("the '%s' key of section '%s' must be an integer, got '%s'", key, s.name, value)
	}
	return parsed, nil
}

func (s *section) getRequiredInt(key string) (int, error) {
	value, err := s.get(key)
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("the '%s' key of section '%s' must be an integer, got '%s'", key, s.name, value)
	}
	return parsed, nil
}

func (s *section) getRequiredFloat(key string) (float64, error) {
	value, err := s.get(key)
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("the '%s' key of section '%s' must be a number, got '%s'", key, s.name, value)
	}
	return parsed, nil
}

func (s *section) getFloat(key string, fallback float64) (float64, error) {
	value, ok := s.values[key]
	if !ok {
		return fallback, nil
	}
	s.used[key] = true
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("the '%s' key of section '%s' must be a number, got '%s'", key, s.name, value)
	}
	return parsed, nil
}

func (s *section) getOptionalFloat(key string) (*float64, error) {
	value, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	s.used[key] = true
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil, fmt.Errorf("the '%s' key of section '%s' must be a number, got '%s'", key, s.name, value)
	}
	return &parsed, nil
}

func (s *section) getBool(key string, fallback bool) (bool, error) {
	value, ok := s.values[key]
	if !ok {
		return fallback, nil
	}
	s.used[key] = true
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "yes", "on", "true":
		return true, nil
	case "0", "no", "off", "false":
		return false, nil
	}
	return false, fmt.Errorf("the '%s' key of section '%s' must be a boolean, got '%s'", key, s.name, value)
}

// ensureNoUnusedKeys fails when the section contains keys that no compiler
// has consumed.
func (s *section) ensureNoUnusedKeys() error {
	var unused []string
	for _, key := range s.order {
		if !s.used[key] {
			unused = append(unused, key)
		}
	}
	if len(unused) > 0 {
		sort.Strings(unused)
		return fmt.Errorf("section '%s' contains unknown keys: %s", s.name, strings.Join(unused, ", "))
	}
	return nil
}
