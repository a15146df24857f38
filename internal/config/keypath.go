package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetValue retrieves a value from a Config by dot-notation key path.
// List elements are addressed by index ("sections.0.title"). It returns
// scalar values as-is, and maps/slices for intermediate nodes.
func GetValue(cfg *Config, keyPath string) (any, error) {
	m, err := configToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return navigate(m, keyPath)
}

// Flatten returns every leaf value of cfg keyed by dot-notation path.
func Flatten(cfg *Config) (map[string]any, error) {
	m, err := configToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return FlattenMap(m, ""), nil
}

// FlattenMap recursively flattens nested maps and lists to dot-notation keys.
func FlattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		flattenInto(result, join(prefix, k), v)
	}
	return result
}

func flattenInto(result map[string]any, key string, v any) {
	switch val := v.(type) {
	case map[string]any:
		for k, sv := range val {
			flattenInto(result, join(key, k), sv)
		}
	case []any:
		for i, sv := range val {
			flattenInto(result, join(key, strconv.Itoa(i)), sv)
		}
	default:
		result[key] = v
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// configToMap marshals a Config to a map via YAML round-trip.
func configToMap(cfg *Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// navigate traverses nested maps and lists using a dot-notation key path.
func navigate(m map[string]any, keyPath string) (any, error) {
	var current any = m
	for _, part := range strings.Split(keyPath, ".") {
		switch node := current.(type) {
		case map[string]any:
			val, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("key %q not found", keyPath)
			}
			current = val
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("key %q: %q is not an index of a list of %d", keyPath, part, len(node))
			}
			current = node[i]
		default:
			return nil, fmt.Errorf("key %q: parent of %q is a scalar", keyPath, part)
		}
	}
	return current, nil
}
