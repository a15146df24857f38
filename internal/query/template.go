// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

// Package query turns named logical issue-tracker queries into concrete
// query strings or saved-filter identifiers.
package query

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind distinguishes a query template from a literal saved-filter id.
type Kind int

const (
	// KindTemplate is a query string with {project} and positional placeholders.
	KindTemplate Kind = iota
	// KindFilterID is a tracker-side saved filter id; it is never formatted.
	KindFilterID
)

// Template is one configured query: either a template string or a filter id.
// The kind is decided once, when the configuration is decoded.
type Template struct {
	Kind Kind
	Text string
}

// QueryTemplate returns a template that will be formatted before use.
func QueryTemplate(text string) Template {
	return Template{Kind: KindTemplate, Text: text}
}

// FilterID returns a literal saved-filter reference.
func FilterID(id string) Template {
	return Template{Kind: KindFilterID, Text: id}
}

// IsFilter reports whether t references a saved filter.
func (t Template) IsFilter() bool { return t.Kind == KindFilterID }

// String returns the raw text of the template or the filter id.
func (t Template) String() string { return t.Text }

// Templates is the ordered list of templates configured for one query key.
// All entries for a key are executed and their results summed.
type Templates []Template

// Of builds a Templates list from plain strings, all treated as templates.
func Of(texts ...string) Templates {
	ts := make(Templates, len(texts))
	for i, text := range texts {
		ts[i] = QueryTemplate(text)
	}
	return ts
}

// Strings returns the text of every entry, in order.
func (ts Templates) Strings() []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Text
	}
	return out
}

// UnmarshalYAML accepts a scalar or a sequence of scalars. Integer scalars
// become filter ids; everything else is a query template.
func (ts *Templates) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		t, err := templateFromNode(value)
		if err != nil {
			return err
		}
		*ts = Templates{t}
		return nil
	case yaml.SequenceNode:
		out := make(Templates, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: query entries must be strings or integers", item.Line)
			}
			t, err := templateFromNode(item)
			if err != nil {
				return err
			}
			out = append(out, t)
		}
		*ts = out
		return nil
	default:
		return fmt.Errorf("line %d: query must be a string, an integer, or a list of those", value.Line)
	}
}

// MarshalYAML writes filter ids back as integers and templates as strings,
// so a decoded config round-trips.
func (ts Templates) MarshalYAML() (any, error) {
	out := make([]any, len(ts))
	for i, t := range ts {
		if t.IsFilter() {
			id, err := strconv.ParseInt(t.Text, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid filter id %q: %w", t.Text, err)
			}
			out[i] = id
			continue
		}
		out[i] = t.Text
	}
	return out, nil
}

func templateFromNode(n *yaml.Node) (Template, error) {
	if n.Tag == "!!int" {
		if _, err := strconv.ParseInt(n.Value, 0, 64); err != nil {
			return Template{}, fmt.Errorf("line %d: invalid filter id %q: %w", n.Line, n.Value, err)
		}
		return FilterID(n.Value), nil
	}
	return QueryTemplate(n.Value), nil
}

// UnmarshalTOML implements toml.Unmarshaler with the same rules as YAML.
func (ts *Templates) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case []any:
		out := make(Templates, 0, len(val))
		for _, item := range val {
			t, err := templateFromValue(item)
			if err != nil {
				return err
			}
			out = append(out, t)
		}
		*ts = out
		return nil
	default:
		t, err := templateFromValue(val)
		if err != nil {
			return err
		}
		*ts = Templates{t}
		return nil
	}
}

func templateFromValue(v any) (Template, error) {
	switch val := v.(type) {
	case string:
		return QueryTemplate(val), nil
	case int64:
		return FilterID(strconv.FormatInt(val, 10)), nil
	default:
		return Template{}, fmt.Errorf("query entries must be strings or integers, got %T", v)
	}
}
