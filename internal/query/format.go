// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingPlaceholder is returned by Expand when a template references a
// placeholder that has no value.
var ErrMissingPlaceholder = errors.New("missing placeholder value")

// Expand fills {name} placeholders from named and {} / {0}, {1}, ... from
// positional. Literal braces are written as {{ and }}.
func Expand(tmpl string, named map[string]string, positional ...string) (string, error) {
	var b strings.Builder
	b.Grow(len(tmpl))
	next := 0
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch {
		case c == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated placeholder at offset %d in %q", i, tmpl)
			}
			name := tmpl[i+1 : i+1+end]
			val, err := lookup(name, named, positional, &next)
			if err != nil {
				return "", fmt.Errorf("%w: %q in %q", err, name, tmpl)
			}
			b.WriteString(val)
			i += end + 1
		case c == '}':
			return "", fmt.Errorf("single '}' at offset %d in %q", i, tmpl)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

func lookup(name string, named map[string]string, positional []string, next *int) (string, error) {
	if name == "" {
		idx := *next
		*next++
		if idx >= len(positional) {
			return "", ErrMissingPlaceholder
		}
		return positional[idx], nil
	}
	if name[0] >= '0' && name[0] <= '9' {
		idx := 0
		for _, r := range name {
			if r < '0' || r > '9' {
				return "", ErrMissingPlaceholder
			}
			idx = idx*10 + int(r-'0')
		}
		if idx >= len(positional) {
			return "", ErrMissingPlaceholder
		}
		return positional[idx], nil
	}
	val, ok := named[name]
	if !ok {
		return "", ErrMissingPlaceholder
	}
	return val, nil
}

// Resolve substitutes the project name (and the optional extra positional
// parameter) into every template entry, preserving order. Filter ids pass
// through untouched. A template that references an unknown placeholder is a
// configuration defect and makes Resolve panic.
func Resolve(ts Templates, project string, extra ...string) Templates {
	named := map[string]string{"project": project}
	out := make(Templates, len(ts))
	for i, t := range ts {
		if t.IsFilter() {
			out[i] = t
			continue
		}
		text, err := Expand(t.Text, named, extra...)
		if err != nil {
			panic(fmt.Sprintf("query: %v", err))
		}
		out[i] = QueryTemplate(text)
	}
	return out
}

// Format returns one concrete query string per configured entry.
func Format(ts Templates, project string, extra ...string) []string {
	return Resolve(ts, project, extra...).Strings()
}
