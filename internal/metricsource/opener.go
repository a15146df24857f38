// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package metricsource

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/davetashner/qualitydash/internal/testable"
)

// FS reads local report files. Override in tests with a
// testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

// Fetcher retrieves a raw document.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Opener fetches http(s) urls through a Client and reads file:// urls and
// plain paths from disk.
type Opener struct {
	client *Client
}

// NewOpener returns an Opener using client for remote documents.
func NewOpener(client *Client) *Opener {
	return &Opener{client: client}
}

// Fetch implements Fetcher.
func (o *Opener) Fetch(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return o.client.Get(ctx, location)
	}

	path := location
	if strings.HasPrefix(location, "file://") {
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		path = u.Path
	}
	data, err := FS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return data, nil
}
