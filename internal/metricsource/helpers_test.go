package metricsource

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/davetashner/qualitydash/internal/query"
)

// fakeTracker returns canned results keyed by query text. Queries listed in
// fail return an error.
type fakeTracker struct {
	mu       sync.Mutex
	results  map[string]*SearchResult
	fail     map[string]bool
	fields   map[string]string
	fieldErr error
	calls    []string
}

func (f *fakeTracker) Search(_ context.Context, q query.Template) (*SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q.Text)
	if f.fail[q.Text] {
		return nil, errors.New("connection refused")
	}
	if res, ok := f.results[q.Text]; ok {
		return res, nil
	}
	return &SearchResult{}, nil
}

func (f *fakeTracker) FieldID(_ context.Context, label string) (string, error) {
	if f.fieldErr != nil {
		return "", f.fieldErr
	}
	id, ok := f.fields[label]
	if !ok {
		return "", ErrUnknownField
	}
	return id, nil
}

// fakeFetcher serves documents from memory and counts fetches.
type fakeFetcher struct {
	mu      sync.Mutex
	docs    map[string]string
	fetches map[string]int
}

func (f *fakeFetcher) Fetch(_ context.Context, location string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetches == nil {
		f.fetches = map[string]int{}
	}
	f.fetches[location]++
	doc, ok := f.docs[location]
	if !ok {
		return nil, ErrUnavailable
	}
	return []byte(doc), nil
}

func testClient(opts ...ClientOption) *Client {
	return NewClient(append([]ClientOption{WithRetry(3, time.Millisecond)}, opts...)...)
}
