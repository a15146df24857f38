// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package metricsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// errNoSummaryTable marks a report without a summary table.
var errNoSummaryTable = errors.New("summary table could not be found")

// ZAPScanReport counts alerts in OWASP ZAP HTML scan reports.
type ZAPScanReport struct {
	fetcher Fetcher
	docs    *lruCache[*html.Node] // keyed by url
	results *lruCache[int]        // keyed by risk level plus the url tuple
}

// NewZAPScanReport returns a ZAPScanReport reading documents with fetcher.
func NewZAPScanReport(fetcher Fetcher) *ZAPScanReport {
	return &ZAPScanReport{
		fetcher: fetcher,
		docs:    newLRUCache[*html.Node](defaultCacheSize),
		results: newLRUCache[int](defaultCacheSize),
	}
}

// Alerts returns the number of alerts of the given risk level summed over
// all reports, or Unknown when any report cannot be fetched or parsed.
func (z *ZAPScanReport) Alerts(ctx context.Context, risk RiskLevel, reportURLs ...string) int {
	key := cacheKey(append([]string{string(risk)}, reportURLs...)...)
	if n, ok := z.results.Get(key); ok {
		return n
	}
	n := z.alerts(ctx, risk, reportURLs)
	z.results.Add(key, n)
	return n
}

func (z *ZAPScanReport) alerts(ctx context.Context, risk RiskLevel, reportURLs []string) int {
	total := 0
	for _, u := range reportURLs {
		doc, err := z.document(ctx, u)
		if err != nil {
			warn("Couldn't open ZAP scan report", err, "url", u)
			return Unknown
		}
		n, err := parseZAPAlerts(doc, risk)
		if errors.Is(err, errNoSummaryTable) {
			slog.Error("Summary table could not be found", "url", u)
			return Unknown
		}
		if err != nil {
			warn("Couldn't parse alerts", err, "risk_level", string(risk), "url", u)
			return Unknown
		}
		total += n
	}
	return total
}

func (z *ZAPScanReport) document(ctx context.Context, u string) (*html.Node, error) {
	if doc, ok := z.docs.Get(u); ok {
		return doc, nil
	}
	raw, err := z.fetcher.Fetch(ctx, u)
	if err != nil {
		return nil, err
	}
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	z.docs.Add(u, doc)
	return doc, nil
}

// parseZAPAlerts finds the row of the summary table whose first cell holds
// the risk level and reads the alert count from the second cell.
func parseZAPAlerts(doc *html.Node, risk RiskLevel) (int, error) {
	table := findElement(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Table && hasClass(n, "summary")
	})
	if table == nil {
		return 0, errNoSummaryTable
	}

	label := risk.Title()
	for _, row := range findAll(table, atom.Tr) {
		cells := findAll(row, atom.Td)
		if len(cells) == 0 || strings.TrimSpace(textContent(cells[0])) != label {
			continue
		}
		if len(cells) < 2 {
			return 0, fmt.Errorf("%w: row %q has no count cell", ErrMalformed, label)
		}
		n, err := strconv.Atoi(strings.TrimSpace(textContent(cells[1])))
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: no row for risk level %q", ErrMalformed, label)
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" && slices.Contains(strings.Fields(a.Val), class) {
			return true
		}
	}
	return false
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == a {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
