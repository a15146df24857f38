// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

// Package redact strips credentials from strings before they reach logs,
// error messages, or the rendered report.
package redact

import (
	"os"
	"strings"
	"sync"
)

// sensitiveEnvVars lists environment variables holding metric source
// credentials. Config files reference them as ${VAR}.
var sensitiveEnvVars = []string{
	"JIRA_PASSWORD",
	"JIRA_TOKEN",
	"CHECKMARX_PASSWORD",
	"JENKINS_TOKEN",
	"MONITOR_TOKEN",
	"GITHUB_TOKEN",
	"GH_TOKEN",
	"QUALITYDASH_TOKEN",
}

var (
	mu            sync.Mutex
	cachedSecrets []string
	extraSecrets  []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		val := os.Getenv(envVar)
		if val != "" && len(val) >= 4 {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

func resetCache() {
	mu.Lock()
	defer mu.Unlock()
	cachedSecrets = nil
	extraSecrets = nil
	cacheOnce = sync.Once{}
}

// ResetForTest resets the cached secrets so tests in other packages can
// verify redaction behavior after setting env vars with t.Setenv.
func ResetForTest() { resetCache() }

// Register adds a secret that did not come from a known environment
// variable, such as a password written literally in a config file.
// Values shorter than 4 characters are ignored.
func Register(secret string) {
	if len(secret) < 4 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	extraSecrets = append(extraSecrets, secret)
}

// String replaces any occurrence of a known secret with "[REDACTED]".
func String(s string) string {
	cacheOnce.Do(loadSecrets)
	mu.Lock()
	defer mu.Unlock()
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	for _, secret := range extraSecrets {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return s
}

// Error is String applied to err's message; nil yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
