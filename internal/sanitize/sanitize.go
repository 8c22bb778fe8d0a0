// Package sanitize provides HTML sanitization for authored content. Blog
// posts and project descriptions are written as HTML in the admin panel;
// bluemonday strips anything dangerous (script tags, event handlers,
// javascript: URLs) before the content is stored.
package sanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the singleton bluemonday policy for authored HTML.
// Initialized once via sync.Once for thread-safe lazy initialization.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, initializing it on first call.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		// Code samples carry a language class for client-side syntax
		// highlighting (e.g. class="language-go").
		policy.AllowAttrs("class").OnElements("pre", "code")

		// Images in posts may declare intrinsic dimensions to avoid layout
		// shift while loading.
		policy.AllowAttrs("width", "height", "loading").OnElements("img")
	})
	return policy
}

// HTML sanitizes authored HTML content by stripping dangerous elements
// while preserving safe formatting tags.
//
// This MUST be called on all incoming HTML before storing it in the
// database; rendering trusts stored content as-is.
func HTML(input string) string {
	if input == "" {
		return ""
	}
	return getPolicy().Sanitize(input)
}
