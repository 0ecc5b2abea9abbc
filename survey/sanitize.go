// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

// StripMarkup removes every HTML tag from s. Text inside style and script
// elements is kept, only the tags go. Entities escaped by the
// sanitizer are decoded again so plain css such as "a > b" survives, and no
// "<" is left so the result can be embedded in a style element as is.
func StripMarkup(s string) string {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
		stripPolicy.AllowElementsContent("style", "script")
	})
	return strings.ReplaceAll(html.UnescapeString(stripPolicy.Sanitize(s)), "<", "")
}
