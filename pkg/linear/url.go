package linear

import (
	"regexp"
	"strings"
)

var issueURLPattern = regexp.MustCompile(`^https://linear\.app/[^/]+/issue/([A-Z][A-Z0-9]*-\d+)`)

var identifierPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*-\d+$`)

// IsIssueURL reports whether ref is a Linear issue URL.
func IsIssueURL(ref string) bool {
	return issueURLPattern.MatchString(ref)
}

// IsIdentifier reports whether ref looks like a human-facing issue
// identifier such as "ENG-123".
func IsIdentifier(ref string) bool {
	return identifierPattern.MatchString(strings.ToUpper(ref))
}

// ExtractIdentifier pulls the issue identifier out of a Linear issue URL.
// Returns "" when the URL does not reference an issue.
func ExtractIdentifier(url string) string {
	m := issueURLPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// NormalizeIssueRef turns any supported issue reference (UUID,
// identifier, issue URL) into a form the API accepts: URLs are reduced to
// their identifier, identifiers are upper-cased, opaque ids pass through.
func NormalizeIssueRef(ref string) string {
	if id := ExtractIdentifier(ref); id != "" {
		return id
	}
	if IsIdentifier(ref) {
		return strings.ToUpper(ref)
	}
	return ref
}
