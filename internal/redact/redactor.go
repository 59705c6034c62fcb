// Package redact detects and masks protected health information (PHI)
// in free-text chat messages before anything downstream sees them.
//
// DESIGN: An ordered table of pattern matchers, applied single-pass per
// category. Earlier matchers have priority over text they consume - a
// span replaced by one matcher can no longer match a later one. Every
// match becomes a category-specific placeholder like [REDACTED_PHONE],
// so redaction is idempotent: placeholders never re-match any pattern.
package redact

import (
	"regexp"
	"strings"
)

// Category identifies a class of sensitive field.
type Category string

const (
	CategoryPhone   Category = "phone"
	CategorySSN     Category = "ssn"
	CategoryEmail   Category = "email"
	CategoryMRN     Category = "mrn"
	CategoryDOB     Category = "dob"
	CategoryAddress Category = "address"
	CategoryName    Category = "name"
)

// Result is the outcome of a redaction pass. Categories is empty iff no
// pattern matched; SanitizedText contains no literal matches of any
// configured pattern.
type Result struct {
	SanitizedText string
	Categories    []Category
}

// Has reports whether the given category was found.
func (r Result) Has(c Category) bool {
	for _, found := range r.Categories {
		if found == c {
			return true
		}
	}
	return false
}

// HasPHI reports whether any sensitive field was found.
func (r Result) HasPHI() bool { return len(r.Categories) > 0 }

// CategoryNames returns the found categories as plain strings for telemetry.
func (r Result) CategoryNames() []string {
	out := make([]string, len(r.Categories))
	for i, c := range r.Categories {
		out[i] = string(c)
	}
	return out
}

// matcher binds a category to its pattern. When group is true only the
// first capture group is replaced (used by the name heuristic, which
// anchors on surrounding context words that must survive).
type matcher struct {
	category Category
	pattern  *regexp.Regexp
	group    bool
}

// Declaration order is priority order: earlier matchers win overlapping text.
var matchers = []matcher{
	{CategoryPhone, regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`), false},
	{CategorySSN, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), false},
	{CategoryEmail, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), false},
	{CategoryMRN, regexp.MustCompile(`(?i)\b(?:MRN|medical record number)[\s:]*\d{6,10}\b`), false},
	{CategoryDOB, regexp.MustCompile(`(?i)\b(?:DOB|date of birth)[\s:]*\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`), false},
	{CategoryAddress, regexp.MustCompile(`(?i)\b\d+\s+[\w ]+?(?:street|st|avenue|ave|road|rd|lane|ln|drive|dr|boulevard|blvd)\b`), false},

	// Proper-name heuristic: a capitalized word (or two) following a
	// self-identification phrase. Context-window keyword proximity only,
	// no NER - false positives and negatives are expected and accepted.
	{CategoryName, regexp.MustCompile(`\b(?i:my name is|i am|i'm)\s+([A-Z][a-z]+(?: [A-Z][a-z]+)?)\b`), true},
	{CategoryName, regexp.MustCompile(`\b(?i:patient)[\s:]+([A-Z][a-z]+(?: [A-Z][a-z]+)?)\b`), true},
}

// Redactor applies the PHI matcher table.
type Redactor struct {
	matchers []matcher
}

// New creates a Redactor with the default matcher table.
func New() *Redactor {
	return &Redactor{matchers: matchers}
}

// Redact masks every sensitive field in text. An all-clear result is the
// common case and is not an error.
func (r *Redactor) Redact(text string) Result {
	sanitized := text
	var found []Category
	seen := make(map[Category]bool)

	for _, m := range r.matchers {
		placeholder := "[REDACTED_" + strings.ToUpper(string(m.category)) + "]"

		var matched bool
		if m.group {
			sanitized, matched = replaceGroup(m.pattern, sanitized, placeholder)
		} else if m.pattern.MatchString(sanitized) {
			matched = true
			sanitized = m.pattern.ReplaceAllString(sanitized, placeholder)
		}

		if matched && !seen[m.category] {
			seen[m.category] = true
			found = append(found, m.category)
		}
	}

	return Result{SanitizedText: sanitized, Categories: found}
}

// replaceGroup masks the first capture group of every match, splicing by
// submatch offsets so the context words stay intact even when the captured
// text also occurs inside them.
func replaceGroup(pattern *regexp.Regexp, text, placeholder string) (string, bool) {
	locs := pattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text, false
	}

	var b strings.Builder
	last := 0
	matched := false
	for _, loc := range locs {
		// loc[2], loc[3] bound the first capture group.
		if len(loc) < 4 || loc[2] < 0 || loc[2] == loc[3] {
			continue
		}
		b.WriteString(text[last:loc[2]])
		b.WriteString(placeholder)
		last = loc[3]
		matched = true
	}
	if !matched {
		return text, false
	}
	b.WriteString(text[last:])
	return b.String(), true
}
