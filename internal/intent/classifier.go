// Package intent labels a redacted chat message as administrative,
// clinical, or vision.
//
// DESIGN: A pure function of its inputs - no external state. Keyword
// rules are an ordered data table of (pattern, weight) pairs consumed by
// one scoring function, so the vocabulary and threshold live in one
// place. An attached image forces Vision regardless of text. Absence of
// administrative signal defaults to Clinical: the domain is
// healthcare-oriented, and Clinical is the safer default when scores tie.
package intent

import (
	"fmt"
	"strings"
)

// Intent is the request classification.
type Intent string

const (
	Admin    Intent = "admin"
	Clinical Intent = "clinical"
	Vision   Intent = "vision"
)

// Classification pairs the intent with a human-readable rationale for
// telemetry.
type Classification struct {
	Intent    Intent
	Rationale string
}

// Rule is one scoring pattern, matched case-insensitively as a substring.
type Rule struct {
	Pattern string
	Weight  int
}

// AdminRules is the administrative vocabulary: scheduling, billing,
// insurance, and front-desk terms.
var AdminRules = []Rule{
	{"appointment", 1},
	{"schedule", 1},
	{"reschedule", 1},
	{"cancel", 1},
	{"billing", 1},
	{"insurance", 1},
	{"cost", 1},
	{"price", 1},
	{"hours", 1},
	{"location", 1},
	{"office", 1},
	{"registration", 1},
	{"forms", 1},
	{"paperwork", 1},
	{"contact", 1},
}

// AdminThreshold is the minimum admin score for an Admin classification.
const AdminThreshold = 2

// Classifier scores text against the rule table.
type Classifier struct {
	adminRules []Rule
	threshold  int
}

// New creates a Classifier with the default vocabulary.
func New() *Classifier {
	return &Classifier{adminRules: AdminRules, threshold: AdminThreshold}
}

// Classify labels the message. hasImage forces Vision unconditionally.
func (c *Classifier) Classify(text string, hasImage bool) Classification {
	if hasImage {
		return Classification{Intent: Vision, Rationale: "image attached"}
	}

	lower := strings.ToLower(text)
	score := 0
	for _, r := range c.adminRules {
		if strings.Contains(lower, r.Pattern) {
			score += r.Weight
		}
	}

	if score >= c.threshold {
		return Classification{
			Intent:    Admin,
			Rationale: fmt.Sprintf("administrative keywords (score %d)", score),
		}
	}
	return Classification{
		Intent:    Clinical,
		Rationale: "default to clinical for healthcare context",
	}
}
