// Package safety screens redacted chat text for emergency and prohibited
// content before anything is sent to the model router.
//
// DESIGN: Rules are data, not scattered literals - an ordered table of
// (pattern, weight, level) triples consumed by one scoring function.
// A prohibited match always takes precedence over an emergency match.
// Prohibited is terminal for the request; Emergency annotates the response
// but lets the pipeline continue so the caller still gets substantive
// content alongside the warning.
package safety

import "strings"

// Level classifies the screening outcome.
type Level string

const (
	LevelSafe       Level = "safe"
	LevelEmergency  Level = "emergency"
	LevelProhibited Level = "prohibited"
)

// Verdict is the screener's decision. MatchedTerm is the first rule
// pattern that fired; empty for Safe.
type Verdict struct {
	Level       Level
	MatchedTerm string
}

// Safe reports whether the request may proceed to the router.
func (v Verdict) Safe() bool { return v.Level != LevelProhibited }

// Rule is one screening pattern. Matching is case-insensitive substring
// containment; Weight feeds the per-level score.
type Rule struct {
	Pattern string
	Weight  int
	Level   Level
}

// DefaultRules is the built-in screening table.
var DefaultRules = []Rule{
	// Prohibited: illegal-request phrases. Checked first regardless of
	// table position, but kept grouped for readability.
	{"illegal drugs", 1, LevelProhibited},
	{"illegal prescription", 1, LevelProhibited},
	{"fake prescription", 1, LevelProhibited},
	{"forge", 1, LevelProhibited},
	{"forgery", 1, LevelProhibited},
	{"abuse medication", 1, LevelProhibited},
	{"sell prescription", 1, LevelProhibited},

	// Emergency: life-threatening symptom phrases.
	{"suicide", 1, LevelEmergency},
	{"kill myself", 1, LevelEmergency},
	{"end my life", 1, LevelEmergency},
	{"self-harm", 1, LevelEmergency},
	{"overdose", 1, LevelEmergency},
	{"emergency", 1, LevelEmergency},
	{"chest pain", 1, LevelEmergency},
	{"can't breathe", 1, LevelEmergency},
	{"cannot breathe", 1, LevelEmergency},
	{"severe bleeding", 1, LevelEmergency},
	{"unconscious", 1, LevelEmergency},
	{"stroke", 1, LevelEmergency},
}

// Screener evaluates the rule table against redacted text.
type Screener struct {
	rules     []Rule
	threshold int
}

// NewScreener creates a Screener with the default rule table.
func NewScreener() *Screener {
	return NewScreenerWithRules(DefaultRules)
}

// NewScreenerWithRules creates a Screener with a custom table. A level
// fires once its summed weights reach the threshold (1 by default).
func NewScreenerWithRules(rules []Rule) *Screener {
	return &Screener{rules: rules, threshold: 1}
}

// Screen classifies text. Expects already-redacted input; placeholders
// inserted by the redactor never match any rule.
func (s *Screener) Screen(text string) Verdict {
	lower := strings.ToLower(text)

	scores := map[Level]int{}
	firstMatch := map[Level]string{}

	for _, r := range s.rules {
		if strings.Contains(lower, r.Pattern) {
			scores[r.Level] += r.Weight
			if _, ok := firstMatch[r.Level]; !ok {
				firstMatch[r.Level] = r.Pattern
			}
		}
	}

	// Prohibited wins when both sets match.
	if scores[LevelProhibited] >= s.threshold {
		return Verdict{Level: LevelProhibited, MatchedTerm: firstMatch[LevelProhibited]}
	}
	if scores[LevelEmergency] >= s.threshold {
		return Verdict{Level: LevelEmergency, MatchedTerm: firstMatch[LevelEmergency]}
	}
	return Verdict{Level: LevelSafe}
}
