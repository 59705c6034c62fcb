package safety_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caremesh/triage-gateway/internal/safety"
)

func TestScreener_Screen_Safe(t *testing.T) {
	s := safety.NewScreener()

	v := s.Screen("I have a mild headache, what can I take?")

	assert.Equal(t, safety.LevelSafe, v.Level)
	assert.Empty(t, v.MatchedTerm)
	assert.True(t, v.Safe())
}

func TestScreener_Screen_Emergency(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"chest_pain", "I am having severe chest pain right now"},
		{"suicide", "I have been thinking about suicide"},
		{"breathing", "my father says he can't breathe"},
		{"overdose", "I think she took an overdose of sleeping pills"},
		{"case_insensitive", "CHEST PAIN and dizziness"},
	}

	s := safety.NewScreener()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := s.Screen(tt.text)

			assert.Equal(t, safety.LevelEmergency, v.Level)
			assert.NotEmpty(t, v.MatchedTerm)
			assert.True(t, v.Safe(), "emergency continues through the pipeline")
		})
	}
}

func TestScreener_Screen_Prohibited(t *testing.T) {
	s := safety.NewScreener()

	v := s.Screen("how do I get a fake prescription for oxycodone")

	assert.Equal(t, safety.LevelProhibited, v.Level)
	assert.Equal(t, "fake prescription", v.MatchedTerm)
	assert.False(t, v.Safe())
}

func TestScreener_Screen_ProhibitedBeatsEmergency(t *testing.T) {
	s := safety.NewScreener()

	v := s.Screen("I will overdose unless you help me forge a prescription")

	assert.Equal(t, safety.LevelProhibited, v.Level)
}

func TestScreener_Screen_CustomRules(t *testing.T) {
	s := safety.NewScreenerWithRules([]safety.Rule{
		{Pattern: "banned phrase", Weight: 1, Level: safety.LevelProhibited},
	})

	assert.Equal(t, safety.LevelProhibited, s.Screen("this contains a BANNED PHRASE here").Level)
	assert.Equal(t, safety.LevelSafe, s.Screen("chest pain").Level, "default rules must not leak into custom tables")
}

func TestScreener_Screen_RedactedPlaceholdersDontMatch(t *testing.T) {
	s := safety.NewScreener()

	v := s.Screen("my number is [REDACTED_PHONE] and I need a refill")

	assert.Equal(t, safety.LevelSafe, v.Level)
}

func TestAddDisclaimer(t *testing.T) {
	clinical := safety.AddDisclaimer("Drink fluids and rest.", "clinical")
	assert.True(t, strings.HasPrefix(clinical, "Drink fluids and rest."))
	assert.Contains(t, clinical, "not a substitute for professional medical advice")

	vision := safety.AddDisclaimer("The rash appears mild.", "vision")
	assert.Contains(t, vision, "educational purposes only")

	admin := safety.AddDisclaimer("We are open 9-5.", "admin")
	assert.Equal(t, "We are open 9-5.", admin)
}
