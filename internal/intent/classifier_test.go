package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caremesh/triage-gateway/internal/intent"
)

func TestClassifier_Classify_ImageForcesVision(t *testing.T) {
	c := intent.New()

	// Even a strongly administrative message is Vision when an image rides along.
	result := c.Classify("what are your office hours and billing contact", true)

	assert.Equal(t, intent.Vision, result.Intent)
	assert.Equal(t, "image attached", result.Rationale)
}

func TestClassifier_Classify_Admin(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"hours_location", "what are your hours and location?"},
		{"appointment_schedule", "I need to schedule an appointment"},
		{"billing_insurance", "question about billing and my insurance"},
		{"cancel_reschedule", "can I cancel and reschedule for Friday"},
	}

	c := intent.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.text, false)

			assert.Equal(t, intent.Admin, result.Intent)
			assert.Contains(t, result.Rationale, "administrative keywords")
		})
	}
}

func TestClassifier_Classify_ClinicalDefault(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"symptoms", "I have had a headache and fever for two days"},
		{"medication", "can I take ibuprofen with my blood pressure medication"},
		{"no_keywords", "hello, I was wondering about something"},
	}

	c := intent.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.text, false)

			assert.Equal(t, intent.Clinical, result.Intent)
		})
	}
}

func TestClassifier_Classify_SingleAdminKeywordStaysClinical(t *testing.T) {
	c := intent.New()

	// One admin keyword is below threshold: a clinical message mentioning
	// cost in passing is still clinical.
	result := c.Classify("how much water should I drink, whatever the cost", false)

	assert.Equal(t, intent.Clinical, result.Intent)
}
