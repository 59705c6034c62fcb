// Package safety - disclaimer.go holds the fixed advisory text attached
// to responses. All clinical output is advisory; these strings make that
// explicit to the end user.
package safety

// EmergencyWarning is prepended to the warning field whenever the
// screener returns an Emergency verdict.
const EmergencyWarning = "Emergency detected: if this is a medical emergency, " +
	"call 911 or visit your nearest emergency room immediately. " +
	"This assistant cannot provide emergency care."

// RefusalMessage is returned to the caller on a Prohibited verdict. Kept
// generic so the response does not echo what was matched.
const RefusalMessage = "This request cannot be processed due to prohibited content."

const clinicalDisclaimer = "\n\n---\n" +
	"This is not a substitute for professional medical advice, diagnosis, " +
	"or treatment. Always seek the advice of your physician or qualified " +
	"health provider with any questions regarding a medical condition."

const visionDisclaimer = "\n\n---\n" +
	"This image analysis is for educational purposes only and should not be " +
	"used for diagnostic decisions. Consult a qualified healthcare " +
	"professional for medical image interpretation."

// AddDisclaimer appends the intent-appropriate advisory footer to a
// generated response. Administrative answers carry no disclaimer.
func AddDisclaimer(response, intent string) string {
	switch intent {
	case "clinical":
		return response + clinicalDisclaimer
	case "vision":
		return response + visionDisclaimer
	default:
		return response
	}
}
