package models

type Intent string

const (
	IntentCreateBulletin Intent = "CREATE_BULLETIN"
	IntentCreatePatient  Intent = "CREATE_PATIENT"
	IntentSearchPatient  Intent = "SEARCH_PATIENT"
	IntentNavigate       Intent = "NAVIGATE"
)

func (i Intent) Valid() bool {
	switch i {
	case IntentCreateBulletin, IntentCreatePatient, IntentSearchPatient, IntentNavigate:
		return true
	}
	return false
}

// Entities carries every extractable field. Fields are always present in the
// JSON form: absent values serialize as explicit null, never as omitted keys.
type Entities struct {
	PatientName *string  `json:"patientName"`
	Acts        []string `json:"acts"`
	FullName    *string  `json:"fullName"`
	CIN         *string  `json:"cin"`
	Category    *string  `json:"category"`
	Query       *string  `json:"query"`
	Destination *string  `json:"destination"`
}

// FormData is the structured intent/entity record extracted from a transcript.
type FormData struct {
	Intent   Intent   `json:"intent"`
	Entities Entities `json:"entities"`
}

// VoiceFormResult is returned for both the upload and the streaming-final case.
type VoiceFormResult struct {
	Transcript string   `json:"transcript"`
	Data       FormData `json:"data"`
}
