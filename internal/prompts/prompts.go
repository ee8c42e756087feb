// Package prompts builds the instruction templates sent to the form-extraction
// model. The template structure is load-bearing: extraction quality depends on
// the role statement, rule block, code table, and few-shot examples staying
// intact, so changes here should be validated against real transcripts.
package prompts

import "fmt"

// CNAMCodesInfo is the fixed reference table of clinical act codes embedded in
// every extraction prompt to ground the model's output vocabulary.
const CNAMCodesInfo = `
Common codes:
- SC17: Filing (Obturation)
- SC33: Devitalization (Molar)
- SC23: Devitalization (Premolar)
- SC15: Devitalization (Incisor)
- DC: Extraction (Simple)
- DC20: Extraction (Surgical)
- Z: Radiography
`

// DefaultLanguage is assumed when a client does not declare one.
const DefaultLanguage = "ar"

var roleStatements = map[string]string{
	"ar": "You are a Tunisian medical assistant. Convert the following transcript (in Tunisian Derja/Arabic) into JSON.",
	"fr": "Vous êtes un assistant médical. Convertissez la transcription suivante (en Français) en JSON.",
	"en": "You are a medical assistant. Convert the following transcript (in English) into JSON.",
}

// initialPrompts are domain-vocabulary hints passed to Whisper-style backends
// to bias recognition toward clinical terms.
var initialPrompts = map[string]string{
	"ar": "Tunisian medical context: Patient, bulletin, CNAM, CNRPS, CIN, filière privée, acte médical, médecin, Sbitar, Barcha, Shnowa, Kifech, Labess, SC17, SC23, SC33, Tbib, Dwa, Ordonnance, Kernet, Chifa, Madmoun, Tasrih.",
	"fr": "Contexte médical: Patient, bulletin de soins, feuille de soins, pharmacie, médecin, consultation, remboursement, matricule, convention, acte médical, prescription, scanner, analyse, laboratoire, mutuelle, CNAM.",
	"en": "Medical context: Patient, medical claim, health form, insurance, doctor, consultation, reimbursement, ID number, agreement, medical act, prescription, scanner, analysis, laboratory, CNAM.",
}

// InitialPrompt returns the Whisper vocabulary hint for lang, falling back to
// the default language when lang is unknown.
func InitialPrompt(lang string) string {
	if p, ok := initialPrompts[lang]; ok {
		return p
	}
	return initialPrompts[DefaultLanguage]
}

// Generate builds the full extraction instruction block embedding text.
func Generate(text, lang string) string {
	role, ok := roleStatements[lang]
	if !ok {
		role = roleStatements[DefaultLanguage]
	}

	return fmt.Sprintf(`[INST] %s

Rules:
1. Output ONLY valid JSON.
2. If the user mentions "filière privée" or "filière publique", map them to the "category" field.
3. If they say "carte chifa" or "cnam", ensure it's captured in bulletin context.
4. Use these intents: CREATE_BULLETIN, CREATE_PATIENT, SEARCH_PATIENT, NAVIGATE.

Context Codes:
%s
Example (Tunisian): "Nheb nzid bulletin l-Ahmed acte SC33"
Output: {"intent": "CREATE_BULLETIN", "entities": {"patientName": "Ahmed", "acts": ["SC33"]}}

Example (French): "Ajouter un bulletin pour Jean avec l'acte SC17"
Output: {"intent": "CREATE_BULLETIN", "entities": {"patientName": "Jean", "acts": ["SC17"]}}

Transcript: "%s" [/INST]
JSON:`, role, CNAMCodesInfo, text)
}
