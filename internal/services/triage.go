package services

import (
	"context"
	"encoding/json"
	"fmt"
)

// Analysis is the structured result of an AI symptom triage.
type Analysis struct {
	IsValidHealthQuery bool     `json:"isValidHealthQuery"`
	NeedsClarification bool     `json:"needsClarification"`
	Analysis           string   `json:"analysis"`
	Severity           *string  `json:"severity"`
	FollowUpQuestions  []string `json:"followUpQuestions"`
	Recommendations    []string `json:"recommendations"`
	SuggestedMedicines []string `json:"suggestedMedicines"`
	DoctorConsultation *string  `json:"doctorConsultation"`
	UrgencyLevel       *string  `json:"urgencyLevel"`
}

const triagePromptTemplate = `You are a professional medical AI assistant helping patients understand their health issues.

PATIENT'S INPUT: %s

%s

YOUR TASK - FOLLOW THIS SEQUENCE STRICTLY:

**STEP 1: VALIDATE IF THIS IS A VALID HEALTH QUERY**
- Check if the query is related to health, symptoms, medical conditions, or wellness
- Set "isValidHealthQuery" to true ONLY if it's a genuine health-related concern

**STEP 2: IF NOT A VALID HEALTH QUERY (isValidHealthQuery = false)**
- DO NOT provide any medical analysis, recommendations, or medicines
- Set "needsClarification" to true and ask the patient to describe their symptoms

**STEP 3: IF VALID BUT UNCLEAR**
- Set "needsClarification" to true
- Ask 1-2 specific follow-up questions (MAXIMUM 2)
- DO NOT provide recommendations or medicines yet

**STEP 4: ONLY IF VALID AND CLEAR**
- Set "needsClarification" to false
- Proceed with full analysis, severity assessment, and recommendations

**SEVERITY LEVELS:** mild (common, not serious), moderate (needs attention but
not urgent), severe (requires immediate medical attention).

**MEDICINE SUGGESTIONS:**
- Medicine names MUST be in ENGLISH ONLY (generic names like Paracetamol, Ibuprofen, Cetirizine)
- Only suggest safe, common OTC medicines when symptoms are CLEAR
- For severe cases, DO NOT suggest medicines - only recommend doctor consultation

**CRITICAL**: Your response MUST be ONLY valid JSON - nothing before or after
the JSON object, no markdown, no code blocks.

RESPONSE FORMAT (JSON):
{
  "isValidHealthQuery": true,
  "needsClarification": false,
  "followUpQuestions": ["Question 1?", "Question 2?"],
  "analysis": "Clear explanation (only if needsClarification is false)",
  "severity": "mild",
  "recommendations": ["Recommendation 1", "Recommendation 2"],
  "suggestedMedicines": ["Paracetamol"],
  "doctorConsultation": "recommended",
  "urgencyLevel": "if symptoms worsen"
}`

// Triage runs the symptom-analysis prompt and normalizes the model's answer.
// It never returns an error: any AI or parse failure degrades to a
// clarification response so the chat flow keeps working.
func (g *GeminiClient) Triage(ctx context.Context, symptoms, followUpAnswers string) Analysis {
	previous := ""
	if followUpAnswers != "" {
		previous = "PATIENT'S PREVIOUS ANSWERS: " + followUpAnswers
	}
	prompt := fmt.Sprintf(triagePromptTemplate, symptoms, previous)

	text, err := g.Generate(ctx, prompt)
	if err != nil {
		g.log.Error().Err(err).Msg("symptom analysis failed")
		return fallbackAnalysis()
	}

	var a Analysis
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &a); err != nil {
		g.log.Error().Err(err).Msg("could not parse analysis JSON")
		return fallbackAnalysis()
	}
	normalize(&a)
	return a
}

func normalize(a *Analysis) {
	if a.FollowUpQuestions == nil {
		a.FollowUpQuestions = []string{}
	}
	if a.Recommendations == nil {
		a.Recommendations = []string{}
	}
	if a.SuggestedMedicines == nil {
		a.SuggestedMedicines = []string{}
	}
	if a.IsValidHealthQuery && !a.NeedsClarification {
		if a.Severity == nil {
			a.Severity = strPtr("moderate")
		}
		if a.DoctorConsultation == nil {
			a.DoctorConsultation = strPtr("recommended")
		}
		if a.UrgencyLevel == nil {
			a.UrgencyLevel = strPtr("if symptoms worsen")
		}
	}
	if a.Analysis == "" {
		switch {
		case !a.IsValidHealthQuery:
			a.Analysis = "I can only help with health-related questions. Please describe your health symptoms or concerns."
		case a.NeedsClarification:
			a.Analysis = "I need more information to help you better. Please answer the questions below."
		default:
			a.Analysis = "Please provide more details about your symptoms for better analysis."
		}
	}
	// No medicines until the query is both valid and clear.
	if !a.IsValidHealthQuery || a.NeedsClarification {
		a.SuggestedMedicines = []string{}
		if !a.IsValidHealthQuery {
			a.Recommendations = []string{}
		}
	}
}

const translatePromptTemplate = `Translate the following medical text from English to %s.
Keep the translation natural, clear, and medically accurate.

IMPORTANT: Return ONLY valid JSON with translated text. Medicine names should remain in English.

English JSON:
%s

Translate these fields to %s:
- followUpQuestions (array of questions)
- analysis (medical explanation)
- recommendations (array of recommendations)

Keep these fields unchanged:
- severity
- suggestedMedicines (medicine names stay in English)
- doctorConsultation
- urgencyLevel

Return the complete JSON with translated fields in %s.`

// Translate renders the analysis text fields in the target language. English
// or an empty language is a no-op, and any translation failure returns the
// original untouched.
func (g *GeminiClient) Translate(ctx context.Context, a Analysis, language string) Analysis {
	if language == "" || language == "English" {
		return a
	}

	original, err := json.Marshal(a)
	if err != nil {
		return a
	}
	out, err := g.translateJSON(ctx, original, language)
	if err != nil {
		g.log.Warn().Err(err).Str("language", language).Msg("translation failed")
		return a
	}
	var translated Analysis
	if err := json.Unmarshal(out, &translated); err != nil {
		g.log.Warn().Err(err).Str("language", language).Msg("could not parse translated analysis")
		return a
	}
	normalize(&translated)
	return translated
}

// translateJSON sends a marshaled payload through the translation prompt and
// returns the extracted JSON reply.
func (g *GeminiClient) translateJSON(ctx context.Context, original []byte, language string) ([]byte, error) {
	prompt := fmt.Sprintf(translatePromptTemplate, language, original, language, language)
	text, err := g.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return []byte(ExtractJSON(text)), nil
}

func strPtr(s string) *string { return &s }

func fallbackAnalysis() Analysis {
	return Analysis{
		IsValidHealthQuery: true,
		NeedsClarification: true,
		Analysis:           "I apologize, but I am unable to process your request at this time. Please describe your health concerns again, or consult a qualified healthcare professional.",
		FollowUpQuestions: []string{
			"Could you describe your symptoms again?",
			"What health concerns are you experiencing?",
		},
		Recommendations: []string{
			"If experiencing severe symptoms, consult a doctor immediately",
			"Do not self-medicate without professional advice",
		},
		SuggestedMedicines: []string{},
	}
}
