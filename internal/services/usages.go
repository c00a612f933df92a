package services

import (
	"context"
	"encoding/json"
	"fmt"
)

// Usages is the structured information sheet for one medicine.
type Usages struct {
	MedicalUses         []string `json:"medicalUses"`
	HowItWorks          string   `json:"howItWorks"`
	DosageGuidelines    string   `json:"dosageGuidelines"`
	CommonSideEffects   []string `json:"commonSideEffects"`
	SeriousSideEffects  []string `json:"seriousSideEffects"`
	Precautions         []string `json:"precautions"`
	DrugInteractions    []string `json:"drugInteractions"`
	StorageInstructions string   `json:"storageInstructions"`
	Disclaimer          string   `json:"disclaimer"`
}

const usagesDisclaimer = "Always consult a healthcare professional before taking any medication."

const usagesPromptTemplate = `You are a medical information assistant. Provide detailed, accurate medical information about the following medicine.

MEDICINE DETAILS:
%s

Please provide the following information in a structured JSON format:

1. **Medical Uses**: List all medical conditions and diseases this medicine is used to treat
2. **How It Works**: Explain the mechanism of action in simple terms
3. **Dosage Guidelines**: General dosage information (note that actual dosage should be determined by a doctor)
4. **Side Effects**: Common and serious side effects to watch for
5. **Precautions**: Important warnings and who should avoid this medicine
6. **Drug Interactions**: Medicines or substances that may interact with this drug
7. **Storage Instructions**: How to properly store the medicine

IMPORTANT:
- Provide accurate, medically-sound information
- Use simple language that patients can understand
- Always remind users to consult a healthcare professional%s

Respond ONLY with valid JSON in this format:
{
    "medicalUses": ["Use 1", "Use 2", "Use 3"],
    "howItWorks": "Explanation of mechanism of action",
    "dosageGuidelines": "General dosage information",
    "commonSideEffects": ["Side effect 1", "Side effect 2"],
    "seriousSideEffects": ["Serious effect 1", "Serious effect 2"],
    "precautions": ["Precaution 1", "Precaution 2"],
    "drugInteractions": ["Interaction 1", "Interaction 2"],
    "storageInstructions": "Storage information",
    "disclaimer": "Always consult a healthcare professional before taking any medication."
}`

// MedicineUsages builds the information sheet for a catalog medicine. An AI
// transport failure is returned; an unparseable reply degrades to a safe
// consult-your-doctor sheet.
func (g *GeminiClient) MedicineUsages(ctx context.Context, name, genericName, composition, disease string) (Usages, error) {
	details := fmt.Sprintf("- Name: %s\n- Generic Name: %s\n- Composition: %s\n- Disease/Condition: %s",
		name, orDefault(genericName, "N/A"), orDefault(composition, "N/A"), orDefault(disease, "N/A"))
	return g.generateUsages(ctx, details, "",
		fallbackUsages([]string{orDefault(disease, "General medical use")}))
}

// MedicineUsagesByName is the free-text variant for medicines not in the
// catalog, for example from a handwritten prescription.
func (g *GeminiClient) MedicineUsagesByName(ctx context.Context, name, genericName, dosage string) (Usages, error) {
	details := fmt.Sprintf("- Name: %s\n- Generic Name: %s\n- Dosage: %s",
		name, orDefault(genericName, "Not specified"), orDefault(dosage, "Not specified"))
	note := "\n- If the medicine name seems misspelled, try to identify the correct medicine"
	return g.generateUsages(ctx, details, note,
		fallbackUsages([]string{"General medical use - please consult a healthcare professional"}))
}

// TranslateUsages renders the sheet's text in the target language, failing
// soft to the English original.
func (g *GeminiClient) TranslateUsages(ctx context.Context, u Usages, language string) Usages {
	if language == "" || language == "English" {
		return u
	}
	original, err := json.Marshal(u)
	if err != nil {
		return u
	}
	out, err := g.translateJSON(ctx, original, language)
	if err != nil {
		g.log.Warn().Err(err).Str("language", language).Msg("usages translation failed")
		return u
	}
	var translated Usages
	if err := json.Unmarshal(out, &translated); err != nil {
		g.log.Warn().Err(err).Str("language", language).Msg("could not parse translated usages")
		return u
	}
	return translated
}

func (g *GeminiClient) generateUsages(ctx context.Context, details, note string, fallback Usages) (Usages, error) {
	prompt := fmt.Sprintf(usagesPromptTemplate, details, note)
	text, err := g.Generate(ctx, prompt)
	if err != nil {
		return Usages{}, err
	}
	return parseUsages(text, fallback), nil
}

func parseUsages(text string, fallback Usages) Usages {
	var u Usages
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &u); err != nil {
		return fallback
	}
	if u.Disclaimer == "" {
		u.Disclaimer = usagesDisclaimer
	}
	return u
}

func fallbackUsages(uses []string) Usages {
	return Usages{
		MedicalUses:         uses,
		HowItWorks:          "Please consult a healthcare professional for detailed information.",
		DosageGuidelines:    "Follow your doctor's prescription.",
		CommonSideEffects:   []string{"Consult your doctor for side effects information"},
		SeriousSideEffects:  []string{"Seek immediate medical attention if you experience severe reactions"},
		Precautions:         []string{"Always consult your doctor before taking any medication"},
		DrugInteractions:    []string{"Inform your doctor about all medications you are taking"},
		StorageInstructions: "Store as directed on the package",
		Disclaimer:          usagesDisclaimer,
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
