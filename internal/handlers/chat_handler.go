package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healbridge/telehealth-api/internal/models"
)

type analyzeRequest struct {
	Symptoms        string `json:"symptoms"`
	FollowUpAnswers string `json:"followUpAnswers"`
	Language        string `json:"language"`
}

// AnalyzeSymptoms runs AI triage over the patient's symptom description and
// resolves suggested medicine names against the catalog.
func (h *Handler) AnalyzeSymptoms(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Symptoms == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symptoms are required"})
		return
	}

	ctx := c.Request.Context()
	analysis := h.AI.Triage(ctx, req.Symptoms, req.FollowUpAnswers)
	analysis = h.AI.Translate(ctx, analysis, req.Language)

	// Resolve medicine names against the catalog only once the query is
	// valid and clear; de-duplicate on catalog id.
	suggested := []models.Medicine{}
	if analysis.IsValidHealthQuery && !analysis.NeedsClarification {
		seen := map[int]bool{}
		for _, name := range analysis.SuggestedMedicines {
			found := h.Catalog.Search(name, 3)
			if len(found) == 0 {
				clean := strings.NewReplacer("(", "", ")", "").Replace(name)
				found = h.Catalog.Search(strings.TrimSpace(clean), 3)
			}
			if len(found) > 0 && !seen[found[0].ID] {
				seen[found[0].ID] = true
				suggested = append(suggested, found[0])
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"isValidHealthQuery": analysis.IsValidHealthQuery,
		"needsClarification": analysis.NeedsClarification,
		"analysis":           analysis.Analysis,
		"severity":           analysis.Severity,
		"followUpQuestions":  analysis.FollowUpQuestions,
		"recommendations":    analysis.Recommendations,
		"suggestedMedicines": suggested,
		"doctorConsultation": analysis.DoctorConsultation,
		"urgencyLevel":       analysis.UrgencyLevel,
	})
}
