package dto

import (
	"strings"

	"github.com/samber/lo"

	"habla-jungla/internal/api/errors"
)

// CreateUtteranceRequest asks for an utterance without any audio
type CreateUtteranceRequest struct {
	Species string `json:"species" form:"species" binding:"required,max=64" example:"lion"`
}

// Normalize lower-cases and trims the species
func (r *CreateUtteranceRequest) Normalize() {
	r.Species = strings.ToLower(strings.TrimSpace(r.Species))
}

// ValidateAgainst checks the species is a known label or "unknown"
func (r *CreateUtteranceRequest) ValidateAgainst(labels []string) error {
	if r.Species == "unknown" || lo.Contains(labels, r.Species) {
		return nil
	}
	return errors.NewValidationError("Invalid utterance request", map[string]string{
		"species": "must be one of " + strings.Join(append(append([]string(nil), labels...), "unknown"), ", "),
	})
}

// UtteranceResponse is a generated utterance
type UtteranceResponse struct {
	Species   string `json:"species" example:"lion"`
	Prompt    string `json:"prompt" example:"A majestic lion proclaims: "`
	Utterance string `json:"utterance" example:"A majestic lion proclaims: bow before me"`
}
