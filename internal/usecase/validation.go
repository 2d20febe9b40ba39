package usecase

import (
	"net/mail"
	"strings"
)

func ValidateResolveCampaignInput(input ResolveCampaignInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.URL) == "" {
		errors = append(errors, ValidationError{"url", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(strings.TrimSpace(input.Email)); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	return errors
}
