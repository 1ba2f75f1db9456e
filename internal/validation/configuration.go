package validation

import (
	"strings"

	"github.com/navassist/nav-reconciler/internal/api/request"
)

// ValidateSaveConfiguration checks the configuration upsert payload.
func ValidateSaveConfiguration(req request.SaveConfigurationRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.FundName) == "" {
		errors["fund_name"] = "fund_name is required"
	}
	if req.Tolerance != nil && *req.Tolerance < 0 {
		errors["tolerance"] = "tolerance cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateSaveTemplate checks the template upsert payload.
func ValidateSaveTemplate(req request.SaveTemplateRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 255 {
		errors["name"] = "name must be 255 characters or less"
	}
	if req.Tolerance < 0 {
		errors["tolerance"] = "tolerance cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
