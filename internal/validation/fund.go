package validation

import (
	"strings"

	"github.com/navassist/nav-reconciler/internal/api/request"
)

// ValidateCreateFund checks the payload for registering a fund.
func ValidateCreateFund(req request.CreateFundRequest) error {
	errors := make(map[string]string)

	// Required fields
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 255 {
		errors["name"] = "name must be 255 characters or less"
	}

	if strings.TrimSpace(req.APISymbol) == "" {
		errors["api_symbol"] = "api_symbol is required"
	} else if len(req.APISymbol) > 255 {
		errors["api_symbol"] = "api_symbol must be 255 characters or less"
	}

	// Optional
	if len(req.Type) > 64 {
		errors["type"] = "type must be 64 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateFund checks the payload for updating fund metadata.
func ValidateUpdateFund(req request.UpdateFundRequest) error {
	errors := make(map[string]string)

	if req.APISymbol != nil && strings.TrimSpace(*req.APISymbol) == "" {
		errors["api_symbol"] = "api_symbol cannot be blank"
	}
	if req.Type != nil && len(*req.Type) > 64 {
		errors["type"] = "type must be 64 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
