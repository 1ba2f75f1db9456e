package validation

import (
	"strings"

	"github.com/navassist/nav-reconciler/internal/api/request"
)

// ValidateReconcile checks the per-check payload. The optional fields may be
// absent, but when present they must be usable numbers.
func ValidateReconcile(req request.ReconcileRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.FundName) == "" {
		errors["fund_name"] = "fund_name is required"
	}
	if req.NavOnPage == nil {
		errors["nav_on_page"] = "nav_on_page is required"
	} else if *req.NavOnPage <= 0 {
		errors["nav_on_page"] = "nav_on_page must be positive"
	}
	if req.TotalUnits == nil {
		errors["total_units"] = "total_units is required"
	} else if *req.TotalUnits <= 0 {
		errors["total_units"] = "total_units must be positive"
	}
	if req.SellableQuantity != nil && *req.SellableQuantity < 0 {
		errors["sellable_quantity"] = "sellable_quantity cannot be negative"
	}
	if req.ExpertPrice != nil && *req.ExpertPrice <= 0 {
		errors["expert_price"] = "expert_price must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
