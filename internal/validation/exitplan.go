package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/request"
)

var oneHundred = decimal.NewFromInt(100)

// ValidateCreateExitPlan checks an exit plan create request. The referenced
// holding's existence is not checked here; that is delegated to the storage
// layer's referential constraint.
func ValidateCreateExitPlan(req request.CreateExitPlanRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.HoldingID) == "" {
		errors["holdingId"] = "holding ID is required"
	} else if err := ValidateUUID(req.HoldingID); err != nil {
		errors["holdingId"] = "holding ID must be a valid UUID"
	}

	if req.TargetPrice == nil {
		errors["targetPrice"] = "target price is required"
	}

	validateSellPercentage(req.SellPercentage, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateExitPlan checks an exit plan update request.
func ValidateUpdateExitPlan(req request.UpdateExitPlanRequest) error {
	errors := make(map[string]string)

	if req.TargetPrice == nil {
		errors["targetPrice"] = "target price is required"
	}

	validateSellPercentage(req.SellPercentage, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// validateSellPercentage enforces the (0, 100] range: a plan must sell
// something, and can never sell more than the whole position.
func validateSellPercentage(pct *decimal.Decimal, errors map[string]string) {
	if pct == nil {
		errors["sellPercentage"] = "sell percentage is required"
		return
	}
	if pct.Sign() <= 0 || pct.GreaterThan(oneHundred) {
		errors["sellPercentage"] = "sell percentage must be greater than 0 and at most 100"
	}
}
