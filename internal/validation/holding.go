package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/api/request"
)

// ValidateCreateHolding checks a holding create request. Prices are not
// checked for positivity; the domain deliberately allows recording any price.
// The amount may not be negative.
func ValidateCreateHolding(req request.CreateHoldingRequest) error {
	errors := validateHoldingFields(
		req.TokenName,
		req.TokenSymbol,
		req.PurchasePrice,
		req.CurrentPrice,
		req.Amount,
	)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateHolding checks a holding update request. Updates are
// full-field replaces, so the same rules apply as on create.
func ValidateUpdateHolding(req request.UpdateHoldingRequest) error {
	errors := validateHoldingFields(
		req.TokenName,
		req.TokenSymbol,
		req.PurchasePrice,
		req.CurrentPrice,
		req.Amount,
	)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateHoldingFields(tokenName, tokenSymbol string, purchasePrice, currentPrice, amount *decimal.Decimal) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(tokenName) == "" {
		errors["tokenName"] = "token name is required"
	} else if len(tokenName) > 100 {
		errors["tokenName"] = "token name must be 100 characters or less"
	}

	if strings.TrimSpace(tokenSymbol) == "" {
		errors["tokenSymbol"] = "token symbol is required"
	} else if len(tokenSymbol) > 20 {
		errors["tokenSymbol"] = "token symbol must be 20 characters or less"
	}

	if purchasePrice == nil {
		errors["purchasePrice"] = "purchase price is required"
	}

	if currentPrice == nil {
		errors["currentPrice"] = "current price is required"
	}

	if amount == nil {
		errors["amount"] = "amount is required"
	} else if amount.Sign() < 0 {
		errors["amount"] = "amount cannot be negative"
	}

	return errors
}
