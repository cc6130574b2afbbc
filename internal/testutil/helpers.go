package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/repository"
	"github.com/cryptofolio/Crypto-Exit-Tracker-Backend/internal/service"
)

func NewTestHoldingService(t *testing.T, db *sql.DB) *service.HoldingService {
	t.Helper()

	holdingRepo := repository.NewHoldingRepository(db)

	return service.NewHoldingService(holdingRepo)
}

func NewTestExitPlanService(t *testing.T, db *sql.DB) *service.ExitPlanService {
	t.Helper()

	exitPlanRepo := repository.NewExitPlanRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)

	return service.NewExitPlanService(exitPlanRepo, holdingRepo)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeTokenSymbol generates a token ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeTokenSymbol("BTC")
//	// Returns: "BTC1A2B"
func MakeTokenSymbol(base string) string {
	if base == "" {
		base = "TOK"
	}
	return base + randomAlphanumeric(4)
}

// MakeTokenName generates a unique token name for testing.
//
// Example usage:
//
//	name := testutil.MakeTokenName("Bitcoin")
//	// Returns: "Bitcoin ABC123"
func MakeTokenName(base string) string {
	if base == "" {
		base = "Token"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
