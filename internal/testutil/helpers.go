package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/repository"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/service"
)

// Services bundles services that share one lock table, as they do in the server.
type Services struct {
	Project    *service.ProjectService
	Investment *service.InvestmentService
	Dividend   *service.DividendService
}

// NewTestServices wires every domain service against db with a no-op logger.
func NewTestServices(t *testing.T, db *sql.DB) Services {
	t.Helper()

	locks := service.NewProjectLocks()
	logger := zap.NewNop()
	projectRepo := repository.NewProjectRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db, nil)
	dividendRepo := repository.NewDividendRepository(db, nil)

	return Services{
		Project:    service.NewProjectService(db, locks, projectRepo, logger),
		Investment: service.NewInvestmentService(db, locks, projectRepo, investmentRepo, logger),
		Dividend:   service.NewDividendService(db, locks, projectRepo, investmentRepo, dividendRepo, logger),
	}
}

func NewTestProjectService(t *testing.T, db *sql.DB) *service.ProjectService {
	t.Helper()
	return NewTestServices(t, db).Project
}

func NewTestInvestmentService(t *testing.T, db *sql.DB) *service.InvestmentService {
	t.Helper()
	return NewTestServices(t, db).Investment
}

func NewTestDividendService(t *testing.T, db *sql.DB) *service.DividendService {
	t.Helper()
	return NewTestServices(t, db).Dividend
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db, map[string]bool{"scheduler": false})
}

// MakeID generates a UUID string for use in tests.
func MakeID() string {
	return uuid.New().String()
}

// MakeTitle generates a unique project title for testing.
//
//	title := testutil.MakeTitle("Solar Farm")
//	// Returns: "Solar Farm ABC123"
func MakeTitle(base string) string {
	if base == "" {
		base = "Project"
	}
	return base + " " + randomAlphanumeric(6)
}

// Dec parses a decimal literal and panics on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DecPtr is Dec returning a pointer, for optional amounts.
func DecPtr(s string) *decimal.Decimal {
	d := Dec(s)
	return &d
}

// AssertDecimal asserts that actual equals the decimal literal expected, ignoring scale.
func AssertDecimal(t *testing.T, expected string, actual decimal.Decimal) bool {
	t.Helper()
	want := Dec(expected)
	return assert.Truef(t, want.Equal(actual), "expected %s, got %s", want.String(), actual.String())
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
