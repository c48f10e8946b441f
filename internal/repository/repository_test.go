package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/repository"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/secret"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/testutil"
)

func newBox(t *testing.T) *secret.Box {
	t.Helper()
	key, err := secret.GenerateKey()
	require.NoError(t, err)
	box, err := secret.NewBox(key)
	require.NoError(t, err)
	return box
}

func TestProjectRepository_UpdateProjectState(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewProjectRepository(db)
	project := testutil.NewProject().Build(t, db)

	t.Run("increments version", func(t *testing.T) {
		p, err := repo.GetProject(ctx, project.ID)
		require.NoError(t, err)

		p.TotalRevenue = testutil.Dec("12.34")
		require.NoError(t, repo.UpdateProjectState(ctx, &p))
		assert.Equal(t, int64(1), p.Version)

		stored, err := repo.GetProject(ctx, project.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), stored.Version)
		testutil.AssertDecimal(t, "12.34", stored.TotalRevenue)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		stale := project // still at version 0
		stale.TotalRevenue = testutil.Dec("99")

		err := repo.UpdateProjectState(ctx, &stale)
		assert.ErrorIs(t, err, apperrors.ErrConcurrentModification)

		stored, err := repo.GetProject(ctx, project.ID)
		require.NoError(t, err)
		testutil.AssertDecimal(t, "12.34", stored.TotalRevenue)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := repo.GetProject(ctx, testutil.MakeID())
		assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
	})
}

func TestInvestmentRepository_PaymentReferenceEncryption(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	project := testutil.NewProject().Build(t, db)
	repo := repository.NewInvestmentRepository(db, newBox(t))

	inv := testutil.NewInvestment(project.ID).WithPaymentReference("pi_3NkX9a").Build(t, db)
	sealed := model.Investment{
		ID:               testutil.MakeID(),
		ProjectID:        project.ID,
		InvestorID:       testutil.MakeID(),
		Amount:           testutil.Dec("10"),
		Status:           model.InvestmentStatusPending,
		PaymentReference: "pi_secret",
		InvestedAt:       time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
	require.NoError(t, repo.InsertInvestment(ctx, &sealed))

	t.Run("stored value is not plaintext", func(t *testing.T) {
		var raw string
		require.NoError(t, db.QueryRow(`SELECT payment_reference FROM investment WHERE id = ?`, sealed.ID).Scan(&raw))
		assert.NotEqual(t, "pi_secret", raw)
		assert.NotEmpty(t, raw)
	})

	t.Run("reads back decrypted", func(t *testing.T) {
		got, err := repo.GetInvestment(ctx, sealed.ID)
		require.NoError(t, err)
		assert.Equal(t, "pi_secret", got.PaymentReference)
	})

	t.Run("plaintext repository reads plaintext rows", func(t *testing.T) {
		got, err := repository.NewInvestmentRepository(db, nil).GetInvestment(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "pi_3NkX9a", got.PaymentReference)
	})
}

func TestInvestmentRepository_UpdateInvestmentStatus(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewInvestmentRepository(db, nil)
	project := testutil.NewProject().Build(t, db)
	inv := testutil.NewInvestment(project.ID).Build(t, db)

	_, err := repo.UpdateInvestmentStatus(ctx, inv.ID, model.InvestmentStatusPending, model.InvestmentStatusCompleted)
	require.NoError(t, err)

	_, err = repo.UpdateInvestmentStatus(ctx, inv.ID, model.InvestmentStatusPending, model.InvestmentStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)

	completed, err := repo.GetCompletedInvestments(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, inv.ID, completed[0].ID)
}

func TestDividendRepository_Payments(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewDividendRepository(db, newBox(t))
	project, invs := testutil.FundedProject(t, db, "0", "100")

	older := testutil.NewDividendPayment(project.ID, invs[0].ID).CalculatedAt(time.Now().UTC().Add(-time.Hour)).Build(t, db)
	newer := testutil.NewDividendPayment(project.ID, invs[0].ID).Build(t, db)

	t.Run("lists newest first", func(t *testing.T) {
		payments, err := repo.GetPaymentsByInvestment(ctx, invs[0].ID)
		require.NoError(t, err)
		require.Len(t, payments, 2)
		assert.Equal(t, newer.ID, payments[0].ID)
		assert.Equal(t, older.ID, payments[1].ID)
	})

	t.Run("update seals reference and keeps amount", func(t *testing.T) {
		p, err := repo.GetPayment(ctx, older.ID)
		require.NoError(t, err)

		paidAt := time.Now().UTC()
		p.Status = model.DividendStatusPaid
		p.PaidAt = &paidAt
		p.PaymentReference = "po_123"
		require.NoError(t, repo.UpdatePayment(ctx, &p))

		got, err := repo.GetPayment(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, "po_123", got.PaymentReference)
		assert.Equal(t, model.DividendStatusPaid, got.Status)
		require.NotNil(t, got.PaidAt)
		assert.WithinDuration(t, paidAt, *got.PaidAt, time.Microsecond)
		testutil.AssertDecimal(t, "10", got.Amount)
	})

	t.Run("missing payment", func(t *testing.T) {
		_, err := repo.GetPayment(ctx, testutil.MakeID())
		assert.ErrorIs(t, err, apperrors.ErrDividendPaymentNotFound)
	})
}
