package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/config"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/secret"
)

func TestNew(t *testing.T) {
	key, err := secret.GenerateKey()
	require.NoError(t, err)

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "nested", "app.db")},
		Security: config.SecurityConfig{PaymentReferenceKey: key},
	}

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.NoError(t, a.SystemService.CheckHealth())

	info, err := a.SystemService.CheckVersion(context.Background())
	require.NoError(t, err)
	assert.True(t, info.Features["payment_reference_encryption"])
	assert.False(t, info.MigrationNeeded)
}

func TestNew_RejectsBadKey(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "app.db")},
		Security: config.SecurityConfig{PaymentReferenceKey: "not-a-key"},
	}

	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}
