package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/testutil"
)

func TestSystemHandler(t *testing.T) {
	setupHandler := func(t *testing.T) (*SystemHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewSystemHandler(testutil.NewTestSystemService(t, db)), db
	}

	t.Run("reports healthy database", func(t *testing.T) {
		handler, _ := setupHandler(t)

		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := testutil.DecodeJSON[HealthResponse](t, w)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "connected", resp.Database)
	})

	t.Run("returns 503 when database is closed", func(t *testing.T) {
		handler, db := setupHandler(t)
		db.Close()

		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("reports migrated schema version", func(t *testing.T) {
		handler, _ := setupHandler(t)

		w := httptest.NewRecorder()
		handler.Version(w, httptest.NewRequest(http.MethodGet, "/api/system/version", nil))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		info := testutil.DecodeJSON[model.VersionInfo](t, w)
		assert.Equal(t, "1", info.DbVersion)
		assert.False(t, info.MigrationNeeded)
		assert.NotEmpty(t, info.AppVersion)
	})
}
