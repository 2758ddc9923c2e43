package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"savrepa-api/config"
	"savrepa-api/database"
	"savrepa-api/routes"
)

// setupRouter builds the full route table over a fresh in-memory database.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		LoginRatePerMinute: 600,
		LoginRateBurst:     100,
	}

	r := gin.New()
	routes.SetupRoutes(r, db, cfg, nil)
	return r, db
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var l []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &l))
	return l
}

// created posts the body and returns the new row's id.
func created(t *testing.T, r *gin.Engine, path string, body interface{}) uint {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, "POST %s: %s", path, w.Body.String())
	id, ok := decodeMap(t, w)["id"].(float64)
	require.True(t, ok, "response has no numeric id")
	return uint(id)
}

func createUser(t *testing.T, r *gin.Engine, username string) uint {
	t.Helper()
	return created(t, r, "/api/users", gin.H{
		"username":   username,
		"motDePasse": "s3cret!",
		"prenom":     "Test",
		"nom":        "User",
	})
}

func createMotoModel(t *testing.T, r *gin.Engine, name string) uint {
	t.Helper()
	return created(t, r, "/api/moto_models", gin.H{"name": name})
}

func createMoto(t *testing.T, r *gin.Engine, modelID uint, chassis, registration string) uint {
	t.Helper()
	return created(t, r, "/api/motos", gin.H{
		"model_id":            modelID,
		"chassis_number":      chassis,
		"registration_number": registration,
		"client_name":         "Jean Client",
		"client_phone":        "0600000000",
	})
}
