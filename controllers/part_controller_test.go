package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePartDefaultsStockToZero(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/parts", gin.H{"name": "Filtre a huile"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 0, decodeMap(t, w)["stock_quantity"])
}

func TestCreatePartRejectsNegativeStock(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/parts", gin.H{
		"name":           "Filtre a huile",
		"stock_quantity": -3,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePartRejectsNegativeStock(t *testing.T) {
	r, _ := setupRouter(t)
	created(t, r, "/api/parts", gin.H{"name": "Filtre a huile", "stock_quantity": 5})

	w := doRequest(t, r, http.MethodPut, "/api/parts/1", gin.H{"stock_quantity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The stored value is untouched
	get := doRequest(t, r, http.MethodGet, "/api/parts/1", nil)
	assert.EqualValues(t, 5, decodeMap(t, get)["stock_quantity"])
}

func TestCreatePartDuplicateName(t *testing.T) {
	r, _ := setupRouter(t)
	created(t, r, "/api/parts", gin.H{"name": "Filtre a huile"})

	w := doRequest(t, r, http.MethodPost, "/api/parts", gin.H{"name": "Filtre a huile"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePartPartial(t *testing.T) {
	r, _ := setupRouter(t)
	created(t, r, "/api/parts", gin.H{
		"name":           "Filtre a huile",
		"description":    "Filtre standard",
		"stock_quantity": 12,
	})

	w := doRequest(t, r, http.MethodPut, "/api/parts/1", gin.H{"stock_quantity": 11})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeMap(t, w)
	assert.EqualValues(t, 11, body["stock_quantity"])
	assert.Equal(t, "Filtre a huile", body["name"])
	assert.Equal(t, "Filtre standard", body["description"])
}

func TestCreateMaintenanceThresholdUnknownModel(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/maintenance_thresholds", gin.H{
		"model_id":     99,
		"km_threshold": 5000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMaintenanceThresholdLifecycle(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")

	id := created(t, r, "/api/maintenance_thresholds", gin.H{
		"model_id":     modelID,
		"km_threshold": 5000,
		"description":  "Vidange",
	})

	w := doRequest(t, r, http.MethodPut, "/api/maintenance_thresholds/1", gin.H{"km_threshold": 6000})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeMap(t, w)
	assert.EqualValues(t, 6000, body["km_threshold"])
	assert.Equal(t, "Vidange", body["description"])
	assert.EqualValues(t, id, body["id"])

	// A model with thresholds cannot be removed
	del := doRequest(t, r, http.MethodDelete, "/api/moto_models/1", nil)
	assert.Equal(t, http.StatusBadRequest, del.Code)
}
