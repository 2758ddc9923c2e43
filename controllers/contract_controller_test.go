package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContractValidatesDateOrder(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-001", "AB-123-CD")

	w := doRequest(t, r, http.MethodPost, "/api/contracts", gin.H{
		"moto_id":    motoID,
		"start_date": "2026-06-01",
		"end_date":   "2026-01-01",
		"start_km":   0,
		"end_km":     10000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateContractValidatesKmOrder(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-001", "AB-123-CD")

	w := doRequest(t, r, http.MethodPost, "/api/contracts", gin.H{
		"moto_id":    motoID,
		"start_date": "2026-01-01",
		"end_date":   "2026-06-01",
		"start_km":   20000,
		"end_km":     10000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateContractUnknownMoto(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/contracts", gin.H{
		"moto_id":    99,
		"start_date": "2026-01-01",
		"end_date":   "2026-06-01",
		"start_km":   0,
		"end_km":     10000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestContractServicesLinkage(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-001", "AB-123-CD")
	vidange := created(t, r, "/api/services", gin.H{"name": "Vidange"})
	freins := created(t, r, "/api/services", gin.H{"name": "Freins"})

	contractID := created(t, r, "/api/contracts", gin.H{
		"moto_id":     motoID,
		"start_date":  "2026-01-01",
		"end_date":    "2026-06-01",
		"start_km":    0,
		"end_km":      10000,
		"service_ids": []uint{vidange, freins},
	})

	get := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/contracts/%d", contractID), nil)
	require.Equal(t, http.StatusOK, get.Code)
	body := decodeMap(t, get)
	services, ok := body["services"].([]interface{})
	require.True(t, ok)
	assert.Len(t, services, 2)
	assert.Equal(t, true, body["is_active"])
	assert.Equal(t, "2026-01-01", body["start_date"], "dates travel as plain ISO dates")

	// Replacing the linked services drops the old join rows
	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/contracts/%d", contractID), gin.H{
		"service_ids": []uint{vidange},
	})
	require.Equal(t, http.StatusOK, w.Code)
	services, ok = decodeMap(t, w)["services"].([]interface{})
	require.True(t, ok)
	assert.Len(t, services, 1)
}

func TestCreateContractUnknownService(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-001", "AB-123-CD")

	w := doRequest(t, r, http.MethodPost, "/api/contracts", gin.H{
		"moto_id":     motoID,
		"start_date":  "2026-01-01",
		"end_date":    "2026-06-01",
		"start_km":    0,
		"end_km":      10000,
		"service_ids": []uint{77},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateContractKeepsInvariant(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-001", "AB-123-CD")
	contractID := created(t, r, "/api/contracts", gin.H{
		"moto_id":    motoID,
		"start_date": "2026-01-01",
		"end_date":   "2026-06-01",
		"start_km":   0,
		"end_km":     10000,
	})

	// Pushing end_km below the stored start_km must fail even though
	// start_km is absent from the payload.
	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/contracts/%d", contractID), gin.H{
		"start_km": 5000,
		"end_km":   4000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/contracts/%d", contractID), gin.H{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeMap(t, w)["is_active"])
}

func TestDeleteServiceLinkedToContractRejected(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-001", "AB-123-CD")
	vidange := created(t, r, "/api/services", gin.H{"name": "Vidange"})
	created(t, r, "/api/contracts", gin.H{
		"moto_id":     motoID,
		"start_date":  "2026-01-01",
		"end_date":    "2026-06-01",
		"start_km":    0,
		"end_km":      10000,
		"service_ids": []uint{vidange},
	})

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/services/%d", vidange), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
