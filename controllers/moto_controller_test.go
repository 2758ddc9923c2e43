package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"savrepa-api/models"
)

func TestCreateMotoAndGetBack(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")

	w := doRequest(t, r, http.MethodPost, "/api/motos", gin.H{
		"model_id":            modelID,
		"chassis_number":      "CH-001",
		"registration_number": "AB-123-CD",
		"client_name":         "Jean Client",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	createdBody := decodeMap(t, w)

	get := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/motos/%v", createdBody["id"]), nil)
	require.Equal(t, http.StatusOK, get.Code)
	assert.JSONEq(t, w.Body.String(), get.Body.String())
}

func TestCreateMotoUnknownModel(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/motos", gin.H{
		"model_id":            42,
		"chassis_number":      "CH-001",
		"registration_number": "AB-123-CD",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMotoDuplicateChassis(t *testing.T) {
	r, db := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	createMoto(t, r, modelID, "CH-001", "AB-123-CD")

	w := doRequest(t, r, http.MethodPost, "/api/motos", gin.H{
		"model_id":            modelID,
		"chassis_number":      "CH-001",
		"registration_number": "EF-456-GH",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Moto{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateMotoDuplicateRegistration(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	createMoto(t, r, modelID, "CH-001", "AB-123-CD")

	w := doRequest(t, r, http.MethodPost, "/api/motos", gin.H{
		"model_id":            modelID,
		"chassis_number":      "CH-002",
		"registration_number": "AB-123-CD",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMotoPartial(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	id := createMoto(t, r, modelID, "CH-001", "AB-123-CD")

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/motos/%d", id), gin.H{
		"client_phone": "0699999999",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeMap(t, w)
	assert.Equal(t, "0699999999", body["client_phone"])
	assert.Equal(t, "CH-001", body["chassis_number"])
	assert.Equal(t, "AB-123-CD", body["registration_number"])
}

func TestGetMotoNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/motos/7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, r, http.MethodGet, "/api/motos/not-a-number", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteMotoModelWithMotosRejected(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	createMoto(t, r, modelID, "CH-001", "AB-123-CD")

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/moto_models/%d", modelID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Still present
	get := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/moto_models/%d", modelID), nil)
	assert.Equal(t, http.StatusOK, get.Code)
}

func TestListMotosEmpty(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/motos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeList(t, w))
}
