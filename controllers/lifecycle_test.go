package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorkshopLifecycle walks the full chain: model, moto, contract,
// intake checklist, repair — and checks every link survives a read back.
func TestWorkshopLifecycle(t *testing.T) {
	r, _ := setupRouter(t)

	mecanicienID := createUser(t, r, "mecano1")
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-CB500-001", "AB-123-CD")

	contractID := created(t, r, "/api/contracts", gin.H{
		"moto_id":    motoID,
		"start_date": "2026-01-01",
		"end_date":   "2026-12-31",
		"start_km":   0,
		"end_km":     10000,
	})

	checklistID := created(t, r, "/api/checklists", gin.H{
		"checklist_number": "CHK-0001",
		"moto_id":          motoID,
		"contract_id":      contractID,
		"mecanicien_id":    mecanicienID,
		"repair_type":      "revision",
		"mileage":          2500,
	})

	repairID := created(t, r, "/api/repairs", gin.H{
		"repair_number": "REP-0001",
		"checklist_id":  checklistID,
		"mecanicien_id": mecanicienID,
		"date":          "2026-03-15",
		"mileage":       2600,
	})

	// Every link must survive a read back
	moto := decodeMap(t, doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/motos/%d", motoID), nil))
	assert.EqualValues(t, modelID, moto["model_id"])

	contract := decodeMap(t, doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/contracts/%d", contractID), nil))
	assert.EqualValues(t, motoID, contract["moto_id"])

	checklist := decodeMap(t, doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/checklists/%d", checklistID), nil))
	assert.EqualValues(t, motoID, checklist["moto_id"])
	assert.EqualValues(t, contractID, checklist["contract_id"])
	assert.EqualValues(t, mecanicienID, checklist["mecanicien_id"])
	assert.Equal(t, false, checklist["is_validated"])

	repair := decodeMap(t, doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/repairs/%d", repairID), nil))
	assert.EqualValues(t, checklistID, repair["checklist_id"])
	assert.EqualValues(t, mecanicienID, repair["mecanicien_id"])
	assert.Equal(t, "2026-03-15", repair["date"])
}

func TestChecklistDuplicateNumber(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-001", "AB-123-CD")

	body := gin.H{
		"checklist_number": "CHK-0001",
		"moto_id":          motoID,
		"mileage":          100,
	}
	w := doRequest(t, r, http.MethodPost, "/api/checklists", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/checklists", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChecklistUnknownReferences(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-001", "AB-123-CD")

	w := doRequest(t, r, http.MethodPost, "/api/checklists", gin.H{
		"checklist_number": "CHK-0001",
		"moto_id":          99,
		"mileage":          100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown moto")

	w = doRequest(t, r, http.MethodPost, "/api/checklists", gin.H{
		"checklist_number": "CHK-0002",
		"moto_id":          motoID,
		"contract_id":      99,
		"mileage":          100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown contract")

	w = doRequest(t, r, http.MethodPost, "/api/checklists", gin.H{
		"checklist_number": "CHK-0003",
		"moto_id":          motoID,
		"mecanicien_id":    99,
		"mileage":          100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown mechanic")
}

// A checklist against an inactive contract is deliberately accepted.
func TestChecklistAcceptsInactiveContract(t *testing.T) {
	r, _ := setupRouter(t)
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-001", "AB-123-CD")
	contractID := created(t, r, "/api/contracts", gin.H{
		"moto_id":    motoID,
		"start_date": "2025-01-01",
		"end_date":   "2025-12-31",
		"start_km":   0,
		"end_km":     10000,
		"is_active":  false,
	})

	w := doRequest(t, r, http.MethodPost, "/api/checklists", gin.H{
		"checklist_number": "CHK-0001",
		"moto_id":          motoID,
		"contract_id":      contractID,
		"mileage":          100,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestDeleteChecklistWithRepairsRejected(t *testing.T) {
	r, _ := setupRouter(t)
	mecanicienID := createUser(t, r, "mecano1")
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-001", "AB-123-CD")
	checklistID := created(t, r, "/api/checklists", gin.H{
		"checklist_number": "CHK-0001",
		"moto_id":          motoID,
		"mileage":          100,
	})
	repairID := created(t, r, "/api/repairs", gin.H{
		"repair_number": "REP-0001",
		"checklist_id":  checklistID,
		"mecanicien_id": mecanicienID,
	})

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/checklists/%d", checklistID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// After removing the repair the checklist can go
	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/repairs/%d", repairID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/checklists/%d", checklistID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteUserOwningRepairsRejected(t *testing.T) {
	r, _ := setupRouter(t)
	mecanicienID := createUser(t, r, "mecano1")
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-001", "AB-123-CD")
	checklistID := created(t, r, "/api/checklists", gin.H{
		"checklist_number": "CHK-0001",
		"moto_id":          motoID,
		"mileage":          100,
	})
	created(t, r, "/api/repairs", gin.H{
		"repair_number": "REP-0001",
		"checklist_id":  checklistID,
		"mecanicien_id": mecanicienID,
	})

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/users/%d", mecanicienID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRepairDuplicateNumber(t *testing.T) {
	r, _ := setupRouter(t)
	mecanicienID := createUser(t, r, "mecano1")
	modelID := createMotoModel(t, r, "CB500")
	motoID := createMoto(t, r, modelID, "CH-001", "AB-123-CD")
	checklistID := created(t, r, "/api/checklists", gin.H{
		"checklist_number": "CHK-0001",
		"moto_id":          motoID,
		"mileage":          100,
	})

	body := gin.H{
		"repair_number": "REP-0001",
		"checklist_id":  checklistID,
		"mecanicien_id": mecanicienID,
	}
	w := doRequest(t, r, http.MethodPost, "/api/repairs", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, http.MethodPost, "/api/repairs", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
