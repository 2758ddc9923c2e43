package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"savrepa-api/models"
	"savrepa-api/utils"
)

type ChecklistController struct {
	db *gorm.DB
}

func NewChecklistController(db *gorm.DB) *ChecklistController {
	return &ChecklistController{db: db}
}

type CreateChecklistRequest struct {
	ChecklistNumber string `json:"checklist_number" binding:"required"`
	MotoID          uint   `json:"moto_id" binding:"required"`
	ContractID      *uint  `json:"contract_id"`
	MecanicienID    *uint  `json:"mecanicien_id"`
	RepairType      string `json:"repair_type"`
	Mileage         *int   `json:"mileage" binding:"required"`
	ClientName      string `json:"client_name"`
	ClientPhone     string `json:"client_phone"`
}

type UpdateChecklistRequest struct {
	ChecklistNumber *string `json:"checklist_number"`
	MotoID          *uint   `json:"moto_id"`
	ContractID      *uint   `json:"contract_id"`
	MecanicienID    *uint   `json:"mecanicien_id"`
	RepairType      *string `json:"repair_type"`
	Mileage         *int    `json:"mileage"`
	ClientName      *string `json:"client_name"`
	ClientPhone     *string `json:"client_phone"`
	IsValidated     *bool   `json:"is_validated"`
}

func (cc *ChecklistController) GetChecklists(c *gin.Context) {
	var checklists []models.Checklist
	if err := cc.db.Find(&checklists).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, checklists)
}

func (cc *ChecklistController) GetChecklist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Checklist")
		return
	}

	var checklist models.Checklist
	if err := cc.db.First(&checklist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Checklist")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, checklist)
}

// CreateChecklist records an intake inspection. The contract and mechanic
// links are optional; an inactive contract is accepted.
func (cc *ChecklistController) CreateChecklist(c *gin.Context) {
	var req CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if *req.Mileage < 0 {
		utils.SendValidationError(c, "Mileage must not be negative")
		return
	}

	checklist := models.Checklist{
		ChecklistNumber: req.ChecklistNumber,
		MotoID:          req.MotoID,
		ContractID:      req.ContractID,
		MecanicienID:    req.MecanicienID,
		RepairType:      req.RepairType,
		Mileage:         *req.Mileage,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
	}

	err := cc.db.Transaction(func(tx *gorm.DB) error {
		if exists, err := taken(tx, &models.Checklist{}, "checklist_number", req.ChecklistNumber, 0); err != nil {
			return err
		} else if exists {
			return errValidation("Checklist number already exists")
		}

		ok, err := refExists(tx, &models.Moto{}, req.MotoID)
		if err != nil {
			return err
		}
		if !ok {
			return errValidation("Unknown moto_id")
		}

		if req.ContractID != nil {
			ok, err := refExists(tx, &models.Contract{}, *req.ContractID)
			if err != nil {
				return err
			}
			if !ok {
				return errValidation("Unknown contract_id")
			}
		}

		if req.MecanicienID != nil {
			ok, err := refExists(tx, &models.User{}, *req.MecanicienID)
			if err != nil {
				return err
			}
			if !ok {
				return errValidation("Unknown mecanicien_id")
			}
		}

		return tx.Create(&checklist).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, checklist)
}

func (cc *ChecklistController) UpdateChecklist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Checklist")
		return
	}

	var req UpdateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var checklist models.Checklist
	err := cc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&checklist, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Checklist")
			}
			return err
		}

		if req.ChecklistNumber != nil {
			if exists, err := taken(tx, &models.Checklist{}, "checklist_number", *req.ChecklistNumber, id); err != nil {
				return err
			} else if exists {
				return errValidation("Checklist number already exists")
			}
			checklist.ChecklistNumber = *req.ChecklistNumber
		}

		if req.MotoID != nil {
			ok, err := refExists(tx, &models.Moto{}, *req.MotoID)
			if err != nil {
				return err
			}
			if !ok {
				return errValidation("Unknown moto_id")
			}
			checklist.MotoID = *req.MotoID
		}

		if req.ContractID != nil {
			ok, err := refExists(tx, &models.Contract{}, *req.ContractID)
			if err != nil {
				return err
			}
			if !ok {
				return errValidation("Unknown contract_id")
			}
			checklist.ContractID = req.ContractID
		}

		if req.MecanicienID != nil {
			ok, err := refExists(tx, &models.User{}, *req.MecanicienID)
			if err != nil {
				return err
			}
			if !ok {
				return errValidation("Unknown mecanicien_id")
			}
			checklist.MecanicienID = req.MecanicienID
		}

		if req.RepairType != nil {
			checklist.RepairType = *req.RepairType
		}

		if req.Mileage != nil {
			if *req.Mileage < 0 {
				return errValidation("Mileage must not be negative")
			}
			checklist.Mileage = *req.Mileage
		}

		if req.ClientName != nil {
			checklist.ClientName = *req.ClientName
		}

		if req.ClientPhone != nil {
			checklist.ClientPhone = *req.ClientPhone
		}

		if req.IsValidated != nil {
			checklist.IsValidated = *req.IsValidated
		}

		return tx.Save(&checklist).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusOK, checklist)
}

func (cc *ChecklistController) DeleteChecklist(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Checklist")
		return
	}

	err := cc.db.Transaction(func(tx *gorm.DB) error {
		var checklist models.Checklist
		if err := tx.First(&checklist, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Checklist")
			}
			return err
		}

		if busy, err := hasChildren(tx, &models.Repair{}, "checklist_id", id); err != nil {
			return err
		} else if busy {
			return errValidation("Checklist is referenced by repairs")
		}

		return tx.Delete(&checklist).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
