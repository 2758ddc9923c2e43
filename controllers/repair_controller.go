package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"savrepa-api/models"
	"savrepa-api/utils"
)

type RepairController struct {
	db *gorm.DB
}

func NewRepairController(db *gorm.DB) *RepairController {
	return &RepairController{db: db}
}

type CreateRepairRequest struct {
	RepairNumber string `json:"repair_number" binding:"required"`
	ChecklistID  uint   `json:"checklist_id" binding:"required"`
	MecanicienID uint   `json:"mecanicien_id" binding:"required"`
	Date         string `json:"date"`
	Mileage      int    `json:"mileage"`
}

type UpdateRepairRequest struct {
	RepairNumber *string `json:"repair_number"`
	ChecklistID  *uint   `json:"checklist_id"`
	MecanicienID *uint   `json:"mecanicien_id"`
	Date         *string `json:"date"`
	Mileage      *int    `json:"mileage"`
}

func (rc *RepairController) GetRepairs(c *gin.Context) {
	var repairs []models.Repair
	if err := rc.db.Find(&repairs).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, repairs)
}

func (rc *RepairController) GetRepair(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Repair")
		return
	}

	var repair models.Repair
	if err := rc.db.First(&repair, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Repair")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, repair)
}

func (rc *RepairController) CreateRepair(c *gin.Context) {
	var req CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	repair := models.Repair{
		RepairNumber: req.RepairNumber,
		ChecklistID:  req.ChecklistID,
		MecanicienID: req.MecanicienID,
		Mileage:      req.Mileage,
	}

	if req.Date != "" {
		parsed, err := models.ParseDate(req.Date)
		if err != nil {
			utils.SendValidationError(c, err.Error())
			return
		}
		repair.Date = parsed
	}

	err := rc.db.Transaction(func(tx *gorm.DB) error {
		if exists, err := taken(tx, &models.Repair{}, "repair_number", req.RepairNumber, 0); err != nil {
			return err
		} else if exists {
			return errValidation("Repair number already exists")
		}

		ok, err := refExists(tx, &models.Checklist{}, req.ChecklistID)
		if err != nil {
			return err
		}
		if !ok {
			return errValidation("Unknown checklist_id")
		}

		ok, err = refExists(tx, &models.User{}, req.MecanicienID)
		if err != nil {
			return err
		}
		if !ok {
			return errValidation("Unknown mecanicien_id")
		}

		return tx.Create(&repair).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, repair)
}

func (rc *RepairController) UpdateRepair(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Repair")
		return
	}

	var req UpdateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var repair models.Repair
	err := rc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&repair, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Repair")
			}
			return err
		}

		if req.RepairNumber != nil {
			if exists, err := taken(tx, &models.Repair{}, "repair_number", *req.RepairNumber, id); err != nil {
				return err
			} else if exists {
				return errValidation("Repair number already exists")
			}
			repair.RepairNumber = *req.RepairNumber
		}

		if req.ChecklistID != nil {
			ok, err := refExists(tx, &models.Checklist{}, *req.ChecklistID)
			if err != nil {
				return err
			}
			if !ok {
				return errValidation("Unknown checklist_id")
			}
			repair.ChecklistID = *req.ChecklistID
		}

		if req.MecanicienID != nil {
			ok, err := refExists(tx, &models.User{}, *req.MecanicienID)
			if err != nil {
				return err
			}
			if !ok {
				return errValidation("Unknown mecanicien_id")
			}
			repair.MecanicienID = *req.MecanicienID
		}

		if req.Date != nil {
			parsed, err := models.ParseDate(*req.Date)
			if err != nil {
				return errValidation(err.Error())
			}
			repair.Date = parsed
		}

		if req.Mileage != nil {
			repair.Mileage = *req.Mileage
		}

		return tx.Save(&repair).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusOK, repair)
}

func (rc *RepairController) DeleteRepair(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Repair")
		return
	}

	err := rc.db.Transaction(func(tx *gorm.DB) error {
		var repair models.Repair
		if err := tx.First(&repair, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Repair")
			}
			return err
		}

		return tx.Delete(&repair).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
