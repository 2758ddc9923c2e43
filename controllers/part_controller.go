package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"savrepa-api/models"
	"savrepa-api/services"
	"savrepa-api/utils"
)

type PartController struct {
	db       *gorm.DB
	notifier *services.Notifier
}

func NewPartController(db *gorm.DB, notifier *services.Notifier) *PartController {
	return &PartController{db: db, notifier: notifier}
}

type CreatePartRequest struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	StockQuantity     *int   `json:"stock_quantity"`
	LowStockThreshold *int   `json:"low_stock_threshold"`
}

type UpdatePartRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	StockQuantity     *int    `json:"stock_quantity"`
	LowStockThreshold *int    `json:"low_stock_threshold"`
}

func (pc *PartController) GetParts(c *gin.Context) {
	var parts []models.Part
	if err := pc.db.Find(&parts).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, parts)
}

func (pc *PartController) GetPart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Part")
		return
	}

	var part models.Part
	if err := pc.db.First(&part, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Part")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, part)
}

func (pc *PartController) CreatePart(c *gin.Context) {
	var req CreatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.SendValidationError(c, "Name is required")
		return
	}

	part := models.Part{Name: name, Description: req.Description}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			utils.SendValidationError(c, "stock_quantity must not be negative")
			return
		}
		part.StockQuantity = *req.StockQuantity
	}
	if req.LowStockThreshold != nil {
		if *req.LowStockThreshold < 0 {
			utils.SendValidationError(c, "low_stock_threshold must not be negative")
			return
		}
		part.LowStockThreshold = *req.LowStockThreshold
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		exists, err := taken(tx, &models.Part{}, "name", name, 0)
		if err != nil {
			return err
		}
		if exists {
			return errValidation("Part with this name already exists")
		}

		return tx.Create(&part).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	pc.maybeAlert(part)
	c.JSON(http.StatusCreated, part)
}

func (pc *PartController) UpdatePart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Part")
		return
	}

	var req UpdatePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var part models.Part
	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&part, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Part")
			}
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return errValidation("Name must not be empty")
			}
			exists, err := taken(tx, &models.Part{}, "name", name, id)
			if err != nil {
				return err
			}
			if exists {
				return errValidation("Part with this name already exists")
			}
			part.Name = name
		}

		if req.Description != nil {
			part.Description = *req.Description
		}

		if req.StockQuantity != nil {
			if *req.StockQuantity < 0 {
				return errValidation("stock_quantity must not be negative")
			}
			part.StockQuantity = *req.StockQuantity
		}

		if req.LowStockThreshold != nil {
			if *req.LowStockThreshold < 0 {
				return errValidation("low_stock_threshold must not be negative")
			}
			part.LowStockThreshold = *req.LowStockThreshold
		}

		return tx.Save(&part).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	pc.maybeAlert(part)
	c.JSON(http.StatusOK, part)
}

// DeletePart refuses to remove a part referenced by maintenance plan lines.
func (pc *PartController) DeletePart(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Part")
		return
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		var part models.Part
		if err := tx.First(&part, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Part")
			}
			return err
		}

		if busy, err := hasChildren(tx, &models.ContratPrestation{}, "id_piece", id); err != nil {
			return err
		} else if busy {
			return errValidation("Part is referenced by contrat prestations")
		}

		return tx.Delete(&part).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (pc *PartController) maybeAlert(part models.Part) {
	if pc.notifier == nil || part.LowStockThreshold == 0 {
		return
	}
	if part.StockQuantity <= part.LowStockThreshold {
		go pc.notifier.LowStockAlert(part)
	}
}
