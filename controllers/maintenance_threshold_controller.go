package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"savrepa-api/models"
	"savrepa-api/utils"
)

type MaintenanceThresholdController struct {
	db *gorm.DB
}

func NewMaintenanceThresholdController(db *gorm.DB) *MaintenanceThresholdController {
	return &MaintenanceThresholdController{db: db}
}

type CreateMaintenanceThresholdRequest struct {
	ModelID     uint   `json:"model_id" binding:"required"`
	KmThreshold *int   `json:"km_threshold" binding:"required"`
	Description string `json:"description"`
}

type UpdateMaintenanceThresholdRequest struct {
	ModelID     *uint   `json:"model_id"`
	KmThreshold *int    `json:"km_threshold"`
	Description *string `json:"description"`
}

func (tc *MaintenanceThresholdController) GetMaintenanceThresholds(c *gin.Context) {
	var thresholds []models.MaintenanceThreshold
	if err := tc.db.Find(&thresholds).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, thresholds)
}

func (tc *MaintenanceThresholdController) GetMaintenanceThreshold(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "MaintenanceThreshold")
		return
	}

	var threshold models.MaintenanceThreshold
	if err := tc.db.First(&threshold, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "MaintenanceThreshold")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, threshold)
}

func (tc *MaintenanceThresholdController) CreateMaintenanceThreshold(c *gin.Context) {
	var req CreateMaintenanceThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if *req.KmThreshold < 0 {
		utils.SendValidationError(c, "km_threshold must not be negative")
		return
	}

	threshold := models.MaintenanceThreshold{
		ModelID:     req.ModelID,
		KmThreshold: *req.KmThreshold,
		Description: req.Description,
	}

	err := tc.db.Transaction(func(tx *gorm.DB) error {
		ok, err := refExists(tx, &models.MotoModel{}, req.ModelID)
		if err != nil {
			return err
		}
		if !ok {
			return errValidation("Unknown model_id")
		}

		return tx.Create(&threshold).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, threshold)
}

func (tc *MaintenanceThresholdController) UpdateMaintenanceThreshold(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "MaintenanceThreshold")
		return
	}

	var req UpdateMaintenanceThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var threshold models.MaintenanceThreshold
	err := tc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&threshold, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("MaintenanceThreshold")
			}
			return err
		}

		if req.ModelID != nil {
			ok, err := refExists(tx, &models.MotoModel{}, *req.ModelID)
			if err != nil {
				return err
			}
			if !ok {
				return errValidation("Unknown model_id")
			}
			threshold.ModelID = *req.ModelID
		}

		if req.KmThreshold != nil {
			if *req.KmThreshold < 0 {
				return errValidation("km_threshold must not be negative")
			}
			threshold.KmThreshold = *req.KmThreshold
		}

		if req.Description != nil {
			threshold.Description = *req.Description
		}

		return tx.Save(&threshold).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusOK, threshold)
}

func (tc *MaintenanceThresholdController) DeleteMaintenanceThreshold(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "MaintenanceThreshold")
		return
	}

	err := tc.db.Transaction(func(tx *gorm.DB) error {
		var threshold models.MaintenanceThreshold
		if err := tx.First(&threshold, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("MaintenanceThreshold")
			}
			return err
		}

		return tx.Delete(&threshold).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
