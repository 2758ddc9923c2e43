package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"savrepa-api/models"
	"savrepa-api/utils"
)

type MotoModelController struct {
	db *gorm.DB
}

func NewMotoModelController(db *gorm.DB) *MotoModelController {
	return &MotoModelController{db: db}
}

type CreateMotoModelRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateMotoModelRequest struct {
	Name *string `json:"name"`
}

func (mc *MotoModelController) GetMotoModels(c *gin.Context) {
	var motoModels []models.MotoModel
	if err := mc.db.Find(&motoModels).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, motoModels)
}

func (mc *MotoModelController) GetMotoModel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "MotoModel")
		return
	}

	var motoModel models.MotoModel
	if err := mc.db.First(&motoModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "MotoModel")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, motoModel)
}

func (mc *MotoModelController) CreateMotoModel(c *gin.Context) {
	var req CreateMotoModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.SendValidationError(c, "Name is required")
		return
	}

	motoModel := models.MotoModel{Name: name}

	err := mc.db.Transaction(func(tx *gorm.DB) error {
		exists, err := taken(tx, &models.MotoModel{}, "name", name, 0)
		if err != nil {
			return err
		}
		if exists {
			return errValidation("MotoModel with this name already exists")
		}

		return tx.Create(&motoModel).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, motoModel)
}

func (mc *MotoModelController) UpdateMotoModel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "MotoModel")
		return
	}

	var req UpdateMotoModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var motoModel models.MotoModel
	err := mc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&motoModel, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("MotoModel")
			}
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return errValidation("Name must not be empty")
			}
			exists, err := taken(tx, &models.MotoModel{}, "name", name, id)
			if err != nil {
				return err
			}
			if exists {
				return errValidation("MotoModel with this name already exists")
			}
			motoModel.Name = name
		}

		return tx.Save(&motoModel).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusOK, motoModel)
}

func (mc *MotoModelController) DeleteMotoModel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "MotoModel")
		return
	}

	err := mc.db.Transaction(func(tx *gorm.DB) error {
		var motoModel models.MotoModel
		if err := tx.First(&motoModel, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("MotoModel")
			}
			return err
		}

		if busy, err := hasChildren(tx, &models.Moto{}, "model_id", id); err != nil {
			return err
		} else if busy {
			return errValidation("MotoModel is referenced by motos")
		}

		if busy, err := hasChildren(tx, &models.MaintenanceThreshold{}, "model_id", id); err != nil {
			return err
		} else if busy {
			return errValidation("MotoModel is referenced by maintenance thresholds")
		}

		return tx.Delete(&motoModel).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
