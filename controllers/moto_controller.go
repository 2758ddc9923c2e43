package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"savrepa-api/models"
	"savrepa-api/utils"
)

type MotoController struct {
	db *gorm.DB
}

func NewMotoController(db *gorm.DB) *MotoController {
	return &MotoController{db: db}
}

type CreateMotoRequest struct {
	ModelID            uint   `json:"model_id" binding:"required"`
	ChassisNumber      string `json:"chassis_number" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	ClientName         string `json:"client_name"`
	ClientPhone        string `json:"client_phone"`
}

type UpdateMotoRequest struct {
	ModelID            *uint   `json:"model_id"`
	ChassisNumber      *string `json:"chassis_number"`
	RegistrationNumber *string `json:"registration_number"`
	ClientName         *string `json:"client_name"`
	ClientPhone        *string `json:"client_phone"`
}

func (mc *MotoController) GetMotos(c *gin.Context) {
	var motos []models.Moto
	if err := mc.db.Find(&motos).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, motos)
}

func (mc *MotoController) GetMoto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Moto")
		return
	}

	var moto models.Moto
	if err := mc.db.First(&moto, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Moto")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, moto)
}

func (mc *MotoController) CreateMoto(c *gin.Context) {
	var req CreateMotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	moto := models.Moto{
		ModelID:            req.ModelID,
		ChassisNumber:      req.ChassisNumber,
		RegistrationNumber: req.RegistrationNumber,
		ClientName:         req.ClientName,
		ClientPhone:        req.ClientPhone,
	}

	err := mc.db.Transaction(func(tx *gorm.DB) error {
		ok, err := refExists(tx, &models.MotoModel{}, req.ModelID)
		if err != nil {
			return err
		}
		if !ok {
			return errValidation("Unknown model_id")
		}

		if exists, err := taken(tx, &models.Moto{}, "chassis_number", req.ChassisNumber, 0); err != nil {
			return err
		} else if exists {
			return errValidation("Chassis number already exists")
		}

		if exists, err := taken(tx, &models.Moto{}, "registration_number", req.RegistrationNumber, 0); err != nil {
			return err
		} else if exists {
			return errValidation("Registration number already exists")
		}

		return tx.Create(&moto).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, moto)
}

func (mc *MotoController) UpdateMoto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Moto")
		return
	}

	var req UpdateMotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var moto models.Moto
	err := mc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&moto, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Moto")
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
			moto.ModelID = *req.ModelID
		}

		if req.ChassisNumber != nil {
			if exists, err := taken(tx, &models.Moto{}, "chassis_number", *req.ChassisNumber, id); err != nil {
				return err
			} else if exists {
				return errValidation("Chassis number already exists")
			}
			moto.ChassisNumber = *req.ChassisNumber
		}

		if req.RegistrationNumber != nil {
			if exists, err := taken(tx, &models.Moto{}, "registration_number", *req.RegistrationNumber, id); err != nil {
				return err
			} else if exists {
				return errValidation("Registration number already exists")
			}
			moto.RegistrationNumber = *req.RegistrationNumber
		}

		if req.ClientName != nil {
			moto.ClientName = *req.ClientName
		}

		if req.ClientPhone != nil {
			moto.ClientPhone = *req.ClientPhone
		}

		return tx.Save(&moto).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusOK, moto)
}

// DeleteMoto refuses to remove a moto that still has contracts or
// checklists; the history must be cleaned up explicitly first.
func (mc *MotoController) DeleteMoto(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Moto")
		return
	}

	err := mc.db.Transaction(func(tx *gorm.DB) error {
		var moto models.Moto
		if err := tx.First(&moto, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Moto")
			}
			return err
		}

		if busy, err := hasChildren(tx, &models.Contract{}, "moto_id", id); err != nil {
			return err
		} else if busy {
			return errValidation("Moto is referenced by contracts")
		}

		if busy, err := hasChildren(tx, &models.Checklist{}, "moto_id", id); err != nil {
			return err
		} else if busy {
			return errValidation("Moto is referenced by checklists")
		}

		return tx.Delete(&moto).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
