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

type MarqueController struct {
	db *gorm.DB
}

func NewMarqueController(db *gorm.DB) *MarqueController {
	return &MarqueController{db: db}
}

type CreateMarqueRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateMarqueRequest struct {
	Name *string `json:"name"`
}

func (mc *MarqueController) GetMarques(c *gin.Context) {
	var marques []models.Marque
	if err := mc.db.Find(&marques).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, marques)
}

func (mc *MarqueController) GetMarque(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Marque")
		return
	}

	var marque models.Marque
	if err := mc.db.First(&marque, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Marque")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, marque)
}

func (mc *MarqueController) CreateMarque(c *gin.Context) {
	var req CreateMarqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.SendValidationError(c, "Name is required")
		return
	}

	marque := models.Marque{Name: name}

	err := mc.db.Transaction(func(tx *gorm.DB) error {
		exists, err := taken(tx, &models.Marque{}, "name", name, 0)
		if err != nil {
			return err
		}
		if exists {
			return errValidation("Marque with this name already exists")
		}

		return tx.Create(&marque).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, marque)
}

func (mc *MarqueController) UpdateMarque(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Marque")
		return
	}

	var req UpdateMarqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var marque models.Marque
	err := mc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&marque, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Marque")
			}
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return errValidation("Name must not be empty")
			}
			exists, err := taken(tx, &models.Marque{}, "name", name, id)
			if err != nil {
				return err
			}
			if exists {
				return errValidation("Marque with this name already exists")
			}
			marque.Name = name
		}

		return tx.Save(&marque).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusOK, marque)
}

func (mc *MarqueController) DeleteMarque(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Marque")
		return
	}

	err := mc.db.Transaction(func(tx *gorm.DB) error {
		var marque models.Marque
		if err := tx.First(&marque, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Marque")
			}
			return err
		}

		if busy, err := hasChildren(tx, &models.Modele{}, "marque_id", id); err != nil {
			return err
		} else if busy {
			return errValidation("Marque is referenced by modeles")
		}

		return tx.Delete(&marque).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
