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

type ModeleController struct {
	db *gorm.DB
}

func NewModeleController(db *gorm.DB) *ModeleController {
	return &ModeleController{db: db}
}

type CreateModeleRequest struct {
	Name     string `json:"name" binding:"required"`
	MarqueID uint   `json:"marque_id" binding:"required"`
}

type UpdateModeleRequest struct {
	Name     *string `json:"name"`
	MarqueID *uint   `json:"marque_id"`
}

func (mc *ModeleController) GetModeles(c *gin.Context) {
	var modeles []models.Modele
	if err := mc.db.Find(&modeles).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, modeles)
}

func (mc *ModeleController) GetModele(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Modele")
		return
	}

	var modele models.Modele
	if err := mc.db.First(&modele, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Modele")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, modele)
}

func (mc *ModeleController) CreateModele(c *gin.Context) {
	var req CreateModeleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.SendValidationError(c, "Name is required")
		return
	}

	modele := models.Modele{Name: name, MarqueID: req.MarqueID}

	err := mc.db.Transaction(func(tx *gorm.DB) error {
		ok, err := refExists(tx, &models.Marque{}, req.MarqueID)
		if err != nil {
			return err
		}
		if !ok {
			return errValidation("Unknown marque_id")
		}

		exists, err := taken(tx, &models.Modele{}, "name", name, 0)
		if err != nil {
			return err
		}
		if exists {
			return errValidation("Modele with this name already exists")
		}

		return tx.Create(&modele).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, modele)
}

func (mc *ModeleController) UpdateModele(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Modele")
		return
	}

	var req UpdateModeleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var modele models.Modele
	err := mc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&modele, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Modele")
			}
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return errValidation("Name must not be empty")
			}
			exists, err := taken(tx, &models.Modele{}, "name", name, id)
			if err != nil {
				return err
			}
			if exists {
				return errValidation("Modele with this name already exists")
			}
			modele.Name = name
		}

		if req.MarqueID != nil {
			ok, err := refExists(tx, &models.Marque{}, *req.MarqueID)
			if err != nil {
				return err
			}
			if !ok {
				return errValidation("Unknown marque_id")
			}
			modele.MarqueID = *req.MarqueID
		}

		return tx.Save(&modele).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusOK, modele)
}

func (mc *ModeleController) DeleteModele(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Modele")
		return
	}

	err := mc.db.Transaction(func(tx *gorm.DB) error {
		var modele models.Modele
		if err := tx.First(&modele, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Modele")
			}
			return err
		}

		if busy, err := hasChildren(tx, &models.ContratPrestation{}, "id_modele", id); err != nil {
			return err
		} else if busy {
			return errValidation("Modele is referenced by contrat prestations")
		}

		return tx.Delete(&modele).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
