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

type TypeContratController struct {
	db *gorm.DB
}

func NewTypeContratController(db *gorm.DB) *TypeContratController {
	return &TypeContratController{db: db}
}

type CreateTypeContratRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateTypeContratRequest struct {
	Name *string `json:"name"`
}

func (tc *TypeContratController) GetTypeContrats(c *gin.Context) {
	var typeContrats []models.TypeContrat
	if err := tc.db.Find(&typeContrats).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, typeContrats)
}

func (tc *TypeContratController) GetTypeContrat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "TypeContrat")
		return
	}

	var typeContrat models.TypeContrat
	if err := tc.db.First(&typeContrat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "TypeContrat")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, typeContrat)
}

func (tc *TypeContratController) CreateTypeContrat(c *gin.Context) {
	var req CreateTypeContratRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.SendValidationError(c, "Name is required")
		return
	}

	typeContrat := models.TypeContrat{Name: name}

	err := tc.db.Transaction(func(tx *gorm.DB) error {
		exists, err := taken(tx, &models.TypeContrat{}, "name", name, 0)
		if err != nil {
			return err
		}
		if exists {
			return errValidation("TypeContrat with this name already exists")
		}

		return tx.Create(&typeContrat).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, typeContrat)
}

func (tc *TypeContratController) UpdateTypeContrat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "TypeContrat")
		return
	}

	var req UpdateTypeContratRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var typeContrat models.TypeContrat
	err := tc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&typeContrat, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("TypeContrat")
			}
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return errValidation("Name must not be empty")
			}
			exists, err := taken(tx, &models.TypeContrat{}, "name", name, id)
			if err != nil {
				return err
			}
			if exists {
				return errValidation("TypeContrat with this name already exists")
			}
			typeContrat.Name = name
		}

		return tx.Save(&typeContrat).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusOK, typeContrat)
}

func (tc *TypeContratController) DeleteTypeContrat(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "TypeContrat")
		return
	}

	err := tc.db.Transaction(func(tx *gorm.DB) error {
		var typeContrat models.TypeContrat
		if err := tx.First(&typeContrat, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("TypeContrat")
			}
			return err
		}

		if busy, err := hasChildren(tx, &models.ContratPrestation{}, "id_type_contrat", id); err != nil {
			return err
		} else if busy {
			return errValidation("TypeContrat is referenced by contrat prestations")
		}

		return tx.Delete(&typeContrat).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
