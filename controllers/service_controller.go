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

type ServiceController struct {
	db *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{db: db}
}

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (sc *ServiceController) GetServices(c *gin.Context) {
	var services []models.Service
	if err := sc.db.Find(&services).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (sc *ServiceController) GetService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Service")
		return
	}

	var service models.Service
	if err := sc.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Service")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, service)
}

func (sc *ServiceController) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		utils.SendValidationError(c, "Name is required")
		return
	}

	service := models.Service{Name: name, Description: req.Description}

	err := sc.db.Transaction(func(tx *gorm.DB) error {
		exists, err := taken(tx, &models.Service{}, "name", name, 0)
		if err != nil {
			return err
		}
		if exists {
			return errValidation("Service with this name already exists")
		}

		return tx.Create(&service).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (sc *ServiceController) UpdateService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Service")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var service models.Service
	err := sc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&service, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Service")
			}
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return errValidation("Name must not be empty")
			}
			exists, err := taken(tx, &models.Service{}, "name", name, id)
			if err != nil {
				return err
			}
			if exists {
				return errValidation("Service with this name already exists")
			}
			service.Name = name
		}

		if req.Description != nil {
			service.Description = *req.Description
		}

		return tx.Save(&service).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService refuses to remove a service still linked to contracts or
// referenced by maintenance plan lines.
func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Service")
		return
	}

	err := sc.db.Transaction(func(tx *gorm.DB) error {
		var service models.Service
		if err := tx.First(&service, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Service")
			}
			return err
		}

		var linked int64
		if err := tx.Table("contract_services").Where("service_id = ?", id).Count(&linked).Error; err != nil {
			return err
		}
		if linked > 0 {
			return errValidation("Service is referenced by contracts")
		}

		if busy, err := hasChildren(tx, &models.ContratPrestation{}, "id_prestation", id); err != nil {
			return err
		} else if busy {
			return errValidation("Service is referenced by contrat prestations")
		}

		return tx.Delete(&service).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
