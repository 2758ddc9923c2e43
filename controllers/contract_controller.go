package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"savrepa-api/models"
	"savrepa-api/utils"
)

type ContractController struct {
	db *gorm.DB
}

func NewContractController(db *gorm.DB) *ContractController {
	return &ContractController{db: db}
}

type CreateContractRequest struct {
	MotoID     uint   `json:"moto_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	StartKm    *int   `json:"start_km" binding:"required"`
	EndKm      *int   `json:"end_km" binding:"required"`
	IsActive   *bool  `json:"is_active"`
	ServiceIDs []uint `json:"service_ids"`
}

type UpdateContractRequest struct {
	MotoID     *uint   `json:"moto_id"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	StartKm    *int    `json:"start_km"`
	EndKm      *int    `json:"end_km"`
	IsActive   *bool   `json:"is_active"`
	ServiceIDs *[]uint `json:"service_ids"`
}

func (cc *ContractController) GetContracts(c *gin.Context) {
	var contracts []models.Contract
	if err := cc.db.Preload("Services").Find(&contracts).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, contracts)
}

func (cc *ContractController) GetContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Contract")
		return
	}

	var contract models.Contract
	if err := cc.db.Preload("Services").First(&contract, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Contract")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, contract)
}

// CreateContract opens a service agreement for a moto, optionally linked
// to the covered services. Dates and odometer bounds must be ordered.
func (cc *ContractController) CreateContract(c *gin.Context) {
	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	startDate, err := models.ParseDate(req.StartDate)
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	endDate, err := models.ParseDate(req.EndDate)
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if startDate.After(endDate.Time) {
		utils.SendValidationError(c, "start_date must not be after end_date")
		return
	}
	if *req.StartKm > *req.EndKm {
		utils.SendValidationError(c, "start_km must not exceed end_km")
		return
	}

	contract := models.Contract{
		MotoID:    req.MotoID,
		StartDate: startDate,
		EndDate:   endDate,
		StartKm:   *req.StartKm,
		EndKm:     *req.EndKm,
		IsActive:  true,
	}
	if req.IsActive != nil {
		contract.IsActive = *req.IsActive
	}

	err = cc.db.Transaction(func(tx *gorm.DB) error {
		ok, err := refExists(tx, &models.Moto{}, req.MotoID)
		if err != nil {
			return err
		}
		if !ok {
			return errValidation("Unknown moto_id")
		}

		services, err := findServices(tx, req.ServiceIDs)
		if err != nil {
			return err
		}
		contract.Services = services

		return tx.Create(&contract).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contract)
}

func (cc *ContractController) UpdateContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Contract")
		return
	}

	var req UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var contract models.Contract
	err := cc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Services").First(&contract, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Contract")
			}
			return err
		}

		if req.MotoID != nil {
			ok, err := refExists(tx, &models.Moto{}, *req.MotoID)
			if err != nil {
				return err
			}
			if !ok {
				return errValidation("Unknown moto_id")
			}
			contract.MotoID = *req.MotoID
		}

		if req.StartDate != nil {
			parsed, err := models.ParseDate(*req.StartDate)
			if err != nil {
				return errValidation(err.Error())
			}
			contract.StartDate = parsed
		}
		if req.EndDate != nil {
			parsed, err := models.ParseDate(*req.EndDate)
			if err != nil {
				return errValidation(err.Error())
			}
			contract.EndDate = parsed
		}
		if contract.StartDate.After(contract.EndDate.Time) {
			return errValidation("start_date must not be after end_date")
		}

		if req.StartKm != nil {
			contract.StartKm = *req.StartKm
		}
		if req.EndKm != nil {
			contract.EndKm = *req.EndKm
		}
		if contract.StartKm > contract.EndKm {
			return errValidation("start_km must not exceed end_km")
		}

		if req.IsActive != nil {
			contract.IsActive = *req.IsActive
		}

		if req.ServiceIDs != nil {
			services, err := findServices(tx, *req.ServiceIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&contract).Association("Services").Replace(&services); err != nil {
				return err
			}
			contract.Services = services
		}

		return tx.Save(&contract).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (cc *ContractController) DeleteContract(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "Contract")
		return
	}

	err := cc.db.Transaction(func(tx *gorm.DB) error {
		var contract models.Contract
		if err := tx.First(&contract, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("Contract")
			}
			return err
		}

		if busy, err := hasChildren(tx, &models.Checklist{}, "contract_id", id); err != nil {
			return err
		} else if busy {
			return errValidation("Contract is referenced by checklists")
		}

		// Join rows have no identity of their own and go with the contract.
		if err := tx.Model(&contract).Association("Services").Clear(); err != nil {
			return err
		}

		return tx.Delete(&contract).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// findServices resolves service ids and rejects any id that does not
// reference an existing service.
func findServices(tx *gorm.DB, ids []uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var services []models.Service
	if err := tx.Find(&services, ids).Error; err != nil {
		return nil, err
	}

	found := make(map[uint]bool, len(services))
	for _, s := range services {
		found[s.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, errValidation("Unknown service id")
		}
	}

	return services, nil
}
