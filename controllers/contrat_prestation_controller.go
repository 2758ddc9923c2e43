package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"savrepa-api/models"
	"savrepa-api/utils"
)

type ContratPrestationController struct {
	db *gorm.DB
}

func NewContratPrestationController(db *gorm.DB) *ContratPrestationController {
	return &ContratPrestationController{db: db}
}

type CreateContratPrestationRequest struct {
	IDTypeContrat    uint   `json:"id_type_contrat" binding:"required"`
	IDModele         uint   `json:"id_modele" binding:"required"`
	KilometrageCible *int   `json:"kilometrage_cible" binding:"required"`
	Description      string `json:"description"`
	IDPiece          uint   `json:"id_piece" binding:"required"`
	IDPrestation     uint   `json:"id_prestation" binding:"required"`
}

type UpdateContratPrestationRequest struct {
	IDTypeContrat    *uint   `json:"id_type_contrat"`
	IDModele         *uint   `json:"id_modele"`
	KilometrageCible *int    `json:"kilometrage_cible"`
	Description      *string `json:"description"`
	IDPiece          *uint   `json:"id_piece"`
	IDPrestation     *uint   `json:"id_prestation"`
}

func (pc *ContratPrestationController) GetContratPrestations(c *gin.Context) {
	var prestations []models.ContratPrestation
	if err := pc.db.Find(&prestations).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, prestations)
}

func (pc *ContratPrestationController) GetContratPrestation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "ContratPrestation")
		return
	}

	var prestation models.ContratPrestation
	if err := pc.db.First(&prestation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "ContratPrestation")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, prestation)
}

// CreateContratPrestation adds a maintenance plan line. The
// (type_contrat, modele, kilometrage) triple must be unique, and the
// referenced part and service must exist even though the schema carries
// no foreign key for them.
func (pc *ContratPrestationController) CreateContratPrestation(c *gin.Context) {
	var req CreateContratPrestationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	prestation := models.ContratPrestation{
		IDTypeContrat:    req.IDTypeContrat,
		IDModele:         req.IDModele,
		KilometrageCible: *req.KilometrageCible,
		Description:      req.Description,
		IDPiece:          req.IDPiece,
		IDPrestation:     req.IDPrestation,
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := pc.validateRefs(tx, prestation); err != nil {
			return err
		}

		dup, err := prestationTaken(tx, prestation.IDTypeContrat, prestation.IDModele, prestation.KilometrageCible, 0)
		if err != nil {
			return err
		}
		if dup {
			return errValidation("A prestation for this type_contrat, modele and kilometrage already exists")
		}

		return tx.Create(&prestation).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prestation)
}

func (pc *ContratPrestationController) UpdateContratPrestation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "ContratPrestation")
		return
	}

	var req UpdateContratPrestationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	var prestation models.ContratPrestation
	err := pc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prestation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("ContratPrestation")
			}
			return err
		}

		if req.IDTypeContrat != nil {
			prestation.IDTypeContrat = *req.IDTypeContrat
		}
		if req.IDModele != nil {
			prestation.IDModele = *req.IDModele
		}
		if req.KilometrageCible != nil {
			prestation.KilometrageCible = *req.KilometrageCible
		}
		if req.Description != nil {
			prestation.Description = *req.Description
		}
		if req.IDPiece != nil {
			prestation.IDPiece = *req.IDPiece
		}
		if req.IDPrestation != nil {
			prestation.IDPrestation = *req.IDPrestation
		}

		if err := pc.validateRefs(tx, prestation); err != nil {
			return err
		}

		dup, err := prestationTaken(tx, prestation.IDTypeContrat, prestation.IDModele, prestation.KilometrageCible, id)
		if err != nil {
			return err
		}
		if dup {
			return errValidation("A prestation for this type_contrat, modele and kilometrage already exists")
		}

		return tx.Save(&prestation).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusOK, prestation)
}

func (pc *ContratPrestationController) DeleteContratPrestation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "ContratPrestation")
		return
	}

	err := pc.db.Transaction(func(tx *gorm.DB) error {
		var prestation models.ContratPrestation
		if err := tx.First(&prestation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("ContratPrestation")
			}
			return err
		}

		return tx.Delete(&prestation).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (pc *ContratPrestationController) validateRefs(tx *gorm.DB, prestation models.ContratPrestation) error {
	ok, err := refExists(tx, &models.TypeContrat{}, prestation.IDTypeContrat)
	if err != nil {
		return err
	}
	if !ok {
		return errValidation("Unknown id_type_contrat")
	}

	ok, err = refExists(tx, &models.Modele{}, prestation.IDModele)
	if err != nil {
		return err
	}
	if !ok {
		return errValidation("Unknown id_modele")
	}

	ok, err = refExists(tx, &models.Part{}, prestation.IDPiece)
	if err != nil {
		return err
	}
	if !ok {
		return errValidation("Unknown id_piece")
	}

	ok, err = refExists(tx, &models.Service{}, prestation.IDPrestation)
	if err != nil {
		return err
	}
	if !ok {
		return errValidation("Unknown id_prestation")
	}

	return nil
}

func prestationTaken(tx *gorm.DB, typeContratID, modeleID uint, km int, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(&models.ContratPrestation{}).
		Where("id_type_contrat = ? AND id_modele = ? AND kilometrage_cible = ?", typeContratID, modeleID, km)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
