package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"savrepa-api/models"
	"savrepa-api/utils"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

type CreateUserRequest struct {
	Username   string `json:"username" binding:"required"`
	MotDePasse string `json:"motDePasse" binding:"required"`
	Prenom     string `json:"prenom"`
	Nom        string `json:"nom"`
	Telephone  string `json:"telephone"`
	Role       string `json:"role"`
}

type UpdateUserRequest struct {
	Username   *string `json:"username"`
	MotDePasse *string `json:"motDePasse"`
	Prenom     *string `json:"prenom"`
	Nom        *string `json:"nom"`
	Telephone  *string `json:"telephone"`
	Role       *string `json:"role"`
}

func (uc *UserController) GetUsers(c *gin.Context) {
	var users []models.User
	if err := uc.db.Find(&users).Error; err != nil {
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (uc *UserController) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "User")
		return
	}

	var user models.User
	if err := uc.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "User")
			return
		}
		utils.SendStorageError(c)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser stores a new account. The password is kept only as a bcrypt
// hash; full_name is assembled from prenom and nom.
func (uc *UserController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleMecanicien
	}
	if !models.ValidRole(role) {
		utils.SendValidationError(c, "Unknown role")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.MotDePasse), bcrypt.DefaultCost)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     models.BuildFullName(req.Prenom, req.Nom),
		Phone:        req.Telephone,
		Role:         role,
	}

	err = uc.db.Transaction(func(tx *gorm.DB) error {
		exists, err := taken(tx, &models.User{}, "username", req.Username, 0)
		if err != nil {
			return err
		}
		if exists {
			return errValidation("Username already exists")
		}

		return tx.Create(&user).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateUser applies a partial update; absent fields are untouched.
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "User")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if req.Role != nil && !models.ValidRole(*req.Role) {
		utils.SendValidationError(c, "Unknown role")
		return
	}

	var user models.User
	err := uc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("User")
			}
			return err
		}

		if req.Username != nil && *req.Username != "" {
			exists, err := taken(tx, &models.User{}, "username", *req.Username, id)
			if err != nil {
				return err
			}
			if exists {
				return errValidation("Username already exists")
			}
			user.Username = *req.Username
		}

		if req.Prenom != nil || req.Nom != nil {
			var prenom, nom string
			if req.Prenom != nil {
				prenom = *req.Prenom
			}
			if req.Nom != nil {
				nom = *req.Nom
			}
			user.FullName = models.BuildFullName(prenom, nom)
		}

		if req.Telephone != nil {
			user.Phone = *req.Telephone
		}

		if req.Role != nil {
			user.Role = *req.Role
		}

		if req.MotDePasse != nil && *req.MotDePasse != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.MotDePasse), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user.PasswordHash = string(hash)
		}

		return tx.Save(&user).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser refuses to remove a mechanic that still owns repairs or
// checklists.
func (uc *UserController) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		utils.SendNotFound(c, "User")
		return
	}

	err := uc.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errNotFound("User")
			}
			return err
		}

		if busy, err := hasChildren(tx, &models.Repair{}, "mecanicien_id", id); err != nil {
			return err
		} else if busy {
			return errValidation("User is referenced by repairs")
		}

		if busy, err := hasChildren(tx, &models.Checklist{}, "mecanicien_id", id); err != nil {
			return err
		} else if busy {
			return errValidation("User is referenced by checklists")
		}

		return tx.Delete(&user).Error
	})
	if err != nil {
		respondTxError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
