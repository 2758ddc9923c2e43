package models

import (
	"strings"
	"time"
)

const (
	RoleAdmin          = "admin"
	RoleMecanicien     = "mecanicien"
	RoleReceptionniste = "receptionniste"
)

// ValidRole reports whether role is one of the closed role enumeration.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMecanicien, RoleReceptionniste:
		return true
	}
	return false
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null;size:50"`
	PasswordHash string    `json:"-" gorm:"not null;size:255"`
	FullName     string    `json:"full_name" gorm:"size:100"`
	Phone        string    `json:"phone" gorm:"size:30"`
	Role         string    `json:"role" gorm:"size:20;default:'mecanicien'"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	Repairs    []Repair    `json:"-" gorm:"foreignKey:MecanicienID"`
	Checklists []Checklist `json:"-" gorm:"foreignKey:MecanicienID"`
}

// BuildFullName joins the given and family name with a single space,
// trimming when either side is empty.
func BuildFullName(prenom, nom string) string {
	return strings.TrimSpace(prenom + " " + nom)
}
