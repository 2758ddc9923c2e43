package models

import "time"

type Checklist struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	ChecklistNumber string    `json:"checklist_number" gorm:"uniqueIndex;not null;size:50"`
	MotoID          uint      `json:"moto_id" gorm:"not null;index"`
	ContractID      *uint     `json:"contract_id" gorm:"index"`
	MecanicienID    *uint     `json:"mecanicien_id" gorm:"index"`
	RepairType      string    `json:"repair_type" gorm:"size:100"`
	Mileage         int       `json:"mileage" gorm:"not null"`
	ClientName      string    `json:"client_name" gorm:"size:100"`
	ClientPhone     string    `json:"client_phone" gorm:"size:30"`
	IsValidated     bool      `json:"is_validated" gorm:"default:false"`
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	Repairs []Repair `json:"-" gorm:"foreignKey:ChecklistID"`
}

type Repair struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	RepairNumber string `json:"repair_number" gorm:"uniqueIndex;not null;size:50"`
	ChecklistID  uint   `json:"checklist_id" gorm:"not null;index"`
	MecanicienID uint   `json:"mecanicien_id" gorm:"not null;index"`
	Date         Date   `json:"date"`
	Mileage      int    `json:"mileage"`
}
