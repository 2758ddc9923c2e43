package models

type Contract struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	MotoID    uint `json:"moto_id" gorm:"not null;index"`
	StartDate Date `json:"start_date" gorm:"not null"`
	EndDate   Date `json:"end_date" gorm:"not null"`
	StartKm   int  `json:"start_km" gorm:"not null"`
	EndKm     int  `json:"end_km" gorm:"not null"`
	IsActive  bool `json:"is_active" gorm:"default:true"`

	// Relationships
	Moto       Moto        `json:"-" gorm:"foreignKey:MotoID"`
	Services   []Service   `json:"services" gorm:"many2many:contract_services"`
	Checklists []Checklist `json:"-" gorm:"foreignKey:ContractID"`
}

type Service struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Description string `json:"description" gorm:"size:255"`
}
