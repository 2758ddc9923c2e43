package models

type MotoModel struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:100"`

	// Relationships
	Motos                 []Moto                 `json:"-" gorm:"foreignKey:ModelID"`
	MaintenanceThresholds []MaintenanceThreshold `json:"-" gorm:"foreignKey:ModelID"`
}

type Moto struct {
	ID                 uint   `json:"id" gorm:"primaryKey"`
	ModelID            uint   `json:"model_id" gorm:"not null;index"`
	ChassisNumber      string `json:"chassis_number" gorm:"uniqueIndex;not null;size:100"`
	RegistrationNumber string `json:"registration_number" gorm:"uniqueIndex;not null;size:50"`
	ClientName         string `json:"client_name" gorm:"size:100"`
	ClientPhone        string `json:"client_phone" gorm:"size:30"`

	// Relationships
	Model      MotoModel   `json:"-" gorm:"foreignKey:ModelID"`
	Contracts  []Contract  `json:"-" gorm:"foreignKey:MotoID"`
	Checklists []Checklist `json:"-" gorm:"foreignKey:MotoID"`
}
