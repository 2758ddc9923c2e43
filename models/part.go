package models

type Part struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Description string `json:"description" gorm:"size:255"`
	// StockQuantity is never allowed below zero.
	StockQuantity int `json:"stock_quantity" gorm:"default:0"`
	// LowStockThreshold of zero disables low-stock alerts for this part.
	LowStockThreshold int `json:"low_stock_threshold" gorm:"default:0"`
}

type MaintenanceThreshold struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ModelID     uint   `json:"model_id" gorm:"not null;index"`
	KmThreshold int    `json:"km_threshold" gorm:"not null"`
	Description string `json:"description" gorm:"size:255"`
}
