package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"savrepa-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate creates or updates the schema. It is idempotent and safe to run
// at every startup.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.MotoModel{},
		&models.Moto{},
		&models.Contract{},
		&models.Checklist{},
		&models.Repair{},
		&models.Service{},
		&models.Part{},
		&models.MaintenanceThreshold{},
		&models.Marque{},
		&models.Modele{},
		&models.TypeContrat{},
		&models.ContratPrestation{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Composite indexes for the common listing queries. Some engines reject
	// IF NOT EXISTS on indexes; a failure on re-run is harmless.
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_checklists_moto_created ON checklists(moto_id, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_contracts_moto_active ON contracts(moto_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_repairs_checklist ON repairs(checklist_id, date)",
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			logrus.WithError(err).Warn("could not create index")
		}
	}

	return nil
}

// SeedData creates the bootstrap admin account when the users table is
// empty, so a fresh install can log in.
func SeedData(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	if userCount > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		FullName:     "Administrateur",
		Role:         models.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logrus.Warn("seeded default admin account (username \"admin\"), change its password")
	return nil
}
