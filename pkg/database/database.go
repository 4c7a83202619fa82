package database

import (
	"fmt"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate applies the schema and seeds the bootstrap admin account.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Collaboration{},
		&model.Course{},
		&model.Module{},
		&model.VideoContent{},
		&model.PDFContent{},
		&model.WebLink{},
		&model.Enrollment{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")
	return seedAdmin(db)
}

// seedAdmin creates the bootstrap admin account on an empty users table. The
// password must be changed after first login.
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := util.HashPassword("ChangeMe!123")
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:     "System",
		LastName: "Admin",
		Email:    "admin@lms.local",
		Password: hash,
		Role:     model.Admin,
		Status:   model.StatusActive,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("Seeded default admin account admin@lms.local")
	return nil
}
