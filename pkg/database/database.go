package database

import (
	"exam_portal_backend/internal/config"
	"exam_portal_backend/internal/model"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, seed *config.SeedConfig, migrate bool) (*gorm.DB, error) {
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
		Logger: logger.Default.LogMode(logger.Info),
		// Unique violations must surface as gorm.ErrDuplicatedKey: the
		// result store's single-attempt check depends on it.
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
	}

	if err := seedAdmin(db, seed); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Exam{},
		&model.Question{},
		&model.ExamAssignment{},
		&model.ExamResult{},
		&model.ExamResponse{},
		&model.Pipeline{},
		&model.UserPipelineProgress{},
	)
}

// seedAdmin creates a default administrator when the users table is
// empty, so a fresh install is reachable.
func seedAdmin(db *gorm.DB, seed *config.SeedConfig) error {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	email := seed.AdminEmail
	password := seed.AdminPassword
	if email == "" {
		email = "admin@example.com"
	}
	if password == "" {
		password = "admin123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:      "Administrator",
		Email:     email,
		Password:  string(hashed),
		Role:      model.Admin,
		IsActive:  true,
		LastLogin: time.Now(),
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded default admin account %s", email)
	return nil
}
