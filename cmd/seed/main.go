package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/HUPCF/Due-Diligence-Backend/internal/config"
	"github.com/HUPCF/Due-Diligence-Backend/internal/db"
	"github.com/HUPCF/Due-Diligence-Backend/internal/model"
	"github.com/HUPCF/Due-Diligence-Backend/internal/repository"
)

// Default checklist shipped on first run. Items are only inserted when the
// checklist tables are empty, so reruns never duplicate reference data.
var defaultChecklist = map[string][]string{
	"Corporate & Legal": {
		"Certificate of incorporation and bylaws",
		"Shareholder agreements and cap table",
		"Minutes of board and shareholder meetings for the last three years",
		"Material contracts and commitments",
		"Pending or threatened litigation",
	},
	"Financial": {
		"Audited financial statements for the last three fiscal years",
		"Management accounts for the current year",
		"Outstanding debt instruments and credit agreements",
		"Accounts receivable aging schedule",
	},
	"Tax": {
		"Corporate income tax returns for the last three years",
		"Open tax audits or disputes",
		"Transfer pricing documentation",
	},
	"Human Resources": {
		"Organization chart and headcount by department",
		"Employment agreements for key personnel",
		"Benefit plans and pension obligations",
	},
	"IT & Security": {
		"Inventory of critical systems and licenses",
		"Data protection policies and breach history",
		"Business continuity and disaster recovery plans",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.Company{},
		&model.User{},
		&model.ChecklistCategory{},
		&model.ChecklistItem{},
		&model.Response{},
		&model.Document{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	if err := seedAdmin(ctx, gormDB); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seedChecklist(gormDB); err != nil {
		log.Fatalf("Failed to seed checklist: %v", err)
	}

	log.Println("Seed completed")
}

func seedAdmin(ctx context.Context, gormDB *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	users := repository.NewUserRepository(gormDB)
	if _, err := users.FindByEmail(ctx, email); err == nil {
		log.Println("Admin user already exists")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := users.Create(ctx, &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}); err != nil {
		return err
	}
	log.Printf("Admin user %s created", email)
	return nil
}

func seedChecklist(gormDB *gorm.DB) error {
	var count int64
	if err := gormDB.Model(&model.ChecklistCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Checklist already seeded")
		return nil
	}

	return gormDB.Transaction(func(tx *gorm.DB) error {
		for name, items := range defaultChecklist {
			category := model.ChecklistCategory{Name: name}
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			for _, text := range items {
				if err := tx.Create(&model.ChecklistItem{CategoryID: category.ID, Text: text}).Error; err != nil {
					return err
				}
			}
			log.Printf("Seeded category %q with %d items", name, len(items))
		}
		return nil
	})
}
