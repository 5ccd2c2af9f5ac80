package config

import (
	"log"

	"smartspend/internal/adapters/persistence/models"
	"smartspend/internal/core/domain"
	"smartspend/internal/pkg/password"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db     *gorm.DB
	hasher password.Hasher
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, hasher: password.NewBcryptHasher()}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	adminID, err := s.seedAdminUser()
	if err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if adminID != "" {
		if err := s.seedDefaultCategories(adminID); err != nil {
			log.Printf("⚠️ Category seeder skipped: %v", err)
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin account. Returns the admin's id so
// follow-up seeders can attribute shared records to it.
// In production, create admins through a secure process instead.
func (s *Seeder) seedAdminUser() (string, error) {
	var admin models.User
	err := s.db.Where("role = ?", domain.RoleAdmin).First(&admin).Error
	if err == nil {
		return admin.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", err
	}

	hash, err := s.hasher.Hash(getEnv("ADMIN_PASSWORD", "Admin@123456"))
	if err != nil {
		return "", err
	}

	admin = models.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		Email:        getEnv("ADMIN_EMAIL", "admin@smartspend.io"),
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		return "", err
	}

	log.Printf("✅ Admin user seeded: %s", admin.Email)
	return admin.ID, nil
}

// seedDefaultCategories seeds the shared category set every user sees.
func (s *Seeder) seedDefaultCategories(adminID string) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("is_default = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		name   string
		txType string
	}{
		{"Salary", models.TypeIncome},
		{"Other Income", models.TypeIncome},
		{"Groceries", models.TypeExpense},
		{"Rent", models.TypeExpense},
		{"Utilities", models.TypeExpense},
		{"Transport", models.TypeExpense},
		{"Entertainment", models.TypeExpense},
		{"Health", models.TypeExpense},
	}

	for _, d := range defaults {
		category := &models.Category{
			ID:              uuid.New().String(),
			Name:            d.name,
			TransactionType: d.txType,
			IsDefault:       true,
			CreatedBy:       adminID,
		}
		if err := s.db.Create(category).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d default categories", len(defaults))
	return nil
}
