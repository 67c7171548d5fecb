package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aida-nabila/code-map/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type UserTestRepository interface {
	Create(test *models.UserTest) error
	FindByID(id int) (*models.UserTest, error)
}

type userTestRepository struct {
	db *gorm.DB
}

func NewUserTestRepository(db *gorm.DB) UserTestRepository {
	return &userTestRepository{db: db}
}

// Create implements UserTestRepository.
func (r *userTestRepository) Create(test *models.UserTest) error {
	if err := r.db.Create(test).Error; err != nil {
		return fmt.Errorf("failed to create user test: %w", err)
	}

	return nil
}

// FindByID implements UserTestRepository.
func (r *userTestRepository) FindByID(id int) (*models.UserTest, error) {
	var test models.UserTest
	if err := r.db.Where("id = ?", id).First(&test).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user test %d: %w", id, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find user test: %w", err)
	}

	return &test, nil
}
