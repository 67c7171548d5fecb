package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/aida-nabila/code-map/internal/models"
)

type FollowUpRepository interface {
	CreateBatch(answers []*models.FollowUpAnswer) error
	FindByUserTest(userTestID int) ([]models.FollowUpAnswer, error)
}

type followUpRepository struct {
	db *gorm.DB
}

func NewFollowUpRepository(db *gorm.DB) FollowUpRepository {
	return &followUpRepository{db: db}
}

// CreateBatch inserts all answers in one transaction; a failed insert
// rolls back every row.
func (r *followUpRepository) CreateBatch(answers []*models.FollowUpAnswer) error {
	if len(answers) == 0 {
		return nil
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, a := range answers {
			if err := tx.Create(a).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save follow-up answers: %w", err)
	}

	return nil
}

// FindByUserTest implements FollowUpRepository.
func (r *followUpRepository) FindByUserTest(userTestID int) ([]models.FollowUpAnswer, error) {
	var answers []models.FollowUpAnswer
	err := r.db.
		Where("user_test_id = ?", userTestID).
		Order("id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find follow-up answers: %w", err)
	}

	return answers, nil
}
