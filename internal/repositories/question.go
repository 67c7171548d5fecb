package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aida-nabila/code-map/internal/models"
)

type QuestionRepository interface {
	CreateBatch(questions []*models.GeneratedQuestion) error
	FindByID(id int) (*models.GeneratedQuestion, error)
	FindByUserTest(userTestID int) ([]models.GeneratedQuestion, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// CreateBatch inserts all questions in one transaction; a failed insert
// rolls back every row.
func (r *questionRepository) CreateBatch(questions []*models.GeneratedQuestion) error {
	if len(questions) == 0 {
		return nil
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, q := range questions {
			if err := tx.Create(q).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save generated questions: %w", err)
	}

	return nil
}

// FindByID implements QuestionRepository.
func (r *questionRepository) FindByID(id int) (*models.GeneratedQuestion, error) {
	var question models.GeneratedQuestion
	if err := r.db.Where("id = ?", id).First(&question).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %d: %w", id, ErrNotFound)
		}

		return nil, fmt.Errorf("failed to find question: %w", err)
	}

	return &question, nil
}

// FindByUserTest implements QuestionRepository.
func (r *questionRepository) FindByUserTest(userTestID int) ([]models.GeneratedQuestion, error) {
	var questions []models.GeneratedQuestion
	err := r.db.
		Where("user_test_id = ?", userTestID).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find questions: %w", err)
	}

	return questions, nil
}
