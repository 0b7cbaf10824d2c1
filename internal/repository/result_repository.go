package repository

import (
	"exam_portal_backend/internal/model"

	"gorm.io/gorm"
)

// ResultRepository is the durable store for completed attempts. The
// unique index on exam_results(user_id, exam_id) is the arbiter between
// concurrent submissions: of two racing CreateWithResponses calls only
// one commits, the other fails with gorm.ErrDuplicatedKey.
type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) Exists(userID, examID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ExamResult{}).
		Where("user_id = ? AND exam_id = ?", userID, examID).
		Count(&count).Error
	return count > 0, err
}

// CreateWithResponses writes the result row and its per-question
// responses in one transaction: either all rows commit or none do.
func (r *ResultRepository) CreateWithResponses(result *model.ExamResult, responses []model.ExamResponse) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		if len(responses) > 0 {
			if err := tx.Create(&responses).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ResultRepository) FindByUserAndExam(userID, examID uint) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.Preload("Exam").
		Where("user_id = ? AND exam_id = ?", userID, examID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) FindByUser(userID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Preload("Exam").
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) FindByExam(examID uint) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Preload("User").
		Where("exam_id = ?", examID).
		Order("submitted_at DESC").
		Find(&results).Error
	return results, err
}

func (r *ResultRepository) List(page, limit int, examID, userID uint, status model.ResultStatus) ([]model.ExamResult, int64, error) {
	query := r.DB.Model(&model.ExamResult{})
	if examID != 0 {
		query = query.Where("exam_id = ?", examID)
	}
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []model.ExamResult
	offset := (page - 1) * limit
	err := query.Preload("User").Preload("Exam").
		Order("submitted_at DESC").
		Offset(offset).Limit(limit).
		Find(&results).Error
	return results, total, err
}

// ListResponses returns the per-question records of one attempt joined
// with their questions, in question id order.
func (r *ResultRepository) ListResponses(userID, examID uint) ([]model.ExamResponse, error) {
	var responses []model.ExamResponse
	err := r.DB.Preload("Question").
		Where("user_id = ? AND exam_id = ?", userID, examID).
		Order("question_id ASC").
		Find(&responses).Error
	return responses, err
}
