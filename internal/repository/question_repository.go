package repository

import (
	"exam_portal_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return bumpQuestionCount(tx, question.ExamID, 1)
	})
}

func (r *QuestionRepository) BulkCreate(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	examID := questions[0].ExamID
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}
		return bumpQuestionCount(tx, examID, len(questions))
	})
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

// ListByExam returns the exam's questions in ascending id order. The
// attempt workflow depends on this ordering being stable.
func (r *QuestionRepository) ListByExam(examID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("exam_id = ?", examID).Order("id ASC").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	q, err := r.FindByID(id)
	if err != nil {
		return err
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Question{}, id).Error; err != nil {
			return err
		}
		return bumpQuestionCount(tx, q.ExamID, -1)
	})
}

func bumpQuestionCount(tx *gorm.DB, examID uint, delta int) error {
	return tx.Model(&model.Exam{}).
		Where("id = ?", examID).
		Update("total_questions", gorm.Expr("total_questions + ?", delta)).
		Error
}
