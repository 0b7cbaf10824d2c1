package repository

import (
	"exam_portal_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.First(&exam, id).Error
	return &exam, err
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

// ExamListRow augments an exam with counts shown on the admin list.
type ExamListRow struct {
	model.Exam
	QuestionCount     int `json:"questionCount"`
	AssignedUserCount int `json:"assignedUserCount"`
}

func (r *ExamRepository) List(page, limit int, search string, isActive *bool) ([]ExamListRow, int64, error) {
	query := r.DB.Model(&model.Exam{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ExamListRow
	dbQuery := r.DB.Table("exams e").
		Select("e.*, " +
			"(SELECT COUNT(*) FROM questions q WHERE q.exam_id = e.id AND q.deleted_at IS NULL) as question_count, " +
			"(SELECT COUNT(*) FROM exam_assignments a WHERE a.exam_id = e.id AND a.deleted_at IS NULL) as assigned_user_count").
		Where("e.deleted_at IS NULL")
	if search != "" {
		like := "%" + search + "%"
		dbQuery = dbQuery.Where("e.title LIKE ? OR e.description LIKE ?", like, like)
	}
	if isActive != nil {
		dbQuery = dbQuery.Where("e.is_active = ?", *isActive)
	}

	offset := (page - 1) * limit
	err := dbQuery.Order("e.created_at DESC").Offset(offset).Limit(limit).Scan(&rows).Error
	return rows, total, err
}

func (r *ExamRepository) HasResults(examID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ExamResult{}).Where("exam_id = ?", examID).Count(&count).Error
	return count > 0, err
}

func (r *ExamRepository) Deactivate(examID uint) error {
	return r.DB.Model(&model.Exam{}).
		Where("id = ?", examID).
		Update("is_active", false).
		Error
}
