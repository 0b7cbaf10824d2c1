package repository

import (
	"exam_portal_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

// Assign creates assignment rows for the given users, silently skipping
// pairs that already exist.
func (r *AssignmentRepository) Assign(examID uint, userIDs []uint, assignedBy uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	rows := make([]model.ExamAssignment, 0, len(userIDs))
	now := time.Now()
	for _, uid := range userIDs {
		by := assignedBy
		rows = append(rows, model.ExamAssignment{
			UserID:     uid,
			ExamID:     examID,
			AssignedAt: now,
			AssignedBy: &by,
		})
	}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (r *AssignmentRepository) Unassign(examID uint, userIDs []uint) error {
	return r.DB.Where("exam_id = ? AND user_id IN ?", examID, userIDs).
		Delete(&model.ExamAssignment{}).Error
}

func (r *AssignmentRepository) FindByUserAndExam(userID, examID uint) (*model.ExamAssignment, error) {
	var a model.ExamAssignment
	err := r.DB.Where("user_id = ? AND exam_id = ?", userID, examID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssignmentRepository) ListByUser(userID uint) ([]model.ExamAssignment, error) {
	var rows []model.ExamAssignment
	err := r.DB.Preload("Exam").Where("user_id = ?", userID).Order("assigned_at DESC").Find(&rows).Error
	return rows, err
}

func (r *AssignmentRepository) ListByExam(examID uint) ([]model.ExamAssignment, error) {
	var rows []model.ExamAssignment
	err := r.DB.Preload("User").Where("exam_id = ?", examID).Order("assigned_at DESC").Find(&rows).Error
	return rows, err
}
