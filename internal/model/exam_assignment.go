package model

import "time"

// ExamAssignment authorizes one student to take one exam. Assignment is
// a precondition for both starting a session and submitting.
// swagger:model ExamAssignment
type ExamAssignment struct {
	BaseModel
	UserID     uint      `gorm:"uniqueIndex:idx_assignment_user_exam;not null" json:"userId"`
	ExamID     uint      `gorm:"uniqueIndex:idx_assignment_user_exam;not null" json:"examId"`
	AssignedAt time.Time `gorm:"not null" json:"assignedAt"`
	AssignedBy *uint     `json:"assignedBy,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Exam *Exam `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
}

func (ExamAssignment) TableName() string {
	return "exam_assignments"
}
