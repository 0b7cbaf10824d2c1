package model

import "time"

type ResultStatus string

const (
	StatusPassed     ResultStatus = "passed"
	StatusFailed     ResultStatus = "failed"
	StatusIncomplete ResultStatus = "incomplete"
)

// ExamResult is the immutable outcome of one completed attempt.
// The unique (user_id, exam_id) index enforces at most one attempt per
// student per exam, including under concurrent submissions.
// swagger:model ExamResult
type ExamResult struct {
	BaseModel
	UserID uint `gorm:"uniqueIndex:idx_result_user_exam;not null" json:"userId"`
	ExamID uint `gorm:"uniqueIndex:idx_result_user_exam;not null" json:"examId"`
	// Percentage 0-100, stored unrounded.
	Score          float64      `gorm:"type:decimal(5,2);not null" json:"score"`
	TotalQuestions int          `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers int          `gorm:"not null" json:"correctAnswers"`
	TotalPoints    int          `gorm:"not null" json:"totalPoints"`
	EarnedPoints   int          `gorm:"not null" json:"earnedPoints"`
	TimeTaken      int          `gorm:"not null" json:"timeTaken"` // Seconds
	SubmittedAt    time.Time    `gorm:"not null" json:"submittedAt"`
	Status         ResultStatus `gorm:"size:20;not null" json:"status"`
	IsPassed       bool         `gorm:"not null" json:"isPassed"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Exam *Exam `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}
