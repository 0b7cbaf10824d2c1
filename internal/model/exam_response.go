package model

// ExamResponse records what a student selected for one question and how
// it was graded. One row per (user, exam, question), written together
// with the ExamResult and never mutated afterwards. SelectedOption is
// nil for questions the student left unanswered.
// swagger:model ExamResponse
type ExamResponse struct {
	BaseModel
	UserID         uint    `gorm:"uniqueIndex:idx_response_user_exam_question;not null" json:"userId"`
	ExamID         uint    `gorm:"uniqueIndex:idx_response_user_exam_question;not null" json:"examId"`
	QuestionID     uint    `gorm:"uniqueIndex:idx_response_user_exam_question;not null" json:"questionId"`
	SelectedOption *string `gorm:"size:1" json:"selectedOption"`
	IsCorrect      bool    `gorm:"not null" json:"isCorrect"`
	PointsEarned   int     `gorm:"default:0" json:"pointsEarned"`

	Question *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

func (ExamResponse) TableName() string {
	return "exam_responses"
}
