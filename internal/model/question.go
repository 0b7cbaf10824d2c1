package model

const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

func IsValidOption(opt string) bool {
	switch opt {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// Question is a four-option multiple choice question. CorrectOption and
// Explanation are answer data and must never reach a student who has
// not completed the exam.
// swagger:model Question
type Question struct {
	BaseModel
	ExamID        uint   `gorm:"index;not null" json:"examId"`
	QuestionText  string `gorm:"type:text;not null" json:"questionText"`
	OptionA       string `gorm:"type:text;not null" json:"optionA"`
	OptionB       string `gorm:"type:text;not null" json:"optionB"`
	OptionC       string `gorm:"type:text;not null" json:"optionC"`
	OptionD       string `gorm:"type:text;not null" json:"optionD"`
	CorrectOption string `gorm:"size:1;not null" json:"correctOption"`
	Points        int    `gorm:"default:1" json:"points"`
	Explanation   string `gorm:"type:text" json:"explanation"`
}

func (Question) TableName() string {
	return "questions"
}
