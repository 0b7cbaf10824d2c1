package model

import "time"

// swagger:model Exam
type Exam struct {
	BaseModel
	Title        string `gorm:"size:200;not null" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	Instructions string `gorm:"type:text" json:"instructions"`
	Duration     int    `gorm:"not null" json:"duration"` // Minutes
	// Denormalized question count, kept in sync by the question service.
	TotalQuestions int        `gorm:"default:0" json:"totalQuestions"`
	PassingScore   int        `gorm:"default:70" json:"passingScore"` // Percent, 0-100, inclusive threshold
	IsActive       bool       `gorm:"default:true" json:"isActive"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}
