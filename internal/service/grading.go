package service

import (
	"exam_portal_backend/internal/model"
)

// SubmittedAnswer is one entry of a submission. SelectedOption is nil
// when the student left the question blank.
type SubmittedAnswer struct {
	QuestionID     uint    `json:"questionId" binding:"required"`
	SelectedOption *string `json:"selectedOption,omitempty"`
}

type gradedQuestion struct {
	QuestionID     uint
	SelectedOption *string
	IsCorrect      bool
	PointsEarned   int
}

type gradeSummary struct {
	TotalQuestions int
	CorrectAnswers int
	TotalPoints    int
	EarnedPoints   int
	Score          float64
	Graded         []gradedQuestion
}

// gradeAnswers grades a submission against the exam's full question
// set. Every question contributes its points to TotalPoints whether or
// not it was answered, so skipping a question scores it as incorrect.
// Submitted ids that match no question are ignored. Pure function of
// its inputs; the Graded slice follows the question order.
func gradeAnswers(questions []model.Question, answers []SubmittedAnswer) gradeSummary {
	selected := make(map[uint]*string, len(answers))
	for _, a := range answers {
		selected[a.QuestionID] = a.SelectedOption
	}

	summary := gradeSummary{
		TotalQuestions: len(questions),
		Graded:         make([]gradedQuestion, 0, len(questions)),
	}

	for _, q := range questions {
		option := selected[q.ID]
		isCorrect := option != nil && *option == q.CorrectOption
		pointsEarned := 0
		if isCorrect {
			pointsEarned = q.Points
			summary.CorrectAnswers++
			summary.EarnedPoints += pointsEarned
		}
		summary.TotalPoints += q.Points

		summary.Graded = append(summary.Graded, gradedQuestion{
			QuestionID:     q.ID,
			SelectedOption: option,
			IsCorrect:      isCorrect,
			PointsEarned:   pointsEarned,
		})
	}

	if summary.TotalPoints > 0 {
		summary.Score = float64(summary.EarnedPoints) / float64(summary.TotalPoints) * 100
	}

	return summary
}
