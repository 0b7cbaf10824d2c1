package service

import (
	"exam_portal_backend/internal/model"
	"math"
	"testing"
)

func opt(s string) *string { return &s }

func question(id uint, correct string, points int) model.Question {
	q := model.Question{
		QuestionText:  "q",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectOption: correct,
		Points:        points,
	}
	q.ID = id
	return q
}

func TestGradeAnswers(t *testing.T) {
	tests := []struct {
		name        string
		questions   []model.Question
		answers     []SubmittedAnswer
		wantScore   float64
		wantCorrect int
		wantEarned  int
		wantTotal   int
	}{
		{
			name: "half right lands exactly on fifty",
			questions: []model.Question{
				question(1, "A", 1),
				question(2, "B", 1),
			},
			answers: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: opt("A")},
				{QuestionID: 2, SelectedOption: opt("C")},
			},
			wantScore:   50,
			wantCorrect: 1,
			wantEarned:  1,
			wantTotal:   2,
		},
		{
			name: "all wrong scores zero",
			questions: []model.Question{
				question(1, "A", 2),
				question(2, "B", 3),
			},
			answers: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: opt("B")},
				{QuestionID: 2, SelectedOption: opt("A")},
			},
			wantScore:   0,
			wantCorrect: 0,
			wantEarned:  0,
			wantTotal:   5,
		},
		{
			name: "all correct scores hundred",
			questions: []model.Question{
				question(1, "C", 2),
				question(2, "D", 3),
			},
			answers: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: opt("C")},
				{QuestionID: 2, SelectedOption: opt("D")},
			},
			wantScore:   100,
			wantCorrect: 2,
			wantEarned:  5,
			wantTotal:   5,
		},
		{
			name: "unanswered questions still count towards the total",
			questions: []model.Question{
				question(1, "A", 1),
				question(2, "B", 1),
				question(3, "C", 2),
			},
			answers: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: opt("A")},
			},
			wantScore:   25,
			wantCorrect: 1,
			wantEarned:  1,
			wantTotal:   4,
		},
		{
			name: "nil selection is never correct",
			questions: []model.Question{
				question(1, "A", 1),
			},
			answers: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: nil},
			},
			wantScore:   0,
			wantCorrect: 0,
			wantEarned:  0,
			wantTotal:   1,
		},
		{
			name: "answers for unknown question ids are ignored",
			questions: []model.Question{
				question(1, "A", 1),
			},
			answers: []SubmittedAnswer{
				{QuestionID: 1, SelectedOption: opt("A")},
				{QuestionID: 99, SelectedOption: opt("B")},
			},
			wantScore:   100,
			wantCorrect: 1,
			wantEarned:  1,
			wantTotal:   1,
		},
		{
			name:      "no questions yields zero score",
			questions: nil,
			answers:   nil,
			wantScore: 0,
		},
		{
			name: "weighted questions shift the percentage",
			questions: []model.Question{
				question(1, "A", 1),
				question(2, "B", 3),
			},
			answers: []SubmittedAnswer{
				{QuestionID: 2, SelectedOption: opt("B")},
			},
			wantScore:   75,
			wantCorrect: 1,
			wantEarned:  3,
			wantTotal:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gradeAnswers(tt.questions, tt.answers)

			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("Score = %v, want %v", got.Score, tt.wantScore)
			}
			if got.CorrectAnswers != tt.wantCorrect {
				t.Errorf("CorrectAnswers = %d, want %d", got.CorrectAnswers, tt.wantCorrect)
			}
			if got.EarnedPoints != tt.wantEarned {
				t.Errorf("EarnedPoints = %d, want %d", got.EarnedPoints, tt.wantEarned)
			}
			if got.TotalPoints != tt.wantTotal {
				t.Errorf("TotalPoints = %d, want %d", got.TotalPoints, tt.wantTotal)
			}
			if got.TotalQuestions != len(tt.questions) {
				t.Errorf("TotalQuestions = %d, want %d", got.TotalQuestions, len(tt.questions))
			}
			if len(got.Graded) != len(tt.questions) {
				t.Errorf("len(Graded) = %d, want %d", len(got.Graded), len(tt.questions))
			}
		})
	}
}

func TestGradeAnswersDeterministic(t *testing.T) {
	questions := []model.Question{
		question(1, "A", 1),
		question(2, "B", 2),
		question(3, "C", 3),
	}
	answers := []SubmittedAnswer{
		{QuestionID: 3, SelectedOption: opt("C")},
		{QuestionID: 1, SelectedOption: opt("B")},
	}

	first := gradeAnswers(questions, answers)
	for i := 0; i < 10; i++ {
		got := gradeAnswers(questions, answers)
		if got.Score != first.Score || got.EarnedPoints != first.EarnedPoints {
			t.Fatalf("run %d: got score %v/%d, want %v/%d", i, got.Score, got.EarnedPoints, first.Score, first.EarnedPoints)
		}
		for j := range got.Graded {
			if got.Graded[j].QuestionID != first.Graded[j].QuestionID {
				t.Fatalf("run %d: graded order changed at %d", i, j)
			}
		}
	}
}

func TestGradeAnswersPreservesQuestionOrder(t *testing.T) {
	questions := []model.Question{
		question(5, "A", 1),
		question(7, "B", 1),
		question(9, "C", 1),
	}

	got := gradeAnswers(questions, nil)

	want := []uint{5, 7, 9}
	for i, g := range got.Graded {
		if g.QuestionID != want[i] {
			t.Errorf("Graded[%d].QuestionID = %d, want %d", i, g.QuestionID, want[i])
		}
	}
}
