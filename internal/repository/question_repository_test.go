package repository

import (
	"exam_portal_backend/internal/model"
	"testing"

	"gorm.io/gorm"
)

func testExam(t *testing.T, db *gorm.DB) *model.Exam {
	t.Helper()
	exam := &model.Exam{Title: "Quiz", Duration: 20, PassingScore: 70, IsActive: true}
	if err := db.Create(exam).Error; err != nil {
		t.Fatalf("create exam: %v", err)
	}
	return exam
}

func testQuestion(examID uint, correct string) model.Question {
	return model.Question{
		ExamID:        examID,
		QuestionText:  "q",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectOption: correct,
		Points:        1,
	}
}

func examQuestionCount(t *testing.T, db *gorm.DB, examID uint) int {
	t.Helper()
	var exam model.Exam
	if err := db.First(&exam, examID).Error; err != nil {
		t.Fatalf("load exam: %v", err)
	}
	return exam.TotalQuestions
}

func TestQuestionCountStaysInSync(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	exam := testExam(t, db)

	q := testQuestion(exam.ID, "A")
	if err := repo.Create(&q); err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := examQuestionCount(t, db, exam.ID); got != 1 {
		t.Errorf("after create: count = %d, want 1", got)
	}

	batch := []model.Question{
		testQuestion(exam.ID, "B"),
		testQuestion(exam.ID, "C"),
	}
	if err := repo.BulkCreate(batch); err != nil {
		t.Fatalf("bulk create: %v", err)
	}
	if got := examQuestionCount(t, db, exam.ID); got != 3 {
		t.Errorf("after bulk create: count = %d, want 3", got)
	}

	if err := repo.Delete(q.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := examQuestionCount(t, db, exam.ID); got != 2 {
		t.Errorf("after delete: count = %d, want 2", got)
	}
}

func TestListByExamOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuestionRepository(db)
	exam := testExam(t, db)

	for _, correct := range []string{"A", "B", "C"} {
		q := testQuestion(exam.ID, correct)
		if err := repo.Create(&q); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	qs, err := repo.ListByExam(exam.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("questions = %d, want 3", len(qs))
	}
	for i := 1; i < len(qs); i++ {
		if qs[i-1].ID >= qs[i].ID {
			t.Errorf("questions out of order: %d before %d", qs[i-1].ID, qs[i].ID)
		}
	}
}
