package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"
	"exam_portal_backend/pkg/database"
	"exam_portal_backend/pkg/logger"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	// A single connection keeps the in-memory database alive and
	// serializes writers.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newSessionService(db *gorm.DB) *ExamSessionService {
	return NewExamSessionService(
		repository.NewExamRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewResultRepository(db),
		nil,
	)
}

func createStudent(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:      "Student",
		Email:     email,
		Password:  "hashed",
		Role:      model.Student,
		IsActive:  true,
		LastLogin: time.Now(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createExam(t *testing.T, db *gorm.DB, passingScore int, active bool) *model.Exam {
	t.Helper()
	exam := &model.Exam{
		Title:        "Midterm",
		Duration:     30,
		PassingScore: passingScore,
		IsActive:     active,
	}
	if err := db.Create(exam).Error; err != nil {
		t.Fatalf("create exam: %v", err)
	}
	return exam
}

func createQuestion(t *testing.T, db *gorm.DB, examID uint, correct string, points int) *model.Question {
	t.Helper()
	q := &model.Question{
		ExamID:        examID,
		QuestionText:  "What does it print?",
		OptionA:       "1",
		OptionB:       "2",
		OptionC:       "3",
		OptionD:       "4",
		CorrectOption: correct,
		Points:        points,
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return q
}

func assignExam(t *testing.T, db *gorm.DB, userID, examID uint) {
	t.Helper()
	a := &model.ExamAssignment{UserID: userID, ExamID: examID, AssignedAt: time.Now()}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("assign exam: %v", err)
	}
}

func TestStartSessionNotAssigned(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	user := createStudent(t, db, "a@example.com")
	exam := createExam(t, db, 70, true)

	_, err := svc.StartSession(context.Background(), user.ID, exam.ID)
	if !errors.Is(err, util.ErrNotAssigned) {
		t.Fatalf("err = %v, want ErrNotAssigned", err)
	}
}

func TestStartSessionInactiveExam(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	user := createStudent(t, db, "a@example.com")
	exam := createExam(t, db, 70, false)
	assignExam(t, db, user.ID, exam.ID)

	_, err := svc.StartSession(context.Background(), user.ID, exam.ID)
	if !errors.Is(err, util.ErrExamInactive) {
		t.Fatalf("err = %v, want ErrExamInactive", err)
	}
}

func TestStartSessionAlreadyCompleted(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	user := createStudent(t, db, "a@example.com")
	exam := createExam(t, db, 70, true)
	assignExam(t, db, user.ID, exam.ID)
	createQuestion(t, db, exam.ID, "A", 1)

	if _, err := svc.Submit(context.Background(), user.ID, exam.ID, SubmitRequest{Answers: []SubmittedAnswer{}}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err := svc.StartSession(context.Background(), user.ID, exam.ID)
	if !errors.Is(err, util.ErrAlreadyCompleted) {
		t.Fatalf("err = %v, want ErrAlreadyCompleted", err)
	}
}

func TestStartSessionHidesAnswerData(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	user := createStudent(t, db, "a@example.com")
	exam := createExam(t, db, 70, true)
	assignExam(t, db, user.ID, exam.ID)

	q := createQuestion(t, db, exam.ID, "B", 2)
	q.Explanation = "Because integer division truncates."
	if err := db.Save(q).Error; err != nil {
		t.Fatalf("save question: %v", err)
	}
	createQuestion(t, db, exam.ID, "D", 1)

	payload, err := svc.StartSession(context.Background(), user.ID, exam.ID)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	if len(payload.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(payload.Questions))
	}
	if payload.Questions[0].ID > payload.Questions[1].ID {
		t.Errorf("questions not ordered by id: %d before %d", payload.Questions[0].ID, payload.Questions[1].ID)
	}
	if payload.Exam.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %d, want 2", payload.Exam.TotalQuestions)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	body := strings.ToLower(string(raw))
	if strings.Contains(body, "correctoption") {
		t.Error("session payload leaks the correct option")
	}
	if strings.Contains(body, "explanation") {
		t.Error("session payload leaks the explanation")
	}
}

func TestSubmitGradesAndPersists(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	user := createStudent(t, db, "a@example.com")
	exam := createExam(t, db, 50, true)
	assignExam(t, db, user.ID, exam.ID)

	q1 := createQuestion(t, db, exam.ID, "A", 1)
	q2 := createQuestion(t, db, exam.ID, "B", 1)
	q3 := createQuestion(t, db, exam.ID, "C", 2)

	a := "A"
	wrong := "D"
	result, err := svc.Submit(context.Background(), user.ID, exam.ID, SubmitRequest{
		Answers: []SubmittedAnswer{
			{QuestionID: q1.ID, SelectedOption: &a},
			{QuestionID: q2.ID, SelectedOption: &wrong},
			// q3 left unanswered
		},
		TimeTaken: 120,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if result.TotalQuestions != 3 || result.CorrectAnswers != 1 {
		t.Errorf("got %d/%d correct, want 1/3", result.CorrectAnswers, result.TotalQuestions)
	}
	if result.TotalPoints != 4 || result.EarnedPoints != 1 {
		t.Errorf("points = %d/%d, want 1/4", result.EarnedPoints, result.TotalPoints)
	}
	if result.Score != 25 {
		t.Errorf("score = %v, want 25", result.Score)
	}
	if result.IsPassed || result.Status != model.StatusFailed {
		t.Errorf("got passed=%v status=%s, want failed", result.IsPassed, result.Status)
	}
	if result.TimeTaken != 120 {
		t.Errorf("timeTaken = %d, want 120", result.TimeTaken)
	}

	// One response row per question, including the unanswered one.
	var responses []model.ExamResponse
	if err := db.Where("user_id = ? AND exam_id = ?", user.ID, exam.ID).Order("question_id ASC").Find(&responses).Error; err != nil {
		t.Fatalf("load responses: %v", err)
	}
	if len(responses) != 3 {
		t.Fatalf("responses = %d, want 3", len(responses))
	}
	if responses[2].QuestionID != q3.ID || responses[2].SelectedOption != nil {
		t.Errorf("unanswered question recorded as %+v", responses[2])
	}
	if !responses[0].IsCorrect || responses[0].PointsEarned != 1 {
		t.Errorf("correct answer recorded as %+v", responses[0])
	}
}

func TestSubmitScoreAtThresholdPasses(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	user := createStudent(t, db, "a@example.com")
	exam := createExam(t, db, 50, true)
	assignExam(t, db, user.ID, exam.ID)

	q1 := createQuestion(t, db, exam.ID, "A", 1)
	createQuestion(t, db, exam.ID, "B", 1)

	a := "A"
	result, err := svc.Submit(context.Background(), user.ID, exam.ID, SubmitRequest{
		Answers: []SubmittedAnswer{{QuestionID: q1.ID, SelectedOption: &a}},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if result.Score != 50 {
		t.Fatalf("score = %v, want 50", result.Score)
	}
	if !result.IsPassed || result.Status != model.StatusPassed {
		t.Errorf("score equal to the passing score must pass, got passed=%v", result.IsPassed)
	}
}

func TestSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	user := createStudent(t, db, "a@example.com")
	exam := createExam(t, db, 70, true)
	assignExam(t, db, user.ID, exam.ID)
	q := createQuestion(t, db, exam.ID, "A", 1)

	bad := "E"
	_, err := svc.Submit(context.Background(), user.ID, exam.ID, SubmitRequest{
		Answers: []SubmittedAnswer{{QuestionID: q.ID, SelectedOption: &bad}},
	})
	if !util.IsValidationError(err) {
		t.Errorf("invalid option: err = %v, want validation error", err)
	}

	_, err = svc.Submit(context.Background(), user.ID, exam.ID, SubmitRequest{
		Answers:   []SubmittedAnswer{},
		TimeTaken: -1,
	})
	if !util.IsValidationError(err) {
		t.Errorf("negative timeTaken: err = %v, want validation error", err)
	}
}

func TestSubmitIgnoresUnknownQuestionIDs(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	user := createStudent(t, db, "a@example.com")
	exam := createExam(t, db, 70, true)
	assignExam(t, db, user.ID, exam.ID)
	q := createQuestion(t, db, exam.ID, "A", 1)

	a := "A"
	result, err := svc.Submit(context.Background(), user.ID, exam.ID, SubmitRequest{
		Answers: []SubmittedAnswer{
			{QuestionID: q.ID, SelectedOption: &a},
			{QuestionID: 9999, SelectedOption: &a},
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Score != 100 || result.TotalQuestions != 1 {
		t.Errorf("score = %v totalQuestions = %d, want 100 and 1", result.Score, result.TotalQuestions)
	}
}

func TestSubmitSecondAttemptRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	user := createStudent(t, db, "a@example.com")
	exam := createExam(t, db, 70, true)
	assignExam(t, db, user.ID, exam.ID)
	createQuestion(t, db, exam.ID, "A", 1)

	if _, err := svc.Submit(context.Background(), user.ID, exam.ID, SubmitRequest{Answers: []SubmittedAnswer{}}); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	_, err := svc.Submit(context.Background(), user.ID, exam.ID, SubmitRequest{Answers: []SubmittedAnswer{}})
	if !errors.Is(err, util.ErrAlreadyCompleted) {
		t.Fatalf("second submit: err = %v, want ErrAlreadyCompleted", err)
	}

	var count int64
	db.Model(&model.ExamResult{}).Where("user_id = ? AND exam_id = ?", user.ID, exam.ID).Count(&count)
	if count != 1 {
		t.Fatalf("result rows = %d, want 1", count)
	}
}

func TestSubmitConcurrentDoubleSubmit(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	user := createStudent(t, db, "a@example.com")
	exam := createExam(t, db, 70, true)
	assignExam(t, db, user.ID, exam.ID)
	createQuestion(t, db, exam.ID, "A", 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Submit(context.Background(), user.ID, exam.ID, SubmitRequest{Answers: []SubmittedAnswer{}})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, util.ErrAlreadyCompleted):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("successful submissions = %d, want exactly 1", succeeded)
	}

	var count int64
	db.Model(&model.ExamResult{}).Where("user_id = ? AND exam_id = ?", user.ID, exam.ID).Count(&count)
	if count != 1 {
		t.Fatalf("result rows = %d, want 1", count)
	}
}

func TestSubmitLateSubmissionAccepted(t *testing.T) {
	db := newTestDB(t)
	svc := newSessionService(db)
	user := createStudent(t, db, "a@example.com")
	exam := createExam(t, db, 70, true)
	assignExam(t, db, user.ID, exam.ID)
	q := createQuestion(t, db, exam.ID, "A", 1)

	// Duration is advisory; the server accepts submissions whose
	// reported time exceeds it.
	a := "A"
	result, err := svc.Submit(context.Background(), user.ID, exam.ID, SubmitRequest{
		Answers:   []SubmittedAnswer{{QuestionID: q.ID, SelectedOption: &a}},
		TimeTaken: exam.Duration*60 + 300,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.IsPassed {
		t.Errorf("late submission graded wrong: %+v", result)
	}
}
