package repository

import (
	"errors"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/pkg/database"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

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

func sampleResult(userID, examID uint) *model.ExamResult {
	return &model.ExamResult{
		UserID:         userID,
		ExamID:         examID,
		Score:          80,
		TotalQuestions: 5,
		CorrectAnswers: 4,
		TotalPoints:    5,
		EarnedPoints:   4,
		TimeTaken:      300,
		SubmittedAt:    time.Now(),
		Status:         model.StatusPassed,
		IsPassed:       true,
	}
}

func TestCreateWithResponsesEnforcesSingleAttempt(t *testing.T) {
	db := newTestDB(t)
	repo := NewResultRepository(db)

	if err := repo.CreateWithResponses(sampleResult(1, 1), nil); err != nil {
		t.Fatalf("first create: %v", err)
	}

	err := repo.CreateWithResponses(sampleResult(1, 1), nil)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("second create: err = %v, want gorm.ErrDuplicatedKey", err)
	}

	// Same user on another exam, and another user on the same exam, are
	// both fine.
	if err := repo.CreateWithResponses(sampleResult(1, 2), nil); err != nil {
		t.Errorf("same user, other exam: %v", err)
	}
	if err := repo.CreateWithResponses(sampleResult(2, 1), nil); err != nil {
		t.Errorf("other user, same exam: %v", err)
	}
}

func TestCreateWithResponsesIsAtomic(t *testing.T) {
	db := newTestDB(t)
	repo := NewResultRepository(db)

	// Two responses for the same question violate the response unique
	// index; the whole transaction, result row included, must roll back.
	responses := []model.ExamResponse{
		{UserID: 1, ExamID: 1, QuestionID: 1, IsCorrect: true, PointsEarned: 1},
		{UserID: 1, ExamID: 1, QuestionID: 1, IsCorrect: false},
	}

	if err := repo.CreateWithResponses(sampleResult(1, 1), responses); err == nil {
		t.Fatal("expected duplicate response rows to fail")
	}

	var resultCount, responseCount int64
	db.Model(&model.ExamResult{}).Count(&resultCount)
	db.Model(&model.ExamResponse{}).Count(&responseCount)
	if resultCount != 0 || responseCount != 0 {
		t.Fatalf("rows after rollback: results=%d responses=%d, want 0/0", resultCount, responseCount)
	}

	// The attempt is still open after the failed write.
	taken, err := repo.Exists(1, 1)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if taken {
		t.Error("failed submission must not consume the attempt")
	}
}

func TestExists(t *testing.T) {
	db := newTestDB(t)
	repo := NewResultRepository(db)

	taken, err := repo.Exists(1, 1)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if taken {
		t.Error("no result recorded yet")
	}

	if err := repo.CreateWithResponses(sampleResult(1, 1), nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	taken, err = repo.Exists(1, 1)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !taken {
		t.Error("result recorded but Exists reports false")
	}
}

func TestListResponsesOrderedByQuestion(t *testing.T) {
	db := newTestDB(t)
	repo := NewResultRepository(db)

	responses := []model.ExamResponse{
		{UserID: 1, ExamID: 1, QuestionID: 3},
		{UserID: 1, ExamID: 1, QuestionID: 1},
		{UserID: 1, ExamID: 1, QuestionID: 2},
	}
	if err := repo.CreateWithResponses(sampleResult(1, 1), responses); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := repo.ListResponses(1, 1)
	if err != nil {
		t.Fatalf("list responses: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	for i, want := range []uint{1, 2, 3} {
		if rows[i].QuestionID != want {
			t.Errorf("rows[%d].QuestionID = %d, want %d", i, rows[i].QuestionID, want)
		}
	}
}
