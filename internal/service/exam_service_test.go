package service

import (
	"errors"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newExamService(db *gorm.DB) *ExamService {
	return NewExamService(
		repository.NewExamRepository(db),
		repository.NewAssignmentRepository(db),
		repository.NewUserRepository(db),
	)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestExamCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(db)

	tests := []struct {
		name string
		req  ExamReq
	}{
		{"missing title", ExamReq{Duration: intPtr(30)}},
		{"missing duration", ExamReq{Title: strPtr("Final Exam")}},
		{"duration too long", ExamReq{Title: strPtr("Final Exam"), Duration: intPtr(481)}},
		{"duration zero", ExamReq{Title: strPtr("Final Exam"), Duration: intPtr(0)}},
		{"passing score out of range", ExamReq{Title: strPtr("Final Exam"), Duration: intPtr(30), PassingScore: intPtr(101)}},
		{"title too short", ExamReq{Title: strPtr("ab"), Duration: intPtr(30)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(tt.req); !util.IsValidationError(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestExamCreateDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(db)

	exam, err := svc.Create(ExamReq{Title: strPtr("Final Exam"), Duration: intPtr(60)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if exam.PassingScore != 70 {
		t.Errorf("PassingScore = %d, want default 70", exam.PassingScore)
	}
	if !exam.IsActive {
		t.Error("new exams default to active")
	}
}

func TestExamDeleteRefusedOnceResultsExist(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(db)
	user := createStudent(t, db, "a@example.com")
	exam := createExam(t, db, 70, true)

	result := &model.ExamResult{
		UserID:      user.ID,
		ExamID:      exam.ID,
		Score:       100,
		Status:      model.StatusPassed,
		IsPassed:    true,
		SubmittedAt: time.Now(),
	}
	if err := db.Create(result).Error; err != nil {
		t.Fatalf("create result: %v", err)
	}

	if err := svc.Delete(exam.ID); !errors.Is(err, util.ErrExamHasResults) {
		t.Fatalf("err = %v, want ErrExamHasResults", err)
	}
}

func TestExamDeleteDeactivates(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(db)
	exam := createExam(t, db, 70, true)

	if err := svc.Delete(exam.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := svc.Get(exam.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IsActive {
		t.Error("deleted exam still active")
	}
}

func TestAssignUsersRequiresActiveStudents(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(db)
	exam := createExam(t, db, 70, true)

	student := createStudent(t, db, "a@example.com")
	inactive := createStudent(t, db, "b@example.com")
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	err := svc.AssignUsers(exam.ID, []uint{student.ID, inactive.ID}, 1)
	if !util.IsValidationError(err) {
		t.Fatalf("err = %v, want validation error", err)
	}

	if err := svc.AssignUsers(exam.ID, []uint{student.ID}, 1); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// Re-assigning the same student is a no-op, not an error.
	if err := svc.AssignUsers(exam.ID, []uint{student.ID}, 1); err != nil {
		t.Fatalf("re-assign: %v", err)
	}

	assignments, err := svc.ListAssignments(exam.ID)
	if err != nil {
		t.Fatalf("list assignments: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("assignments = %d, want 1", len(assignments))
	}
}

func TestExamUpdatePartial(t *testing.T) {
	db := newTestDB(t)
	svc := newExamService(db)
	exam := createExam(t, db, 70, true)

	updated, err := svc.Update(exam.ID, ExamReq{PassingScore: intPtr(60)})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PassingScore != 60 {
		t.Errorf("PassingScore = %d, want 60", updated.PassingScore)
	}
	if updated.Title != exam.Title || updated.Duration != exam.Duration {
		t.Error("fields not in the request must not change")
	}
}
