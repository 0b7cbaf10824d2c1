package service

import (
	"errors"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ExamService struct {
	ExamRepo       *repository.ExamRepository
	AssignmentRepo *repository.AssignmentRepository
	UserRepo       *repository.UserRepository
}

func NewExamService(examRepo *repository.ExamRepository, assignmentRepo *repository.AssignmentRepository, userRepo *repository.UserRepository) *ExamService {
	return &ExamService{
		ExamRepo:       examRepo,
		AssignmentRepo: assignmentRepo,
		UserRepo:       userRepo,
	}
}

type ExamReq struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Instructions *string    `json:"instructions"`
	Duration     *int       `json:"duration"`
	PassingScore *int       `json:"passingScore"`
	IsActive     *bool      `json:"isActive"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}

func validateExamReq(req ExamReq) error {
	if req.Title != nil && (len(*req.Title) < 3 || len(*req.Title) > 200) {
		return util.NewValidationError("title must be between 3 and 200 characters")
	}
	if req.Duration != nil && (*req.Duration < 1 || *req.Duration > 480) {
		return util.NewValidationError("duration must be between 1 and 480 minutes")
	}
	if req.PassingScore != nil && (*req.PassingScore < 0 || *req.PassingScore > 100) {
		return util.NewValidationError("passing score must be between 0 and 100")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return util.NewValidationError("end date must not be before start date")
	}
	return nil
}

func (s *ExamService) Create(req ExamReq) (*model.Exam, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, util.NewValidationError("title is required")
	}
	if req.Duration == nil {
		return nil, util.NewValidationError("duration is required")
	}
	if err := validateExamReq(req); err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Title:        *req.Title,
		Duration:     *req.Duration,
		PassingScore: 70,
		IsActive:     true,
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.Instructions != nil {
		exam.Instructions = *req.Instructions
	}
	if req.PassingScore != nil {
		exam.PassingScore = *req.PassingScore
	}
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}
	exam.StartDate = req.StartDate
	exam.EndDate = req.EndDate

	if err := s.ExamRepo.Create(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) Get(id uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) List(page, limit int, search string, isActive *bool) ([]repository.ExamListRow, int64, error) {
	return s.ExamRepo.List(page, limit, search, isActive)
}

func (s *ExamService) Update(id uint, req ExamReq) (*model.Exam, error) {
	exam, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := validateExamReq(req); err != nil {
		return nil, err
	}

	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.Instructions != nil {
		exam.Instructions = *req.Instructions
	}
	if req.Duration != nil {
		exam.Duration = *req.Duration
	}
	if req.PassingScore != nil {
		exam.PassingScore = *req.PassingScore
	}
	if req.IsActive != nil {
		exam.IsActive = *req.IsActive
	}
	if req.StartDate != nil {
		exam.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		exam.EndDate = req.EndDate
	}

	if err := s.ExamRepo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

// Delete deactivates the exam. Exams that already have results cannot
// be removed at all; the results reference them.
func (s *ExamService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	hasResults, err := s.ExamRepo.HasResults(id)
	if err != nil {
		return err
	}
	if hasResults {
		return util.ErrExamHasResults
	}

	return s.ExamRepo.Deactivate(id)
}

// AssignUsers authorizes the given students for the exam. All ids must
// refer to active students; duplicate assignments are skipped.
func (s *ExamService) AssignUsers(examID uint, userIDs []uint, assignedBy uint) error {
	if _, err := s.Get(examID); err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return util.NewValidationError("userIds must not be empty")
	}

	users, err := s.UserRepo.FindActiveStudents(userIDs)
	if err != nil {
		return err
	}
	if len(users) != len(userIDs) {
		return util.NewValidationError("some users not found, inactive, or not students")
	}

	return s.AssignmentRepo.Assign(examID, userIDs, assignedBy)
}

func (s *ExamService) UnassignUsers(examID uint, userIDs []uint) error {
	if _, err := s.Get(examID); err != nil {
		return err
	}
	return s.AssignmentRepo.Unassign(examID, userIDs)
}

func (s *ExamService) ListAssignments(examID uint) ([]model.ExamAssignment, error) {
	if _, err := s.Get(examID); err != nil {
		return nil, err
	}
	return s.AssignmentRepo.ListByExam(examID)
}
