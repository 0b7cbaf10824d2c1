package service

import (
	"errors"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo       *repository.UserRepository
	AssignmentRepo *repository.AssignmentRepository
	ExamRepo       *repository.ExamRepository
}

func NewUserService(userRepo *repository.UserRepository, assignmentRepo *repository.AssignmentRepository, examRepo *repository.ExamRepository) *UserService {
	return &UserService{UserRepo: userRepo, AssignmentRepo: assignmentRepo, ExamRepo: examRepo}
}

func (s *UserService) List(page, limit int, search string, role model.UserRole) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit, search, role)
}

func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type UserUpdateReq struct {
	Name     *string         `json:"name"`
	Email    *string         `json:"email"`
	Role     *model.UserRole `json:"role"`
	IsActive *bool           `json:"isActive"`
}

func (s *UserService) Update(id uint, req UserUpdateReq) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.UserRepo.FindByEmail(*req.Email); err == nil {
			return nil, util.ErrEmailRegistered
		}
		user.Email = *req.Email
	}
	if req.Role != nil {
		if *req.Role != model.Student && *req.Role != model.Admin {
			return nil, util.NewValidationError("role must be admin or student")
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.UserRepo.Delete(id)
}

func (s *UserService) ListAssignments(userID uint) ([]model.ExamAssignment, error) {
	if _, err := s.Get(userID); err != nil {
		return nil, err
	}
	return s.AssignmentRepo.ListByUser(userID)
}

// AssignExams authorizes one student for each of the given exams, the
// user-centric counterpart of ExamService.AssignUsers.
func (s *UserService) AssignExams(userID uint, examIDs []uint, assignedBy uint) error {
	if len(examIDs) == 0 {
		return util.NewValidationError("examIds must not be empty")
	}

	users, err := s.UserRepo.FindActiveStudents([]uint{userID})
	if err != nil {
		return err
	}
	if len(users) != 1 {
		return util.NewValidationError("user not found, inactive, or not a student")
	}

	for _, examID := range examIDs {
		if _, err := s.ExamRepo.FindByID(examID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrExamNotFound
			}
			return err
		}
	}

	for _, examID := range examIDs {
		if err := s.AssignmentRepo.Assign(examID, []uint{userID}, assignedBy); err != nil {
			return err
		}
	}
	return nil
}

func (s *UserService) UnassignExams(userID uint, examIDs []uint) error {
	if _, err := s.Get(userID); err != nil {
		return err
	}
	for _, examID := range examIDs {
		if err := s.AssignmentRepo.Unassign(examID, []uint{userID}); err != nil {
			return err
		}
	}
	return nil
}
