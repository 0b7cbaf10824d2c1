package controller

import (
	"errors"
	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// CreateExam godoc
// @Summary Create an exam
// @Tags exams
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ExamReq true "Exam details"
// @Success 201 {object} util.Response{data=model.Exam} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/admin/exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req service.ExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.Create(req)
	if err != nil {
		if util.IsValidationError(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, exam)
}

// ListExams godoc
// @Summary List exams
// @Description Paginated exam list with question and assignment counts
// @Tags exams
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Param   search query string false "Match against title"
// @Param   isActive query bool false "Filter by active flag"
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/admin/exams [get]
func (c *ExamController) ListExams(ctx *gin.Context) {
	page, limit := pagination(ctx)
	search := ctx.Query("search")

	var isActive *bool
	if raw := ctx.Query("isActive"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			util.BadRequest(ctx, "invalid isActive")
			return
		}
		isActive = &v
	}

	exams, total, err := c.ExamService.List(page, limit, search, isActive)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  exams,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetExam godoc
// @Summary Get an exam
// @Tags exams
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam ID"
// @Success 200 {object} util.Response{data=model.Exam} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/exams/{id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	exam, err := c.ExamService.Get(id)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, exam)
}

// UpdateExam godoc
// @Summary Update an exam
// @Description Partially updates exam metadata; only provided fields change
// @Tags exams
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam ID"
// @Param   body body service.ExamReq true "Fields to update"
// @Success 200 {object} util.Response{data=model.Exam} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/exams/{id} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req service.ExamReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx, err.Error())
		case util.IsValidationError(err):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, exam)
}

// DeleteExam godoc
// @Summary Delete an exam
// @Description Deactivates the exam; refused once results exist
// @Tags exams
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Failure 409 {object} util.Response "Exam has results"
// @Router /api/admin/exams/{id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.ExamService.Delete(id); err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrExamHasResults):
			util.Error(ctx, 409, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// swagger:model AssignRequest
type AssignRequest struct {
	UserIDs []uint `json:"userIds" binding:"required"`
}

// AssignExam godoc
// @Summary Assign an exam to students
// @Description Authorizes the listed students for the exam; existing assignments are kept
// @Tags exams
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam ID"
// @Param   body body AssignRequest true "Student IDs"
// @Success 200 {object} util.Response "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/exams/{id}/assign [post]
func (c *ExamController) AssignExam(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req AssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ExamService.AssignUsers(id, req.UserIDs, claims.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx, err.Error())
		case util.IsValidationError(err):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// UnassignExam godoc
// @Summary Remove exam assignments
// @Tags exams
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam ID"
// @Param   body body AssignRequest true "Student IDs"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/exams/{id}/unassign [post]
func (c *ExamController) UnassignExam(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req AssignRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ExamService.UnassignUsers(id, req.UserIDs); err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// ListExamAssignments godoc
// @Summary List an exam's assignments
// @Tags exams
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam ID"
// @Success 200 {object} util.Response{data=[]model.ExamAssignment} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/exams/{id}/assignments [get]
func (c *ExamController) ListExamAssignments(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	assignments, err := c.ExamService.ListAssignments(id)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, assignments)
}
