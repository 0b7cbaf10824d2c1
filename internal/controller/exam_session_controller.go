package controller

import (
	"errors"
	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamSessionController struct {
	SessionService *service.ExamSessionService
}

func NewExamSessionController(sessionService *service.ExamSessionService) *ExamSessionController {
	return &ExamSessionController{SessionService: sessionService}
}

// StartExam godoc
// @Summary Start taking an exam
// @Description Returns the exam with its questions stripped of answers. The student must be assigned, the exam active, and the attempt not yet used.
// @Tags exam-session
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam ID"
// @Success 200 {object} util.Response{data=service.SessionPayload} "Success"
// @Failure 400 {object} util.Response "Exam inactive or already taken"
// @Failure 404 {object} util.Response "Exam not found or not assigned"
// @Router /api/exams/{id}/take [get]
func (c *ExamSessionController) StartExam(ctx *gin.Context) {
	examID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	payload, err := c.SessionService.StartSession(ctx.Request.Context(), claims.UserID, examID)
	if err != nil {
		c.replyError(ctx, err)
		return
	}

	util.Success(ctx, payload)
}

// SubmitExam godoc
// @Summary Submit answers for an exam
// @Description Grades the submission against the exam's full question set and records the attempt. A student gets exactly one attempt per exam.
// @Tags exam-session
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam ID"
// @Param   body body service.SubmitRequest true "Answers"
// @Success 200 {object} util.Response{data=model.ExamResult} "Success"
// @Failure 400 {object} util.Response "Invalid submission or already taken"
// @Failure 404 {object} util.Response "Exam not found or not assigned"
// @Router /api/exams/{id}/submit [post]
func (c *ExamSessionController) SubmitExam(ctx *gin.Context) {
	examID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SessionService.Submit(ctx.Request.Context(), claims.UserID, examID, req)
	if err != nil {
		c.replyError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// Assignment is checked before existence, so a student probing an
// unassigned exam sees the same 404 as for one that does not exist.
func (c *ExamSessionController) replyError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrNotAssigned):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrExamInactive),
		errors.Is(err, util.ErrAlreadyCompleted):
		util.BadRequest(ctx, err.Error())
	case util.IsValidationError(err):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
