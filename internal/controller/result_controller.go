package controller

import (
	"errors"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

// MyExams godoc
// @Summary List my assigned exams
// @Description Exams assigned to the authenticated student, with completion state
// @Tags results
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.AssignedExam} "Success"
// @Router /api/my/exams [get]
func (c *ResultController) MyExams(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	exams, err := c.ResultService.MyExams(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, exams)
}

// MyResults godoc
// @Summary List my results
// @Tags results
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ExamResult} "Success"
// @Router /api/my/results [get]
func (c *ResultController) MyResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.ResultService.MyResults(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, results)
}

// MyResultDetail godoc
// @Summary My result for one exam
// @Description Full breakdown of a completed attempt, including correct options and explanations
// @Tags results
// @Produce  json
// @Security ApiKeyAuth
// @Param   examId path int true "Exam ID"
// @Success 200 {object} util.Response{data=service.ResultDetail} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/my/results/{examId} [get]
func (c *ResultController) MyResultDetail(ctx *gin.Context) {
	examID, ok := uintParam(ctx, "examId")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.ResultService.Detail(claims.UserID, examID)
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, detail)
}

// ListResults godoc
// @Summary List results
// @Description Paginated result list with optional exam, user and status filters
// @Tags results
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Param   examId query int false "Filter by exam"
// @Param   userId query int false "Filter by user"
// @Param   status query string false "Filter by status" Enums(passed, failed)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/admin/results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	page, limit := pagination(ctx)

	examID, _ := strconv.ParseUint(ctx.DefaultQuery("examId", "0"), 10, 32)
	userID, _ := strconv.ParseUint(ctx.DefaultQuery("userId", "0"), 10, 32)
	status := model.ResultStatus(ctx.Query("status"))

	results, total, err := c.ResultService.List(page, limit, uint(examID), uint(userID), status)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  results,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// ListExamResults godoc
// @Summary List one exam's results
// @Tags results
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam ID"
// @Success 200 {object} util.Response{data=[]model.ExamResult} "Success"
// @Failure 404 {object} util.Response "Exam not found"
// @Router /api/admin/exams/{id}/results [get]
func (c *ResultController) ListExamResults(ctx *gin.Context) {
	examID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	results, err := c.ResultService.ListByExam(examID)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, results)
}

// StudentResultDetail godoc
// @Summary One student's result for one exam
// @Tags results
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "User ID"
// @Param   examId path int true "Exam ID"
// @Success 200 {object} util.Response{data=service.ResultDetail} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/users/{id}/results/{examId} [get]
func (c *ResultController) StudentResultDetail(ctx *gin.Context) {
	userID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}
	examID, ok := uintParam(ctx, "examId")
	if !ok {
		return
	}

	detail, err := c.ResultService.Detail(userID, examID)
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, detail)
}
