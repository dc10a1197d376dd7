package controller

import (
	"errors"
	"strconv"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/service"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	surveys *service.SurveyService
}

func NewSurveyController(surveys *service.SurveyService) *SurveyController {
	return &SurveyController{surveys: surveys}
}

type CreateSurveyRequest struct {
	TemplateID  string `json:"templateId" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Language    string `json:"language"`
}

// CreateSurvey godoc
// @Summary Register a survey run for a phone number
// @Router /api/surveys [post]
func (c *SurveyController) CreateSurvey(ctx *gin.Context) {
	var req CreateSurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	survey, err := c.surveys.Create(req.TemplateID, req.PhoneNumber, req.Language)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, survey)
}

// GetSurvey returns the survey with its recorded answers, call sessions
// and SMS log.
func (c *SurveyController) GetSurvey(ctx *gin.Context) {
	detail, err := c.surveys.Detail(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSurveyNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

func (c *SurveyController) ListSurveys(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))

	surveys, total, err := c.surveys.List(page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"items": surveys,
		"total": total,
		"page":  page,
	})
}

// DispatchSurvey starts the outbound call immediately instead of waiting
// for the scheduler sweep. Dispatch failure is reported to the caller.
func (c *SurveyController) DispatchSurvey(ctx *gin.Context) {
	result, err := c.surveys.Dispatch(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSurveyNotFound) {
			util.NotFound(ctx)
			return
		}
		util.BadGateway(ctx, err.Error())
		return
	}
	util.Success(ctx, result)
}

type SubmitAnswersRequest struct {
	// Answers maps question id to the respondent's value.
	Answers map[string]string `json:"answers" binding:"required"`
}

// SubmitAnswers records the answers collected during a call.
func (c *SurveyController) SubmitAnswers(ctx *gin.Context) {
	var req SubmitAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.surveys.SubmitAnswers(ctx.Param("id"), req.Answers); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, nil)
}
