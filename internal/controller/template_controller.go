package controller

import (
	"errors"
	"strconv"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/service"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type TemplateController struct {
	templates   *service.TemplateService
	translation *service.TranslationService
	stats       *service.StatsService
}

func NewTemplateController(templates *service.TemplateService, translation *service.TranslationService, stats *service.StatsService) *TemplateController {
	return &TemplateController{templates: templates, translation: translation, stats: stats}
}

type CreateTemplateRequest struct {
	Name     string `json:"name" binding:"required"`
	Language string `json:"language"`
}

// CreateTemplate godoc
// @Summary Create a survey template
// @Router /api/templates [post]
func (c *TemplateController) CreateTemplate(ctx *gin.Context) {
	var req CreateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	t, err := c.templates.Create(req.Name, req.Language)
	if err != nil {
		if errors.Is(err, util.ErrTemplateNameTaken) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, t)
}

func (c *TemplateController) GetTemplate(ctx *gin.Context) {
	t, err := c.templates.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, t)
}

func (c *TemplateController) ListTemplates(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))

	templates, total, err := c.templates.List(page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"items": templates,
		"total": total,
		"page":  page,
	})
}

func (c *TemplateController) DeleteTemplate(ctx *gin.Context) {
	if err := c.templates.Delete(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type AddQuestionRequest struct {
	Text             string `json:"text" binding:"required"`
	Criteria         string `json:"criteria" binding:"required"`
	Categories       string `json:"categories"`
	ParentCategories string `json:"parentCategories"`
	Scales           string `json:"scales"`
	Ord              int    `json:"ord"`
}

// AddQuestion godoc
// @Summary Append a question to a template
// @Router /api/templates/{id}/questions [post]
func (c *TemplateController) AddQuestion(ctx *gin.Context) {
	var req AddQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.templates.AddQuestion(ctx.Param("id"), req.Text, req.Criteria, req.Categories, req.ParentCategories, req.Scales, req.Ord)
	if err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, q)
}

func (c *TemplateController) GetQuestion(ctx *gin.Context) {
	q, err := c.templates.GetQuestion(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

func (c *TemplateController) DeleteQuestion(ctx *gin.Context) {
	if err := c.templates.DeleteQuestion(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// QuestionStats returns the answer histogram for one question.
func (c *TemplateController) QuestionStats(ctx *gin.Context) {
	stats, err := c.stats.StatsForQuestion(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// TemplateStats returns per-question histograms for a whole template.
func (c *TemplateController) TemplateStats(ctx *gin.Context) {
	stats, err := c.stats.TemplateStats(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

type TranslateTemplateRequest struct {
	TargetName string `json:"targetName" binding:"required"`
	Language   string `json:"language" binding:"required"`
}

// TranslateTemplate godoc
// @Summary Create a translated copy of a template
// @Router /api/templates/{id}/translate [post]
func (c *TemplateController) TranslateTemplate(ctx *gin.Context) {
	var req TranslateTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	t, err := c.translation.TranslateTemplate(ctx.Request.Context(), ctx.Param("id"), req.TargetName, req.Language)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, t)
}
