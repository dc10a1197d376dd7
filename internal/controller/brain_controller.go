package controller

import (
	"errors"
	"net/http"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/service"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// BrainController exposes the NLP operations. These routes answer with the
// flat wire shapes ({message}, {translated}) that BrainClient consumes, so
// the brain surface can be split into its own deployment unchanged.
type BrainController struct {
	brain *service.BrainService
}

func NewBrainController(brain *service.BrainService) *BrainController {
	return &BrainController{brain: brain}
}

type SympathizeRequest struct {
	Question string `json:"question" binding:"required"`
	Response string `json:"response" binding:"required"`
}

// Sympathize godoc
// @Summary Produce an empathetic acknowledgment phrase
// @Router /api/brain/sympathize [post]
func (c *BrainController) Sympathize(ctx *gin.Context) {
	var req SympathizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	message, err := c.brain.Sympathize(ctx.Request.Context(), req.Question, req.Response)
	if err != nil {
		c.providerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}

type TranslateRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language" binding:"required"`
}

func (c *BrainController) Translate(ctx *gin.Context) {
	var req TranslateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	translated, err := c.brain.Translate(ctx.Request.Context(), req.Text, req.Language)
	if err != nil {
		c.providerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"translated": translated})
}

type TranslateCategoriesRequest struct {
	Categories []string `json:"categories" binding:"required"`
	Language   string   `json:"language" binding:"required"`
}

func (c *BrainController) TranslateCategories(ctx *gin.Context) {
	var req TranslateCategoriesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	translated, err := c.brain.TranslateCategories(ctx.Request.Context(), req.Categories, req.Language)
	if err != nil {
		c.providerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"translated": translated})
}

type ParseAnswerRequest struct {
	Question string   `json:"question" binding:"required"`
	Criteria string   `json:"criteria" binding:"required"`
	Options  []string `json:"options"`
	Reply    string   `json:"reply" binding:"required"`
}

func (c *BrainController) ParseAnswer(ctx *gin.Context) {
	var req ParseAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	value, err := c.brain.ParseAnswer(ctx.Request.Context(), req.Question, req.Criteria, req.Options, req.Reply)
	if err != nil {
		c.providerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"value": value})
}

type FilterResponseRequest struct {
	Question string `json:"question" binding:"required"`
	Reply    string `json:"reply" binding:"required"`
}

func (c *BrainController) FilterResponse(ctx *gin.Context) {
	var req FilterResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	relevant, err := c.brain.FilterResponse(ctx.Request.Context(), req.Question, req.Reply)
	if err != nil {
		c.providerError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"relevant": relevant})
}

func (c *BrainController) providerError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrBrainNotConfigured) {
		util.Error(ctx, http.StatusServiceUnavailable, err.Error())
		return
	}
	util.BadGateway(ctx, err.Error())
}
