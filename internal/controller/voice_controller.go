package controller

import (
	"errors"
	"net/http"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/service"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type VoiceController struct {
	voice      *service.VoiceService
	recordings *service.RecordingService
}

func NewVoiceController(voice *service.VoiceService, recordings *service.RecordingService) *VoiceController {
	return &VoiceController{voice: voice, recordings: recordings}
}

type DispatchCallRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	SurveyID    string `json:"survey_id"`
}

// DispatchCall godoc
// @Summary Start an outbound agent call
// @Router /api/voice/dispatch [post]
func (c *VoiceController) DispatchCall(ctx *gin.Context) {
	var req DispatchCallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.voice.Dispatch(ctx.Request.Context(), req.PhoneNumber, req.SurveyID)
	if err != nil {
		if errors.Is(err, util.ErrTrunkNotConfigured) || errors.Is(err, util.ErrEmptyPhoneNumber) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.BadGateway(ctx, err.Error())
		return
	}

	util.Created(ctx, result)
}

// CallStatus reports provider-observed session state. Always 200; provider
// trouble shows up in the payload's error field.
func (c *VoiceController) CallStatus(ctx *gin.Context) {
	status := c.voice.Status(ctx.Request.Context(), ctx.Param("room"))
	util.Success(ctx, status)
}

// CallTranscript returns transcript fragments, or the placeholder entry
// when the provider has none.
func (c *VoiceController) CallTranscript(ctx *gin.Context) {
	entries := c.voice.Transcript(ctx.Request.Context(), ctx.Param("room"))
	util.Success(ctx, gin.H{"transcript": entries})
}

// UploadRecording accepts the provider's recording file for a session,
// transcodes it and stores it.
func (c *VoiceController) UploadRecording(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "recording file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	fileURL, err := c.recordings.Store(ctx.Request.Context(), ctx.Param("room"), src)
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"url": fileURL})
}
