package controller

import (
	"errors"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/service"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type SMSController struct {
	sms *service.SMSService
}

func NewSMSController(sms *service.SMSService) *SMSController {
	return &SMSController{sms: sms}
}

type SendSMSRequest struct {
	To       string `json:"to" binding:"required"`
	Body     string `json:"body" binding:"required"`
	SurveyID string `json:"surveyId"`
}

// SendSMS godoc
// @Summary Send a survey invitation or reminder SMS
// @Router /api/sms/send [post]
func (c *SMSController) SendSMS(ctx *gin.Context) {
	var req SendSMSRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.sms.Send(ctx.Request.Context(), req.To, req.Body, req.SurveyID)
	if err != nil {
		if errors.Is(err, util.ErrSMSNotConfigured) || errors.Is(err, util.ErrEmptyPhoneNumber) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.BadGateway(ctx, err.Error())
		return
	}

	util.Created(ctx, msg)
}
