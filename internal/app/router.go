package app

import (
	"github.com/waseem-akram-senarios/surveybot-sub001/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/jobs/:id/history", c.health.JobHistory)

		templates := api.Group("/templates")
		{
			templates.POST("", c.template.CreateTemplate)
			templates.GET("", c.template.ListTemplates)
			templates.GET("/:id", c.template.GetTemplate)
			templates.DELETE("/:id", c.template.DeleteTemplate)
			templates.POST("/:id/questions", c.template.AddQuestion)
			templates.GET("/:id/stats", c.template.TemplateStats)
			templates.POST("/:id/translate", c.template.TranslateTemplate)
		}

		questions := api.Group("/questions")
		{
			questions.GET("/:id", c.template.GetQuestion)
			questions.DELETE("/:id", c.template.DeleteQuestion)
			questions.GET("/:id/stats", c.template.QuestionStats)
		}

		surveys := api.Group("/surveys")
		{
			surveys.POST("", c.survey.CreateSurvey)
			surveys.GET("", c.survey.ListSurveys)
			surveys.GET("/:id", c.survey.GetSurvey)
			surveys.POST("/:id/dispatch", c.survey.DispatchSurvey)
			surveys.POST("/:id/answers", c.survey.SubmitAnswers)
		}

		brain := api.Group("/brain")
		{
			brain.POST("/sympathize", c.brain.Sympathize)
			brain.POST("/translate", c.brain.Translate)
			brain.POST("/translate-categories", c.brain.TranslateCategories)
			brain.POST("/parse-answer", c.brain.ParseAnswer)
			brain.POST("/filter-response", c.brain.FilterResponse)
		}

		voice := api.Group("/voice")
		{
			voice.POST("/dispatch", c.voice.DispatchCall)
			voice.GET("/calls/:room/status", c.voice.CallStatus)
			voice.GET("/calls/:room/transcript", c.voice.CallTranscript)
			voice.POST("/calls/:room/recording", c.voice.UploadRecording)
		}

		sms := api.Group("/sms")
		{
			sms.POST("/send", c.sms.SendSMS)
		}
	}
}
