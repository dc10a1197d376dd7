package controller

import (
	"net/http"
	"strconv"

	"github.com/waseem-akram-senarios/surveybot-sub001/internal/repository"
	"github.com/waseem-akram-senarios/surveybot-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB   *gorm.DB
	jobs *repository.JobRepository
}

func NewHealthController(db *gorm.DB, jobs *repository.JobRepository) *HealthController {
	return &HealthController{DB: db, jobs: jobs}
}

// HealthCheck reports process and database liveness.
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
		},
	})
}

// JobHistory returns the recent run log for one scheduled job.
func (c *HealthController) JobHistory(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	history, err := c.jobs.History(ctx.Param("id"), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, history)
}
