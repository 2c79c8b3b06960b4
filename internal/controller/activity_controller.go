package controller

import (
	"kickstart_run_backend/internal/service"
	"kickstart_run_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Progression *service.ProgressionService
}

func NewActivityController(progression *service.ProgressionService) *ActivityController {
	return &ActivityController{Progression: progression}
}

// RecordActivity ingests one GPS run and returns the activity plus any
// challenges it completed.
func (c *ActivityController) RecordActivity(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.ActivityInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Progression.RecordActivity(user.UserID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

func (c *ActivityController) ListActivities(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	activities, err := c.Progression.GetUserActivities(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, activities)
}
