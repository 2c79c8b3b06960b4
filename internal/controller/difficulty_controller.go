package controller

import (
	"kickstart_run_backend/internal/service"
	"kickstart_run_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DifficultyController struct {
	Difficulty *service.DifficultyService
	Analytics  *service.AnalyticsService
}

func NewDifficultyController(difficulty *service.DifficultyService, analytics *service.AnalyticsService) *DifficultyController {
	return &DifficultyController{Difficulty: difficulty, Analytics: analytics}
}

// GetAdaptedChallenge returns one challenge with targets scaled for
// the caller.
func (c *DifficultyController) GetAdaptedChallenge(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	challengeID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	adapted, err := c.Difficulty.AdaptChallenge(user.UserID, challengeID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, adapted)
}

func (c *DifficultyController) GetAdaptedChallenges(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	adapted, err := c.Difficulty.AdaptAll(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, adapted)
}

func (c *DifficultyController) GetAnalytics(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	analytics, err := c.Analytics.GetOrCreate(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, analytics)
}
