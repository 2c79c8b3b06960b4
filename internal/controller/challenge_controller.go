package controller

import (
	"strconv"

	"kickstart_run_backend/internal/service"
	"kickstart_run_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	Progression *service.ProgressionService
}

func NewChallengeController(progression *service.ProgressionService) *ChallengeController {
	return &ChallengeController{Progression: progression}
}

// ListChallenges returns the caller's challenge states, seeding any
// catalog entries added since the account was created.
func (c *ChallengeController) ListChallenges(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Progression.InitializeForUser(user.UserID); err != nil {
		respondError(ctx, err)
		return
	}

	states, err := c.Progression.GetUserChallenges(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, states)
}

func (c *ChallengeController) StartChallenge(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	challengeID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Progression.StartChallenge(user.UserID, challengeID); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"challengeId": challengeID, "status": "in_progress"})
}

// CompleteChallenge marks a form or drill challenge done on the
// athlete's word.
func (c *ChallengeController) CompleteChallenge(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	challengeID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Progression.MarkManualComplete(user.UserID, challengeID); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"challengeId": challengeID, "status": "completed"})
}

func (c *ChallengeController) ListAchievements(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	achievements, err := c.Progression.GetUserAchievements(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, achievements)
}

func paramID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
