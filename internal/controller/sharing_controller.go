package controller

import (
	"strconv"

	"kickstart_run_backend/internal/service"
	"kickstart_run_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SharingController struct {
	Sharing *service.SharingService
}

func NewSharingController(sharing *service.SharingService) *SharingController {
	return &SharingController{Sharing: sharing}
}

func (c *SharingController) RecordShare(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.ShareInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Sharing.RecordShare(user.UserID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

func (c *SharingController) GetStreak(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	streak, err := c.Sharing.GetStreak(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, streak)
}

func (c *SharingController) GetHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := 20
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	history, err := c.Sharing.ShareHistory(user.UserID, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, history)
}

func (c *SharingController) GetTopStreaks(ctx *gin.Context) {
	limit := 10
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	streaks, err := c.Sharing.TopStreaks(limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, streaks)
}
