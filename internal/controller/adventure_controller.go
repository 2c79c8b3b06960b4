package controller

import (
	"kickstart_run_backend/internal/service"
	"kickstart_run_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdventureController struct {
	Adventures *service.AdventureService
}

func NewAdventureController(adventures *service.AdventureService) *AdventureController {
	return &AdventureController{Adventures: adventures}
}

func (c *AdventureController) GetUserAdventures(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	states, err := c.Adventures.GetUserAdventures(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, states)
}

func (c *AdventureController) GetCatalog(ctx *gin.Context) {
	adventures, err := c.Adventures.GetCatalog(ctx.Param("ageGroup"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, adventures)
}
