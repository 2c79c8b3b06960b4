package controller

import (
	"kickstart_run_backend/internal/service"
	"kickstart_run_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

func (c *UserController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.GetProfile(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.ProfileUpdateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.UserService.UpdateProfile(user.UserID, input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

type optOutInput struct {
	OptOut bool `json:"optOut"`
}

func (c *UserController) SetPublicOptOut(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var input optOutInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetPublicOptOut(user.UserID, input.OptOut); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"optOut": input.OptOut})
}

func (c *UserController) GrantParentalConsent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.GrantParentalConsent(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}
