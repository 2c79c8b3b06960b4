package controller

import (
	"errors"

	"kickstart_run_backend/internal/service"
	"kickstart_run_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

func (c *AuthController) Register(ctx *gin.Context) {
	var input service.RegisterInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Register(input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

func (c *AuthController) Login(ctx *gin.Context) {
	var input service.LoginInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AuthService.Login(input)
	if err != nil {
		// Wrong email and wrong password look the same to the caller.
		if errors.Is(err, util.ErrUserNotFound) {
			util.Unauthorized(ctx)
			return
		}
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
