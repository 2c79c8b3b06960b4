package controller

import (
	"errors"
	"net/http"

	"kickstart_run_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps service sentinel errors onto HTTP statuses; any
// unrecognized error is logged and becomes a 500.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidActivity),
		errors.Is(err, util.ErrInvalidAge),
		errors.Is(err, util.ErrAlreadyCompleted),
		errors.Is(err, util.ErrChallengeLocked),
		errors.Is(err, util.ErrWrongChallengeType):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrChallengeNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrAdventureNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Error(ctx, http.StatusConflict, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
