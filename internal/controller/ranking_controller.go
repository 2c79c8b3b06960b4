package controller

import (
	"strconv"

	"kickstart_run_backend/internal/service"
	"kickstart_run_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RankingController struct {
	Rankings     *service.RankingService
	Leaderboards *service.LeaderboardService
}

func NewRankingController(rankings *service.RankingService, leaderboards *service.LeaderboardService) *RankingController {
	return &RankingController{Rankings: rankings, Leaderboards: leaderboards}
}

// GetMyRank returns the caller's own standing regardless of their
// public opt-out.
func (c *RankingController) GetMyRank(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	rank, err := c.Rankings.GetUserRank(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, rank)
}

func (c *RankingController) GetGlobalRankings(ctx *gin.Context) {
	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	rankings, err := c.Rankings.GetGlobalRankings(ctx.Request.Context(), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, rankings)
}

func (c *RankingController) GetSchoolRankings(ctx *gin.Context) {
	rankings, err := c.Rankings.GetSchoolRankings()
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, rankings)
}

func (c *RankingController) GetAgeGroupRankings(ctx *gin.Context) {
	rankings, err := c.Rankings.GetAgeGroupRankings()
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, rankings)
}

// GetSchoolSnapshot serves the denormalized board for one school with
// its top contributors.
func (c *RankingController) GetSchoolSnapshot(ctx *gin.Context) {
	school := ctx.Param("school")
	if school == "" {
		util.BadRequest(ctx, "school is required")
		return
	}

	board, entries, err := c.Leaderboards.SchoolSnapshot(school)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"leaderboard": board, "entries": entries})
}
