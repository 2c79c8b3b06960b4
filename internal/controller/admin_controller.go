package controller

import (
	"fmt"
	"net/http"
	"time"

	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/internal/repository"
	"kickstart_run_backend/internal/service"
	"kickstart_run_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// AdminController manages the challenge catalog and reporting exports.
// Every route behind it requires the admin role.
type AdminController struct {
	ChallengeRepo *repository.ChallengeRepository
	Rankings      *service.RankingService
	Leaderboards  *service.LeaderboardService
}

func NewAdminController(challengeRepo *repository.ChallengeRepository, rankings *service.RankingService, leaderboards *service.LeaderboardService) *AdminController {
	return &AdminController{
		ChallengeRepo: challengeRepo,
		Rankings:      rankings,
		Leaderboards:  leaderboards,
	}
}

type challengeInput struct {
	Title            string  `json:"title" binding:"required"`
	Description      string  `json:"description"`
	Type             string  `json:"type" binding:"required,oneof=distance drill form endurance"`
	OrderIndex       int     `json:"orderIndex" binding:"required"`
	PointsReward     int     `json:"pointsReward"`
	TargetDistanceKm float64 `json:"targetDistanceKm"`
	TargetTimeSec    int     `json:"targetTimeSeconds"`
}

func (c *AdminController) CreateChallenge(ctx *gin.Context) {
	var input challengeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge := &model.Challenge{
		Title:            input.Title,
		Description:      input.Description,
		Type:             model.ChallengeType(input.Type),
		IsActive:         true,
		OrderIndex:       input.OrderIndex,
		PointsReward:     input.PointsReward,
		TargetDistanceKm: input.TargetDistanceKm,
		TargetTimeSec:    input.TargetTimeSec,
	}
	if challenge.PointsReward <= 0 {
		challenge.PointsReward = 100
	}

	if err := c.ChallengeRepo.Create(challenge); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, challenge)
}

func (c *AdminController) UpdateChallenge(ctx *gin.Context) {
	challengeID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	challenge, err := c.ChallengeRepo.FindByID(challengeID)
	if err != nil {
		util.NotFound(ctx, util.ErrChallengeNotFound.Error())
		return
	}

	var input challengeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge.Title = input.Title
	challenge.Description = input.Description
	challenge.Type = model.ChallengeType(input.Type)
	challenge.OrderIndex = input.OrderIndex
	challenge.PointsReward = input.PointsReward
	challenge.TargetDistanceKm = input.TargetDistanceKm
	challenge.TargetTimeSec = input.TargetTimeSec

	if err := c.ChallengeRepo.Update(challenge); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, challenge)
}

func (c *AdminController) DeactivateChallenge(ctx *gin.Context) {
	challengeID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	if err := c.ChallengeRepo.Deactivate(challengeID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"challengeId": challengeID, "isActive": false})
}

// RecomputeLeaderboards triggers an immediate snapshot rebuild instead
// of waiting for the timer.
func (c *AdminController) RecomputeLeaderboards(ctx *gin.Context) {
	c.Leaderboards.RecomputeAll()
	util.Success(ctx, gin.H{"status": "recomputed"})
}

// ExportSchoolRankings streams the school standings as an xlsx report.
func (c *AdminController) ExportSchoolRankings(ctx *gin.Context) {
	rankings, err := c.Rankings.GetSchoolRankings()
	if err != nil {
		respondError(ctx, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "School Rankings"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Rank", "School / Club", "Points", "Athletes"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, r := range rankings {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row+2), r.Rank)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row+2), r.SchoolClub)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row+2), r.Points)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row+2), r.AthleteCount)
	}

	filename := fmt.Sprintf("school-rankings-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Status(http.StatusOK)

	if err := f.Write(ctx.Writer); err != nil {
		util.LogInternalError(ctx, err)
	}
}
