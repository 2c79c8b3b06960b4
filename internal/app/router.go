package app

import (
	"kickstart_run_backend/internal/config"
	"kickstart_run_backend/internal/middleware"
	"kickstart_run_backend/internal/model"
	"kickstart_run_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes: auth and the spectator ranking views.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		rankings := public.Group("/rankings")
		{
			rankings.GET("/global", c.ranking.GetGlobalRankings)
			rankings.GET("/schools", c.ranking.GetSchoolRankings)
			rankings.GET("/schools/:school", c.ranking.GetSchoolSnapshot)
			rankings.GET("/age-groups", c.ranking.GetAgeGroupRankings)
		}
	}

	// Athlete routes.
	auth := router.Group("/api")
	auth.Use(middleware.AuthMiddleware(cfg))
	{
		auth.GET("/profile", c.user.GetProfile)
		auth.PUT("/profile", c.user.UpdateProfile)
		auth.PUT("/profile/opt-out", c.user.SetPublicOptOut)
		auth.POST("/profile/parental-consent", c.user.GrantParentalConsent)

		auth.POST("/activities", c.activity.RecordActivity)
		auth.GET("/activities", c.activity.ListActivities)

		auth.GET("/challenges", c.challenge.ListChallenges)
		auth.POST("/challenges/:id/start", c.challenge.StartChallenge)
		auth.POST("/challenges/:id/complete", c.challenge.CompleteChallenge)
		auth.GET("/achievements", c.challenge.ListAchievements)

		auth.GET("/adaptive/challenges", c.difficulty.GetAdaptedChallenges)
		auth.GET("/adaptive/challenges/:id", c.difficulty.GetAdaptedChallenge)
		auth.GET("/analytics", c.difficulty.GetAnalytics)

		auth.GET("/rankings/me", c.ranking.GetMyRank)

		auth.GET("/adventures", c.adventure.GetUserAdventures)
		auth.GET("/adventures/catalog/:ageGroup", c.adventure.GetCatalog)

		auth.POST("/shares", c.sharing.RecordShare)
		auth.GET("/shares/streak", c.sharing.GetStreak)
		auth.GET("/shares/history", c.sharing.GetHistory)
		auth.GET("/shares/top-streaks", c.sharing.GetTopStreaks)
	}

	// Admin routes.
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/challenges", c.admin.CreateChallenge)
		admin.PUT("/challenges/:id", c.admin.UpdateChallenge)
		admin.DELETE("/challenges/:id", c.admin.DeactivateChallenge)
		admin.POST("/leaderboards/recompute", c.admin.RecomputeLeaderboards)
		admin.GET("/reports/school-rankings.xlsx", c.admin.ExportSchoolRankings)
	}
}
