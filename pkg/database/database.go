package database

import (
	"fmt"
	"kickstart_run_backend/internal/config"
	"kickstart_run_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	SeedDefaults(db)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Challenge{},
		&model.UserChallenge{},
		&model.Activity{},
		&model.Achievement{},
		&model.UserPerformanceAnalytics{},
		&model.Adventure{},
		&model.UserAdventure{},
		&model.SharingStreak{},
		&model.ShareActivity{},
		&model.Leaderboard{},
		&model.LeaderboardEntry{},
	)
}

// SeedDefaults inserts the starter challenge and adventure catalogs when
// the tables are empty.
func SeedDefaults(db *gorm.DB) {
	var count int64
	db.Model(&model.Challenge{}).Count(&count)
	if count == 0 {
		defaultChallenges := []model.Challenge{
			{Title: "First Kilometer", Description: "Run your first full kilometer", Type: model.ChallengeDistance, OrderIndex: 1, PointsReward: 100, TargetDistanceKm: 1, IsActive: true},
			{Title: "3K Explorer", Description: "Complete a 3 kilometer run", Type: model.ChallengeDistance, OrderIndex: 2, PointsReward: 150, TargetDistanceKm: 3, IsActive: true},
			{Title: "5K Finisher", Description: "Complete a 5 kilometer run", Type: model.ChallengeDistance, OrderIndex: 3, PointsReward: 250, TargetDistanceKm: 5, IsActive: true},
			{Title: "10K Champion", Description: "Complete a 10 kilometer run", Type: model.ChallengeDistance, OrderIndex: 4, PointsReward: 500, TargetDistanceKm: 10, IsActive: true},
			{Title: "High Knees Drill", Description: "30 seconds of high knees, three sets", Type: model.ChallengeDrill, OrderIndex: 1, PointsReward: 50, TargetTimeSec: 90, IsActive: true},
			{Title: "Ladder Sprints", Description: "Agility ladder sprint drill", Type: model.ChallengeDrill, OrderIndex: 2, PointsReward: 75, TargetTimeSec: 120, IsActive: true},
			{Title: "Perfect Posture", Description: "Practice upright running form for a full session", Type: model.ChallengeForm, OrderIndex: 1, PointsReward: 50, IsActive: true},
			{Title: "Arm Swing Basics", Description: "Controlled arm swing practice", Type: model.ChallengeForm, OrderIndex: 2, PointsReward: 50, IsActive: true},
			{Title: "Steady Twenty", Description: "Keep moving for 20 minutes without stopping", Type: model.ChallengeEndurance, OrderIndex: 1, PointsReward: 150, TargetTimeSec: 1200, IsActive: true},
			{Title: "Half Hour Hero", Description: "Keep moving for 30 minutes without stopping", Type: model.ChallengeEndurance, OrderIndex: 2, PointsReward: 250, TargetTimeSec: 1800, IsActive: true},
		}
		for _, ch := range defaultChallenges {
			db.Create(&ch)
		}
	}

	var advCount int64
	db.Model(&model.Adventure{}).Count(&advCount)
	if advCount == 0 {
		defaultAdventures := []model.Adventure{
			{Title: "Dragon's Trail", Description: "Outrun the sleepy dragon", Theme: "fantasy", AgeGroup: "6-8", RequiredDistanceKm: 3, RewardType: "badge", RewardData: "dragon_badge", OrderIndex: 1, IsActive: true},
			{Title: "Dino Dash", Description: "Race through the valley of dinosaurs", Theme: "dinosaur", AgeGroup: "6-8", RequiredDistanceKm: 5, RewardType: "character", RewardData: "raptor_friend", OrderIndex: 2, IsActive: true},
			{Title: "Ocean Crossing", Description: "Swim-run across the great reef", Theme: "ocean", AgeGroup: "9-12", RequiredDistanceKm: 10, RewardType: "treasure", RewardData: "pearl_chest", OrderIndex: 1, IsActive: true},
			{Title: "Wizard's Relay", Description: "Deliver the scroll before sundown", Theme: "magic", AgeGroup: "9-12", RequiredDistanceKm: 15, RewardType: "power", RewardData: "speed_spell", OrderIndex: 2, IsActive: true},
			{Title: "Mission to Mars", Description: "Log the distance to the launch pad", Theme: "space", AgeGroup: "13-18", RequiredDistanceKm: 25, RewardType: "badge", RewardData: "astronaut_wings", OrderIndex: 1, IsActive: true},
			{Title: "Galaxy Marathon", Description: "Cross the star field one run at a time", Theme: "space", AgeGroup: "13-18", RequiredDistanceKm: 42, RewardType: "treasure", RewardData: "comet_core", OrderIndex: 2, IsActive: true},
		}
		for _, a := range defaultAdventures {
			db.Create(&a)
		}
	}
}
