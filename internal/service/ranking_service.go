package service

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"kickstart_run_backend/internal/config"
	"kickstart_run_backend/internal/repository"
	"kickstart_run_backend/internal/util"
	"kickstart_run_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const globalRankingCacheKey = "rankings:global"

// RankingService computes GPS point standings. One point per kilometer,
// rounded to one decimal; ordering and tie-breaks are applied in Go
// over a single grouped aggregate so every view agrees on the rules.
type RankingService struct {
	ActivityRepo *repository.ActivityRepository
	UserRepo     *repository.UserRepository
	Redis        *redis.Client
	Config       config.RankingsConfig
}

func NewRankingService(activityRepo *repository.ActivityRepository, userRepo *repository.UserRepository, redisClient *redis.Client, cfg config.RankingsConfig) *RankingService {
	return &RankingService{
		ActivityRepo: activityRepo,
		UserRepo:     userRepo,
		Redis:        redisClient,
		Config:       cfg,
	}
}

type RankedUser struct {
	Rank          int     `json:"rank"`
	UserID        uint    `json:"userId"`
	AthleteName   string  `json:"athleteName"`
	SchoolClub    string  `json:"schoolClub"`
	Points        float64 `json:"points"`
	ActivityCount int     `json:"activityCount"`
}

type UserRank struct {
	UserID            uint    `json:"userId"`
	Rank              int     `json:"rank"`
	Points            float64 `json:"points"`
	ActivityCount     int     `json:"activityCount"`
	TotalParticipants int     `json:"totalParticipants"`
}

type SchoolRank struct {
	Rank         int     `json:"rank"`
	SchoolClub   string  `json:"schoolClub"`
	Points       float64 `json:"points"`
	AthleteCount int     `json:"athleteCount"`
}

type AgeGroupRanking struct {
	Bracket           string       `json:"bracket"`
	Label             string       `json:"label"`
	MinAge            int          `json:"minAge"`
	MaxAge            int          `json:"maxAge"`
	TotalParticipants int          `json:"totalParticipants"`
	Rankings          []RankedUser `json:"rankings"`
}

// rankedTotals applies the scoring and ordering rules to raw
// aggregates: points desc, activity count desc, athlete name asc.
func rankedTotals(totals []repository.UserTotal) []RankedUser {
	ranked := make([]RankedUser, 0, len(totals))
	for _, t := range totals {
		ranked = append(ranked, RankedUser{
			UserID:        t.UserID,
			AthleteName:   t.AthleteName,
			SchoolClub:    t.SchoolClub,
			Points:        round1(t.TotalKm),
			ActivityCount: t.ActivityCount,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		if ranked[i].ActivityCount != ranked[j].ActivityCount {
			return ranked[i].ActivityCount > ranked[j].ActivityCount
		}
		return ranked[i].AthleteName < ranked[j].AthleteName
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// GetUserRank returns the caller's own standing. Opt-out does not hide
// a user from themselves, so the rank is computed over all users.
func (s *RankingService) GetUserRank(userID uint) (*UserRank, error) {
	totals, err := s.ActivityRepo.UserTotals()
	if err != nil {
		return nil, err
	}

	ranked := rankedTotals(totals)
	for _, r := range ranked {
		if r.UserID == userID {
			return &UserRank{
				UserID:            userID,
				Rank:              r.Rank,
				Points:            r.Points,
				ActivityCount:     r.ActivityCount,
				TotalParticipants: len(ranked),
			}, nil
		}
	}
	return nil, util.ErrUserNotFound
}

// GetGlobalRankings returns the public top list. Opted-out athletes are
// dropped before ranks are assigned. Results are cached briefly in
// Redis; a nil or unreachable client silently degrades to direct reads.
func (s *RankingService) GetGlobalRankings(ctx context.Context, limit int) ([]RankedUser, error) {
	limit = s.clampLimit(limit)

	if cached := s.readCache(ctx); cached != nil {
		return trimRanked(cached, limit), nil
	}

	totals, err := s.ActivityRepo.UserTotals()
	if err != nil {
		return nil, err
	}

	public := totals[:0:0]
	for _, t := range totals {
		if !t.OptOutPublic {
			public = append(public, t)
		}
	}

	ranked := rankedTotals(public)
	s.writeCache(ctx, ranked)
	return trimRanked(ranked, limit), nil
}

// GetSchoolRankings aggregates athlete points per school. Schools with
// registered athletes but no activity appear with zero points.
func (s *RankingService) GetSchoolRankings() ([]SchoolRank, error) {
	totals, err := s.ActivityRepo.UserTotals()
	if err != nil {
		return nil, err
	}

	schools, err := s.UserRepo.DistinctSchools()
	if err != nil {
		return nil, err
	}

	points := make(map[string]float64, len(schools))
	athletes := make(map[string]int, len(schools))
	for _, name := range schools {
		points[name] = 0
	}
	for _, t := range totals {
		if t.SchoolClub == "" {
			continue
		}
		points[t.SchoolClub] += round1(t.TotalKm)
		athletes[t.SchoolClub]++
	}

	ranked := make([]SchoolRank, 0, len(points))
	for name, p := range points {
		ranked = append(ranked, SchoolRank{
			SchoolClub:   name,
			Points:       round1(p),
			AthleteCount: athletes[name],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].SchoolClub < ranked[j].SchoolClub
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

// GetAgeGroupRankings buckets public standings into the three fixed
// age brackets. Empty brackets are returned with zero participants;
// users outside 6-18 rank globally but appear in no bracket.
func (s *RankingService) GetAgeGroupRankings() ([]AgeGroupRanking, error) {
	totals, err := s.ActivityRepo.UserTotals()
	if err != nil {
		return nil, err
	}

	groups := make([]AgeGroupRanking, 0, len(util.AgeBrackets))
	for _, bracket := range util.AgeBrackets {
		var inBracket []repository.UserTotal
		for _, t := range totals {
			if t.OptOutPublic || t.Age < bracket.Min || t.Age > bracket.Max {
				continue
			}
			inBracket = append(inBracket, t)
		}

		ranked := rankedTotals(inBracket)
		limit := s.Config.AgeGroupLimit
		if limit > 0 && len(ranked) > limit {
			ranked = ranked[:limit]
		}
		if ranked == nil {
			ranked = []RankedUser{}
		}

		groups = append(groups, AgeGroupRanking{
			Bracket:           bracket.Key,
			Label:             bracket.Label,
			MinAge:            bracket.Min,
			MaxAge:            bracket.Max,
			TotalParticipants: len(inBracket),
			Rankings:          ranked,
		})
	}
	return groups, nil
}

func (s *RankingService) clampLimit(limit int) int {
	if limit <= 0 {
		return s.Config.GlobalLimitDefault
	}
	if limit > s.Config.GlobalLimitMax {
		return s.Config.GlobalLimitMax
	}
	return limit
}

func trimRanked(ranked []RankedUser, limit int) []RankedUser {
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

func (s *RankingService) readCache(ctx context.Context) []RankedUser {
	if s.Redis == nil {
		return nil
	}
	payload, err := s.Redis.Get(ctx, globalRankingCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var ranked []RankedUser
	if err := json.Unmarshal(payload, &ranked); err != nil {
		return nil
	}
	return ranked
}

func (s *RankingService) writeCache(ctx context.Context, ranked []RankedUser) {
	if s.Redis == nil {
		return
	}
	payload, err := json.Marshal(ranked)
	if err != nil {
		return
	}
	ttl := time.Duration(s.Config.CacheTTLSeconds) * time.Second
	if err := s.Redis.Set(ctx, globalRankingCacheKey, payload, ttl).Err(); err != nil {
		logger.Log.Warn("ranking cache write failed", zap.Error(err))
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
