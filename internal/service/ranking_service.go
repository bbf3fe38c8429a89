package service

import (
	"math"

	"campuswordle/internal/models"
	"campuswordle/internal/repository"
)

// DefaultRankingLimit bounds leaderboard queries that do not say otherwise
const DefaultRankingLimit = 50

// RankingService computes leaderboards and per-user aggregates
type RankingService struct {
	attemptRepo *repository.AttemptRepository
}

// NewRankingService creates a new ranking service
func NewRankingService(attemptRepo *repository.AttemptRepository) *RankingService {
	return &RankingService{attemptRepo: attemptRepo}
}

// GameRankings returns the leaderboard for one puzzle
func (s *RankingService) GameRankings(puzzleID int64, limit int) ([]*models.GameRankingEntry, error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	entries, err := s.attemptRepo.GameRankings(puzzleID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.GameRankingEntry{}
	}
	return entries, nil
}

// OverallRankings returns the global leaderboard. Pass limit 0 for all
// ranked players.
func (s *RankingService) OverallRankings(limit int) ([]*models.OverallRankingEntry, error) {
	entries, err := s.attemptRepo.OverallRankings(limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.OverallRankingEntry{}
	}
	return entries, nil
}

// UserStats aggregates a user's whole history, played and completed alike.
// WinRate is a percentage rounded to one decimal, 0 for a user who has
// never played.
func (s *RankingService) UserStats(userID int64) (*models.UserStats, error) {
	stats, err := s.attemptRepo.UserStatsRow(userID)
	if err != nil {
		return nil, err
	}
	if stats.GamesPlayed > 0 {
		rate := float64(stats.GamesCompleted) / float64(stats.GamesPlayed) * 100
		stats.WinRate = math.Round(rate*10) / 10
		stats.AverageScore = math.Round(stats.AverageScore*10) / 10
	}
	return stats, nil
}

// UserRankPosition finds the user's 1-indexed spot in the global ranking.
// Position is nil when the user has no completed attempts.
func (s *RankingService) UserRankPosition(userID int64) (*models.RankPosition, error) {
	totals, err := s.attemptRepo.RankedTotals()
	if err != nil {
		return nil, err
	}
	result := &models.RankPosition{TotalPlayers: len(totals)}
	for i, entry := range totals {
		if entry.UserID == userID {
			position := i + 1
			result.Position = &position
			break
		}
	}
	return result, nil
}

// PuzzleSummaries lists per-puzzle aggregates for the games index
func (s *RankingService) PuzzleSummaries(limit int) ([]*models.PuzzleSummary, error) {
	if limit <= 0 {
		limit = DefaultRankingLimit
	}
	summaries, err := s.attemptRepo.PuzzleSummaries(limit)
	if err != nil {
		return nil, err
	}
	for _, summary := range summaries {
		summary.AverageScore = math.Round(summary.AverageScore*10) / 10
	}
	if summaries == nil {
		summaries = []*models.PuzzleSummary{}
	}
	return summaries, nil
}
