package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"campuswordle/internal/models"
	"campuswordle/internal/repository"
	"campuswordle/internal/validation"
)

var (
	// ErrPuzzleNotFound indicates a game lookup against a missing puzzle
	ErrPuzzleNotFound = errors.New("puzzle not found")
	// ErrAlreadyCompleted indicates a guess against a finished attempt
	ErrAlreadyCompleted = errors.New("puzzle already completed")
	// ErrInvalidGuess indicates a guess of the wrong shape for the puzzle
	ErrInvalidGuess = errors.New("invalid guess")
)

// GameService implements the puzzle sequence and scoring rules
type GameService struct {
	puzzleRepo  *repository.PuzzleRepository
	attemptRepo *repository.AttemptRepository
	statsRepo   *repository.StatsRepository
}

// NewGameService creates a new game service
func NewGameService(puzzleRepo *repository.PuzzleRepository, attemptRepo *repository.AttemptRepository, statsRepo *repository.StatsRepository) *GameService {
	return &GameService{puzzleRepo: puzzleRepo, attemptRepo: attemptRepo, statsRepo: statsRepo}
}

// PointsFor returns the score for a win in numTries guesses: 100 for the
// first try, 10 fewer for each extra try, floored at 10. Losses score 0 and
// never reach this function.
func PointsFor(numTries int) int {
	points := 100 - (numTries-1)*10
	if points < 10 {
		return 10
	}
	return points
}

// CurrentLevel returns the 1-indexed level the user should play next: one
// past their highest completed level, capped at the last level. Returns 0
// when no puzzles are active.
func (s *GameService) CurrentLevel(userID int64) (int, error) {
	puzzles, err := s.puzzleRepo.GetActivePuzzlesOrdered()
	if err != nil {
		return 0, err
	}
	if len(puzzles) == 0 {
		return 0, nil
	}
	completed, err := s.attemptRepo.GetCompletedPuzzleIDs(userID)
	if err != nil {
		return 0, err
	}
	maxCompleted := 0
	for i, puzzle := range puzzles {
		if completed[puzzle.ID] {
			maxCompleted = i + 1
		}
	}
	level := maxCompleted + 1
	if level > len(puzzles) {
		level = len(puzzles)
	}
	return level, nil
}

// GameResolution is the state needed to serve one game screen
type GameResolution struct {
	Puzzle          *models.Puzzle
	Level           int
	CurrentLevel    int
	IsReplay        bool
	ExistingAttempt *models.Attempt
}

// ResolveGame picks the puzzle to show for a requested level. A requested
// level of 0 means "wherever the user is". Out-of-range requests fall back
// to the user's current level, then to the first puzzle. A nil Puzzle in
// the result means no puzzles are active.
func (s *GameService) ResolveGame(userID int64, requestedLevel int) (*GameResolution, error) {
	puzzles, err := s.puzzleRepo.GetActivePuzzlesOrdered()
	if err != nil {
		return nil, err
	}
	currentLevel, err := s.CurrentLevel(userID)
	if err != nil {
		return nil, err
	}
	if len(puzzles) == 0 {
		return &GameResolution{CurrentLevel: currentLevel}, nil
	}

	level := requestedLevel
	if level <= 0 {
		level = currentLevel
	}
	if level < 1 || level > len(puzzles) {
		if currentLevel >= 1 && currentLevel <= len(puzzles) {
			level = currentLevel
		} else {
			level = 1
		}
	}
	puzzle := &puzzles[level-1]

	attempt, err := s.attemptRepo.GetAttemptByUserAndPuzzle(userID, puzzle.ID)
	if err != nil {
		return nil, err
	}
	return &GameResolution{
		Puzzle:          puzzle,
		Level:           level,
		CurrentLevel:    currentLevel,
		IsReplay:        attempt != nil,
		ExistingAttempt: attempt,
	}, nil
}

// LevelInfo describes one level for the level picker
type LevelInfo struct {
	Level     int    `json:"level"`
	PuzzleID  int64  `json:"puzzleId"`
	Hint      string `json:"hint,omitempty"`
	Completed bool   `json:"completed"`
	Unlocked  bool   `json:"unlocked"`
}

// AvailableLevels lists every active level with the user's progress on it.
// A level is unlocked when it is at or below the user's current level.
func (s *GameService) AvailableLevels(userID int64) ([]LevelInfo, error) {
	puzzles, err := s.puzzleRepo.GetActivePuzzlesOrdered()
	if err != nil {
		return nil, err
	}
	completed, err := s.attemptRepo.GetCompletedPuzzleIDs(userID)
	if err != nil {
		return nil, err
	}
	currentLevel, err := s.CurrentLevel(userID)
	if err != nil {
		return nil, err
	}

	levels := make([]LevelInfo, 0, len(puzzles))
	for i, puzzle := range puzzles {
		level := i + 1
		levels = append(levels, LevelInfo{
			Level:     level,
			PuzzleID:  puzzle.ID,
			Hint:      puzzle.Hint,
			Completed: completed[puzzle.ID],
			Unlocked:  level <= currentLevel,
		})
	}
	return levels, nil
}

// CompletedLevels returns the level numbers the user has completed, in
// ascending order.
func (s *GameService) CompletedLevels(userID int64) ([]int, error) {
	puzzles, err := s.puzzleRepo.GetActivePuzzlesOrdered()
	if err != nil {
		return nil, err
	}
	completed, err := s.attemptRepo.GetCompletedPuzzleIDs(userID)
	if err != nil {
		return nil, err
	}
	levels := []int{}
	for i, puzzle := range puzzles {
		if completed[puzzle.ID] {
			levels = append(levels, i+1)
		}
	}
	return levels, nil
}

// GuessOutcome is what a guess submission returns to the player. Word is
// only populated once the attempt is over.
type GuessOutcome struct {
	Marks     []LetterMark    `json:"marks"`
	Won       bool            `json:"won"`
	Completed bool            `json:"completed"`
	NumTries  int             `json:"numTries"`
	TriesLeft int             `json:"triesLeft"`
	Points    int             `json:"pointsEarned"`
	Word      string          `json:"word,omitempty"`
	Attempt   *models.Attempt `json:"attempt"`
}

// SubmitGuess validates and scores one guess against a puzzle, persisting
// the updated attempt atomically. Finished attempts reject further guesses
// so a replay can never overwrite a recorded score.
func (s *GameService) SubmitGuess(userID, puzzleID int64, guess string) (*GuessOutcome, error) {
	puzzle, err := s.puzzleRepo.GetPuzzleByID(puzzleID)
	if err != nil {
		return nil, err
	}
	if puzzle == nil || !puzzle.Active {
		return nil, ErrPuzzleNotFound
	}

	guess = strings.ToUpper(strings.TrimSpace(guess))
	if len(guess) != len(puzzle.Word) {
		return nil, fmt.Errorf("%w: guess must be %d letters", ErrInvalidGuess, len(puzzle.Word))
	}
	if err := validation.ValidateWord(guess); err != nil {
		return nil, fmt.Errorf("%w: letters only", ErrInvalidGuess)
	}

	existing, err := s.attemptRepo.GetAttemptByUserAndPuzzle(userID, puzzleID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Completed {
		return nil, ErrAlreadyCompleted
	}

	guesses := existing.Guesses()
	guesses = append(guesses, guess)
	numTries := len(guesses)
	won := guess == puzzle.Word

	attempt, err := s.RecordProgress(userID, puzzleID, guesses, won)
	if err != nil {
		return nil, err
	}
	if attempt.Completed {
		// counters are advisory; a failure here must not lose the attempt
		if err := s.statsRepo.RecordPlay(userID, won); err != nil {
			log.Printf("Failed to update game stats for user %d: %v", userID, err)
		}
	}

	outcome := &GuessOutcome{
		Marks:     EvaluateGuess(guess, puzzle.Word),
		Won:       won,
		Completed: attempt.Completed,
		NumTries:  numTries,
		TriesLeft: models.MaxTries - numTries,
		Points:    attempt.PointsEarned,
		Attempt:   attempt,
	}
	if attempt.Completed {
		outcome.Word = puzzle.Word
	}
	return outcome, nil
}

// RecordProgress persists a game result in one atomic write: the attempt is
// completed when the word was found or the tries ran out, wins score
// PointsFor(len(guesses)), losses score 0. SubmitGuess routes every scored
// guess through here. Once an attempt is completed the stored row is frozen;
// a stale or repeated write can neither revert it nor change its score.
func (s *GameService) RecordProgress(userID, puzzleID int64, guesses []string, won bool) (*models.Attempt, error) {
	puzzle, err := s.puzzleRepo.GetPuzzleByID(puzzleID)
	if err != nil {
		return nil, err
	}
	if puzzle == nil {
		return nil, ErrPuzzleNotFound
	}
	numTries := len(guesses)
	points := 0
	if won {
		points = PointsFor(numTries)
	}
	completed := won || numTries >= models.MaxTries
	return s.attemptRepo.UpsertAttempt(userID, puzzleID, numTries, points, models.EncodeGuesses(guesses), completed)
}
