package service

import (
	"errors"
	"testing"
	"time"

	"campuswordle/internal/token"
)

func newAdminService(t *testing.T, env *testEnv) *AdminService {
	t.Helper()
	tokens, err := token.NewManager("admin-service-test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return NewAdminService(env.admins, env.users, env.puzzles, env.attempt, tokens)
}

func TestCreateAdminOnlyOnce(t *testing.T) {
	env := newTestEnv(t)
	admin := newAdminService(t, env)

	first, err := admin.CreateAdmin("director", "console-pass")
	if err != nil {
		t.Fatalf("CreateAdmin failed: %v", err)
	}
	if first.Token == "" {
		t.Error("initial setup should issue a token")
	}

	_, err = admin.CreateAdmin("intruder", "console-pass")
	if !errors.Is(err, ErrAdminExists) {
		t.Errorf("second setup error = %v, want ErrAdminExists", err)
	}
}

func TestLoginAdmin(t *testing.T) {
	env := newTestEnv(t)
	admin := newAdminService(t, env)

	admin.CreateAdmin("director", "console-pass")

	result, err := admin.LoginAdmin("director", "console-pass")
	if err != nil {
		t.Fatalf("LoginAdmin failed: %v", err)
	}
	if result.Admin.Username != "director" {
		t.Errorf("username = %s", result.Admin.Username)
	}

	if _, err := admin.LoginAdmin("director", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := admin.LoginAdmin("nobody", "console-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown admin error = %v, want ErrInvalidCredentials", err)
	}
}

func TestCreatePuzzle(t *testing.T) {
	env := newTestEnv(t)
	admin := newAdminService(t, env)

	puzzle, err := admin.CreatePuzzle("ember", "Glowing remains of a fire", true)
	if err != nil {
		t.Fatalf("CreatePuzzle failed: %v", err)
	}
	if puzzle.Word != "EMBER" {
		t.Errorf("word = %s, want EMBER (uppercased)", puzzle.Word)
	}
	if !puzzle.Active {
		t.Error("puzzle should be active")
	}

	_, err = admin.CreatePuzzle("EMBER", "dup", true)
	if !errors.Is(err, ErrWordTaken) {
		t.Errorf("duplicate word error = %v, want ErrWordTaken", err)
	}
}

func TestTogglePuzzle(t *testing.T) {
	env := newTestEnv(t)
	admin := newAdminService(t, env)

	puzzle, _ := admin.CreatePuzzle("HOUSE", "", true)

	toggled, err := admin.TogglePuzzle(puzzle.ID)
	if err != nil {
		t.Fatalf("TogglePuzzle failed: %v", err)
	}
	if toggled.Active {
		t.Error("toggle should deactivate an active puzzle")
	}

	back, err := admin.TogglePuzzle(puzzle.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if !back.Active {
		t.Error("toggle should reactivate a deactivated puzzle")
	}

	if _, err := admin.TogglePuzzle(9999); !errors.Is(err, ErrPuzzleNotFound) {
		t.Errorf("missing puzzle error = %v, want ErrPuzzleNotFound", err)
	}
}

func TestDeletePuzzleCascades(t *testing.T) {
	env := newTestEnv(t)
	admin := newAdminService(t, env)
	game := NewGameService(env.puzzles, env.attempt, env.stats)

	userID := env.createUser(t, "alice")
	puzzleID := env.createPuzzle(t, "HOUSE")

	if _, err := game.SubmitGuess(userID, puzzleID, "HOUSE"); err != nil {
		t.Fatalf("SubmitGuess failed: %v", err)
	}

	if err := admin.DeletePuzzle(puzzleID); err != nil {
		t.Fatalf("DeletePuzzle failed: %v", err)
	}

	attempt, err := env.attempt.GetAttemptByUserAndPuzzle(userID, puzzleID)
	if err != nil {
		t.Fatalf("fetch attempt failed: %v", err)
	}
	if attempt != nil {
		t.Error("deleting a puzzle should remove its attempts")
	}
}

func TestDeleteUserCascades(t *testing.T) {
	env := newTestEnv(t)
	admin := newAdminService(t, env)
	game := NewGameService(env.puzzles, env.attempt, env.stats)

	userID := env.createUser(t, "alice")
	puzzleID := env.createPuzzle(t, "HOUSE")
	game.SubmitGuess(userID, puzzleID, "HOUSE")

	if err := admin.DeleteUser(userID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	gone, err := env.users.GetUserByID(userID)
	if err != nil {
		t.Fatalf("fetch user failed: %v", err)
	}
	if gone != nil {
		t.Error("user should be deleted")
	}
	attempt, _ := env.attempt.GetAttemptByUserAndPuzzle(userID, puzzleID)
	if attempt != nil {
		t.Error("deleting a user should remove their attempts")
	}
}

func TestOverviewCounts(t *testing.T) {
	env := newTestEnv(t)
	admin := newAdminService(t, env)
	game := NewGameService(env.puzzles, env.attempt, env.stats)

	aliceID := env.createUser(t, "alice")
	bobID := env.createUser(t, "bob")
	firstID := env.createPuzzle(t, "HOUSE")
	if _, err := env.puzzles.CreatePuzzle("PLANT", "", false); err != nil {
		t.Fatalf("CreatePuzzle failed: %v", err)
	}

	game.SubmitGuess(aliceID, firstID, "HOUSE") // completed
	game.SubmitGuess(bobID, firstID, "MOUSE")   // in progress

	overview, err := admin.GetOverview()
	if err != nil {
		t.Fatalf("GetOverview failed: %v", err)
	}
	if overview.TotalUsers != 2 {
		t.Errorf("TotalUsers = %d, want 2", overview.TotalUsers)
	}
	if overview.TotalPuzzles != 2 {
		t.Errorf("TotalPuzzles = %d, want 2", overview.TotalPuzzles)
	}
	if overview.ActivePuzzles != 1 {
		t.Errorf("ActivePuzzles = %d, want 1", overview.ActivePuzzles)
	}
	if overview.TotalAttempts != 2 {
		t.Errorf("TotalAttempts = %d, want 2", overview.TotalAttempts)
	}
	if overview.CompletedAttempts != 1 {
		t.Errorf("CompletedAttempts = %d, want 1", overview.CompletedAttempts)
	}
}
