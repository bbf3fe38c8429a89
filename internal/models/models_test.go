package models

import "testing"

func TestAttemptGuesses(t *testing.T) {
	tests := []struct {
		name     string
		sequence string
		want     []string
	}{
		{
			name:     "normal sequence",
			sequence: `["DOG","CAT"]`,
			want:     []string{"DOG", "CAT"},
		},
		{
			name:     "empty array",
			sequence: "[]",
			want:     nil,
		},
		{
			name:     "empty string",
			sequence: "",
			want:     nil,
		},
		{
			name:     "corrupt json",
			sequence: "{not json",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempt := &Attempt{GuessSequence: tt.sequence}
			got := attempt.Guesses()
			if len(got) != len(tt.want) {
				t.Fatalf("Guesses() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Guesses()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAttemptGuessesNilReceiver(t *testing.T) {
	var attempt *Attempt
	if got := attempt.Guesses(); got != nil {
		t.Errorf("nil attempt Guesses() = %v, want nil", got)
	}
}

func TestEncodeGuesses(t *testing.T) {
	if got := EncodeGuesses(nil); got != "[]" {
		t.Errorf("EncodeGuesses(nil) = %s, want []", got)
	}
	if got := EncodeGuesses([]string{"CAT"}); got != `["CAT"]` {
		t.Errorf("EncodeGuesses = %s, want [\"CAT\"]", got)
	}
}

func TestEncodeGuessesRoundTrip(t *testing.T) {
	guesses := []string{"MOUSE", "HOUSE"}
	attempt := &Attempt{GuessSequence: EncodeGuesses(guesses)}
	got := attempt.Guesses()
	if len(got) != 2 || got[0] != "MOUSE" || got[1] != "HOUSE" {
		t.Errorf("round trip = %v, want %v", got, guesses)
	}
}

func TestUserIsGuest(t *testing.T) {
	guest := &User{Username: "happy_otter"}
	if !guest.IsGuest() {
		t.Error("user without email or password should be a guest")
	}

	registered := &User{Username: "alice", Email: "a@example.edu", PasswordHash: "x"}
	if registered.IsGuest() {
		t.Error("user with email and password should not be a guest")
	}

	oauthUser := &User{Username: "bob", Email: "b@example.edu", OAuthProvider: "google"}
	if oauthUser.IsGuest() {
		t.Error("user signed in with a provider should not be a guest")
	}
}

func TestDeviceInfoRoundTrip(t *testing.T) {
	encoded := EncodeDeviceInfo([]string{"ios", "17.2"})
	decoded := DecodeDeviceInfo(encoded)
	if len(decoded) != 2 || decoded[0] != "ios" || decoded[1] != "17.2" {
		t.Errorf("round trip = %v", decoded)
	}

	if got := EncodeDeviceInfo(nil); got != "[]" {
		t.Errorf("EncodeDeviceInfo(nil) = %s, want []", got)
	}
	if got := DecodeDeviceInfo("garbage"); got != nil {
		t.Errorf("DecodeDeviceInfo(garbage) = %v, want nil", got)
	}
}
