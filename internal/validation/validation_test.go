package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.edu",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "missing local part",
			email:   "@example.com",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{
			name:     "simple username",
			username: "alice",
			wantErr:  false,
		},
		{
			name:     "guest style name",
			username: "clever_fox_42",
			wantErr:  false,
		},
		{
			name:     "dots and dashes",
			username: "a.b-c",
			wantErr:  false,
		},
		{
			name:     "uppercase rejected",
			username: "Alice",
			wantErr:  true,
		},
		{
			name:     "spaces rejected",
			username: "my name",
			wantErr:  true,
		},
		{
			name:     "empty rejected",
			username: "",
			wantErr:  true,
		},
		{
			name:     "too long",
			username: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "long enough",
			password: "letmein!",
			wantErr:  false,
		},
		{
			name:     "too short",
			password: "short",
			wantErr:  true,
		},
		{
			name:     "empty",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestValidateWord(t *testing.T) {
	tests := []struct {
		name    string
		word    string
		wantErr bool
	}{
		{
			name:    "three letters",
			word:    "CAT",
			wantErr: false,
		},
		{
			name:    "seven letters",
			word:    "JOURNEY",
			wantErr: false,
		},
		{
			name:    "lowercase accepted",
			word:    "house",
			wantErr: false,
		},
		{
			name:    "two letters too short",
			word:    "GO",
			wantErr: true,
		},
		{
			name:    "eight letters too long",
			word:    "ELEPHANT",
			wantErr: true,
		},
		{
			name:    "digits rejected",
			word:    "HOU5E",
			wantErr: true,
		},
		{
			name:    "hyphen rejected",
			word:    "CO-OP",
			wantErr: true,
		},
		{
			name:    "empty rejected",
			word:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWord(tt.word)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWord(%q) error = %v, wantErr %v", tt.word, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	if err := ValidatePhone(""); err != nil {
		t.Errorf("empty phone should be allowed, got %v", err)
	}
	if err := ValidatePhone("+1 216 555 0100"); err != nil {
		t.Errorf("normal phone rejected: %v", err)
	}
	long := ""
	for i := 0; i < 40; i++ {
		long += "9"
	}
	if err := ValidatePhone(long); err == nil {
		t.Error("overlong phone should be rejected")
	}
}
