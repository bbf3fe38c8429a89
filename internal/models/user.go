package models

import (
	"encoding/json"
	"time"
)

// User represents a player account. Guest accounts have no email or password
// hash until the profile is claimed.
type User struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	FullName      string     `json:"fullName,omitempty"`
	Email         string     `json:"email,omitempty"`
	PasswordHash  string     `json:"-"`
	PhoneNumber   string     `json:"phoneNumber,omitempty"`
	OAuthProvider string     `json:"-"`
	OAuthSubject  string     `json:"-"`
	DeviceInfo    []string   `json:"-"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// IsGuest reports whether the account has not been claimed yet
func (u *User) IsGuest() bool {
	return u.Email == "" && u.PasswordHash == ""
}

// EncodeDeviceInfo serializes the device info list for storage
func EncodeDeviceInfo(info []string) string {
	if len(info) == 0 {
		return "[]"
	}
	data, err := json.Marshal(info)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// DecodeDeviceInfo parses a stored device info list
func DecodeDeviceInfo(data string) []string {
	if data == "" {
		return nil
	}
	var info []string
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return nil
	}
	return info
}
