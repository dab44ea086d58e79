package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a registration subject. Username is the normalized phone number
// (or platform handle) the user writes from. Settings is a free-form map the
// conversation chains write collected answers into; unknown keys are fine.
type User struct {
	UUID      string         `json:"uuid" bson:"uuid"`
	Username  string         `json:"username" bson:"username" validate:"required"`
	Type      string         `json:"type" bson:"type"`
	FirstName string         `json:"first_name" bson:"first_name" validate:"omitempty"`
	LastName  string         `json:"last_name" bson:"last_name" validate:"omitempty"`
	Settings  map[string]any `json:"settings" bson:"settings"`
	Active    bool           `json:"active" bson:"active"`
	Complete  bool           `json:"complete" bson:"complete"`
	Created   time.Time      `json:"created" bson:"created"`
	LastSeen  time.Time      `json:"last_seen" bson:"lastSeen"`
}

const (
	UserTypeSMS      = "sms"
	UserTypeTelegram = "telegram"
	UserTypeBot      = "bot"
)

func NewUser(username, userType string) *User {
	return &User{
		UUID:     uuid.NewString(),
		Username: NormalizeUsername(username),
		Type:     userType,
		Settings: make(map[string]any),
		Active:   true,
		Created:  time.Now(),
		LastSeen: time.Now(),
	}
}

// NormalizeUsername strips everything but digits from a phone-style username.
// Non-numeric handles (telegram ids already are digits) pass through trimmed.
func NormalizeUsername(username string) string {
	username = strings.TrimSpace(username)
	digits := ""
	for _, ch := range username {
		if ch >= '0' && ch <= '9' {
			digits += string(ch)
		}
	}
	if digits == "" {
		return username
	}
	return digits
}

// Setting returns the raw settings value and whether it is present at all.
// Presence matters to the scheduler: an empty string or false still counts
// as an answered question.
func (u *User) Setting(key string) (any, bool) {
	if u.Settings == nil {
		return nil, false
	}
	v, ok := u.Settings[key]
	return v, ok
}

// SettingString returns the settings value rendered as a display string.
func (u *User) SettingString(key string) string {
	v, ok := u.Setting(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	switch b := v.(type) {
	case bool:
		if b {
			return "true"
		}
		return "false"
	}
	return ""
}

func (u *User) SetSetting(key string, value any) {
	if u.Settings == nil {
		u.Settings = make(map[string]any)
	}
	u.Settings[key] = value
}

func (u *User) SameUser(other *User) bool {
	if other == nil {
		return false
	}
	return u.Username != "" && u.Username == other.Username
}
