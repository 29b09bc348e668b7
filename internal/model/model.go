// Package model defines the domain types used across the application.
package model

import "time"

// Team is the canonical team record shared by the catalog provider and the row store.
type Team struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AlternateName string `json:"alternateName,omitempty"`
	League        string `json:"league"`
	Country       string `json:"country"`
	LogoURL       string `json:"logo,omitempty"`
}

// User is a bot user, upserted on every inbound interaction.
type User struct {
	ID           int64     `json:"userId"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"name"`
	RegisteredAt time.Time `json:"registeredAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
	Active       bool      `json:"active"`
}

// Identity is what the chat transport tells us about the user behind an update.
type Identity struct {
	ID        int64  `json:"id" validate:"required"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

// Follow is a user's subscription to a team.
type Follow struct {
	RowID    int64                `json:"-"`
	UserID   int64                `json:"userId"`
	TeamID   string               `json:"teamId"`
	TeamName string               `json:"teamName"`
	Settings NotificationSettings `json:"settings"`
	AddedAt  time.Time            `json:"addedAt"`
}

// NotificationSettings holds the per-event notification toggles of a follow.
type NotificationSettings struct {
	Before1h   bool `json:"before1h"`
	Before15m  bool `json:"before15m"`
	MatchStart bool `json:"matchStart"`
	Goals      bool `json:"goals"`
	Cards      bool `json:"cards"`
	HalfTime   bool `json:"halfTime"`
	FullTime   bool `json:"fullTime"`
}

// DefaultSettings returns settings with every toggle enabled.
func DefaultSettings() NotificationSettings {
	return NotificationSettings{
		Before1h:   true,
		Before15m:  true,
		MatchStart: true,
		Goals:      true,
		Cards:      true,
		HalfTime:   true,
		FullTime:   true,
	}
}

// SettingsFromMap applies named toggles on top of the defaults.
// Unknown names are ignored.
func SettingsFromMap(m map[string]bool) NotificationSettings {
	s := DefaultSettings()
	for k, v := range m {
		switch k {
		case "before1h":
			s.Before1h = v
		case "before15m":
			s.Before15m = v
		case "matchStart":
			s.MatchStart = v
		case "goals":
			s.Goals = v
		case "cards":
			s.Cards = v
		case "halfTime":
			s.HalfTime = v
		case "fullTime":
			s.FullTime = v
		}
	}
	return s
}

// Map returns the toggles keyed by name.
func (s NotificationSettings) Map() map[string]bool {
	return map[string]bool{
		"before1h":   s.Before1h,
		"before15m":  s.Before15m,
		"matchStart": s.MatchStart,
		"goals":      s.Goals,
		"cards":      s.Cards,
		"halfTime":   s.HalfTime,
		"fullTime":   s.FullTime,
	}
}

// DesiredTeam is one entry of a follow list submitted by the web app.
type DesiredTeam struct {
	ID       string
	Name     string
	Settings *NotificationSettings
}

// Match is a finished fixture of a team.
type Match struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore *int   `json:"homeScore"`
	AwayScore *int   `json:"awayScore"`
	League    string `json:"league"`
	Status    string `json:"status"`
}

// Stats summarizes the stored users and follows.
type Stats struct {
	TotalUsers   int `json:"totalUsers"`
	ActiveUsers  int `json:"activeUsers"`
	TotalFollows int `json:"totalFollows"`
}
