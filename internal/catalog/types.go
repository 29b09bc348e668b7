package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text decodes a JSON string, number or null into a string.
// The provider is inconsistent about quoting ids and scores.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// RawTeam is a team record as the provider returns it.
type RawTeam struct {
	IDTeam      Text   `json:"idTeam"`
	Team        string `json:"strTeam"`
	Alternate   string `json:"strAlternate"`
	League      string `json:"strLeague"`
	Country     string `json:"strCountry"`
	TeamBadge   string `json:"strTeamBadge"`
	Badge       string `json:"strBadge"`
	Stadium     string `json:"strStadium"`
	Description string `json:"strDescriptionEN"`
}

// BadgeURL returns whichever badge field the provider filled.
func (r RawTeam) BadgeURL() string {
	if strings.TrimSpace(r.TeamBadge) != "" {
		return r.TeamBadge
	}
	return r.Badge
}

// RawEvent is a finished event as the provider returns it.
type RawEvent struct {
	IDEvent   Text   `json:"idEvent"`
	DateEvent string `json:"dateEvent"`
	Time      string `json:"strTime"`
	HomeTeam  string `json:"strHomeTeam"`
	AwayTeam  string `json:"strAwayTeam"`
	HomeScore Text   `json:"intHomeScore"`
	AwayScore Text   `json:"intAwayScore"`
	League    string `json:"strLeague"`
	Status    string `json:"strStatus"`
}

type teamsResponse struct {
	Teams []RawTeam `json:"teams"`
}

type eventsResponse struct {
	Results []RawEvent `json:"results"`
}

// PopularLeagues is the default set of leagues mirrored into the row store.
var PopularLeagues = []string{
	"English Premier League",
	"German Bundesliga",
	"Spanish La Liga",
	"Italian Serie A",
	"French Ligue 1",
	"Dutch Eredivisie",
	"Brazilian Serie A",
	"Portuguese Primeira Liga",
	"Mexican Liga MX",
	"Turkish Super League",
	"UEFA Champions League",
	"UEFA Europa League",
	"UEFA Europa Conference League",
	"Copa Libertadores",
	"Copa Sudamericana",
	"FIFA World Cup",
	"American MLS",
	"Saudi Pro League",
	"Belgian Pro League",
	"Scottish Premiership",
}
