// Package normalize maps catalog provider records and row store rows onto the
// canonical model.Team. All functions are pure.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"football_bot/internal/catalog"
	"football_bot/internal/model"
	"football_bot/internal/storage"
)

// Unknown substitutes a missing league or country.
const Unknown = "N/A"

// NewTeam is the canonical constructor every adapter converges on.
func NewTeam(id, name, alternate, league, country, logo string) model.Team {
	return model.Team{
		ID:            ID(id),
		Name:          strings.TrimSpace(name),
		AlternateName: strings.TrimSpace(alternate),
		League:        orUnknown(league),
		Country:       orUnknown(country),
		LogoURL:       CleanURL(logo),
	}
}

// Canonical re-applies NewTeam to an existing team. It is idempotent.
func Canonical(t model.Team) model.Team {
	return NewTeam(t.ID, t.Name, t.AlternateName, t.League, t.Country, t.LogoURL)
}

// FromCatalog converts a provider record.
func FromCatalog(raw catalog.RawTeam) model.Team {
	return NewTeam(string(raw.IDTeam), raw.Team, raw.Alternate, raw.League, raw.Country, raw.BadgeURL())
}

// FromStoreRow converts a TeamCatalog row.
func FromStoreRow(row storage.Row) model.Team {
	return NewTeam(
		row.Get(storage.ColID),
		row.Get(storage.ColTeamName),
		row.Get(storage.ColAlternate),
		row.Get(storage.ColLeague),
		row.Get(storage.ColCountry),
		row.Get(storage.ColLogoURL),
	)
}

// StoreFields converts a team into a TeamCatalog row.
func StoreFields(t model.Team) storage.Fields {
	t = Canonical(t)
	return storage.Fields{
		storage.ColID:        t.ID,
		storage.ColLeague:    t.League,
		storage.ColTeamName:  t.Name,
		storage.ColAlternate: t.AlternateName,
		storage.ColCountry:   t.Country,
		storage.ColLogoURL:   t.LogoURL,
	}
}

// ID canonicalizes a provider id. Integral numbers lose leading zeros, signs
// and trailing ".0" (spreadsheets like to add those); anything else is only trimmed.
func ID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// CleanURL unescapes backslash-escaped slashes, including repeated escaping.
// Empty input stays empty.
func CleanURL(raw string) string {
	s := strings.TrimSpace(raw)
	for strings.Contains(s, `\/`) {
		s = strings.ReplaceAll(s, `\/`, "/")
	}
	return s
}

// MatchFromCatalog converts a provider event.
func MatchFromCatalog(raw catalog.RawEvent) model.Match {
	return model.Match{
		ID:        ID(string(raw.IDEvent)),
		Date:      strings.TrimSpace(raw.DateEvent),
		Time:      strings.TrimSpace(raw.Time),
		HomeTeam:  strings.TrimSpace(raw.HomeTeam),
		AwayTeam:  strings.TrimSpace(raw.AwayTeam),
		HomeScore: score(string(raw.HomeScore)),
		AwayScore: score(string(raw.AwayScore)),
		League:    orUnknown(raw.League),
		Status:    strings.TrimSpace(raw.Status),
	}
}

func score(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}

func orUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unknown
	}
	return s
}
