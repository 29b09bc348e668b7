package bot

import (
	"fmt"
	"strings"

	"football_bot/internal/normalize"
)

// ParseTeamID extracts a team id from a command argument string.
// Only the first word is used.
func ParseTeamID(args string) (string, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "", fmt.Errorf("team ID is required")
	}
	id := normalize.ID(fields[0])
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid team ID %q", fields[0])
		}
	}
	return id, nil
}

// ParseCallback splits callback data of the form "action:arg".
func ParseCallback(data string) (action, arg string, ok bool) {
	action, arg, ok = strings.Cut(data, ":")
	if !ok || action == "" {
		return "", "", false
	}
	return action, arg, true
}
