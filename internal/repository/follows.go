package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"football_bot/internal/model"
	"football_bot/internal/normalize"
	"football_bot/internal/storage"
)

// FollowRepository reads and writes the Follows table.
type FollowRepository struct {
	store storage.RowStore
	now   func() time.Time
}

// NewFollowRepository creates a FollowRepository.
func NewFollowRepository(store storage.RowStore) *FollowRepository {
	return &FollowRepository{store: store, now: time.Now}
}

// ListByUser returns the follows of one user in the order they were added.
func (r *FollowRepository) ListByUser(ctx context.Context, userID int64) ([]model.Follow, error) {
	rows, err := orEmpty(r.store.FindRows(ctx, storage.TableFollows, storage.Where(storage.ColUserID, formatUserID(userID))))
	if err != nil {
		return nil, fmt.Errorf("list follows of %d: %w", userID, err)
	}
	follows := make([]model.Follow, 0, len(rows))
	for _, row := range rows {
		follows = append(follows, followFromRow(row))
	}
	return follows, nil
}

// CountByUser returns follow counts keyed by user id.
func (r *FollowRepository) CountByUser(ctx context.Context) (map[int64]int, error) {
	rows, err := orEmpty(r.store.FindRows(ctx, storage.TableFollows, nil))
	if err != nil {
		return nil, fmt.Errorf("count follows: %w", err)
	}
	counts := make(map[int64]int)
	for _, row := range rows {
		id, err := strconv.ParseInt(row.Get(storage.ColUserID), 10, 64)
		if err != nil {
			continue
		}
		counts[id]++
	}
	return counts, nil
}

// Add stores a new follow. It sets AddedAt and RowID on the returned copy.
func (r *FollowRepository) Add(ctx context.Context, f model.Follow) (model.Follow, error) {
	if err := r.store.EnsureTable(ctx, storage.TableFollows, storage.FollowsColumns); err != nil {
		return model.Follow{}, fmt.Errorf("ensure follows table: %w", err)
	}
	settings, err := encodeSettings(f.Settings)
	if err != nil {
		return model.Follow{}, err
	}
	f.TeamID = normalize.ID(f.TeamID)
	f.AddedAt = r.now().UTC().Truncate(time.Second)

	row, err := r.store.AddRow(ctx, storage.TableFollows, storage.Fields{
		storage.ColUserID:   formatUserID(f.UserID),
		storage.ColTeamID:   f.TeamID,
		storage.ColTeamName: f.TeamName,
		storage.ColSettings: settings,
		storage.ColAddedAt:  formatTime(f.AddedAt),
	})
	if err != nil {
		return model.Follow{}, fmt.Errorf("add follow %d/%s: %w", f.UserID, f.TeamID, err)
	}
	f.RowID = row.Ref.ID
	return f, nil
}

// UpdateSettings rewrites the settings of an existing follow.
func (r *FollowRepository) UpdateSettings(ctx context.Context, f model.Follow, s model.NotificationSettings) error {
	settings, err := encodeSettings(s)
	if err != nil {
		return err
	}
	ref := storage.RowRef{Table: storage.TableFollows, ID: f.RowID}
	if err := r.store.UpdateRow(ctx, ref, storage.Fields{storage.ColSettings: settings}); err != nil {
		return fmt.Errorf("update follow %d/%s: %w", f.UserID, f.TeamID, err)
	}
	return nil
}

// Delete removes a follow row.
func (r *FollowRepository) Delete(ctx context.Context, f model.Follow) error {
	ref := storage.RowRef{Table: storage.TableFollows, ID: f.RowID}
	if err := r.store.DeleteRow(ctx, ref); err != nil {
		return fmt.Errorf("delete follow %d/%s: %w", f.UserID, f.TeamID, err)
	}
	return nil
}

func followFromRow(row storage.Row) model.Follow {
	userID, _ := strconv.ParseInt(row.Get(storage.ColUserID), 10, 64)
	return model.Follow{
		RowID:    row.Ref.ID,
		UserID:   userID,
		TeamID:   normalize.ID(row.Get(storage.ColTeamID)),
		TeamName: row.Get(storage.ColTeamName),
		Settings: decodeSettings(row.Get(storage.ColSettings)),
		AddedAt:  parseTime(row.Get(storage.ColAddedAt)),
	}
}

func encodeSettings(s model.NotificationSettings) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	return string(b), nil
}

// decodeSettings tolerates the legacy "all" notification type, empty cells and
// partial objects; anything unset defaults to enabled.
func decodeSettings(raw string) model.NotificationSettings {
	s := model.DefaultSettings()
	if raw == "" || raw[0] != '{' {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return model.DefaultSettings()
	}
	return s
}
