package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"football_bot/internal/model"
	"football_bot/internal/storage"
)

// UserRepository reads and writes the Users table.
type UserRepository struct {
	store storage.RowStore
	now   func() time.Time
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(store storage.RowStore) *UserRepository {
	return &UserRepository{store: store, now: time.Now}
}

// DisplayName renders the username column the way the sheet always did:
// "@username" when there is one, the first name otherwise.
func DisplayName(id model.Identity) string {
	if id.Username != "" {
		return "@" + id.Username
	}
	return id.FirstName
}

// Upsert registers the user or refreshes their last activity. It is idempotent
// apart from the activity timestamp.
func (r *UserRepository) Upsert(ctx context.Context, id model.Identity) (model.User, error) {
	if err := r.store.EnsureTable(ctx, storage.TableUsers, storage.UsersColumns); err != nil {
		return model.User{}, fmt.Errorf("ensure users table: %w", err)
	}

	ts := formatTime(r.now())
	fields := storage.Fields{
		storage.ColUsername:   DisplayName(id),
		storage.ColName:       id.FirstName,
		storage.ColLastActive: ts,
		storage.ColActive:     "true",
	}

	rows, err := r.store.FindRows(ctx, storage.TableUsers, storage.Where(storage.ColUserID, formatUserID(id.ID)))
	if err != nil {
		return model.User{}, fmt.Errorf("find user %d: %w", id.ID, err)
	}
	if len(rows) > 0 {
		row := rows[0]
		if err := r.store.UpdateRow(ctx, row.Ref, fields); err != nil {
			return model.User{}, fmt.Errorf("update user %d: %w", id.ID, err)
		}
		for k, v := range fields {
			row.Fields[k] = v
		}
		return userFromRow(row), nil
	}

	fields[storage.ColUserID] = formatUserID(id.ID)
	fields[storage.ColRegisteredAt] = ts
	row, err := r.store.AddRow(ctx, storage.TableUsers, fields)
	if err != nil {
		return model.User{}, fmt.Errorf("add user %d: %w", id.ID, err)
	}
	return userFromRow(row), nil
}

// Get returns a single user.
func (r *UserRepository) Get(ctx context.Context, userID int64) (model.User, error) {
	row, err := r.find(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	return userFromRow(row), nil
}

// List returns every user in registration order.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := orEmpty(r.store.FindRows(ctx, storage.TableUsers, nil))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, userFromRow(row))
	}
	return users, nil
}

// Update changes the stored name and/or username. Empty values are kept.
func (r *UserRepository) Update(ctx context.Context, userID int64, name, username string) (model.User, error) {
	row, err := r.find(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	fields := storage.Fields{}
	if name != "" {
		fields[storage.ColName] = name
	}
	if username != "" {
		fields[storage.ColUsername] = username
	}
	if len(fields) > 0 {
		if err := r.store.UpdateRow(ctx, row.Ref, fields); err != nil {
			return model.User{}, fmt.Errorf("update user %d: %w", userID, err)
		}
	}
	for k, v := range fields {
		row.Fields[k] = v
	}
	return userFromRow(row), nil
}

// Delete removes the user row. Follows are not touched.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	row, err := r.find(ctx, userID)
	if err != nil {
		return err
	}
	if err := r.store.DeleteRow(ctx, row.Ref); err != nil {
		return fmt.Errorf("delete user %d: %w", userID, err)
	}
	return nil
}

func (r *UserRepository) find(ctx context.Context, userID int64) (storage.Row, error) {
	rows, err := orEmpty(r.store.FindRows(ctx, storage.TableUsers, storage.Where(storage.ColUserID, formatUserID(userID))))
	if err != nil {
		return storage.Row{}, fmt.Errorf("find user %d: %w", userID, err)
	}
	if len(rows) == 0 {
		return storage.Row{}, ErrNotFound
	}
	return rows[0], nil
}

func userFromRow(row storage.Row) model.User {
	id, _ := strconv.ParseInt(row.Get(storage.ColUserID), 10, 64)
	return model.User{
		ID:           id,
		Username:     row.Get(storage.ColUsername),
		DisplayName:  row.Get(storage.ColName),
		RegisteredAt: parseTime(row.Get(storage.ColRegisteredAt)),
		LastActiveAt: parseTime(row.Get(storage.ColLastActive)),
		Active:       row.Get(storage.ColActive) == "true",
	}
}
