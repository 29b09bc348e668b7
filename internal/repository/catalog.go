package repository

import (
	"context"
	"fmt"

	"football_bot/internal/model"
	"football_bot/internal/normalize"
	"football_bot/internal/storage"
)

// appendChunk is how many catalog rows are written per batch.
const appendChunk = 50

// TeamPatch holds the catalog fields to change; nil fields are kept.
type TeamPatch struct {
	Name    *string
	LogoURL *string
	Country *string
	League  *string
}

// CatalogRepository reads and writes the TeamCatalog table.
type CatalogRepository struct {
	store storage.RowStore
}

// NewCatalogRepository creates a CatalogRepository.
func NewCatalogRepository(store storage.RowStore) *CatalogRepository {
	return &CatalogRepository{store: store}
}

// LoadTeams returns every catalog team, normalized. A missing table is empty.
func (r *CatalogRepository) LoadTeams(ctx context.Context) ([]model.Team, error) {
	rows, err := orEmpty(r.store.FindRows(ctx, storage.TableCatalog, nil))
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	teams := make([]model.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, normalize.FromStoreRow(row))
	}
	return teams, nil
}

// ExistingIDs returns the set of canonical ids already stored.
func (r *CatalogRepository) ExistingIDs(ctx context.Context) (map[string]struct{}, error) {
	teams, err := r.LoadTeams(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		ids[t.ID] = struct{}{}
	}
	return ids, nil
}

// Append writes teams in batches of appendChunk. It does not check for duplicates.
// It returns how many rows were written before any failure.
func (r *CatalogRepository) Append(ctx context.Context, teams []model.Team) (int, error) {
	if err := r.store.EnsureTable(ctx, storage.TableCatalog, storage.CatalogColumns); err != nil {
		return 0, fmt.Errorf("ensure catalog table: %w", err)
	}
	written := 0
	for start := 0; start < len(teams); start += appendChunk {
		end := min(start+appendChunk, len(teams))
		batch := make([]storage.Fields, 0, end-start)
		for _, t := range teams[start:end] {
			batch = append(batch, normalize.StoreFields(t))
		}
		if err := r.store.AddRows(ctx, storage.TableCatalog, batch); err != nil {
			return written, fmt.Errorf("append catalog rows: %w", err)
		}
		written += len(batch)
	}
	return written, nil
}

// Update applies patch to the team with the given id and returns the result.
func (r *CatalogRepository) Update(ctx context.Context, id string, patch TeamPatch) (model.Team, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return model.Team{}, err
	}

	fields := storage.Fields{}
	if patch.Name != nil {
		fields[storage.ColTeamName] = *patch.Name
	}
	if patch.LogoURL != nil {
		fields[storage.ColLogoURL] = normalize.CleanURL(*patch.LogoURL)
	}
	if patch.Country != nil {
		fields[storage.ColCountry] = *patch.Country
	}
	if patch.League != nil {
		fields[storage.ColLeague] = *patch.League
	}
	if err := r.store.UpdateRow(ctx, row.Ref, fields); err != nil {
		return model.Team{}, fmt.Errorf("update catalog team %s: %w", id, err)
	}

	for k, v := range fields {
		row.Fields[k] = v
	}
	return normalize.FromStoreRow(row), nil
}

// Delete removes the team with the given id.
func (r *CatalogRepository) Delete(ctx context.Context, id string) error {
	row, err := r.find(ctx, id)
	if err != nil {
		return err
	}
	if err := r.store.DeleteRow(ctx, row.Ref); err != nil {
		return fmt.Errorf("delete catalog team %s: %w", id, err)
	}
	return nil
}

func (r *CatalogRepository) find(ctx context.Context, id string) (storage.Row, error) {
	id = normalize.ID(id)
	rows, err := orEmpty(r.store.FindRows(ctx, storage.TableCatalog, func(row storage.Row) bool {
		return normalize.ID(row.Get(storage.ColID)) == id
	}))
	if err != nil {
		return storage.Row{}, fmt.Errorf("find catalog team %s: %w", id, err)
	}
	if len(rows) == 0 {
		return storage.Row{}, ErrNotFound
	}
	return rows[0], nil
}
