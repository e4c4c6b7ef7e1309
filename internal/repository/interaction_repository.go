package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

// InteractionRepo records tenant/listing interactions.
type InteractionRepo struct {
    db *sql.DB
}

// NewInteractionRepo constructs an InteractionRepo bound to the given database.
func NewInteractionRepo(db *sql.DB) *InteractionRepo { return &InteractionRepo{db: db} }

// Create inserts an interaction trace and populates its ID and timestamp.
func (r *InteractionRepo) Create(ctx context.Context, in *model.Interaction) error {
    const q = `INSERT INTO interactions (tenant_id, listing_id, resultat) VALUES (?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q, in.TenantID, in.ListingID, in.Outcome)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    in.ID = uint64(id)
    const sel = `SELECT id, tenant_id, listing_id, resultat, date_interaction
        FROM interactions WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, in.ID).
        Scan(&in.ID, &in.TenantID, &in.ListingID, &in.Outcome, &in.CreatedAt)
}

// ListByTenant returns a tenant's interactions, newest first.
func (r *InteractionRepo) ListByTenant(ctx context.Context, tenantID uint64) ([]model.Interaction, error) {
    const q = `SELECT id, tenant_id, listing_id, resultat, date_interaction
        FROM interactions WHERE tenant_id = ? ORDER BY date_interaction DESC`
    rows, err := r.db.QueryContext(ctx, q, tenantID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []model.Interaction{}
    for rows.Next() {
        var in model.Interaction
        if err := rows.Scan(&in.ID, &in.TenantID, &in.ListingID, &in.Outcome, &in.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, in)
    }
    return out, rows.Err()
}
