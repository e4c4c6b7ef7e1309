package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

// PreferenceRepo manages tenant search preferences.  The schema
// permits several rows per tenant; Upsert maintains a single row the
// way the preferences endpoint always has, while ListByTenant reads
// back however many exist for the scorer.
type PreferenceRepo struct {
    db *sql.DB
}

// NewPreferenceRepo constructs a PreferenceRepo with the given DB handle.
func NewPreferenceRepo(db *sql.DB) *PreferenceRepo { return &PreferenceRepo{db: db} }

const preferenceColumns = `id, tenant_id, type_logement, budget_min, budget_max, rayon_km, autres_spec`

// ListByTenant returns every preference row stored for a tenant.  An
// empty slice is not an error; the compatibility scorer treats it as
// score 0.
func (r *PreferenceRepo) ListByTenant(ctx context.Context, tenantID uint64) ([]model.TenantPreference, error) {
    const q = `SELECT ` + preferenceColumns + ` FROM tenant_preferences WHERE tenant_id = ?`
    rows, err := r.db.QueryContext(ctx, q, tenantID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []model.TenantPreference{}
    for rows.Next() {
        var (
            p     model.TenantPreference
            notes sql.NullString
        )
        if err := rows.Scan(&p.ID, &p.TenantID, &p.HousingType, &p.BudgetMin, &p.BudgetMax, &p.RadiusKm, &notes); err != nil {
            return nil, err
        }
        if notes.Valid {
            n := notes.String
            p.Notes = &n
        }
        out = append(out, p)
    }
    return out, rows.Err()
}

// Upsert creates the tenant's preference row or updates the existing
// one.  The decision is made on the presence of any prior row for
// the tenant, matching the historical endpoint behaviour.  It
// reports whether a new row was created.
func (r *PreferenceRepo) Upsert(ctx context.Context, p *model.TenantPreference) (bool, error) {
    var existing uint64
    err := r.db.QueryRowContext(ctx,
        `SELECT id FROM tenant_preferences WHERE tenant_id = ? LIMIT 1`,
        p.TenantID).Scan(&existing)
    switch {
    case err == sql.ErrNoRows:
        const ins = `INSERT INTO tenant_preferences
            (tenant_id, type_logement, budget_min, budget_max, rayon_km, autres_spec)
            VALUES (?, ?, ?, ?, ?, ?)`
        res, err := r.db.ExecContext(ctx, ins,
            p.TenantID, p.HousingType, p.BudgetMin, p.BudgetMax, p.RadiusKm, p.Notes)
        if err != nil {
            return false, err
        }
        id, err := res.LastInsertId()
        if err != nil {
            return false, err
        }
        p.ID = uint64(id)
        return true, nil
    case err != nil:
        return false, err
    }

    const upd = `UPDATE tenant_preferences
        SET type_logement = ?, budget_min = ?, budget_max = ?, rayon_km = ?, autres_spec = ?
        WHERE id = ?`
    if _, err := r.db.ExecContext(ctx, upd,
        p.HousingType, p.BudgetMin, p.BudgetMax, p.RadiusKm, p.Notes, existing); err != nil {
        return false, err
    }
    p.ID = existing
    return false, nil
}
