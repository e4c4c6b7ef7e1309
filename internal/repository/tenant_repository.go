package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

// TenantRepo manages persistence for tenant profiles.
type TenantRepo struct {
    db *sql.DB
}

// NewTenantRepo constructs a TenantRepo with the given DB handle.
func NewTenantRepo(db *sql.DB) *TenantRepo { return &TenantRepo{db: db} }

const tenantColumns = `id, user_id, nom, email, universite, is_active, date_inscription`

// Create inserts a tenant profile and assigns the generated ID back
// to the struct.  ErrEmailExists is returned on a duplicate email.
func (r *TenantRepo) Create(ctx context.Context, t *model.Tenant) error {
    t.Email = strings.ToLower(strings.TrimSpace(t.Email))
    const q = `INSERT INTO tenants (user_id, nom, email, universite) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, t.UserID, t.Name, t.Email, t.University)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrEmailExists
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    t.ID = uint64(id)
    const sel = `SELECT ` + tenantColumns + ` FROM tenants WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, t.ID).Scan(
        &t.ID, &t.UserID, &t.Name, &t.Email, &t.University, &t.IsActive, &t.CreatedAt)
}

// GetByID fetches a tenant by ID.
func (r *TenantRepo) GetByID(ctx context.Context, id uint64) (model.Tenant, error) {
    const q = `SELECT ` + tenantColumns + ` FROM tenants WHERE id = ? LIMIT 1`
    var t model.Tenant
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &t.ID, &t.UserID, &t.Name, &t.Email, &t.University, &t.IsActive, &t.CreatedAt)
    return t, err
}

// GetByUserID fetches the tenant profile owned by an auth account.
func (r *TenantRepo) GetByUserID(ctx context.Context, userID uint64) (model.Tenant, error) {
    const q = `SELECT ` + tenantColumns + ` FROM tenants WHERE user_id = ? LIMIT 1`
    var t model.Tenant
    err := r.db.QueryRowContext(ctx, q, userID).Scan(
        &t.ID, &t.UserID, &t.Name, &t.Email, &t.University, &t.IsActive, &t.CreatedAt)
    return t, err
}

// Update applies name/university changes to a tenant profile.
func (r *TenantRepo) Update(ctx context.Context, id uint64, name, university *string) error {
    set := []string{}
    args := []any{}
    if name != nil {
        set = append(set, "nom = ?")
        args = append(args, *name)
    }
    if university != nil {
        set = append(set, "universite = ?")
        args = append(args, *university)
    }
    if len(set) == 0 {
        return ErrNoChange
    }
    q := "UPDATE tenants SET " + strings.Join(set, ", ") + " WHERE id = ?"
    args = append(args, id)
    _, err := r.db.ExecContext(ctx, q, args...)
    return err
}

// Deactivate soft-deletes a tenant profile.  Inactive tenants cannot
// reserve or review.
func (r *TenantRepo) Deactivate(ctx context.Context, id uint64) error {
    const q = `UPDATE tenants SET is_active = 0 WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, id)
    return err
}

// isDuplicateKey reports whether err is the MySQL duplicate-entry
// error (1062).
func isDuplicateKey(err error) bool {
    return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
