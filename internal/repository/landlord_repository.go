package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

// LandlordRepo manages persistence for landlord profiles.
type LandlordRepo struct {
    db *sql.DB
}

// NewLandlordRepo constructs a LandlordRepo with the given DB handle.
func NewLandlordRepo(db *sql.DB) *LandlordRepo { return &LandlordRepo{db: db} }

const landlordColumns = `id, user_id, nom, email, telephone, is_active, date_inscription`

// Create inserts a landlord profile and assigns the generated ID
// back to the struct.  ErrEmailExists is returned on a duplicate.
func (r *LandlordRepo) Create(ctx context.Context, l *model.Landlord) error {
    l.Email = strings.ToLower(strings.TrimSpace(l.Email))
    const q = `INSERT INTO landlords (user_id, nom, email, telephone) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, l.UserID, l.Name, l.Email, l.Phone)
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
    l.ID = uint64(id)
    const sel = `SELECT ` + landlordColumns + ` FROM landlords WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, l.ID).Scan(
        &l.ID, &l.UserID, &l.Name, &l.Email, &l.Phone, &l.IsActive, &l.CreatedAt)
}

// GetByID fetches a landlord by ID.
func (r *LandlordRepo) GetByID(ctx context.Context, id uint64) (model.Landlord, error) {
    const q = `SELECT ` + landlordColumns + ` FROM landlords WHERE id = ? LIMIT 1`
    var l model.Landlord
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &l.ID, &l.UserID, &l.Name, &l.Email, &l.Phone, &l.IsActive, &l.CreatedAt)
    return l, err
}

// GetByUserID fetches the landlord profile owned by an auth account.
func (r *LandlordRepo) GetByUserID(ctx context.Context, userID uint64) (model.Landlord, error) {
    const q = `SELECT ` + landlordColumns + ` FROM landlords WHERE user_id = ? LIMIT 1`
    var l model.Landlord
    err := r.db.QueryRowContext(ctx, q, userID).Scan(
        &l.ID, &l.UserID, &l.Name, &l.Email, &l.Phone, &l.IsActive, &l.CreatedAt)
    return l, err
}

// Update applies name/phone changes to a landlord profile.
func (r *LandlordRepo) Update(ctx context.Context, id uint64, name, phone *string) error {
    set := []string{}
    args := []any{}
    if name != nil {
        set = append(set, "nom = ?")
        args = append(args, *name)
    }
    if phone != nil {
        set = append(set, "telephone = ?")
        args = append(args, *phone)
    }
    if len(set) == 0 {
        return ErrNoChange
    }
    q := "UPDATE landlords SET " + strings.Join(set, ", ") + " WHERE id = ?"
    args = append(args, id)
    _, err := r.db.ExecContext(ctx, q, args...)
    return err
}

// Deactivate soft-deletes a landlord profile.  Their listings stay
// in place.
func (r *LandlordRepo) Deactivate(ctx context.Context, id uint64) error {
    const q = `UPDATE landlords SET is_active = 0 WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, id)
    return err
}
