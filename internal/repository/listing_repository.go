// Package repository contains the data access layer.  Each repository
// wraps a *sql.DB handle and exposes context-aware CRUD methods; the
// ...Tx variants participate in a caller-owned transaction instead of
// the repository handle.
package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "strings"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

// ListingRepo manages persistence for listings.
type ListingRepo struct {
    db *sql.DB
}

// NewListingRepo constructs a ListingRepo with the given DB handle.
func NewListingRepo(db *sql.DB) *ListingRepo {
    return &ListingRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *ListingRepo) DB() *sql.DB {
    return r.db
}

const listingColumns = `id, landlord_id, titre, accroche, adresse, latitude, longitude,
       prix, type_logement, statut, score, photos, date_ajout`

// ListingUpdate carries the optional fields of a partial update.  A
// nil field leaves the column untouched.
type ListingUpdate struct {
    Title       *string
    Pitch       *string
    Address     *string
    Latitude    *float64
    Longitude   *float64
    Price       *int
    HousingType *string
    Status      *string
}

// Create inserts a new listing and assigns the generated ID and
// creation timestamp back to the struct.  Score starts at 0 and
// status defaults to available unless the caller set one.
func (r *ListingRepo) Create(ctx context.Context, l *model.Listing) error {
    if l.Status == "" {
        l.Status = model.StatusAvailable
    }
    photos, err := marshalPhotos(l.Photos)
    if err != nil {
        return err
    }
    const q = `INSERT INTO listings
        (landlord_id, titre, accroche, adresse, latitude, longitude, prix, type_logement, statut, score, photos)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`
    res, err := r.db.ExecContext(ctx, q,
        l.LandlordID, l.Title, l.Pitch, l.Address, l.Latitude, l.Longitude,
        l.Price, l.HousingType, l.Status, photos)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    l.ID = uint64(id)
    // Query back to populate DB defaults (score, date_ajout).
    const sel = `SELECT ` + listingColumns + ` FROM listings WHERE id = ?`
    return scanListing(r.db.QueryRowContext(ctx, sel, l.ID), l)
}

// GetByID retrieves a listing by ID.  sql.ErrNoRows is returned when
// no row matches.
func (r *ListingRepo) GetByID(ctx context.Context, id uint64) (model.Listing, error) {
    const q = `SELECT ` + listingColumns + ` FROM listings WHERE id = ?`
    var l model.Listing
    err := scanListing(r.db.QueryRowContext(ctx, q, id), &l)
    return l, err
}

// ListCandidates returns the candidate set for the in-memory search
// engine.  When status is non-nil only listings in that status are
// fetched; the engine applies every other criterion itself.
func (r *ListingRepo) ListCandidates(ctx context.Context, status *string) ([]model.Listing, error) {
    q := `SELECT ` + listingColumns + ` FROM listings`
    args := []any{}
    if status != nil {
        q += ` WHERE statut = ?`
        args = append(args, *status)
    }
    q += ` ORDER BY date_ajout DESC`

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []model.Listing{}
    for rows.Next() {
        var l model.Listing
        if err := scanListing(rows, &l); err != nil {
            return nil, err
        }
        out = append(out, l)
    }
    return out, rows.Err()
}

// ListByLandlord returns every listing owned by the given landlord,
// newest first.
func (r *ListingRepo) ListByLandlord(ctx context.Context, landlordID uint64) ([]model.Listing, error) {
    const q = `SELECT ` + listingColumns + ` FROM listings WHERE landlord_id = ? ORDER BY date_ajout DESC`
    rows, err := r.db.QueryContext(ctx, q, landlordID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []model.Listing{}
    for rows.Next() {
        var l model.Listing
        if err := scanListing(rows, &l); err != nil {
            return nil, err
        }
        out = append(out, l)
    }
    return out, rows.Err()
}

// Update applies a partial update.  It returns ErrNoChange when every
// field of upd is nil and sql.ErrNoRows when the listing does not
// exist.
func (r *ListingRepo) Update(ctx context.Context, id uint64, upd ListingUpdate) error {
    set := []string{}
    args := []any{}
    add := func(col string, v any) {
        set = append(set, col+" = ?")
        args = append(args, v)
    }
    if upd.Title != nil {
        add("titre", *upd.Title)
    }
    if upd.Pitch != nil {
        add("accroche", *upd.Pitch)
    }
    if upd.Address != nil {
        add("adresse", *upd.Address)
    }
    if upd.Latitude != nil {
        add("latitude", *upd.Latitude)
    }
    if upd.Longitude != nil {
        add("longitude", *upd.Longitude)
    }
    if upd.Price != nil {
        add("prix", *upd.Price)
    }
    if upd.HousingType != nil {
        add("type_logement", *upd.HousingType)
    }
    if upd.Status != nil {
        add("statut", *upd.Status)
    }
    if len(set) == 0 {
        return ErrNoChange
    }

    q := "UPDATE listings SET " + strings.Join(set, ", ") + " WHERE id = ?"
    args = append(args, id)
    res, err := r.db.ExecContext(ctx, q, args...)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        // Either the row is absent or the values already matched;
        // distinguish by probing for existence.
        var exists uint64
        if err := r.db.QueryRowContext(ctx, `SELECT id FROM listings WHERE id = ?`, id).Scan(&exists); err != nil {
            return err
        }
    }
    return nil
}

// SetPhotos replaces the listing's photo array.
func (r *ListingRepo) SetPhotos(ctx context.Context, id uint64, photos []string) error {
    blob, err := marshalPhotos(photos)
    if err != nil {
        return err
    }
    const q = `UPDATE listings SET photos = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, blob, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        var exists uint64
        if err := r.db.QueryRowContext(ctx, `SELECT id FROM listings WHERE id = ?`, id).Scan(&exists); err != nil {
            return err
        }
    }
    return nil
}

// UpdateStatus sets the listing status unconditionally.  Ownership
// checks belong to the handler.
func (r *ListingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
    const q = `UPDATE listings SET statut = ? WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, status, id)
    return err
}

// UpdateStatusIfTx transitions the status only when the current value
// equals from, inside a caller-owned transaction.  It reports whether
// the transition happened; a false return with nil error means another
// writer got there first.  This conditional update is the guard
// against double booking.
func (r *ListingRepo) UpdateStatusIfTx(ctx context.Context, tx *sql.Tx, id uint64, from, to string) (bool, error) {
    const q = `UPDATE listings SET statut = ? WHERE id = ? AND statut = ?`
    res, err := tx.ExecContext(ctx, q, to, id, from)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// UpdateScore persists a recomputed review score.
func (r *ListingRepo) UpdateScore(ctx context.Context, id uint64, score float64) error {
    const q = `UPDATE listings SET score = ? WHERE id = ?`
    _, err := r.db.ExecContext(ctx, q, score, id)
    return err
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
    Scan(dest ...any) error
}

func scanListing(s scanner, l *model.Listing) error {
    var (
        pitch  sql.NullString
        photos []byte
    )
    if err := s.Scan(
        &l.ID, &l.LandlordID, &l.Title, &pitch, &l.Address,
        &l.Latitude, &l.Longitude, &l.Price, &l.HousingType,
        &l.Status, &l.Score, &photos, &l.CreatedAt,
    ); err != nil {
        return err
    }
    if pitch.Valid {
        p := pitch.String
        l.Pitch = &p
    }
    l.Photos = []string{}
    if len(photos) > 0 {
        if err := json.Unmarshal(photos, &l.Photos); err != nil {
            return err
        }
    }
    return nil
}

func marshalPhotos(photos []string) ([]byte, error) {
    if photos == nil {
        photos = []string{}
    }
    return json.Marshal(photos)
}
