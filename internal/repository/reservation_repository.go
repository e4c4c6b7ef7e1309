package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

// ReservationRepo manages persistence for reservations.  Creation
// happens inside a caller-owned transaction together with the
// listing status transition, so the availability check and the
// booking cannot race with a concurrent reservation of the same
// listing.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo constructs a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying sql.DB for transaction control.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, tenant_id, listing_id, statut, montant_total,
       date_debut, date_fin, is_paiement_securise, contrat_url, date_reservation`

// CreateTx inserts a new reservation within the provided transaction
// and populates the generated ID and DB defaults on the struct.  The
// caller must commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    const q = `INSERT INTO reservations
        (tenant_id, listing_id, statut, montant_total, date_debut, date_fin, is_paiement_securise, contrat_url)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        res.TenantID, res.ListingID, res.Status, res.Amount,
        res.StartDate, res.EndDate, res.SecurePayment, res.ContractURL)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    const sel = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    return scanReservation(tx.QueryRowContext(ctx, sel, res.ID), res)
}

// GetByID retrieves a reservation by ID.  sql.ErrNoRows when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
    const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
    var res model.Reservation
    err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res)
    return res, err
}

// ReservationQuery defines filters and pagination for listing
// reservations.  Zero-valued filter fields impose no constraint.
type ReservationQuery struct {
    TenantID  uint64
    ListingID uint64
    Status    string
    From      *time.Time // inclusive lower bound on date_debut
    To        *time.Time // inclusive upper bound on date_fin
    Page      int
    PageSize  int
}

// List returns one page of reservations plus the total match count,
// newest first.
func (r *ReservationRepo) List(ctx context.Context, q ReservationQuery) ([]model.Reservation, int64, error) {
    where := []string{}
    args := []any{}
    if q.TenantID != 0 {
        where = append(where, "tenant_id = ?")
        args = append(args, q.TenantID)
    }
    if q.ListingID != 0 {
        where = append(where, "listing_id = ?")
        args = append(args, q.ListingID)
    }
    if q.Status != "" {
        where = append(where, "statut = ?")
        args = append(args, q.Status)
    }
    if q.From != nil {
        where = append(where, "date_debut >= ?")
        args = append(args, *q.From)
    }
    if q.To != nil {
        where = append(where, "date_fin <= ?")
        args = append(args, *q.To)
    }

    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }

    var total int64
    countSQL := `SELECT COUNT(*) FROM reservations WHERE ` + cond
    if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
        return nil, 0, err
    }

    page := q.Page
    if page < 1 {
        page = 1
    }
    size := q.PageSize
    if size < 1 {
        size = 10
    }
    dataSQL := `SELECT ` + reservationColumns + ` FROM reservations WHERE ` + cond + `
        ORDER BY date_reservation DESC LIMIT ? OFFSET ?`
    argsData := append(append([]any{}, args...), size, (page-1)*size)

    rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    out := []model.Reservation{}
    for rows.Next() {
        var res model.Reservation
        if err := scanReservation(rows, &res); err != nil {
            return nil, 0, err
        }
        out = append(out, res)
    }
    return out, total, rows.Err()
}

// HasOverlapForListing reports whether a pending or confirmed
// reservation on the listing overlaps the [start, end] window.  This
// is a soft pre-check; the hard guarantee is the conditional status
// update on the listing row.
func (r *ReservationRepo) HasOverlapForListing(ctx context.Context, listingID uint64, start, end time.Time) (bool, error) {
    const q = `SELECT COUNT(*) FROM reservations
        WHERE listing_id = ? AND statut IN (?, ?)
          AND date_debut <= ? AND date_fin >= ?`
    var n int64
    err := r.db.QueryRowContext(ctx, q,
        listingID, model.ReservationPending, model.ReservationConfirmed, end, start).Scan(&n)
    return n > 0, err
}

// HasOverlapForTenant reports whether the tenant already holds a
// pending or confirmed reservation overlapping the window.
func (r *ReservationRepo) HasOverlapForTenant(ctx context.Context, tenantID uint64, start, end time.Time) (bool, error) {
    const q = `SELECT COUNT(*) FROM reservations
        WHERE tenant_id = ? AND statut IN (?, ?)
          AND date_debut <= ? AND date_fin >= ?`
    var n int64
    err := r.db.QueryRowContext(ctx, q,
        tenantID, model.ReservationPending, model.ReservationConfirmed, end, start).Scan(&n)
    return n > 0, err
}

// UpdateStatusIfTx transitions a reservation's status inside the
// given transaction only when the current value equals from.  The
// false return without error means the reservation was not in the
// expected state.
func (r *ReservationRepo) UpdateStatusIfTx(ctx context.Context, tx *sql.Tx, id uint64, from, to string) (bool, error) {
    const q = `UPDATE reservations SET statut = ? WHERE id = ? AND statut = ?`
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

// StalePending identifies a pending reservation picked up by the
// expiry sweep along with the listing it blocks.
type StalePending struct {
    ID        uint64
    ListingID uint64
}

// ListStalePendingTx returns pending reservations that were placed
// more than maxAge ago, or whose rental window has already started,
// locking the rows for the duration of the transaction.
func (r *ReservationRepo) ListStalePendingTx(ctx context.Context, tx *sql.Tx, maxAge time.Duration) ([]StalePending, error) {
    const q = `SELECT id, listing_id FROM reservations
        WHERE statut = ?
          AND (date_reservation < DATE_SUB(NOW(), INTERVAL ? SECOND) OR date_debut <= NOW())
        FOR UPDATE`
    rows, err := tx.QueryContext(ctx, q, model.ReservationPending, int64(maxAge.Seconds()))
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []StalePending{}
    for rows.Next() {
        var s StalePending
        if err := rows.Scan(&s.ID, &s.ListingID); err != nil {
            return nil, err
        }
        out = append(out, s)
    }
    return out, rows.Err()
}

func scanReservation(s scanner, res *model.Reservation) error {
    var contract sql.NullString
    if err := s.Scan(
        &res.ID, &res.TenantID, &res.ListingID, &res.Status, &res.Amount,
        &res.StartDate, &res.EndDate, &res.SecurePayment, &contract, &res.CreatedAt,
    ); err != nil {
        return err
    }
    if contract.Valid {
        c := contract.String
        res.ContractURL = &c
    }
    return nil
}
