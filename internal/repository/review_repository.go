package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

// ReviewRepo manages persistence for reviews.
type ReviewRepo struct {
    db *sql.DB
}

// NewReviewRepo constructs a ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewColumns = `id, tenant_id, landlord_id, listing_id, note, commentaire, date_avis`

// Create inserts a review and populates its ID and timestamp.
func (r *ReviewRepo) Create(ctx context.Context, rev *model.Review) error {
    const q = `INSERT INTO reviews (tenant_id, landlord_id, listing_id, note, commentaire)
        VALUES (?, ?, ?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q,
        rev.TenantID, rev.LandlordID, rev.ListingID, rev.Rating, rev.Comment)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    rev.ID = uint64(id)
    const sel = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
    return scanReview(r.db.QueryRowContext(ctx, sel, rev.ID), rev)
}

// ExistsForReviewer reports whether the given tenant or landlord has
// already reviewed the listing.  Exactly one of tenantID and
// landlordID must be non-nil.
func (r *ReviewRepo) ExistsForReviewer(ctx context.Context, listingID uint64, tenantID, landlordID *uint64) (bool, error) {
    var q string
    var who uint64
    switch {
    case tenantID != nil:
        q = `SELECT COUNT(*) FROM reviews WHERE listing_id = ? AND tenant_id = ?`
        who = *tenantID
    case landlordID != nil:
        q = `SELECT COUNT(*) FROM reviews WHERE listing_id = ? AND landlord_id = ?`
        who = *landlordID
    default:
        return false, nil
    }
    var n int64
    err := r.db.QueryRowContext(ctx, q, listingID, who).Scan(&n)
    return n > 0, err
}

// ReviewQuery defines filters and pagination for listing reviews.
type ReviewQuery struct {
    ListingID  uint64
    TenantID   uint64
    LandlordID uint64
    RatingMin  *int
    RatingMax  *int
    Page       int
    PageSize   int
}

// List returns one page of reviews plus the total match count,
// newest first.
func (r *ReviewRepo) List(ctx context.Context, q ReviewQuery) ([]model.Review, int64, error) {
    where := []string{}
    args := []any{}
    if q.ListingID != 0 {
        where = append(where, "listing_id = ?")
        args = append(args, q.ListingID)
    }
    if q.TenantID != 0 {
        where = append(where, "tenant_id = ?")
        args = append(args, q.TenantID)
    }
    if q.LandlordID != 0 {
        where = append(where, "landlord_id = ?")
        args = append(args, q.LandlordID)
    }
    if q.RatingMin != nil {
        where = append(where, "note >= ?")
        args = append(args, *q.RatingMin)
    }
    if q.RatingMax != nil {
        where = append(where, "note <= ?")
        args = append(args, *q.RatingMax)
    }

    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }

    var total int64
    countSQL := `SELECT COUNT(*) FROM reviews WHERE ` + cond
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
    dataSQL := `SELECT ` + reviewColumns + ` FROM reviews WHERE ` + cond + `
        ORDER BY date_avis DESC LIMIT ? OFFSET ?`
    argsData := append(append([]any{}, args...), size, (page-1)*size)

    rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    out := []model.Review{}
    for rows.Next() {
        var rev model.Review
        if err := scanReview(rows, &rev); err != nil {
            return nil, 0, err
        }
        out = append(out, rev)
    }
    return out, total, rows.Err()
}

// RatingsByListing returns all ratings recorded for a listing, used
// by the score aggregator.
func (r *ReviewRepo) RatingsByListing(ctx context.Context, listingID uint64) ([]int, error) {
    const q = `SELECT note FROM reviews WHERE listing_id = ?`
    rows, err := r.db.QueryContext(ctx, q, listingID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := []int{}
    for rows.Next() {
        var n int
        if err := rows.Scan(&n); err != nil {
            return nil, err
        }
        out = append(out, n)
    }
    return out, rows.Err()
}

func scanReview(s scanner, rev *model.Review) error {
    var (
        tenant   sql.NullInt64
        landlord sql.NullInt64
        comment  sql.NullString
    )
    if err := s.Scan(
        &rev.ID, &tenant, &landlord, &rev.ListingID, &rev.Rating, &comment, &rev.CreatedAt,
    ); err != nil {
        return err
    }
    if tenant.Valid {
        v := uint64(tenant.Int64)
        rev.TenantID = &v
    }
    if landlord.Valid {
        v := uint64(landlord.Int64)
        rev.LandlordID = &v
    }
    if comment.Valid {
        c := comment.String
        rev.Comment = &c
    }
    return nil
}
