package model

import "time"

// Accepted rating band for reviews.
const (
    RatingMin = 1
    RatingMax = 5
)

// Review is a rating left on a listing ("avis").  Exactly one of
// TenantID or LandlordID identifies the reviewer's side; each
// reviewer may leave at most one review per listing.  Creating a
// review triggers a recompute of the listing score through the
// aggregator.
//
// Fields:
//  ID         – primary key identifier.
//  TenantID   – reviewing tenant, nil when the reviewer is a landlord.
//  LandlordID – reviewing landlord, nil when the reviewer is a tenant.
//  ListingID  – listing being reviewed.
//  Rating     – integer rating, 1–5 inclusive.
//  Comment    – optional free-text comment.
//  CreatedAt  – when the review was posted.
type Review struct {
    ID         uint64    // reviews.id
    TenantID   *uint64   // reviews.tenant_id (nullable)
    LandlordID *uint64   // reviews.landlord_id (nullable)
    ListingID  uint64    // reviews.listing_id
    Rating     int       // reviews.note
    Comment    *string   // reviews.commentaire (nullable)
    CreatedAt  time.Time // reviews.date_avis
}

// Interaction traces a tenant's contact with a listing (visit
// request, message, favourite).  Used by the frontend to show
// history; it carries no business rules beyond existence checks.
//
// Fields:
//  ID        – primary key identifier.
//  TenantID  – tenant who interacted.
//  ListingID – listing involved.
//  Outcome   – free-text result ("favori", "visite", "contact", ...).
//  CreatedAt – when the interaction happened.
type Interaction struct {
    ID        uint64    // interactions.id
    TenantID  uint64    // interactions.tenant_id
    ListingID uint64    // interactions.listing_id
    Outcome   string    // interactions.resultat
    CreatedAt time.Time // interactions.date_interaction
}
