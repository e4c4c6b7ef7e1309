// Package queue defines message payloads exchanged over the message broker.
package queue

// ReviewRecordedEvent is published when a review is successfully
// stored and the listing score has been recomputed.  It carries
// enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type ReviewRecordedEvent struct {
    ReviewID     uint64  `json:"review_id"`
    ListingID    uint64  `json:"listing_id"`
    ListingTitle string  `json:"listing_title"`
    TenantID     *uint64 `json:"tenant_id,omitempty"`
    LandlordID   *uint64 `json:"landlord_id,omitempty"`
    Rating       int     `json:"rating"`
    NewScore     float64 `json:"new_score"`
    RecordedAt   string  `json:"recorded_at"`
}

// ReservationExpiredEvent is published by the expiry sweep when a
// pending reservation is cancelled and its listing released.
type ReservationExpiredEvent struct {
    ReservationID uint64 `json:"reservation_id"`
    ListingID     uint64 `json:"listing_id"`
    ExpiredAt     string `json:"expired_at"`
}
