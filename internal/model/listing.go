package model

import "time"

// Housing types accepted for listings and tenant preferences.  The
// French values are part of the wire contract consumed by the
// frontend and are stored verbatim in the database.
const (
    HousingStudio    = "Studio"
    HousingApartment = "Appartement"
    HousingHouse     = "Maison"
)

// Listing statuses.  A listing is only offered as a reservation
// target while it is StatusAvailable.  There is no hard delete;
// deactivation transitions a listing to StatusUnavailable.
const (
    StatusAvailable   = "disponible"
    StatusReserved    = "reserve"
    StatusUnavailable = "indisponible"
)

// ValidHousingType reports whether t is one of the accepted housing
// type values.
func ValidHousingType(t string) bool {
    switch t {
    case HousingStudio, HousingApartment, HousingHouse:
        return true
    }
    return false
}

// ValidListingStatus reports whether s is one of the accepted
// listing status values.
func ValidListingStatus(s string) bool {
    switch s {
    case StatusAvailable, StatusReserved, StatusUnavailable:
        return true
    }
    return false
}

// Listing represents a rentable housing unit ("logement") published
// by a landlord.  It corresponds to a row in the `listings` table.
// Photos are stored as a JSON array of URIs in a single column.
// Score is the running average of review ratings, rounded to one
// decimal; it is recomputed by the review aggregator, never by the
// listing itself.
//
// Fields:
//  ID          – primary key identifier.
//  LandlordID  – landlord who owns the listing, never zero.
//  Title       – short title shown in search results.
//  Pitch       – optional one-line pitch ("accroche").
//  Address     – free-text postal address.
//  Latitude    – degrees, in [-90, 90].
//  Longitude   – degrees, in [-180, 180].
//  Price       – monthly rent in euros, positive.
//  HousingType – one of the Housing* constants.
//  Status      – one of the Status* constants.
//  Score       – mean review rating in [0, 5], one decimal.
//  Photos      – ordered photo URIs, may be empty.
//  CreatedAt   – set at creation, immutable.
type Listing struct {
    ID          uint64    // listings.id
    LandlordID  uint64    // listings.landlord_id
    Title       string    // listings.titre
    Pitch       *string   // listings.accroche (nullable)
    Address     string    // listings.adresse
    Latitude    float64   // listings.latitude
    Longitude   float64   // listings.longitude
    Price       int       // listings.prix
    HousingType string    // listings.type_logement
    Status      string    // listings.statut
    Score       float64   // listings.score
    Photos      []string  // listings.photos (JSON array)
    CreatedAt   time.Time // listings.date_ajout
}

// Available derives the legacy boolean availability flag from the
// status enum.  The flag is not stored independently anymore; the
// enum is the single source of truth.
func (l *Listing) Available() bool {
    return l.Status == StatusAvailable
}
