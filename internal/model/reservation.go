package model

import "time"

// Reservation statuses.  A pending or confirmed reservation blocks
// the listing for its rental window; cancelled and completed
// reservations do not.
const (
    ReservationPending   = "en_attente"
    ReservationConfirmed = "confirmee"
    ReservationCancelled = "annulee"
    ReservationCompleted = "terminee"
)

// ValidReservationStatus reports whether s is one of the accepted
// reservation status values.
func ValidReservationStatus(s string) bool {
    switch s {
    case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted:
        return true
    }
    return false
}

// Reservation records a tenant's booking of a listing for a rental
// window.  It corresponds to a row in the `reservations` table.
// StartDate must precede EndDate and lie in the future at creation
// time; both rules are enforced at the HTTP boundary.
//
// Fields:
//  ID            – primary key identifier.
//  TenantID      – tenant who booked.
//  ListingID     – listing being booked.
//  Status        – one of the Reservation* constants.
//  Amount        – total amount in euros, positive.
//  StartDate     – first day of the rental window.
//  EndDate       – last day of the rental window.
//  SecurePayment – whether payment went through the escrow flow.
//  ContractURL   – optional link to the signed contract.
//  CreatedAt     – when the reservation was placed.
type Reservation struct {
    ID            uint64    // reservations.id
    TenantID      uint64    // reservations.tenant_id
    ListingID     uint64    // reservations.listing_id
    Status        string    // reservations.statut
    Amount        int       // reservations.montant_total
    StartDate     time.Time // reservations.date_debut
    EndDate       time.Time // reservations.date_fin
    SecurePayment bool      // reservations.is_paiement_securise
    ContractURL   *string   // reservations.contrat_url (nullable)
    CreatedAt     time.Time // reservations.date_reservation
}
