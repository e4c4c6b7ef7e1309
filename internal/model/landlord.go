package model

import "time"

// Landlord represents a property-owner account ("bailleur").  It
// corresponds to a row in the `landlords` table.  Landlords publish
// listings and can answer reviews; deactivating a landlord does not
// remove their listings.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning auth account, never zero.
//  Name      – display name.
//  Email     – unique contact email.
//  Phone     – contact phone number, may be empty.
//  IsActive  – soft-delete flag.
//  CreatedAt – registration timestamp.
type Landlord struct {
    ID        uint64    // landlords.id
    UserID    uint64    // landlords.user_id
    Name      string    // landlords.nom
    Email     string    // landlords.email
    Phone     string    // landlords.telephone
    IsActive  bool      // landlords.is_active
    CreatedAt time.Time // landlords.date_inscription
}
