package model

import "time"

// Tenant represents a prospective renter account ("locataire").  It
// corresponds to a row in the `tenants` table.  The UserID links the
// profile to its authentication account in the users table.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – owning auth account, never zero.
//  Name       – display name.
//  Email      – unique contact email.
//  University – free-text university name, may be empty.
//  IsActive   – soft-delete flag; inactive tenants cannot reserve or review.
//  CreatedAt  – registration timestamp.
type Tenant struct {
    ID         uint64    // tenants.id
    UserID     uint64    // tenants.user_id
    Name       string    // tenants.nom
    Email      string    // tenants.email
    University string    // tenants.universite
    IsActive   bool      // tenants.is_active
    CreatedAt  time.Time // tenants.date_inscription
}

// TenantPreference stores a tenant's stored search preferences used
// by the compatibility scorer.  The schema allows several rows per
// tenant even though the preferences endpoint maintains a single
// one; the scorer accepts any number of rows.
//
// Fields:
//  ID          – primary key identifier.
//  TenantID    – owning tenant.
//  HousingType – preferred housing type, one of the Housing* constants.
//  BudgetMin   – lower bound of the monthly budget, positive.
//  BudgetMax   – upper bound, >= BudgetMin.
//  RadiusKm    – search radius in kilometres, 1–100.
//  Notes       – optional free text ("autres specifications").
type TenantPreference struct {
    ID          uint64  // tenant_preferences.id
    TenantID    uint64  // tenant_preferences.tenant_id
    HousingType string  // tenant_preferences.type_logement
    BudgetMin   int     // tenant_preferences.budget_min
    BudgetMax   int     // tenant_preferences.budget_max
    RadiusKm    int     // tenant_preferences.rayon_km
    Notes       *string // tenant_preferences.autres_spec (nullable)
}
