package search

import (
    "sort"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
)

// SortKey names a supported result ordering.  The string values are
// the sort_by values of the wire contract.
type SortKey string

const (
    SortNewest        SortKey = "date_ajout"    // creation date descending (default)
    SortScore         SortKey = "score"         // review score descending
    SortPriceAsc      SortKey = "prix"          // price ascending
    SortPriceDesc     SortKey = "prix_desc"     // price descending
    SortCompatibility SortKey = "compatibility" // compatibility score descending
)

// ParseSortKey maps a sort_by query value to a SortKey.  The empty
// string selects the default ordering.  Unknown values are reported
// so the boundary can reject them instead of silently falling back.
func ParseSortKey(s string) (SortKey, bool) {
    switch s {
    case "", string(SortNewest):
        return SortNewest, true
    case string(SortScore):
        return SortScore, true
    case string(SortPriceAsc):
        return SortPriceAsc, true
    case string(SortPriceDesc):
        return SortPriceDesc, true
    case string(SortCompatibility):
        return SortCompatibility, true
    }
    return SortNewest, false
}

// Result is one listing that survived filtering, optionally enriched
// with a per-search compatibility score.  The score is ephemeral: it
// is computed for this tenant and this search only and is never
// persisted.
type Result struct {
    Listing       model.Listing
    Compatibility *int
}

// Page is the outcome of a search: one page of results plus the
// number of survivors before pagination, so callers can derive
// totalPages = ceil(Total/pageSize).
type Page struct {
    Results []Result
    Total   int
}

// Search applies the filters to every candidate, scores the
// survivors against prefs when a tenant context is present, sorts by
// the requested key and returns the 1-indexed page.
//
// A nil prefs slice means no tenant context: no compatibility
// scores are attached and SortCompatibility keeps the prior order.
// The HTTP boundary rejects that combination before calling here; the
// engine itself stays total.  A non-nil empty slice is a tenant with
// no stored preferences, so every survivor scores 0.
func Search(candidates []model.Listing, f Filters, key SortKey, prefs []model.TenantPreference, page, pageSize int) Page {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 10
    }

    survivors := make([]Result, 0, len(candidates))
    for i := range candidates {
        if !f.Matches(&candidates[i]) {
            continue
        }
        r := Result{Listing: candidates[i]}
        if prefs != nil {
            s := CompatibilityScore(prefs, &candidates[i])
            r.Compatibility = &s
        }
        survivors = append(survivors, r)
    }

    sortResults(survivors, key)

    total := len(survivors)
    start := (page - 1) * pageSize
    if start > total {
        start = total
    }
    end := start + pageSize
    if end > total {
        end = total
    }
    return Page{Results: survivors[start:end], Total: total}
}

func sortResults(rs []Result, key SortKey) {
    switch key {
    case SortScore:
        sort.SliceStable(rs, func(i, j int) bool {
            return rs[i].Listing.Score > rs[j].Listing.Score
        })
    case SortPriceAsc:
        sort.SliceStable(rs, func(i, j int) bool {
            return rs[i].Listing.Price < rs[j].Listing.Price
        })
    case SortPriceDesc:
        sort.SliceStable(rs, func(i, j int) bool {
            return rs[i].Listing.Price > rs[j].Listing.Price
        })
    case SortCompatibility:
        // Without a tenant context there is nothing to compare; keep
        // the prior order.
        sort.SliceStable(rs, func(i, j int) bool {
            var si, sj int
            if rs[i].Compatibility != nil {
                si = *rs[i].Compatibility
            }
            if rs[j].Compatibility != nil {
                sj = *rs[j].Compatibility
            }
            return si > sj
        })
    default: // SortNewest
        sort.SliceStable(rs, func(i, j int) bool {
            return rs[i].Listing.CreatedAt.After(rs[j].Listing.CreatedAt)
        })
    }
}
