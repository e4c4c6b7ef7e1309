package handler

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestParseRentalWindow(t *testing.T) {
    future := time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
    later := time.Now().UTC().AddDate(0, 2, 0).Format("2006-01-02")

    start, end, msg := parseRentalWindow(future, later)
    require.Empty(t, msg)
    assert.True(t, start.Before(end))

    cases := []struct {
        name       string
        start, end string
        want       string
    }{
        {"bad start format", "01/09/2026", later, "date_debut invalide (AAAA-MM-JJ)"},
        {"bad end format", future, "not-a-date", "date_fin invalide (AAAA-MM-JJ)"},
        {"inverted", later, future, "date_debut doit preceder date_fin"},
        {"equal dates", future, future, "date_debut doit preceder date_fin"},
        {"start in the past", "2020-01-01", future, "date_debut doit etre dans le futur"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            _, _, msg := parseRentalWindow(tc.start, tc.end)
            assert.Equal(t, tc.want, msg)
        })
    }
}
