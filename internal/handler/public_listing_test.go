package handler

import (
    "net/http"
    "net/http/httptest"
    "net/url"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func reviewsContext(t *testing.T, query url.Values) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/avis?"+query.Encode(), nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestListReviewsRejectsBadRatingBounds(t *testing.T) {
    h := &PublicHandler{}
    cases := []struct {
        name  string
        query url.Values
        want  string
    }{
        {"note_min zero", url.Values{"note_min": {"0"}}, "note_min invalide"},
        {"note_min above scale", url.Values{"note_min": {"6"}}, "note_min invalide"},
        {"note_max zero", url.Values{"note_max": {"0"}}, "note_max invalide"},
        {"note_max above scale", url.Values{"note_max": {"6"}}, "note_max invalide"},
        {"note_max not a number", url.Values{"note_max": {"cinq"}}, "note_max invalide"},
        {"inverted range", url.Values{"note_min": {"4"}, "note_max": {"2"}}, "note_min superieur a note_max"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := reviewsContext(t, tc.query)
            require.NoError(t, h.ListReviews(c))
            assert.Equal(t, http.StatusBadRequest, rec.Code)
            assert.Contains(t, rec.Body.String(), tc.want)
        })
    }
}

func TestListReviewsRejectsBadIDs(t *testing.T) {
    h := &PublicHandler{}
    for _, param := range []string{"logement_id", "locataire_id", "bailleur_id"} {
        c, rec := reviewsContext(t, url.Values{param: {"0"}})
        require.NoError(t, h.ListReviews(c))
        assert.Equal(t, http.StatusBadRequest, rec.Code, "param %s", param)
        assert.Contains(t, rec.Body.String(), param+" invalide")
    }
}
