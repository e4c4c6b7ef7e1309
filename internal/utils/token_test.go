package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
    const secret = "test-secret"
    at, err := NewAccessToken(secret, 42, "TENANT", 15)
    require.NoError(t, err)
    assert.NotEmpty(t, at.Token)
    assert.True(t, at.Exp.After(time.Now().UTC()))

    parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (any, error) {
        return []byte(secret), nil
    })
    require.NoError(t, err)
    claims, ok := parsed.Claims.(jwt.MapClaims)
    require.True(t, ok)
    assert.Equal(t, float64(42), claims["sub"])
    assert.Equal(t, "TENANT", claims["role"])
}

func TestNewAccessTokenBadSecretFailsVerify(t *testing.T) {
    at, err := NewAccessToken("secret-a", 1, "LANDLORD", 5)
    require.NoError(t, err)
    _, err = jwt.Parse(at.Token, func(tok *jwt.Token) (any, error) {
        return []byte("secret-b"), nil
    })
    assert.Error(t, err)
}

func TestNewRefreshTokenUniqueAndHashed(t *testing.T) {
    a, err := NewRefreshToken(30)
    require.NoError(t, err)
    b, err := NewRefreshToken(30)
    require.NoError(t, err)

    assert.Len(t, a.Raw, 96)
    assert.NotEqual(t, a.Raw, b.Raw)

    // Hashing is deterministic and never echoes the raw value.
    h := HashRefreshRaw(a.Raw)
    assert.Equal(t, h, HashRefreshRaw(a.Raw))
    assert.NotEqual(t, a.Raw, h)
    assert.Len(t, h, 64)
}

func TestPasswordHashAndVerify(t *testing.T) {
    hash, err := HashPassword("s3cret!", 4)
    require.NoError(t, err)
    assert.True(t, VerifyPassword(hash, "s3cret!"))
    assert.False(t, VerifyPassword(hash, "wrong"))
}
