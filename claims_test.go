package flashclass_test

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	flashclass "github.com/flashclass/go-flashclass"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return signed
}

func TestDecodeToken_RejectsMalformedTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"no separators", "notatoken"},
		{"two segments", "header.payload"},
		{"four segments", "a.b.c.d"},
		{"payload not base64", "header.!!!.sig"},
		{"payload not JSON", "header." + base64.RawURLEncoding.EncodeToString([]byte("not json")) + ".sig"},
		{"payload JSON array", "header." + base64.RawURLEncoding.EncodeToString([]byte(`[1,2]`)) + ".sig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, flashclass.DecodeToken(tt.token))
		})
	}
}

func TestDecodeToken_ReproducesPayloadExactly(t *testing.T) {
	payload := map[string]any{
		"sub":      "user-1",
		"username": "ms-frizzle",
		"nested":   map[string]any{"a": float64(1)},
		"list":     []any{"x", "y"},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	token := "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString(data) + ".sig"

	claims := flashclass.DecodeToken(token)
	require.NotNil(t, claims)
	assert.Equal(t, payload, map[string]any(claims))
}

func TestDecodeToken_IgnoresHeaderAndSignature(t *testing.T) {
	// Only the middle segment matters; a garbage header must not block
	// decoding.
	data, _ := json.Marshal(map[string]any{"sub": "abc"})
	token := "!!!." + base64.RawURLEncoding.EncodeToString(data) + ".%%%"

	claims := flashclass.DecodeToken(token)
	require.NotNil(t, claims)
	assert.Equal(t, "abc", claims.Subject())
}

func TestDecodeToken_AcceptsPaddedPayload(t *testing.T) {
	data, _ := json.Marshal(map[string]any{"username": "teach"})
	token := "h." + base64.URLEncoding.EncodeToString(data) + ".s"

	claims := flashclass.DecodeToken(token)
	require.NotNil(t, claims)
	assert.Equal(t, "teach", claims.Username())
}

func TestDecodeToken_RealSignedToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"sub":      "user-42",
		"username": "teacher-bob",
	})

	claims := flashclass.DecodeToken(token)
	require.NotNil(t, claims)
	assert.Equal(t, "user-42", claims.Subject())
	assert.Equal(t, "teacher-bob", claims.Username())
}

func TestClaims_Accessors(t *testing.T) {
	t.Run("username falls back to subject", func(t *testing.T) {
		claims := flashclass.Claims{"sub": "only-subject"}
		assert.Equal(t, "only-subject", claims.Username())
	})

	t.Run("teacher id from either claim form", func(t *testing.T) {
		assert.Equal(t, "t-1", flashclass.Claims{"teacher_id": "t-1"}.TeacherID())
		assert.Equal(t, "t-2", flashclass.Claims{"teacherId": "t-2"}.TeacherID())
	})

	t.Run("nil claims are safe", func(t *testing.T) {
		var claims flashclass.Claims
		assert.Equal(t, "", claims.Username())
		_, ok := claims.Get("anything")
		assert.False(t, ok)
	})
}

func TestClaims_TeacherUUID(t *testing.T) {
	id := "2b19410f-8f6f-4872-a231-8b0b3792e302"
	claims := flashclass.Claims{"teacher_id": id}

	parsed, err := claims.TeacherUUID()
	assert.NoError(t, err)
	assert.Equal(t, id, parsed.String())
	assert.True(t, flashclass.HasTeacherUUID(claims))

	assert.False(t, flashclass.HasTeacherUUID(flashclass.Claims{"teacher_id": "not-a-uuid"}))
}

func TestTokenExpiry(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{
			"sub": "u",
			"exp": jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})
		assert.True(t, flashclass.TokenExpired(token))
	})

	t.Run("live token", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{
			"sub": "u",
			"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		assert.False(t, flashclass.TokenExpired(token))

		exp, ok := flashclass.TokenExpiry(token)
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
	})

	t.Run("token without exp is not expired", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": "u"})
		assert.False(t, flashclass.TokenExpired(token))

		_, ok := flashclass.TokenExpiry(token)
		assert.False(t, ok)
	})

	t.Run("malformed token is not expired", func(t *testing.T) {
		assert.False(t, flashclass.TokenExpired("garbage"))
	})
}
