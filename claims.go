package flashclass

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the decoded payload segment of an access token. The client
// never verifies the signature; claims are identity hints, not an
// authorization input.
type Claims map[string]any

// DecodeToken splits an access token on ".", base64url-decodes the middle
// segment, and parses it as a JSON object. Returns nil for any token that
// fails the three-segment shape check, fails decoding, or does not hold a
// JSON object. Pure, no I/O, never panics.
func DecodeToken(token string) Claims {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil
	}
	return claims
}

// decodeSegment accepts both raw and padded base64url, same as token
// issuers in the wild produce.
func decodeSegment(seg string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(seg); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(seg)
}

// Get returns a claim by name.
func (c Claims) Get(name string) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c[name]
	return v, ok
}

func (c Claims) getString(name string) string {
	if v, ok := c.Get(name); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Subject returns the "sub" claim.
func (c Claims) Subject() string {
	return c.getString("sub")
}

// Username returns the "username" claim, falling back to the subject.
func (c Claims) Username() string {
	if u := c.getString("username"); u != "" {
		return u
	}
	return c.Subject()
}

// TeacherID returns the issuing teacher identifier claim.
func (c Claims) TeacherID() string {
	if v := c.getString("teacher_id"); v != "" {
		return v
	}
	return c.getString("teacherId")
}

// TeacherUUID parses the teacher identifier as a UUID.
func (c Claims) TeacherUUID() (uuid.UUID, error) {
	return uuid.Parse(c.TeacherID())
}

// HasTeacherUUID reports whether TeacherUUID will succeed.
func HasTeacherUUID(c Claims) bool {
	_, err := c.TeacherUUID()
	return err == nil
}

// TokenExpiry returns the token's expiration time, if it carries one.
// Parsing is unverified; the zero time and false mean no usable exp claim.
func TokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenExpired reports whether the token carries an exp claim in the past.
// Tokens without a readable exp claim are not considered expired; the
// server remains the authority either way.
func TokenExpired(token string) bool {
	exp, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return exp.Before(time.Now())
}
