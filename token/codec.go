// Package token creates and verifies the signed access tokens issued at
// registration and login. Tokens are self-contained HS256 JWTs; nothing is
// stored server-side.
package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrMalformed covers every unrecoverable decode failure: bad
	// signature, wrong structure, or a missing/empty subject claim.
	ErrMalformed = errors.New("malformed token")
	// ErrExpired is returned when the token verifies but its expiry has
	// passed.
	ErrExpired = errors.New("token expired")
)

// Claims holds the verified contents of an access token.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
	ID        string
}

// Codec signs and verifies access tokens against the process secret.
type Codec struct {
	secret  []byte
	nowTime func() time.Time // nowTime function (injectable for testing)
}

// CodecOption defines a function type to modify the Codec instance.
type CodecOption func(*Codec)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowTime = nowFunc
	}
}

// NewCodec creates a Codec with the given signing secret. The secret must
// be non-empty; that precondition is checked once at startup by the caller.
func NewCodec(secret []byte, options ...CodecOption) *Codec {
	codec := &Codec{
		secret:  secret,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(codec)
	}
	return codec
}

// Issue creates a signed token for subject that expires ttl from now.
func (c *Codec) Issue(subject string, ttl time.Duration) (string, error) {
	now := c.nowTime()
	claims := jwtlib.MapClaims{
		"sub": subject,             // the identity the token grants
		"iat": now.Unix(),          // issued at
		"exp": now.Add(ttl).Unix(), // expiry
		"jti": uuid.New().String(), // unique token id
	}

	signedToken, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "[Codec.Issue] failed to sign token")
	}
	return signedToken, nil
}

// Decode verifies a raw token and extracts its claims. Failures are typed:
// ErrExpired when the only problem is a passed expiry, ErrMalformed for
// everything else. Decode never panics.
func (c *Codec) Decode(rawToken string) (Claims, error) {
	parsed, err := jwtlib.ParseWithClaims(rawToken, jwtlib.MapClaims{}, func(t *jwtlib.Token) (any, error) {
		return c.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(c.nowTime),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrMalformed
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return Claims{}, ErrMalformed
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		// Absence of identity is unrecoverable the same way a bad
		// signature is.
		return Claims{}, ErrMalformed
	}

	exp, _ := mapClaims["exp"].(float64)
	iat, _ := mapClaims["iat"].(float64)
	jti, _ := mapClaims["jti"].(string)

	return Claims{
		Subject:   sub,
		ExpiresAt: time.Unix(int64(exp), 0),
		IssuedAt:  time.Unix(int64(iat), 0),
		ID:        jti,
	}, nil
}
