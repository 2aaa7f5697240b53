package config

import (
	"os"
	"strconv"
	"time"
)

type SecurityConfig interface {
	GetSecretKey() string
	GetTokenTTL() time.Duration
	GetSessionTTL() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetSecretKey returns the token signing material. An empty value is a
// configuration error checked once at startup, not per request.
func (Security) GetSecretKey() string {
	return os.Getenv("SECRET_KEY")
}

func (Security) GetTokenTTL() time.Duration {
	return minutesEnv("TOKEN_TTL_MINUTES", 60)
}

// GetSessionTTL defaults to the token TTL so both expire together under
// normal use.
func (s Security) GetSessionTTL() time.Duration {
	return minutesEnv("SESSION_TTL_MINUTES", int(s.GetTokenTTL()/time.Minute))
}

func minutesEnv(envVar string, defaultMinutes int) time.Duration {
	if v, err := strconv.Atoi(os.Getenv(envVar)); err == nil && v > 0 {
		return time.Duration(v) * time.Minute
	}
	return time.Duration(defaultMinutes) * time.Minute
}
