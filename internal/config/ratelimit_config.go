package config

import (
	"os"
	"strconv"
	"time"
)

type RateLimitConfig interface {
	GetBucketCapacity() int
	GetBucketRefillPeriod() time.Duration
}

type RateLimit struct{}

var _ RateLimitConfig = RateLimit{}

func (RateLimit) GetBucketCapacity() int {
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_CAPACITY")); err == nil && v > 0 {
		return v
	}
	return 5
}

func (RateLimit) GetBucketRefillPeriod() time.Duration {
	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_REFILL_SECONDS")); err == nil && v > 0 {
		return time.Duration(v) * time.Second
	}
	return 60 * time.Second
}
