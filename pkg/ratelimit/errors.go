package ratelimit

import "errors"

// ErrInvalidConfig indicates a non-positive capacity, rate, or interval.
var ErrInvalidConfig = errors.New("invalid rate limit configuration")
