// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import (
	"strconv"
	"strings"
	"time"

	"github.com/jmgilman/go/errors"
)

// Config describes how the store behind a named cache evicts entries.
//
// Pointer fields are optional: nil leaves the store default in place. A zero
// MaximumSize or expiration is legal and evicts entries immediately. The zero
// Config leaves every bound unset and allows nil values.
type Config struct {
	MaximumSize       *int64
	ExpireAfterWrite  *time.Duration
	ExpireAfterAccess *time.Duration
	InitialCapacity   *int
	ConcurrencyLevel  *int

	// DisallowNullValues makes caches built from this config reject nil
	// values.
	DisallowNullValues bool

	// RecordStats enables hit, miss and eviction metrics.
	RecordStats bool
}

// DefaultConfig returns a Config with every bound unset and nil values
// allowed.
func DefaultConfig() Config {
	return Config{}
}

// AllowNullValues reports whether caches built from c accept nil values.
func (c Config) AllowNullValues() bool {
	return !c.DisallowNullValues
}

// Validate applies the rules ParseSpec enforces to a Config built in code:
// sizes and expirations must be non-negative, expirations must be whole
// seconds, and initial capacity and concurrency level must be positive.
func (c Config) Validate() error {
	if c.MaximumSize != nil && *c.MaximumSize < 0 {
		return invalidConfigf("%s must be non-negative, got %d", keyMaximumSize, *c.MaximumSize)
	}
	if c.InitialCapacity != nil && *c.InitialCapacity <= 0 {
		return invalidConfigf("%s must be positive, got %d", keyInitialCapacity, *c.InitialCapacity)
	}
	if c.ConcurrencyLevel != nil && *c.ConcurrencyLevel <= 0 {
		return invalidConfigf("%s must be positive, got %d", keyConcurrencyLevel, *c.ConcurrencyLevel)
	}
	for _, ttl := range []struct {
		key string
		d   *time.Duration
	}{
		{keyExpireAfterWrite, c.ExpireAfterWrite},
		{keyExpireAfterAccess, c.ExpireAfterAccess},
	} {
		switch {
		case ttl.d == nil:
		case *ttl.d < 0:
			return invalidConfigf("%s must be non-negative, got %s", ttl.key, *ttl.d)
		case *ttl.d%time.Second != 0:
			return invalidConfigf("%s must be a whole number of seconds, got %s", ttl.key, *ttl.d)
		}
	}
	return nil
}

// String renders the config in spec form. Durations are written in the
// largest unit that represents them exactly. For a valid Config,
// ParseSpec(c.String()) reproduces c; durations that are not whole seconds
// are rendered as time.Duration strings, which ParseSpec rejects.
// DisallowNullValues has no spec form and is not rendered.
func (c Config) String() string {
	var parts []string
	if c.InitialCapacity != nil {
		parts = append(parts, keyInitialCapacity+"="+strconv.Itoa(*c.InitialCapacity))
	}
	if c.MaximumSize != nil {
		parts = append(parts, keyMaximumSize+"="+strconv.FormatInt(*c.MaximumSize, 10))
	}
	if c.ConcurrencyLevel != nil {
		parts = append(parts, keyConcurrencyLevel+"="+strconv.Itoa(*c.ConcurrencyLevel))
	}
	if c.ExpireAfterWrite != nil {
		parts = append(parts, keyExpireAfterWrite+"="+formatDuration(*c.ExpireAfterWrite))
	}
	if c.ExpireAfterAccess != nil {
		parts = append(parts, keyExpireAfterAccess+"="+formatDuration(*c.ExpireAfterAccess))
	}
	if c.RecordStats {
		parts = append(parts, keyRecordStats)
	}
	return strings.Join(parts, ",")
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	for _, u := range durationUnits {
		if d%u.unit == 0 {
			return strconv.FormatInt(int64(d/u.unit), 10) + u.suffix
		}
	}
	return d.String()
}

func invalidConfigf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidArgument, errors.CodeInvalidInput, format, args...)
}

// Ptr returns a pointer to v. It is a convenience for filling optional Config
// fields.
func Ptr[T any](v T) *T {
	return &v
}
