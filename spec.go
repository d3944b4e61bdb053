// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jmgilman/go/errors"
)

const (
	keyInitialCapacity   = "initialCapacity"
	keyMaximumSize       = "maximumSize"
	keyConcurrencyLevel  = "concurrencyLevel"
	keyExpireAfterWrite  = "expireAfterWrite"
	keyExpireAfterAccess = "expireAfterAccess"
	keyRecordStats       = "recordStats"
)

// durationUnits is ordered from largest to smallest.
var durationUnits = []struct {
	suffix string
	unit   time.Duration
}{
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
}

type valueParser func(cfg *Config, key, value string, hasValue bool) error

var valueParsers = map[string]valueParser{
	keyInitialCapacity: func(cfg *Config, key, value string, hasValue bool) error {
		n, err := parsePositiveInt(key, value, hasValue)
		cfg.InitialCapacity = &n
		return err
	},
	keyConcurrencyLevel: func(cfg *Config, key, value string, hasValue bool) error {
		n, err := parsePositiveInt(key, value, hasValue)
		cfg.ConcurrencyLevel = &n
		return err
	},
	keyMaximumSize: func(cfg *Config, key, value string, hasValue bool) error {
		n, err := parseNonNegative(key, value, hasValue)
		cfg.MaximumSize = &n
		return err
	},
	keyExpireAfterWrite: func(cfg *Config, key, value string, hasValue bool) error {
		d, err := parseDuration(key, value, hasValue)
		cfg.ExpireAfterWrite = &d
		return err
	},
	keyExpireAfterAccess: func(cfg *Config, key, value string, hasValue bool) error {
		d, err := parseDuration(key, value, hasValue)
		cfg.ExpireAfterAccess = &d
		return err
	},
	keyRecordStats: func(cfg *Config, key, value string, hasValue bool) error {
		if hasValue {
			return formatErrorf("%s does not take a value, got %q", key, value)
		}
		cfg.RecordStats = true
		return nil
	},
}

// ParseSpec parses a comma separated list of key=value pairs into a Config.
//
// Recognized keys are maximumSize, expireAfterWrite, expireAfterAccess,
// initialCapacity, concurrencyLevel and the value-less recordStats.
// Durations are a non-negative integer followed by one of d, h, m or s.
// An empty spec yields DefaultConfig. Any malformed pair fails the whole
// parse with ErrInvalidFormat.
func ParseSpec(spec string) (Config, error) {
	cfg := DefaultConfig()
	seen := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		key, value, hasValue := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if strings.Contains(value, "=") {
			return Config{}, formatErrorf("key-value pair %q has more than one '='", pair)
		}

		parse, ok := valueParsers[key]
		if !ok {
			return Config{}, formatErrorf("unknown key %q", key)
		}
		if prev, ok := seen[key]; ok {
			if prev != value {
				return Config{}, formatErrorf("%s was already set to %q, got %q", key, prev, value)
			}
			continue
		}
		seen[key] = value

		if err := parse(&cfg, key, value, hasValue); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// MustParseSpec is like ParseSpec but panics on error. It is meant for
// package level configuration literals.
func MustParseSpec(spec string) Config {
	cfg, err := ParseSpec(spec)
	if err != nil {
		panic(err)
	}
	return cfg
}

func parseNonNegative(key, value string, hasValue bool) (int64, error) {
	if !hasValue || value == "" {
		return 0, formatErrorf("value of %s is required", key)
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, formatErrorf("value of %s must be an integer, got %q", key, value)
	}
	if n < 0 {
		return 0, formatErrorf("value of %s must be non-negative, got %d", key, n)
	}
	return n, nil
}

func parsePositiveInt(key, value string, hasValue bool) (int, error) {
	n, err := parseNonNegative(key, value, hasValue)
	if err != nil {
		return 0, err
	}
	if n == 0 || n > math.MaxInt32 {
		return 0, formatErrorf("value of %s must be a positive int, got %d", key, n)
	}
	return int(n), nil
}

func parseDuration(key, value string, hasValue bool) (time.Duration, error) {
	if !hasValue || value == "" {
		return 0, formatErrorf("value of %s is required", key)
	}
	suffix := value[len(value)-1:]
	for _, u := range durationUnits {
		if u.suffix != suffix {
			continue
		}
		n, err := parseNonNegative(key, value[:len(value)-1], true)
		if err != nil {
			return 0, err
		}
		if n > int64(math.MaxInt64/u.unit) {
			return 0, formatErrorf("value of %s overflows, got %q", key, value)
		}
		return time.Duration(n) * u.unit, nil
	}
	return 0, formatErrorf("value of %s must end with one of d, h, m or s, got %q", key, value)
}

func formatErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidFormat, errors.CodeInvalidConfig, format, args...)
}
