// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package cache

import "github.com/jmgilman/go/errors"

var (
	// ErrInvalidArgument is returned for missing required arguments and for
	// nil values put into caches that do not allow them.
	ErrInvalidArgument = errors.New(errors.CodeInvalidInput, "invalid argument")

	// ErrInvalidFormat is returned when a cache spec string cannot be parsed.
	ErrInvalidFormat = errors.New(errors.CodeInvalidConfig, "invalid cache spec")
)
