// Copyright (c) 2025 The Summer Earn Protocol developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the error type emitted when a contract operation
// aborts. A revert leaves state untouched; no retry is performed.
package reverts

import (
	"errors"
	"fmt"
)

// ErrRevert is a typed contract failure. Wrapped reverts unwrap to their
// base sentinel so callers can match with errors.Is while the message
// carries the offending address/amount for diagnosis.
type ErrRevert struct {
	message string
	base    *ErrRevert
}

// New creates a revert sentinel.
func New(message string) *ErrRevert {
	return &ErrRevert{message: message}
}

// Wrap attaches context to a revert sentinel. errors.Is(wrapped, base)
// holds for the result.
func Wrap(base *ErrRevert, format string, args ...any) *ErrRevert {
	return &ErrRevert{
		message: base.message + ": " + fmt.Sprintf(format, args...),
		base:    base,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Unwrap exposes the base sentinel of a wrapped revert.
func (e *ErrRevert) Unwrap() error {
	if e.base == nil {
		return nil
	}
	return e.base
}

// IsRevert reports whether err is (or wraps) a contract revert.
func IsRevert(err error) bool {
	if err == nil {
		return false
	}
	var ve *ErrRevert
	return errors.As(err, &ve)
}
