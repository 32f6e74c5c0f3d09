// SPDX-License-Identifier: MIT

package term

import "errors"

// Sentinel errors for term construction and registration.
var (
	// ErrConfiguration marks a term bundle that cannot work as declared
	// (auxiliary without updater, statistic without delta, missing provider...).
	ErrConfiguration = errors.New("term: configuration fault")

	// ErrUnknownTerm indicates a name absent from the registry.
	ErrUnknownTerm = errors.New("term: unknown term")

	// ErrBadArgument indicates a missing, mistyped or out-of-range term argument.
	ErrBadArgument = errors.New("term: bad argument")

	// ErrDuplicateTerm indicates a second registration under the same name.
	ErrDuplicateTerm = errors.New("term: duplicate registration")
)
