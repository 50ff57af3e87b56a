// Package models defines the ledger state persisted by every storage backend.
package models

import (
	"fmt"

	"github.com/holiman/uint256"
)

// ParseAmount reads a non-negative decimal token amount.
func ParseAmount(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return v, nil
}

// MustAmount is ParseAmount for constants and tests.
func MustAmount(s string) *uint256.Int {
	v, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return v
}
