package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKeep is returned by ParseKeep for unknown policy names.
var ErrInvalidKeep = errors.New("invalid keep policy")

// Keep selects which records survive when several claim the same synonym.
type Keep int

const (
	// KeepAll keeps every claimant, in record order.
	KeepAll Keep = iota
	// KeepFirst keeps the first claimant.
	KeepFirst
	// KeepLast keeps the last claimant.
	KeepLast
)

// String returns the policy name accepted by ParseKeep.
func (k Keep) String() string {
	switch k {
	case KeepFirst:
		return "first"
	case KeepLast:
		return "last"
	default:
		return "all"
	}
}

// ParseKeep parses "all", "first" or "last". The empty string is KeepAll.
func ParseKeep(s string) (Keep, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return KeepAll, nil
	case "first":
		return KeepFirst, nil
	case "last":
		return KeepLast, nil
	default:
		return KeepAll, fmt.Errorf("%w: %q", ErrInvalidKeep, s)
	}
}

func (k Keep) apply(owners []string) []string {
	if len(owners) <= 1 {
		return owners
	}
	switch k {
	case KeepFirst:
		return owners[:1]
	case KeepLast:
		return owners[len(owners)-1:]
	default:
		return owners
	}
}
