package model

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Set is a fixed-length membership vector over the weeks of a semester or the days of a week
type Set []bool

// ParseSet decodes a binary string such as "1010100" into a Set
func ParseSet(bits string) (Set, error) {
	set := make(Set, len(bits))
	for i, bit := range bits {
		switch bit {
		case '1':
			set[i] = true
		case '0':
		default:
			return nil, invalidArgument("%q is not a binary string", bits)
		}
	}
	return set, nil
}

func (set Set) String() string {
	var builder strings.Builder
	for _, bit := range set {
		if bit {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}
	return builder.String()
}

// Count returns the number of positions set to true
func (set Set) Count() int {
	return lo.CountBy(set, func(bit bool) bool { return bit })
}

// Exclusive checks whether no position is true in both sets (i.e. a AND b is all-false)
func Exclusive(a, b Set) bool {
	checkLengths(a, b)
	for i := range a {
		if a[i] && b[i] {
			return false
		}
	}
	return true
}

// SubsetEither checks whether one of the sets is contained in the other, i.e. (a OR b) = a or (a OR b) = b
func SubsetEither(a, b Set) bool {
	checkLengths(a, b)
	aContainsB, bContainsA := true, true
	for i := range a {
		if b[i] && !a[i] {
			aContainsB = false
		}
		if a[i] && !b[i] {
			bContainsA = false
		}
	}
	return aContainsB || bContainsA
}

// FirstTrueIndex returns the index of the first position set to true
func FirstTrueIndex(set Set) (int, error) {
	for i, bit := range set {
		if bit {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: set %v has no position set to true", ErrNotFound, set)
}

func checkLengths(a, b Set) {
	if validating && len(a) != len(b) {
		panic(invalidArgument("sets of different lengths: %d and %d", len(a), len(b)))
	}
}
