// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package quorum

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"
)

const (
	// MaxNestingDepth is the number of nested levels allowed below the
	// root of a quorum-set tree.
	MaxNestingDepth = 2

	// MaxValidators bounds the total number of validator entries in a
	// single tree.
	MaxValidators = 1000
)

var (
	ErrTooDeep            = errors.New("quorum set has too many nesting levels")
	ErrTooManyValidators  = errors.New("quorum set has too many validators")
	ErrDuplicateValidator = errors.New("duplicate validator in quorum set")
	ErrBadThreshold       = errors.New("quorum set threshold out of range")
)

// Verify checks the structural sanity of a quorum-set tree: nesting depth,
// duplicate identities across the whole tree, total validator count, and
// that every threshold lies in [1, childCount]. In strict mode every
// threshold must additionally be a strict majority of its node's children.
func Verify(s *Set, strict bool) error {
	c := &sanityChecker{
		strict: strict,
		seen:   set.NewSet[ids.ID](len(s.Validators)),
	}
	return c.check(s, 0)
}

type sanityChecker struct {
	strict bool
	seen   set.Set[ids.ID]
	count  int
}

func (c *sanityChecker) check(s *Set, depth int) error {
	if depth > MaxNestingDepth {
		return ErrTooDeep
	}

	n := uint32(s.NumChildren())
	if s.Threshold < 1 || s.Threshold > n {
		return fmt.Errorf("%w: %d of %d", ErrBadThreshold, s.Threshold, n)
	}
	if c.strict {
		// a threshold below the v-blocking size is at most 50%
		vBlockingSize := n - s.Threshold + 1
		if s.Threshold < vBlockingSize {
			return fmt.Errorf("%w: %d of %d is not a strict majority", ErrBadThreshold, s.Threshold, n)
		}
	}

	c.count += len(s.Validators)
	if c.count > MaxValidators {
		return ErrTooManyValidators
	}
	for _, id := range s.Validators {
		if c.seen.Contains(id) {
			return fmt.Errorf("%w: %s", ErrDuplicateValidator, id)
		}
		c.seen.Add(id)
	}

	for i := range s.InnerSets {
		if err := c.check(&s.InnerSets[i], depth+1); err != nil {
			return err
		}
	}
	return nil
}
