// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/quorum"
)

// validate is the safety pass over the active quorum set. Every failure
// here must stop node startup; there is no partial state to keep.
func (c *Config) validate(logger log.Logger, mixedDomains bool) error {
	nodes := c.QuorumSet.AllNodes()
	if nodes.Len() == 0 {
		return fmt.Errorf("%w: no validators defined in validators/quorum_set", ErrInvalidConfig)
	}

	// smallest set of identities whose failure blocks every threshold
	blocking := quorum.FindClosestVBlocking(&c.QuorumSet, nodes)

	minSize := quorum.DefaultThreshold(&c.QuorumSet, !mixedDomains)

	if c.FailureSafety == -1 {
		// give every top-level entity the same weight
		topLevelCount := int32(c.QuorumSet.NumChildren())
		c.FailureSafety = topLevelCount - int32(minSize)
		logger.Info("derived failure safety from the quorum set",
			log.Int("failureSafety", int(c.FailureSafety)),
		)
	}

	if int(c.FailureSafety) >= len(blocking) {
		logger.Error("quorum set cannot sustain the requested failure safety; reduce failure_safety or loosen thresholds",
			log.Int("failureSafety", int(c.FailureSafety)),
			log.Int("breaksWith", len(blocking)),
		)
		return ErrFailureSafety
	}

	if !c.UnsafeQuorum {
		if c.FailureSafety == 0 {
			logger.Error("failure_safety = 0 requires unsafe_quorum = true")
			return ErrUnsafeQuorum
		}
		if c.QuorumSet.Threshold < minSize {
			logger.Error("quorum set threshold is below the safe minimum; set unsafe_quorum = true to override",
				log.Uint32("threshold", c.QuorumSet.Threshold),
				log.Uint32("minimum", minSize),
			)
			return ErrUnsafeQuorum
		}
	}

	if err := quorum.Verify(&c.QuorumSet, !c.UnsafeQuorum); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// verifyHistoryCoverage checks that quorum cannot be reached while
// excluding every validator hosting a history archive. Only meaningful for
// generated trees; operator-supplied trees already required the unsafe
// override to diverge.
func (c *Config) verifyHistoryCoverage(logger log.Logger) error {
	var archives []ids.ID
	for _, v := range c.Validators {
		if v.HasHistory {
			archives = append(archives, v.Key)
		}
	}
	if quorum.IsVBlocking(&c.QuorumSet, archives) {
		return nil
	}

	logger.Warn("quorum can be reached without any validator hosting a history archive")
	if !c.UnsafeQuorum {
		logger.Error("validators with known archives should be included in every quorum; set unsafe_quorum = true to override")
		return ErrUnsafeQuorum
	}
	return nil
}
