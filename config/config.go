// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config loads and validates the quorum configuration of a
// federated consensus node. The load is a one-shot, synchronous pass: it
// either produces a complete, safety-checked configuration or fails with
// an error describing the first problem found.
package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/quorum"
	"github.com/luxfi/quorum/registry"
	"github.com/luxfi/quorum/utils/hashing"
)

var (
	// ErrInvalidConfig is wrapped by every configuration failure.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsafeQuorum marks failures that an explicit unsafe_quorum
	// override would suppress.
	ErrUnsafeQuorum = fmt.Errorf("%w: unsafe quorum configuration", ErrInvalidConfig)

	// ErrFailureSafety reports a failure-safety bound the quorum set
	// cannot deliver.
	ErrFailureSafety = fmt.Errorf("%w: failure safety incompatible with quorum set", ErrInvalidConfig)
)

// Config is the quorum configuration of one node. It is mutable only while
// Load runs; afterward the tree, the validator list and the name registry
// are read-only.
type Config struct {
	// NodeID is the public identity of the local node, derived from
	// node_seed when one is configured.
	NodeID          ids.ID
	NodeIsValidator bool
	NodeHomeDomain  string

	// FailureSafety is the number of simultaneous validator failures the
	// quorum set must tolerate. -1 derives it from the tree.
	FailureSafety int32
	UnsafeQuorum  bool

	Validators    []ValidatorEntry
	DomainQuality map[string]Quality
	QuorumSet     quorum.Set

	History    map[string]ArchiveConfig
	KnownPeers []string

	Names *registry.Registry
}

// New returns a Config with defaults filled in and a random node identity.
func New() (*Config, error) {
	var seed [hashing.HashLen]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	return &Config{
		NodeID:        ids.ID(hashing.ComputeHash256Array(seed[:])),
		FailureSafety: -1,
		History:       make(map[string]ArchiveConfig),
		Names:         registry.New(),
	}, nil
}

// LoadFile loads and validates the configuration in the TOML file at
// [path].
func LoadFile(logger log.Logger, path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	defer f.Close()

	cfg, err := Load(logger, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return cfg, nil
}

// Load loads and validates a TOML configuration document.
func Load(logger log.Logger, r io.Reader) (*Config, error) {
	cfg, err := New()
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	dec := toml.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.process(logger, raw); err != nil {
		return nil, err
	}
	return cfg, nil
}

// process resolves the raw key/value tree in two phases: independent
// scalars first, then the entries that depend on other keys, in a fixed
// order (home domains before validators, validators before the quorum
// set, the quorum set before validation).
func (c *Config) process(logger log.Logger, raw map[string]any) error {
	var (
		nodeSeed  string
		nodeNames []string
	)

	for key, v := range raw {
		var err error
		switch key {
		case "node_seed":
			nodeSeed, err = readString(key, v)
		case "node_is_validator":
			c.NodeIsValidator, err = readBool(key, v)
		case "node_home_domain":
			c.NodeHomeDomain, err = readString(key, v)
		case "node_names":
			nodeNames, err = readStringArray(key, v)
		case "failure_safety":
			c.FailureSafety, err = readInt32(key, v, -1)
		case "unsafe_quorum":
			c.UnsafeQuorum, err = readBool(key, v)
		case "known_peers":
			var peers []string
			if peers, err = readStringArray(key, v); err == nil {
				c.KnownPeers = append(c.KnownPeers, peers...)
			}
		case "history":
			err = c.parseHistory(v)
		case "home_domains", "validators", "quorum_set":
			// resolved below, in dependency order
		default:
			err = fmt.Errorf("%w: unknown configuration entry %q", ErrInvalidConfig, key)
		}
		if err != nil {
			return err
		}
	}

	if nodeSeed != "" {
		if err := c.parseNodeSeed(nodeSeed); err != nil {
			return err
		}
	}
	for _, token := range nodeNames {
		// registers the alias as a side effect
		if _, err := c.parseNodeID(token); err != nil {
			return err
		}
	}

	domainQuality := make(map[string]Quality)
	if rawDomains, ok := raw["home_domains"]; ok {
		var err error
		if domainQuality, err = parseHomeDomains(rawDomains); err != nil {
			return err
		}
	}
	c.DomainQuality = domainQuality

	var validators []ValidatorEntry
	if rawValidators, ok := raw["validators"]; ok {
		var err error
		if validators, err = c.parseValidators(rawValidators, domainQuality); err != nil {
			return err
		}
	}

	rawQSet, hasQuorumSet := raw["quorum_set"]

	// a bare quorum_set is allowed to stand alone; otherwise the local
	// validator joins the declared set
	if c.NodeIsValidator && !(len(validators) == 0 && hasQuorumSet) {
		var err error
		if validators, err = c.addSelfToValidators(validators, domainQuality); err != nil {
			return err
		}
	}
	c.Validators = validators

	autoQSet, err := GenerateQuorumSet(validators)
	if err != nil {
		return err
	}
	autoRendered := quorum.Render(&autoQSet, c.Names.ShortDisplay)

	var mixedDomains bool
	if hasQuorumSet {
		table, err := readTable("quorum_set", rawQSet)
		if err != nil {
			return err
		}
		if c.QuorumSet, err = c.parseQuorumSet(table, 0); err != nil {
			return err
		}
		rendered := quorum.Render(&c.QuorumSet, c.Names.ShortDisplay)
		logger.Info("using configured quorum set", log.String("quorumSet", rendered))
		if rendered != autoRendered && len(validators) > 0 {
			logger.Warn("configured quorum set differs from the generated one",
				log.String("generated", autoRendered),
			)
			if !c.UnsafeQuorum {
				logger.Error("declared validators can only be overridden by quorum_set together with unsafe_quorum = true")
				return ErrUnsafeQuorum
			}
		}
		// assume operator-supplied trees span multiple entities
		mixedDomains = true
	} else {
		logger.Info("generated quorum set", log.String("quorumSet", autoRendered))
		c.QuorumSet = autoQSet
		// an empty tree is reported by validate, not as a coverage gap
		if !autoQSet.IsZero() {
			if err := c.verifyHistoryCoverage(logger); err != nil {
				return err
			}
		}
		domains := make(map[string]struct{}, len(validators))
		for _, v := range validators {
			domains[v.HomeDomain] = struct{}{}
		}
		mixedDomains = len(domains) > 1
	}

	return c.validate(logger, mixedDomains)
}

// parseNodeSeed derives the local node identity from the configured seed.
// The seed is never used as key material here; consensus signing keys are
// managed elsewhere.
func (c *Config) parseNodeSeed(token string) error {
	fields, err := splitSeedToken(token)
	if err != nil {
		return err
	}
	seed, err := ids.FromString(fields[0])
	if err != nil {
		return fmt.Errorf("%w: invalid node_seed: %w", ErrInvalidConfig, err)
	}
	c.NodeID = ids.ID(hashing.ComputeHash256Array(seed[:]))
	if len(fields) == 2 {
		if err := c.Names.RegisterAlias(c.NodeID.String(), fields[1]); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func (c *Config) parseHistory(v any) error {
	archives, err := readTable("history", v)
	if err != nil {
		return err
	}
	for name, rawArchive := range archives {
		table, err := readTable("history."+name, rawArchive)
		if err != nil {
			return err
		}
		var get, put, mkdir string
		for key, field := range table {
			switch key {
			case "get":
				get, err = readString(key, field)
			case "put":
				put, err = readString(key, field)
			case "mkdir":
				mkdir, err = readString(key, field)
			default:
				err = fmt.Errorf("%w: unknown history.%s entry %q", ErrInvalidConfig, name, key)
			}
			if err != nil {
				return err
			}
		}
		if err := c.addHistoryArchive(name, get, put, mkdir); err != nil {
			return err
		}
	}
	return nil
}

func splitSeedToken(token string) ([]string, error) {
	fields := strings.Fields(token)
	if len(fields) == 0 || len(fields) > 2 {
		return nil, fmt.Errorf("%w: invalid node_seed", ErrInvalidConfig)
	}
	return fields, nil
}
