// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"strings"

	"github.com/luxfi/ids"
)

// Quality is the trust tier assigned to a validator, either directly or
// inherited from its home domain.
type Quality uint8

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
)

var qualityNames = [...]string{"LOW", "MEDIUM", "HIGH"}

func (q Quality) String() string {
	if int(q) >= len(qualityNames) {
		return fmt.Sprintf("unknown quality %d", q)
	}
	return qualityNames[q]
}

// ParseQuality parses the tier names accepted in configuration files.
func ParseQuality(s string) (Quality, error) {
	for i, name := range qualityNames {
		if name == s {
			return Quality(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown quality %q", ErrInvalidConfig, s)
}

// ValidatorEntry is one declared validator. Entries are immutable once the
// configuration load completes.
type ValidatorEntry struct {
	Name       string
	Key        ids.ID
	HomeDomain string
	Quality    Quality
	HasHistory bool
}

// ArchiveConfig records the location of one history archive.
type ArchiveConfig struct {
	Name  string
	Get   string
	Put   string
	Mkdir string
}

// parseHomeDomains builds the domain -> quality map from the
// [[home_domains]] table array. Domains must be unique.
func parseHomeDomains(raw any) (map[string]Quality, error) {
	tables, err := readTableArray("home_domains", raw)
	if err != nil {
		return nil, err
	}
	res := make(map[string]Quality, len(tables))
	for _, table := range tables {
		var (
			domain     string
			quality    Quality
			qualitySet bool
		)
		for key, v := range table {
			switch key {
			case "home_domain":
				if domain, err = readString(key, v); err != nil {
					return nil, err
				}
			case "quality":
				s, err := readString(key, v)
				if err != nil {
					return nil, err
				}
				if quality, err = ParseQuality(s); err != nil {
					return nil, err
				}
				qualitySet = true
			default:
				return nil, fmt.Errorf("%w: unknown field %q in home_domains", ErrInvalidConfig, key)
			}
		}
		if !qualitySet || domain == "" {
			return nil, fmt.Errorf("%w: malformed home_domains entry %q", ErrInvalidConfig, domain)
		}
		if _, ok := res[domain]; ok {
			return nil, fmt.Errorf("%w: duplicate home domain %q", ErrInvalidConfig, domain)
		}
		res[domain] = quality
	}
	return res, nil
}

// parseValidators builds the validator list from the [[validators]] table
// array. Each entry must carry a name, a public key and a home domain, and
// exactly one quality source: an explicit quality field or the domain
// quality map, never both. High quality requires a history archive.
func (c *Config) parseValidators(raw any, domainQuality map[string]Quality) ([]ValidatorEntry, error) {
	tables, err := readTableArray("validators", raw)
	if err != nil {
		return nil, err
	}
	res := make([]ValidatorEntry, 0, len(tables))
	for _, table := range tables {
		var (
			entry        ValidatorEntry
			pubKey, hist string
			qualitySet   bool
		)
		for key, v := range table {
			switch key {
			case "name":
				if entry.Name, err = readString(key, v); err != nil {
					return nil, err
				}
			case "home_domain":
				if entry.HomeDomain, err = readString(key, v); err != nil {
					return nil, err
				}
			case "quality":
				s, err := readString(key, v)
				if err != nil {
					return nil, err
				}
				if entry.Quality, err = ParseQuality(s); err != nil {
					return nil, err
				}
				qualitySet = true
			case "public_key":
				if pubKey, err = readString(key, v); err != nil {
					return nil, err
				}
			case "address":
				addr, err := readString(key, v)
				if err != nil {
					return nil, err
				}
				c.KnownPeers = append(c.KnownPeers, addr)
			case "history":
				if hist, err = readString(key, v); err != nil {
					return nil, err
				}
			default:
				return nil, fmt.Errorf("%w: malformed validators entry, unknown field %q", ErrInvalidConfig, key)
			}
		}
		if entry.Name == "" {
			return nil, fmt.Errorf("%w: malformed validators entry: missing name", ErrInvalidConfig)
		}
		if pubKey == "" || entry.HomeDomain == "" {
			return nil, fmt.Errorf("%w: malformed validators entry %q", ErrInvalidConfig, entry.Name)
		}
		if domainQ, ok := domainQuality[entry.HomeDomain]; ok {
			if qualitySet {
				return nil, fmt.Errorf(
					"%w: malformed validators entry %q: quality already defined by home domain %q",
					ErrInvalidConfig, entry.Name, entry.HomeDomain)
			}
			entry.Quality = domainQ
			qualitySet = true
		}
		if !qualitySet {
			return nil, fmt.Errorf("%w: malformed validators entry %q: missing quality", ErrInvalidConfig, entry.Name)
		}
		if entry.Key, err = ids.FromString(pubKey); err != nil {
			return nil, fmt.Errorf("%w: invalid public_key for %q: %w", ErrInvalidConfig, entry.Name, err)
		}
		if err := c.Names.RegisterAlias(entry.Key.String(), entry.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		entry.HasHistory = hist != ""
		if entry.HasHistory {
			if err := c.addHistoryArchive(entry.Name, hist, "", ""); err != nil {
				return nil, err
			}
		}
		if entry.Quality == QualityHigh && !entry.HasHistory {
			return nil, fmt.Errorf(
				"%w: malformed validators entry %q: high quality requires a history archive",
				ErrInvalidConfig, entry.Name)
		}
		res = append(res, entry)
	}
	return res, nil
}

// addSelfToValidators appends an entry for the local node, inheriting the
// quality declared for its home domain.
func (c *Config) addSelfToValidators(validators []ValidatorEntry, domainQuality map[string]Quality) ([]ValidatorEntry, error) {
	quality, ok := domainQuality[c.NodeHomeDomain]
	if !ok {
		return nil, fmt.Errorf("%w: a home_domains entry matching node_home_domain is required for self", ErrInvalidConfig)
	}
	return append(validators, ValidatorEntry{
		Name:       "self",
		Key:        c.NodeID,
		HomeDomain: c.NodeHomeDomain,
		Quality:    quality,
	}), nil
}

func (c *Config) addHistoryArchive(name, get, put, mkdir string) error {
	if _, ok := c.History[name]; ok {
		return fmt.Errorf("%w: conflicting archive name %q", ErrInvalidConfig, name)
	}
	c.History[name] = ArchiveConfig{
		Name:  name,
		Get:   get,
		Put:   put,
		Mkdir: mkdir,
	}
	return nil
}

// parseNodeID resolves an identity token, optionally followed by a name to
// register for it ("<key> <name>").
func (c *Config) parseNodeID(token string) (ids.ID, error) {
	fields := strings.Fields(token)
	switch {
	case len(fields) == 0:
		return ids.Empty, fmt.Errorf("%w: empty node identity", ErrInvalidConfig)
	case len(fields) > 2:
		return ids.Empty, fmt.Errorf("%w: invalid node identity %q", ErrInvalidConfig, token)
	}
	if fields[0][0] == '$' || fields[0][0] == '@' {
		if len(fields) > 1 {
			return ids.Empty, fmt.Errorf("%w: aliases only reference existing keys: %q", ErrInvalidConfig, token)
		}
		id, err := c.Names.Resolve(fields[0])
		if err != nil {
			return ids.Empty, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		return id, nil
	}
	id, err := c.Names.Resolve(fields[0])
	if err != nil {
		return ids.Empty, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if len(fields) == 2 {
		if err := c.Names.RegisterAlias(id.String(), fields[1]); err != nil {
			return ids.Empty, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return id, nil
}
