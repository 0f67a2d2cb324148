// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry maps validator identities to human-assigned names and
// resolves the alias forms used in configuration files.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luxfi/ids"
)

// Alias token prefixes accepted by Resolve.
const (
	aliasPrefix = '$' // exact name lookup
	keyPrefix   = '@' // left-anchored match on the encoded key
)

const shortDisplayLen = 5

var (
	ErrNameInUse       = errors.New("validator name already in use")
	ErrKeyNamedTwice   = errors.New("validator key named twice")
	ErrUnknownAlias    = errors.New("unknown validator alias")
	ErrAmbiguousPrefix = errors.New("key prefix matches multiple validators")
	ErrInvalidKey      = errors.New("invalid validator key")
)

// Registry is a bidirectional mapping between encoded validator identities
// and human-assigned names. It is populated while a configuration is
// loaded and read-only afterward; there is no package-level instance.
type Registry struct {
	// encoded identity -> name
	names map[string]string
}

func New() *Registry {
	return &Registry{
		names: make(map[string]string),
	}
}

// RegisterAlias assigns [name] to the identity encoded as [key]. Naming
// two identities the same, or one identity twice, is a conflict.
func (r *Registry) RegisterAlias(key, name string) error {
	for _, existing := range r.names {
		if existing == name {
			return fmt.Errorf("%w: %s", ErrNameInUse, name)
		}
	}
	if _, ok := r.names[key]; ok {
		return fmt.Errorf("%w: %s", ErrKeyNamedTwice, name)
	}
	r.names[key] = name
	return nil
}

// Resolve parses an identity token: a raw encoded key, "$name" for an
// exact alias lookup, or "@prefix" for a left-anchored match against the
// registered encoded keys. A prefix matching more than one registered key
// is rejected rather than resolved to an arbitrary entry.
func (r *Registry) Resolve(token string) (ids.ID, error) {
	if len(token) < 2 {
		return ids.Empty, fmt.Errorf("%w: %q", ErrInvalidKey, token)
	}
	switch token[0] {
	case aliasPrefix:
		name := token[1:]
		for key, n := range r.names {
			if n == name {
				return parseKey(key)
			}
		}
		return ids.Empty, fmt.Errorf("%w: %s", ErrUnknownAlias, token)
	case keyPrefix:
		prefix := token[1:]
		var match string
		for key := range r.names {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			if match != "" {
				return ids.Empty, fmt.Errorf("%w: %s", ErrAmbiguousPrefix, token)
			}
			match = key
		}
		if match == "" {
			return ids.Empty, fmt.Errorf("%w: %s", ErrUnknownAlias, token)
		}
		return parseKey(match)
	default:
		return parseKey(token)
	}
}

// Expand resolves [token] to the canonical encoded form of the identity
// it references.
func (r *Registry) Expand(token string) (string, bool) {
	id, err := r.Resolve(token)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Name returns the name registered for [id], if any.
func (r *Registry) Name(id ids.ID) (string, bool) {
	name, ok := r.names[id.String()]
	return name, ok
}

// ShortDisplay returns the registered name for [id], or a short form of
// its encoding when no name exists.
func (r *Registry) ShortDisplay(id ids.ID) string {
	key := id.String()
	if name, ok := r.names[key]; ok {
		return name
	}
	if len(key) <= shortDisplayLen {
		return key
	}
	return key[:shortDisplayLen]
}

func parseKey(key string) (ids.ID, error) {
	id, err := ids.FromString(key)
	if err != nil {
		return ids.Empty, fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	return id, nil
}
