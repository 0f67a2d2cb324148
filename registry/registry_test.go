// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"

	"github.com/luxfi/quorum/registry"
)

func TestRegisterAndResolve(t *testing.T) {
	require := require.New(t)

	id := ids.GenerateTestID()
	r := registry.New()
	require.NoError(r.RegisterAlias(id.String(), "alice"))

	got, err := r.Resolve("$alice")
	require.NoError(err)
	require.Equal(id, got)

	got, err = r.Resolve(id.String())
	require.NoError(err)
	require.Equal(id, got)

	name, ok := r.Name(id)
	require.True(ok)
	require.Equal("alice", name)
}

func TestRegisterConflicts(t *testing.T) {
	require := require.New(t)

	r := registry.New()
	key := ids.GenerateTestID().String()
	require.NoError(r.RegisterAlias(key, "alice"))

	// the same name for a different key
	err := r.RegisterAlias(ids.GenerateTestID().String(), "alice")
	require.ErrorIs(err, registry.ErrNameInUse)

	// a second name for the same key
	err = r.RegisterAlias(key, "bob")
	require.ErrorIs(err, registry.ErrKeyNamedTwice)
}

func TestResolvePrefix(t *testing.T) {
	require := require.New(t)

	r := registry.New()
	id := ids.GenerateTestID()
	require.NoError(r.RegisterAlias(id.String(), "alice"))

	got, err := r.Resolve("@" + id.String()[:6])
	require.NoError(err)
	require.Equal(id, got)

	_, err = r.Resolve("@zzzzzzzz")
	require.ErrorIs(err, registry.ErrUnknownAlias)
}

func TestResolveAmbiguousPrefix(t *testing.T) {
	require := require.New(t)

	r := registry.New()
	// identical apart from the last byte, so the encodings share a long
	// common prefix
	var a, b ids.ID
	a[31] = 1
	b[31] = 2
	require.NoError(r.RegisterAlias(a.String(), "alice"))
	require.NoError(r.RegisterAlias(b.String(), "bob"))

	prefix := commonPrefix(a.String(), b.String())
	require.NotEmpty(prefix)
	_, err := r.Resolve("@" + prefix)
	require.ErrorIs(err, registry.ErrAmbiguousPrefix)
}

func TestResolveInvalidTokens(t *testing.T) {
	require := require.New(t)

	r := registry.New()
	for _, token := range []string{"", "x", "$missing", "not-a-key!"} {
		_, err := r.Resolve(token)
		require.Error(err, "token %q", token)
	}
}

func TestShortDisplay(t *testing.T) {
	require := require.New(t)

	r := registry.New()
	named := ids.GenerateTestID()
	anonymous := ids.GenerateTestID()
	require.NoError(r.RegisterAlias(named.String(), "alice"))

	require.Equal("alice", r.ShortDisplay(named))
	require.Equal(anonymous.String()[:5], r.ShortDisplay(anonymous))
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}

func TestExpand(t *testing.T) {
	require := require.New(t)

	r := registry.New()
	id := ids.GenerateTestID()
	require.NoError(r.RegisterAlias(id.String(), "core"))

	key, ok := r.Expand("$core")
	require.True(ok)
	require.Equal(id.String(), key)

	key, ok = r.Expand(id.String())
	require.True(ok)
	require.Equal(id.String(), key)

	_, ok = r.Expand("$ghost")
	require.False(ok)
}
