package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	bolt, err := OpenBolt(filepath.Join(dir, "jam.db"))
	require.NoError(t, err)
	sqlite, err := OpenSQLite(filepath.Join(dir, "jam.sqlite"))
	require.NoError(t, err)

	backends := map[string]Store{
		DriverBolt:   bolt,
		DriverSQLite: sqlite,
		DriverMemory: NewMemory(),
	}
	t.Cleanup(func() {
		for _, s := range backends {
			_ = s.Close()
		}
	})
	return backends
}

func TestGetReturnsDefaultForMissingKey(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Get(ctx, "timeEntries", []byte("[]"))
			require.NoError(t, err)
			assert.Equal(t, "[]", string(got))
		})
	}
}

func TestUpdateOverwritesValue(t *testing.T) {
	ctx := context.Background()
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Update(ctx, "timeEntries", []byte(`[{"duration":1}]`)))
			require.NoError(t, s.Update(ctx, "timeEntries", []byte(`[{"duration":2}]`)))

			got, err := s.Get(ctx, "timeEntries", nil)
			require.NoError(t, err)
			assert.Equal(t, `[{"duration":2}]`, string(got))
		})
	}
}

func TestBoltPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "jam.db")

	first, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, first.Update(ctx, "k", []byte("v")))
	require.NoError(t, first.Close())

	second, err := OpenBolt(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "k", nil)
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestBoltSecondOpenIsLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jam.db")

	first, err := OpenBolt(path)
	require.NoError(t, err)
	defer first.Close()

	second, err := OpenBolt(path)
	assert.ErrorIs(t, err, ErrLocked)
	assert.Nil(t, second)
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "jam.sqlite")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Update(ctx, "k", []byte("v")))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "k", nil)
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestMemoryClosed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Close())

	_, err := m.Get(context.Background(), "k", nil)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Update(context.Background(), "k", nil), ErrClosed)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open("postgres", filepath.Join(t.TempDir(), "x"))
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpenDefaultsToBolt(t *testing.T) {
	s, err := Open("", filepath.Join(t.TempDir(), "jam.db"))
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.(*Bolt)
	assert.True(t, ok, "expected *Bolt, got %T", s)
}
