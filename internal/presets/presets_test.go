package presets

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(Config{
		Path: filepath.Join(t.TempDir(), "presets.db"),
	})
	require.NoError(t, err)

	t.Cleanup(func() { store.Close() })

	return store
}

func TestStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)

	preset := Preset{
		Name:      "office-lan",
		Address:   "239.255.255.250",
		Port:      8888,
		Message:   "hello from office",
		Interface: "eth0",
	}

	require.NoError(t, store.Save(preset))

	got, err := store.Get("office-lan")
	require.NoError(t, err)
	assert.Equal(t, preset, *got)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Save(Preset{Name: "lan", Address: "239.0.0.1", Port: 7000}))
	require.NoError(t, store.Save(Preset{Name: "lan", Address: "ff08::1", Port: 7001}))

	got, err := store.Get("lan")
	require.NoError(t, err)
	assert.Equal(t, "ff08::1", got.Address)
	assert.Equal(t, 7001, got.Port)
}

func TestStore_SaveEmptyName(t *testing.T) {
	store := setupTestStore(t)
	assert.ErrorIs(t, store.Save(Preset{Address: "239.0.0.1"}), ErrEmptyName)
}

func TestStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestStore_List(t *testing.T) {
	store := setupTestStore(t)

	assert.Empty(t, func() []Preset {
		presets, err := store.List()
		require.NoError(t, err)
		return presets
	}())

	require.NoError(t, store.Save(Preset{Name: "b", Address: "239.0.0.2", Port: 7002}))
	require.NoError(t, store.Save(Preset{Name: "a", Address: "239.0.0.1", Port: 7001}))

	presets, err := store.List()
	require.NoError(t, err)
	require.Len(t, presets, 2)
	assert.Equal(t, "a", presets[0].Name, "list follows bucket key order")
	assert.Equal(t, "b", presets[1].Name)
}

func TestStore_Delete(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Save(Preset{Name: "gone", Address: "239.0.0.1", Port: 7001}))
	require.NoError(t, store.Delete("gone"))

	_, err := store.Get("gone")
	assert.ErrorIs(t, err, ErrPresetNotFound)

	assert.ErrorIs(t, store.Delete("gone"), ErrPresetNotFound)
}
