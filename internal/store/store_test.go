package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/threadweaver/internal/game"
)

func sampleLevels() game.UpgradeLevels {
	levels := game.DefaultUpgradeLevels()
	levels.LootMagnet = 2
	levels.TrailDamage = 1
	levels.UnlockedColors = append(levels.UnlockedColors, game.ColorPurple)
	levels.SelectedColor = game.ColorPurple
	return levels
}

func TestCodecFor(t *testing.T) {
	assert.Equal(t, "json", CodecFor("state.json").Name())
	assert.Equal(t, "json", CodecFor("state").Name())
	assert.Equal(t, "msgpack", CodecFor("state.MSGPACK").Name())
	assert.Equal(t, "msgpack", CodecFor("state.mpk").Name())
}

func TestFileStore_RoundTrip(t *testing.T) {
	for _, name := range []string{"save.json", "save.msgpack"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			fs := NewFileStore(path)

			fs.SaveCurrency(1234)
			fs.SaveUpgrades(sampleLevels())
			require.NoError(t, fs.Err())

			reopened := NewFileStore(path)
			assert.Equal(t, uint32(1234), reopened.LoadCurrency())
			assert.Equal(t, sampleLevels(), reopened.LoadUpgrades())
			require.NoError(t, reopened.Err())
		})
	}
}

func TestFileStore_SavesKeepOtherField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	fs := NewFileStore(path)
	fs.SaveUpgrades(sampleLevels())
	fs.SaveCurrency(7)

	doc, err := fs.Read()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), doc.Currency)
	assert.Equal(t, uint32(2), doc.Upgrades.LootMagnet)
}

func TestFileStore_MissingFileIsDefaults(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	assert.Zero(t, fs.LoadCurrency())
	assert.Equal(t, game.DefaultUpgradeLevels(), fs.LoadUpgrades())
	assert.NoError(t, fs.Err())
}

func TestFileStore_CorruptFileIsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	fs := NewFileStore(path)
	assert.Zero(t, fs.LoadCurrency())
	assert.Equal(t, game.DefaultUpgradeLevels(), fs.LoadUpgrades())
	assert.Error(t, fs.Err())

	_, err := fs.Read()
	assert.ErrorContains(t, err, "decode save")
}

func TestFileStore_LoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	raw := `{"currency": 3, "upgrades": {"loot_magnet_level": 99, "unlocked_colors": ["red", "red", "gold"], "selected_color": "gold"}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	levels := NewFileStore(path).LoadUpgrades()
	assert.Equal(t, uint32(3), levels.LootMagnet)
	assert.Equal(t, []game.PlayerColor{game.ColorDefault, game.ColorRed}, levels.UnlockedColors)
	assert.Equal(t, game.ColorDefault, levels.SelectedColor)
}

func TestFileStore_WriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStore(filepath.Join(dir, "save.json"))
	for i := 0; i < 5; i++ {
		fs.SaveCurrency(uint32(i))
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "save.json", entries[0].Name())
}

func TestFileStore_UnwritableDirRecordsError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	fs := NewFileStore(filepath.Join(blocker, "save.json"))
	fs.SaveCurrency(5)
	assert.Error(t, fs.Err())
}

func TestNewFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(os.TempDir(), DefaultFileName), NewFileStore("").Path())
}

func TestMemoryStore_DoesNotAlias(t *testing.T) {
	m := NewMemoryStore(DefaultSaveFile())
	levels := sampleLevels()
	m.SaveUpgrades(levels)
	levels.UnlockedColors[0] = game.ColorBlue

	got := m.LoadUpgrades()
	assert.Equal(t, game.ColorDefault, got.UnlockedColors[0])
	m.SaveCurrency(9)
	assert.Equal(t, uint32(9), m.Snapshot().Currency)
}

func TestStores_DriveASim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	fs := NewFileStore(path)
	fs.SaveCurrency(10)

	sim := game.NewSim(game.WithRandSeed(1), game.WithPersistence(fs))
	require.Equal(t, game.PurchaseOK, sim.Purchase(game.UpgradeMaxHealth))

	doc, err := NewFileStore(path).Read()
	require.NoError(t, err)
	assert.Zero(t, doc.Currency)
	assert.Equal(t, uint32(1), doc.Upgrades.MaxHealth)
}
