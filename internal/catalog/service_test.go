package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mortinious/tiles-game/internal/dependencies/mocks"
	"github.com/mortinious/tiles-game/internal/model"
	"github.com/mortinious/tiles-game/internal/testutil"
)

func TestDefaultCatalogIsUsable(t *testing.T) {
	s := New(testutil.NopLogger())

	assert.NotEmpty(t, s.Definitions())
	assert.Equal(t, 2, s.ResourceValue(model.ResourceStone))
	assert.Equal(t, 0, s.ResourceValue("unknown"))
}

func TestBuildDeckExpandsCounts(t *testing.T) {
	s := New(testutil.NopLogger())

	deck := s.BuildDeck(mocks.NewMockRandom())

	total := 0
	for _, def := range s.Definitions() {
		total += def.Count
	}
	assert.Len(t, deck, total)
}

func TestBuildDeckInstancesAreIndependent(t *testing.T) {
	s := New(testutil.NopLogger())

	deck := s.BuildDeck(mocks.NewMockRandom())

	var forests []*model.TileInstance
	for _, tile := range deck {
		if tile.Name == "forest" {
			forests = append(forests, tile)
		}
	}
	require.GreaterOrEqual(t, len(forests), 2)

	forests[0].RemoveResource(model.ResourceWood)
	assert.NotEqual(t, len(forests[0].Resources), len(forests[1].Resources))
}

func TestBuildDeckShuffles(t *testing.T) {
	s := New(testutil.NopLogger())
	rnd := mocks.NewMockRandom()
	reversed := false
	rnd.ShuffleFunc = func(n int, swap func(i, j int)) {
		reversed = true
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			swap(i, j)
		}
	}

	deck := s.BuildDeck(rnd)

	assert.True(t, reversed)
	assert.Equal(t, "monument", deck[0].Name)
}

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileReplacesCatalog(t *testing.T) {
	s := New(testutil.NopLogger())
	path := writeCatalogFile(t, `{
		"resources": {"wood": 4},
		"tiles": [
			{"kind": "resource", "name": "grove", "resources": ["wood"], "count": 3},
			{"kind": "culture", "name": "shrine", "cost": ["wood"], "score": 2, "count": 1}
		]
	}`)

	require.NoError(t, s.LoadFromFile(path))

	assert.Len(t, s.Definitions(), 2)
	assert.Equal(t, 4, s.ResourceValue(model.ResourceWood))
	assert.Len(t, s.BuildDeck(mocks.NewMockRandom()), 4)
}

func TestLoadFromFileMissingFile(t *testing.T) {
	s := New(testutil.NopLogger())

	assert.Error(t, s.LoadFromFile(filepath.Join(t.TempDir(), "missing.json")))
}

func TestLoadFromFileInvalidJSON(t *testing.T) {
	s := New(testutil.NopLogger())
	path := writeCatalogFile(t, `{not json`)

	assert.Error(t, s.LoadFromFile(path))
}

func TestLoadFromFileRejectsEmptyCatalog(t *testing.T) {
	s := New(testutil.NopLogger())
	path := writeCatalogFile(t, `{"resources": {}, "tiles": []}`)

	assert.ErrorIs(t, s.LoadFromFile(path), model.ErrInvalidCatalog)
}

func TestLoadFromFileRejectsUnknownResource(t *testing.T) {
	s := New(testutil.NopLogger())
	path := writeCatalogFile(t, `{
		"resources": {"wood": 1},
		"tiles": [{"kind": "culture", "name": "shrine", "cost": ["iron"], "score": 2, "count": 1}]
	}`)

	assert.ErrorIs(t, s.LoadFromFile(path), model.ErrInvalidCatalog)
}

func TestLoadFromFileRejectsResourceTileWithoutResources(t *testing.T) {
	s := New(testutil.NopLogger())
	path := writeCatalogFile(t, `{
		"resources": {"wood": 1},
		"tiles": [{"kind": "resource", "name": "grove", "count": 1}]
	}`)

	assert.ErrorIs(t, s.LoadFromFile(path), model.ErrInvalidCatalog)
}

func TestLoadFromFileRejectsCultureTileWithResources(t *testing.T) {
	s := New(testutil.NopLogger())
	path := writeCatalogFile(t, `{
		"resources": {"wood": 1},
		"tiles": [{"kind": "culture", "name": "shrine", "resources": ["wood"], "score": 1, "count": 1}]
	}`)

	assert.ErrorIs(t, s.LoadFromFile(path), model.ErrInvalidCatalog)
}

func TestLoadFromFileFailureKeepsOldCatalog(t *testing.T) {
	s := New(testutil.NopLogger())
	before := len(s.Definitions())
	path := writeCatalogFile(t, `{"resources": {}, "tiles": []}`)

	require.Error(t, s.LoadFromFile(path))

	assert.Len(t, s.Definitions(), before)
}
