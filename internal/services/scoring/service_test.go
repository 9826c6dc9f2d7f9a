package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mortinious/tiles-game/internal/catalog"
	"github.com/mortinious/tiles-game/internal/model"
	"github.com/mortinious/tiles-game/internal/testutil"
)

func newService() *Service {
	return New(catalog.New(testutil.NopLogger()))
}

func TestPlacementScoreCultureTile(t *testing.T) {
	s := newService()

	tile := &model.TileInstance{Kind: model.TileKindCulture, Score: 5}
	assert.Equal(t, 5, s.PlacementScore(tile))
}

func TestPlacementScoreResourceTile(t *testing.T) {
	s := newService()

	tile := &model.TileInstance{
		Kind:      model.TileKindResource,
		Resources: []model.ResourceType{model.ResourceGold},
		Score:     3, // ignored for resource tiles
	}
	assert.Equal(t, 0, s.PlacementScore(tile))
}

func TestResourceCreditUsesCatalogValues(t *testing.T) {
	s := newService()

	assert.Equal(t, 1, s.ResourceCredit(model.ResourceWood))
	assert.Equal(t, 1, s.ResourceCredit(model.ResourceWheat))
	assert.Equal(t, 2, s.ResourceCredit(model.ResourceStone))
	assert.Equal(t, 3, s.ResourceCredit(model.ResourceGold))
}

func TestWinnersSingle(t *testing.T) {
	s := newService()

	players := []*model.Player{
		{Name: "Alice", Score: 10},
		{Name: "Bob", Score: 7},
	}
	winners := s.Winners(players)
	assert.Equal(t, []model.Winner{{Name: "Alice", Score: 10}}, winners)
}

func TestWinnersTied(t *testing.T) {
	s := newService()

	players := []*model.Player{
		{Name: "Alice", Score: 10},
		{Name: "Bob", Score: 10},
		{Name: "Carol", Score: 4},
	}
	winners := s.Winners(players)
	assert.Len(t, winners, 2)
	assert.Equal(t, "Alice", winners[0].Name)
	assert.Equal(t, "Bob", winners[1].Name)
}

func TestWinnersAllZeroScores(t *testing.T) {
	s := newService()

	players := []*model.Player{
		{Name: "Alice"},
		{Name: "Bob"},
	}
	winners := s.Winners(players)
	assert.Len(t, winners, 2)
}

func TestWinnersEmptyRoster(t *testing.T) {
	s := newService()

	assert.Nil(t, s.Winners(nil))
}
