package scoring

import (
	"github.com/mortinious/tiles-game/internal/catalog"
	"github.com/mortinious/tiles-game/internal/model"
)

// Service computes placement scores, payment credits and final standings.
type Service struct {
	catalog *catalog.Service
}

// New creates a new scoring service.
func New(catalogService *catalog.Service) *Service {
	return &Service{catalog: catalogService}
}

// PlacementScore returns the score the placing player earns directly from the
// tile. Culture tiles grant their fixed value; resource tiles grant nothing at
// placement time (their value is realized when neighbors consume them).
func (s *Service) PlacementScore(tile *model.TileInstance) int {
	if tile.Kind == model.TileKindCulture {
		return tile.Score
	}
	return 0
}

// ResourceCredit returns the score credited to a resource tile's owner for
// one unit of the given resource consumed by another player.
func (s *Service) ResourceCredit(res model.ResourceType) int {
	return s.catalog.ResourceValue(res)
}

// Winners returns every player tied for the maximum score. Ties are allowed;
// the result is never empty for a non-empty roster.
func (s *Service) Winners(players []*model.Player) []model.Winner {
	if len(players) == 0 {
		return nil
	}
	max := players[0].Score
	for _, p := range players[1:] {
		if p.Score > max {
			max = p.Score
		}
	}
	var winners []model.Winner
	for _, p := range players {
		if p.Score == max {
			winners = append(winners, model.Winner{Name: p.Name, Score: p.Score})
		}
	}
	return winners
}
