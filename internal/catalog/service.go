package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/mortinious/tiles-game/internal/dependencies/random"
	"github.com/mortinious/tiles-game/internal/model"
)

// Service holds the static tile catalog and resource value table for the
// process. Definitions are immutable once loaded; decks are built from deep
// copies so no mutable state leaks between sessions.
type Service struct {
	definitions    []model.TileDefinition
	resourceValues map[model.ResourceType]int
	logger         *slog.Logger
}

// New creates a catalog service holding the built-in default catalog.
func New(logger *slog.Logger) *Service {
	return &Service{
		definitions:    defaultDefinitions(),
		resourceValues: defaultResourceValues(),
		logger:         logger.With(slog.String("component", "catalog")),
	}
}

// catalogFile is the JSON shape of an external catalog file.
type catalogFile struct {
	Resources map[model.ResourceType]int `json:"resources"`
	Tiles     []model.TileDefinition     `json:"tiles"`
}

// LoadFromFile replaces the built-in catalog with definitions from a JSON
// file of the same shape as the defaults.
func (s *Service) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing catalog file: %w", err)
	}

	if err := validate(file.Tiles, file.Resources); err != nil {
		return err
	}

	s.definitions = file.Tiles
	s.resourceValues = file.Resources

	s.logger.Info("catalog loaded",
		slog.String("path", path),
		slog.Int("tile_definitions", len(file.Tiles)),
		slog.Int("resource_types", len(file.Resources)),
	)
	return nil
}

// Definitions returns the catalog's tile definitions.
func (s *Service) Definitions() []model.TileDefinition {
	return s.definitions
}

// ResourceValue returns the defined cost value of a resource type, which is
// also the score credited per unit consumed from an opponent's tile.
func (s *Service) ResourceValue(res model.ResourceType) int {
	return s.resourceValues[res]
}

// BuildDeck expands every definition into Count independent instances and
// shuffles the result. Each call produces a fresh deck for one session.
func (s *Service) BuildDeck(rnd random.Random) []*model.TileInstance {
	var deck []*model.TileInstance
	for _, def := range s.definitions {
		for i := 0; i < def.Count; i++ {
			deck = append(deck, def.Materialize())
		}
	}
	rnd.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// validate rejects catalogs whose tiles reference unknown resource tags or
// carry payloads inconsistent with their kind.
func validate(tiles []model.TileDefinition, resources map[model.ResourceType]int) error {
	if len(tiles) == 0 {
		return fmt.Errorf("%w: no tile definitions", model.ErrInvalidCatalog)
	}
	for _, def := range tiles {
		switch def.Kind {
		case model.TileKindResource:
			if len(def.Resources) == 0 {
				return fmt.Errorf("%w: resource tile %q has no resources", model.ErrInvalidCatalog, def.Name)
			}
		case model.TileKindCulture:
			if len(def.Resources) > 0 {
				return fmt.Errorf("%w: culture tile %q carries resources", model.ErrInvalidCatalog, def.Name)
			}
		default:
			return fmt.Errorf("%w: tile %q has unknown kind %q", model.ErrInvalidCatalog, def.Name, def.Kind)
		}
		if def.Count <= 0 {
			return fmt.Errorf("%w: tile %q has count %d", model.ErrInvalidCatalog, def.Name, def.Count)
		}
		for _, res := range append(append([]model.ResourceType{}, def.Cost...), def.Resources...) {
			if _, ok := resources[res]; !ok {
				return fmt.Errorf("%w: tile %q references unknown resource %q", model.ErrInvalidCatalog, def.Name, res)
			}
		}
	}
	return nil
}

func defaultResourceValues() map[model.ResourceType]int {
	return map[model.ResourceType]int{
		model.ResourceWood:  1,
		model.ResourceWheat: 1,
		model.ResourceStone: 2,
		model.ResourceGold:  3,
	}
}

func defaultDefinitions() []model.TileDefinition {
	return []model.TileDefinition{
		{
			Kind:      model.TileKindResource,
			Name:      "forest",
			Cost:      []model.ResourceType{},
			Resources: []model.ResourceType{model.ResourceWood, model.ResourceWood, model.ResourceWood},
			Count:     12,
		},
		{
			Kind:      model.TileKindResource,
			Name:      "farm",
			Cost:      []model.ResourceType{},
			Resources: []model.ResourceType{model.ResourceWheat, model.ResourceWheat, model.ResourceWheat},
			Count:     10,
		},
		{
			Kind:      model.TileKindResource,
			Name:      "quarry",
			Cost:      []model.ResourceType{},
			Resources: []model.ResourceType{model.ResourceStone, model.ResourceStone},
			Count:     10,
		},
		{
			Kind:      model.TileKindResource,
			Name:      "mine",
			Cost:      []model.ResourceType{model.ResourceWood},
			Resources: []model.ResourceType{model.ResourceGold},
			Count:     6,
		},
		{
			Kind:  model.TileKindCulture,
			Name:  "hamlet",
			Cost:  []model.ResourceType{},
			Score: 1,
			Count: 14,
		},
		{
			Kind:  model.TileKindCulture,
			Name:  "market",
			Cost:  []model.ResourceType{model.ResourceWheat},
			Score: 3,
			Count: 10,
		},
		{
			Kind:  model.TileKindCulture,
			Name:  "temple",
			Cost:  []model.ResourceType{model.ResourceStone, model.ResourceStone},
			Score: 5,
			Count: 8,
		},
		{
			Kind:  model.TileKindCulture,
			Name:  "monument",
			Cost:  []model.ResourceType{model.ResourceStone, model.ResourceGold},
			Score: 8,
			Count: 4,
		},
	}
}
