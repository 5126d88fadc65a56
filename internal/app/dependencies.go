package app

import (
	"fmt"

	"github.com/klokku/finance-kanban/internal/config"
	"github.com/klokku/finance-kanban/internal/event_bus"
	"github.com/klokku/finance-kanban/internal/utils"
	"github.com/klokku/finance-kanban/pkg/game"
	"github.com/klokku/finance-kanban/pkg/report"
	"github.com/klokku/finance-kanban/pkg/scenario"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	Catalog *scenario.Catalog
	Builder *scenario.Builder

	GameRepo    game.Repository
	GameService *game.ServiceImpl
	GameHandler *game.Handler

	History            *report.History
	CsvHistoryRenderer *report.CsvHistoryRendererImpl
	HistoryHandler     *report.HistoryHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.Catalog = scenario.NewDefaultCatalog()
	builder, err := scenario.NewBuilder(deps.Catalog, cfg.Game.EngineRules())
	if err != nil {
		return nil, fmt.Errorf("invalid game rules: %w", err)
	}
	deps.Builder = builder

	deps.GameRepo = game.NewRepository()
	defaults := game.NewGame{Difficulty: cfg.Game.Difficulty, Housing: cfg.Game.Housing}
	deps.GameService = game.NewService(deps.GameRepo, deps.Builder, deps.EventBus, deps.Clock, defaults, cfg.Game.Seed)
	deps.GameHandler = game.NewHandler(deps.GameService)

	deps.History = report.NewHistory()
	deps.History.Subscribe(deps.EventBus)
	deps.CsvHistoryRenderer = report.NewCsvHistoryRenderer()
	deps.HistoryHandler = report.NewHistoryHandler(deps.History, deps.CsvHistoryRenderer)

	return deps, nil
}
