package handlers

import (
	"github.com/jmoiron/sqlx"

	"shopmate/internal/config"
	"shopmate/internal/report"
	"shopmate/internal/repos"
	"shopmate/internal/services"
	"shopmate/internal/session"
)

type Deps struct {
	ToolHandler  *ToolHandler
	AdminHandler *AdminHandler
	Progress     *services.Progression
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catalogRepo := repos.NewCatalogRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	summary := report.NewSummaryWriter(cfg.SummaryFile)
	progress := services.NewProgression(orderRepo, cfg.ProgressInterval)

	catalogSvc := services.NewCatalogService(catalogRepo)
	cartSvc := services.NewCartService(cartRepo, catalogRepo)
	orderSvc := services.NewOrderService(cartRepo, orderRepo, summary, progress)

	return &Deps{
		ToolHandler: &ToolHandler{
			Catalog:  catalogSvc,
			Cart:     cartSvc,
			Orders:   orderSvc,
			Sessions: session.NewManager(),
		},
		AdminHandler: &AdminHandler{Orders: orderRepo},
		Progress:     progress,
	}
}
