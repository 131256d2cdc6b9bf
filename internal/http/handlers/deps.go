package handlers

import (
	"bathstore/internal/config"
	"bathstore/internal/repos"
	"bathstore/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	OrderHandler    *OrderHandler
	SupportHandler  *SupportHandler
	AdminHandler    *AdminHandler
	APIHandler      *APIHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	quoteRepo := repos.NewQuotationRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	supportRepo := repos.NewSupportRepo(db)
	userRepo := repos.NewUserRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, quoteRepo)
	orderSvc := services.NewOrderService(quoteRepo, orderRepo, prodRepo, cfg.UploadsDir)
	adminSvc := services.NewAdminService(quoteRepo, orderRepo)
	supportSvc := services.NewSupportService(supportRepo)
	prodAdminSvc := services.NewProductAdminService(catRepo, prodRepo, cfg.MediaDir)
	tokenSvc := services.NewTokenService(cfg.JWTSecret)

	return &Deps{
		CatalogHandler:  &CatalogHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc, Auth: auth},
		CheckoutHandler: &CheckoutHandler{Cart: cartSvc, Checkout: checkoutSvc, Orders: orderSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc, Auth: auth},
		SupportHandler:  &SupportHandler{Support: supportSvc},
		AdminHandler: &AdminHandler{
			Admin:    adminSvc,
			Products: prodAdminSvc,
			Catalog:  catalogSvc,
			Support:  supportSvc,
			Users:    userRepo,
		},
		APIHandler: &APIHandler{Auth: auth, Tokens: tokenSvc, Orders: orderSvc, Catalog: catalogSvc},
	}
}
