package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/in100tiva/PDV/internal/application/alerts"
	"github.com/in100tiva/PDV/internal/application/auth"
	"github.com/in100tiva/PDV/internal/application/checkout"
	"github.com/in100tiva/PDV/internal/application/credit"
	"github.com/in100tiva/PDV/internal/application/pos"
	"github.com/in100tiva/PDV/internal/application/stock"
	"github.com/in100tiva/PDV/internal/application/usecase"
	"github.com/in100tiva/PDV/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	CustomerUC *usecase.CustomerUseCase
	SaleUC     *usecase.SaleUseCase
	ReceiptUC  *usecase.ReceiptUseCase
	ReportUC   *usecase.ReportUseCase
	POSService *pos.Service
	CheckoutUC *checkout.UseCase
	StockUC    *stock.LedgerUseCase
	CreditUC   *credit.UseCase
	AlertsUC   *alerts.UseCase
	CompanyID  string
	JWTSecret  string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Papéis de gestão: podem mexer em catálogo, estoque e relatórios.
	manager := RequireRole(entity.RoleAdmin, entity.RoleGerente)

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CompanyID)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/variants", productHandler.ListVariants)
	products.Post("/", manager, productHandler.Create)
	products.Put("/:id", manager, productHandler.Update)
	products.Delete("/:id", manager, productHandler.Delete)
	products.Post("/:id/variants", manager, productHandler.CreateVariant)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.CompanyID)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", manager, categoryHandler.Create)
	categories.Put("/:id", manager, categoryHandler.Update)
	categories.Delete("/:id", manager, categoryHandler.Delete)

	// Clientes
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.CompanyID)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Frente de caixa: carrinho por sessão + fechamento
	posGroup := protected.Group("/pos/sessions/:session")
	posHandler := NewPOSHandler(deps.POSService, deps.CheckoutUC, deps.CompanyID)
	posGroup.Get("/cart", posHandler.GetCart)
	posGroup.Delete("/cart", posHandler.ClearCart)
	posGroup.Post("/items", posHandler.AddItem)
	posGroup.Patch("/items/:line", posHandler.UpdateItem)
	posGroup.Delete("/items/:line", posHandler.RemoveItem)
	posGroup.Put("/items/:line/discount", posHandler.SetItemDiscount)
	posGroup.Delete("/items/:line/discount", posHandler.ClearItemDiscount)
	posGroup.Put("/discount", posHandler.SetOrderDiscount)
	posGroup.Delete("/discount", posHandler.ClearOrderDiscount)
	posGroup.Put("/customer", posHandler.SetCustomer)
	posGroup.Put("/note", posHandler.SetNote)
	posGroup.Post("/checkout", posHandler.Checkout)
	posGroup.Delete("/", posHandler.EndSession)

	// Estoque
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/movements", stockHandler.Movements)
	stockGroup.Get("/report", stockHandler.Report)
	stockGroup.Post("/adjust", manager, stockHandler.Adjust)
	stockGroup.Put("/quantity", manager, stockHandler.Set)
	stockGroup.Put("/thresholds", manager, stockHandler.SetThresholds)

	// Vendas finalizadas + cupom
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Crediário
	credits := protected.Group("/credits")
	creditHandler := NewCreditHandler(deps.CreditUC)
	credits.Get("/", creditHandler.List)
	credits.Get("/:id", creditHandler.GetByID)
	credits.Post("/:id/payments", creditHandler.RegisterPayment)
	customers.Get("/:id/credits", creditHandler.ListByCustomer)

	// Alertas de estoque
	alertGroup := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertsUC)
	alertGroup.Get("/", alertHandler.ListUnread)
	alertGroup.Post("/:id/read", alertHandler.MarkRead)

	// Relatórios (gestão)
	reports := protected.Group("/reports", manager)
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/sales", reportHandler.Sales)
}
