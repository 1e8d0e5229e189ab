package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/factura-pyme/internal/application/auth"
	"github.com/tu-usuario/factura-pyme/internal/application/billing"
	"github.com/tu-usuario/factura-pyme/internal/application/usecase"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CompanyUC  *usecase.CompanyUseCase
	CustomerUC *usecase.CustomerUseCase
	VendorUC   *usecase.VendorUseCase
	EmployeeUC *usecase.EmployeeUseCase
	ProductUC  *usecase.ProductUseCase
	InvoiceUC  *billing.InvoiceUseCase
	InvoicePDF *billing.InvoicePDFUseCase
	EstimateUC *billing.EstimateUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies: alta pública (onboarding); el resto requiere token.
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)
	canBill := RequireRole(entity.RoleAdmin, entity.RoleSales)

	companiesAuth := protected.Group("/companies")
	companiesAuth.Get("/", companyHandler.List)
	companiesAuth.Get("/:id", companyHandler.GetByID)
	companiesAuth.Put("/:id", adminOnly, companyHandler.Update)
	companiesAuth.Delete("/:id", adminOnly, companyHandler.Delete)
	companiesAuth.Post("/:id/tax-rates", adminOnly, companyHandler.AddTaxRate)
	companiesAuth.Delete("/:id/tax-rates/:rateId", adminOnly, companyHandler.DeleteTaxRate)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Vendors (protegido)
	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Put("/:id", vendorHandler.Update)
	vendors.Delete("/:id", adminOnly, vendorHandler.Delete)

	// Employees (protegido; solo admin modifica)
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", adminOnly, employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", adminOnly, employeeHandler.Update)
	employees.Delete("/:id", adminOnly, employeeHandler.Delete)

	// Products y categorías (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	categories := protected.Group("/product-categories")
	categories.Post("/", productHandler.CreateCategory)
	categories.Get("/", productHandler.ListCategories)
	categories.Delete("/:id", adminOnly, productHandler.DeleteCategory)

	// Invoices (protegido; escritura solo admin/sales)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices.Post("/", canBill, invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", canBill, invoiceHandler.Update)
	invoices.Delete("/:id", adminOnly, invoiceHandler.Delete)
	invoices.Post("/:id/payments", canBill, invoiceHandler.RecordPayment)
	invoices.Patch("/:id/status", canBill, invoiceHandler.UpdateStatus)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Estimates (protegido; escritura solo admin/sales)
	estimates := protected.Group("/estimates")
	estimateHandler := NewEstimateHandler(deps.EstimateUC)
	estimates.Post("/", canBill, estimateHandler.Create)
	estimates.Get("/", estimateHandler.List)
	estimates.Get("/:id", estimateHandler.GetByID)
	estimates.Put("/:id", canBill, estimateHandler.Update)
	estimates.Delete("/:id", adminOnly, estimateHandler.Delete)
	estimates.Patch("/:id/status", canBill, estimateHandler.UpdateStatus)
	estimates.Post("/:id/convert", canBill, estimateHandler.ConvertToInvoice)
}
