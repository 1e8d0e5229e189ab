package billing_test

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/factura-pyme/internal/application/billing"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// Dobles en memoria para los casos de uso de facturación. Implementan los
// puertos de repository con mapas; suficiente para probar la lógica de
// aplicación sin Postgres.

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    map[string][]*entity.InvoiceItem
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]*entity.Invoice),
		items:    make(map[string][]*entity.InvoiceItem),
	}
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.items[item.InvoiceID] = append(r.items[item.InvoiceID], &cp)
	return nil
}

func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	if _, ok := r.invoices[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetByNumber(companyID, number string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID && inv.InvoiceNumber == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	return r.items[invoiceID], nil
}

func (r *fakeInvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) DeleteItemsByInvoiceID(invoiceID string) error {
	delete(r.items, invoiceID)
	return nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	delete(r.invoices, id)
	return nil
}

type fakeEstimateRepo struct {
	estimates map[string]*entity.Estimate
	items     map[string][]*entity.EstimateItem
}

func newFakeEstimateRepo() *fakeEstimateRepo {
	return &fakeEstimateRepo{
		estimates: make(map[string]*entity.Estimate),
		items:     make(map[string][]*entity.EstimateItem),
	}
}

func (r *fakeEstimateRepo) Create(est *entity.Estimate) error {
	cp := *est
	r.estimates[est.ID] = &cp
	return nil
}

func (r *fakeEstimateRepo) CreateItem(item *entity.EstimateItem) error {
	cp := *item
	r.items[item.EstimateID] = append(r.items[item.EstimateID], &cp)
	return nil
}

func (r *fakeEstimateRepo) Update(est *entity.Estimate) error {
	if _, ok := r.estimates[est.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *est
	r.estimates[est.ID] = &cp
	return nil
}

func (r *fakeEstimateRepo) GetByID(id string) (*entity.Estimate, error) {
	est, ok := r.estimates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *est
	return &cp, nil
}

func (r *fakeEstimateRepo) GetByNumber(companyID, number string) (*entity.Estimate, error) {
	for _, est := range r.estimates {
		if est.CompanyID == companyID && est.EstimateNumber == number {
			cp := *est
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeEstimateRepo) GetItemsByEstimateID(estimateID string) ([]*entity.EstimateItem, error) {
	return r.items[estimateID], nil
}

func (r *fakeEstimateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Estimate, error) {
	var out []*entity.Estimate
	for _, est := range r.estimates {
		if est.CompanyID == companyID {
			cp := *est
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeEstimateRepo) DeleteItemsByEstimateID(estimateID string) error {
	delete(r.items, estimateID)
	return nil
}

func (r *fakeEstimateRepo) Delete(id string) error {
	delete(r.estimates, id)
	return nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) Delete(id string) error {
	delete(r.customers, id)
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]*entity.Company
}

func (r *fakeCompanyRepo) Create(c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeCompanyRepo) GetByRegistrationNumber(regNumber string) (*entity.Company, error) {
	for _, c := range r.companies {
		if c.RegistrationNumber == regNumber {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeCompanyRepo) Update(c *entity.Company) error {
	r.companies[c.ID] = c
	return nil
}

func (r *fakeCompanyRepo) List(limit, offset int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range r.companies {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCompanyRepo) Delete(id string) error {
	delete(r.companies, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]*entity.Employee
}

func (r *fakeEmployeeRepo) Create(e *entity.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) List(limit, offset int) ([]*entity.Employee, error) {
	var out []*entity.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) Update(e *entity.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) Delete(id string) error {
	delete(r.employees, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

// fakeTxRunner ejecuta la función directamente sobre los repositorios en
// memoria; no hay transacción real que abortar.
type fakeTxRunner struct {
	invoiceRepo  repository.InvoiceRepository
	estimateRepo repository.EstimateRepository
}

func (r *fakeTxRunner) RunBilling(ctx context.Context, fn func(repository.InvoiceRepository, repository.EstimateRepository) error) error {
	return fn(r.invoiceRepo, r.estimateRepo)
}

// billingFixture arma un juego completo de repositorios con una empresa,
// un cliente, un empleado y un producto listos para facturar.
type billingFixture struct {
	invoiceRepo  *fakeInvoiceRepo
	estimateRepo *fakeEstimateRepo
	companyRepo  *fakeCompanyRepo
	customerRepo *fakeCustomerRepo
	employeeRepo *fakeEmployeeRepo
	productRepo  *fakeProductRepo
	txRunner     *fakeTxRunner

	invoiceUC  *billing.InvoiceUseCase
	estimateUC *billing.EstimateUseCase
}

const (
	fixtureCompanyID  = "company-1"
	fixtureCustomerID = "customer-1"
	fixtureEmployeeID = "employee-1"
	fixtureProductID  = "product-1"
)

func newBillingFixture() *billingFixture {
	f := &billingFixture{
		invoiceRepo:  newFakeInvoiceRepo(),
		estimateRepo: newFakeEstimateRepo(),
		companyRepo:  &fakeCompanyRepo{companies: make(map[string]*entity.Company)},
		customerRepo: &fakeCustomerRepo{customers: make(map[string]*entity.Customer)},
		employeeRepo: &fakeEmployeeRepo{employees: make(map[string]*entity.Employee)},
		productRepo:  &fakeProductRepo{products: make(map[string]*entity.Product)},
	}
	f.txRunner = &fakeTxRunner{invoiceRepo: f.invoiceRepo, estimateRepo: f.estimateRepo}

	f.companyRepo.companies[fixtureCompanyID] = &entity.Company{
		ID:            fixtureCompanyID,
		Name:          "Ferretería La Cumbre",
		IsTaxable:     true,
		TaxNumber:     "TAX-9001",
		Address:       "Av. Central 123",
		ContactNumber: "555-0100",
		Email:         "ventas@lacumbre.test",
	}
	f.customerRepo.customers[fixtureCustomerID] = &entity.Customer{
		ID:        fixtureCustomerID,
		CompanyID: fixtureCompanyID,
		Name:      "Comercial El Roble",
		IsActive:  true,
	}
	f.employeeRepo.employees[fixtureEmployeeID] = &entity.Employee{
		ID:       fixtureEmployeeID,
		Name:     "Laura Méndez",
		IsActive: true,
	}
	f.productRepo.products[fixtureProductID] = &entity.Product{
		ID:        fixtureProductID,
		CompanyID: fixtureCompanyID,
		SKU:       "SKU-001",
		Name:      "Silla ergonómica",
		UnitPrice: decimal.NewFromInt(100),
		IsActive:  true,
	}

	f.invoiceUC = billing.NewInvoiceUseCase(
		f.txRunner, f.customerRepo, f.employeeRepo, f.productRepo, f.invoiceRepo,
	)
	f.estimateUC = billing.NewEstimateUseCase(
		f.txRunner, f.customerRepo, f.employeeRepo, f.productRepo, f.estimateRepo, f.invoiceRepo,
	)
	return f
}
