package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertDec(t *testing.T, expected string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(expected).Equal(got), "esperado %s, obtenido %s %v", expected, got, msgAndArgs)
}

func validCreateRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CustomerID:  fixtureCustomerID,
		EmployeeID:  fixtureEmployeeID,
		InvoiceDate: "2026-08-01",
		DueDate:     "2026-08-31",
		Items: []dto.DocumentItemRequest{
			{ProductID: fixtureProductID, Quantity: dec("2"), UnitPrice: dec("100"), TaxRate: dec("15")},
		},
	}
}

func TestInvoiceCreate_TotalesRecalculados(t *testing.T) {
	f := newBillingFixture()
	in := validCreateRequest()
	in.DiscountType = pricing.DiscountPercentage
	in.DiscountValue = dec("10")
	in.Items = append(in.Items, dto.DocumentItemRequest{
		Description: "Flete", Quantity: dec("1"), UnitPrice: dec("29.98"), TaxRate: dec("5"),
	})

	resp, err := f.invoiceUC.Create(context.Background(), fixtureCompanyID, in)
	require.NoError(t, err)

	// línea 1: 2 × 100 @ 15% → tax 30.00; línea 2: 1 × 29.98 @ 5% → tax 1.50
	assertDec(t, "229.98", resp.Subtotal)
	assertDec(t, "31.50", resp.TaxAmount)
	assertDec(t, "23.00", resp.DiscountAmount) // 10% de 229.98
	assertDec(t, "238.48", resp.TotalAmount)
	assertDec(t, "0", resp.PaidAmount)
	assertDec(t, "238.48", resp.BalanceDue)
	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status)
	assert.Equal(t, "Comercial El Roble", resp.CustomerName)
	require.Len(t, resp.Items, 2)
	assertDec(t, "30.00", resp.Items[0].TaxAmount)
	assertDec(t, "85.00", resp.Items[0].ActualUnitPrice)
	assertDec(t, "200.00", resp.Items[0].TotalPrice)
}

func TestInvoiceCreate_IgnoraDerivadosDelCliente(t *testing.T) {
	f := newBillingFixture()
	in := validCreateRequest()
	// el cliente manda derivados inventados; el servidor los descarta
	in.Items[0].TaxAmount = dec("999")
	in.Items[0].ActualUnitPrice = dec("1")
	in.Items[0].TotalPrice = dec("123456")

	resp, err := f.invoiceUC.Create(context.Background(), fixtureCompanyID, in)
	require.NoError(t, err)
	assertDec(t, "30.00", resp.Items[0].TaxAmount)
	assertDec(t, "85.00", resp.Items[0].ActualUnitPrice)
	assertDec(t, "200.00", resp.Items[0].TotalPrice)
}

func TestInvoiceCreate_PrecargaPrecioDelProducto(t *testing.T) {
	f := newBillingFixture()
	in := validCreateRequest()
	in.Items[0].UnitPrice = decimal.Zero // sin precio: usa el de lista (100)
	in.Items[0].Quantity = dec("3")

	resp, err := f.invoiceUC.Create(context.Background(), fixtureCompanyID, in)
	require.NoError(t, err)
	assertDec(t, "300.00", resp.Subtotal)
	assert.Equal(t, "Silla ergonómica", resp.Items[0].ProductName)
}

func TestInvoiceCreate_GeneraNumeroSiFalta(t *testing.T) {
	f := newBillingFixture()
	resp, err := f.invoiceUC.Create(context.Background(), fixtureCompanyID, validCreateRequest())
	require.NoError(t, err)
	assert.Regexp(t, `^INV-\d+$`, resp.InvoiceNumber)
}

func TestInvoiceCreate_NumeroDuplicado(t *testing.T) {
	f := newBillingFixture()
	in := validCreateRequest()
	in.InvoiceNumber = "INV-0001"
	_, err := f.invoiceUC.Create(context.Background(), fixtureCompanyID, in)
	require.NoError(t, err)

	_, err = f.invoiceUC.Create(context.Background(), fixtureCompanyID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestInvoiceCreate_Validaciones(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()

	casos := []struct {
		nombre string
		mutar  func(*dto.CreateInvoiceRequest)
		esp    error
	}{
		{"sin cliente", func(in *dto.CreateInvoiceRequest) { in.CustomerID = "" }, domain.ErrInvalidInput},
		{"cliente inexistente", func(in *dto.CreateInvoiceRequest) { in.CustomerID = "nope" }, domain.ErrNotFound},
		{"sin fecha de factura", func(in *dto.CreateInvoiceRequest) { in.InvoiceDate = "" }, domain.ErrInvalidInput},
		{"sin fecha de vencimiento", func(in *dto.CreateInvoiceRequest) { in.DueDate = "" }, domain.ErrInvalidInput},
		{"sin líneas", func(in *dto.CreateInvoiceRequest) { in.Items = nil }, domain.ErrInvalidInput},
		{"cantidad negativa", func(in *dto.CreateInvoiceRequest) { in.Items[0].Quantity = dec("-1") }, domain.ErrInvalidInput},
		{"tasa negativa", func(in *dto.CreateInvoiceRequest) { in.Items[0].TaxRate = dec("-5") }, domain.ErrInvalidInput},
		{"descuento negativo", func(in *dto.CreateInvoiceRequest) { in.DiscountValue = dec("-10") }, domain.ErrInvalidInput},
		{"tipo de descuento desconocido", func(in *dto.CreateInvoiceRequest) { in.DiscountType = "half-off" }, domain.ErrInvalidInput},
		{"producto inexistente", func(in *dto.CreateInvoiceRequest) { in.Items[0].ProductID = "nope" }, domain.ErrNotFound},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			in := validCreateRequest()
			c.mutar(&in)
			_, err := f.invoiceUC.Create(ctx, fixtureCompanyID, in)
			assert.ErrorIs(t, err, c.esp)
		})
	}
}

func TestInvoiceCreate_ClienteDeOtraEmpresa(t *testing.T) {
	f := newBillingFixture()
	f.customerRepo.customers["ajeno"] = &entity.Customer{ID: "ajeno", CompanyID: "otra-empresa", Name: "Ajeno"}
	in := validCreateRequest()
	in.CustomerID = "ajeno"
	_, err := f.invoiceUC.Create(context.Background(), fixtureCompanyID, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInvoiceUpdate_PreservaPagosYRecalculaSaldo(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.invoiceUC.Create(ctx, fixtureCompanyID, validCreateRequest())
	require.NoError(t, err)

	// cobra un pago parcial antes de editar
	_, err = f.invoiceUC.UpdateStatus(ctx, fixtureCompanyID, created.ID, entity.InvoiceStatusSent)
	require.NoError(t, err)
	paid, err := f.invoiceUC.RecordPayment(ctx, fixtureCompanyID, created.ID, dto.RecordPaymentRequest{Amount: dec("50")})
	require.NoError(t, err)
	assertDec(t, "50", paid.PaidAmount)

	in := validCreateRequest()
	in.Items[0].Quantity = dec("3") // 3 × 100 @ 15% → total 345.00
	updated, err := f.invoiceUC.Update(ctx, fixtureCompanyID, created.ID, in)
	require.NoError(t, err)

	assertDec(t, "345.00", updated.TotalAmount)
	assertDec(t, "50", updated.PaidAmount)
	assertDec(t, "295.00", updated.BalanceDue)
	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, updated.Status)
	require.Len(t, updated.Items, 1)
	assertDec(t, "300.00", updated.Items[0].TotalPrice)
}

func TestInvoiceRecordPayment_Transiciones(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.invoiceUC.Create(ctx, fixtureCompanyID, validCreateRequest())
	require.NoError(t, err)
	// total 230.00 (2 × 100 @ 15%, sin descuento)
	assertDec(t, "230.00", created.TotalAmount)

	// un borrador no recibe pagos
	_, err = f.invoiceUC.RecordPayment(ctx, fixtureCompanyID, created.ID, dto.RecordPaymentRequest{Amount: dec("10")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.invoiceUC.UpdateStatus(ctx, fixtureCompanyID, created.ID, entity.InvoiceStatusSent)
	require.NoError(t, err)

	// monto no positivo
	_, err = f.invoiceUC.RecordPayment(ctx, fixtureCompanyID, created.ID, dto.RecordPaymentRequest{Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	parcial, err := f.invoiceUC.RecordPayment(ctx, fixtureCompanyID, created.ID, dto.RecordPaymentRequest{Amount: dec("100")})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, parcial.Status)
	assertDec(t, "130.00", parcial.BalanceDue)

	total, err := f.invoiceUC.RecordPayment(ctx, fixtureCompanyID, created.ID, dto.RecordPaymentRequest{Amount: dec("130")})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, total.Status)
	assertDec(t, "0.00", total.BalanceDue)
}

func TestInvoiceUpdateStatus_TransicionIlegal(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.invoiceUC.Create(ctx, fixtureCompanyID, validCreateRequest())
	require.NoError(t, err)

	_, err = f.invoiceUC.UpdateStatus(ctx, fixtureCompanyID, created.ID, entity.InvoiceStatusPaid)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestInvoiceGet_AislamientoPorEmpresa(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.invoiceUC.Create(ctx, fixtureCompanyID, validCreateRequest())
	require.NoError(t, err)

	_, err = f.invoiceUC.Get(ctx, "otra-empresa", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.invoiceUC.Get(ctx, fixtureCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceDelete_EliminaFacturaYLineas(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.invoiceUC.Create(ctx, fixtureCompanyID, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, f.invoiceUC.Delete(ctx, fixtureCompanyID, created.ID))

	_, err = f.invoiceUC.Get(ctx, fixtureCompanyID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	items, _ := f.invoiceRepo.GetItemsByInvoiceID(created.ID)
	assert.Empty(t, items)
}

func TestInvoiceList_SoloDeLaEmpresa(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	_, err := f.invoiceUC.Create(ctx, fixtureCompanyID, validCreateRequest())
	require.NoError(t, err)

	propias, err := f.invoiceUC.List(ctx, fixtureCompanyID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, propias, 1)

	ajenas, err := f.invoiceUC.List(ctx, "otra-empresa", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, ajenas)
}
