package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/factura-pyme/internal/application/billing"
	"github.com/tu-usuario/factura-pyme/internal/domain"
)

type capturingPDFGenerator struct {
	captured billing.InvoicePDFData
}

func (g *capturingPDFGenerator) Generate(data billing.InvoicePDFData) ([]byte, error) {
	g.captured = data
	return []byte("%PDF-1.7"), nil
}

func TestInvoicePDF_ArmaDatosFormateados(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.invoiceUC.Create(ctx, fixtureCompanyID, validCreateRequest())
	require.NoError(t, err)

	gen := &capturingPDFGenerator{}
	uc := billing.NewInvoicePDFUseCase(f.invoiceRepo, f.customerRepo, f.companyRepo, gen)

	out, err := uc.Generate(ctx, fixtureCompanyID, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	data := gen.captured
	assert.Equal(t, "Ferretería La Cumbre", data.CompanyName)
	assert.Equal(t, "TAX-9001", data.TaxNumber)
	assert.Equal(t, "Comercial El Roble", data.CustomerName)
	assert.Equal(t, created.InvoiceNumber, data.InvoiceNumber)
	assert.Equal(t, "2026-08-01", data.InvoiceDate)
	// montos ya formateados con la moneda del sistema
	assert.Equal(t, "Rs. 200.00", data.Subtotal)
	assert.Equal(t, "Rs. 30.00", data.TaxAmount)
	assert.Equal(t, "Rs. 230.00", data.TotalAmount)
	require.Len(t, data.Lines, 1)
	assert.Equal(t, "Silla ergonómica", data.Lines[0].ProductName)
	assert.Equal(t, "15%", data.Lines[0].TaxRate)
	assert.Equal(t, "Rs. 200.00", data.Lines[0].TotalPrice)
}

func TestInvoicePDF_FacturaAjena(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.invoiceUC.Create(ctx, fixtureCompanyID, validCreateRequest())
	require.NoError(t, err)

	uc := billing.NewInvoicePDFUseCase(f.invoiceRepo, f.customerRepo, f.companyRepo, &capturingPDFGenerator{})
	_, err = uc.Generate(ctx, "otra-empresa", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
