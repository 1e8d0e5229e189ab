package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/pricing"
)

func validEstimateRequest() dto.CreateEstimateRequest {
	return dto.CreateEstimateRequest{
		CustomerID:   fixtureCustomerID,
		EstimateDate: "2026-08-01",
		ExpiryDate:   "2026-08-15",
		Items: []dto.DocumentItemRequest{
			{ProductID: fixtureProductID, Quantity: dec("2"), UnitPrice: dec("100"), TaxRate: dec("15")},
		},
	}
}

func TestEstimateCreate_TotalesYEstadoInicial(t *testing.T) {
	f := newBillingFixture()
	resp, err := f.estimateUC.Create(context.Background(), fixtureCompanyID, validEstimateRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.EstimateStatusPending, resp.Status)
	assert.Regexp(t, `^EST-\d+$`, resp.EstimateNumber)
	assertDec(t, "200.00", resp.Subtotal)
	assertDec(t, "30.00", resp.TaxAmount)
	assertDec(t, "230.00", resp.TotalAmount)
	require.Len(t, resp.Items, 1)
	assertDec(t, "85.00", resp.Items[0].ActualUnitPrice)
}

func TestEstimateUpdate_RechazaAceptadaOCerrada(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.estimateUC.Create(ctx, fixtureCompanyID, validEstimateRequest())
	require.NoError(t, err)

	_, err = f.estimateUC.UpdateStatus(ctx, fixtureCompanyID, created.ID, entity.EstimateStatusAccepted)
	require.NoError(t, err)

	_, err = f.estimateUC.Update(ctx, fixtureCompanyID, created.ID, validEstimateRequest())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestEstimateUpdate_RecalculaTotales(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.estimateUC.Create(ctx, fixtureCompanyID, validEstimateRequest())
	require.NoError(t, err)

	in := validEstimateRequest()
	in.Items[0].Quantity = dec("4")
	in.DiscountType = pricing.DiscountFixed
	in.DiscountValue = dec("50")
	updated, err := f.estimateUC.Update(ctx, fixtureCompanyID, created.ID, in)
	require.NoError(t, err)

	// 4 × 100 @ 15% → subtotal 400, tax 60, descuento fijo 50 → 410
	assertDec(t, "400.00", updated.Subtotal)
	assertDec(t, "60.00", updated.TaxAmount)
	assertDec(t, "50.00", updated.DiscountAmount)
	assertDec(t, "410.00", updated.TotalAmount)
}

func TestEstimateUpdateStatus_Transiciones(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.estimateUC.Create(ctx, fixtureCompanyID, validEstimateRequest())
	require.NoError(t, err)

	// pending → declined → pending es legal; declined → closed no
	declined, err := f.estimateUC.UpdateStatus(ctx, fixtureCompanyID, created.ID, entity.EstimateStatusDeclined)
	require.NoError(t, err)
	assert.Equal(t, entity.EstimateStatusDeclined, declined.Status)

	_, err = f.estimateUC.UpdateStatus(ctx, fixtureCompanyID, created.ID, entity.EstimateStatusClosed)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.estimateUC.UpdateStatus(ctx, fixtureCompanyID, created.ID, entity.EstimateStatusPending)
	require.NoError(t, err)
}

func TestEstimateConvert_SoloAceptadas(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.estimateUC.Create(ctx, fixtureCompanyID, validEstimateRequest())
	require.NoError(t, err)

	_, err = f.estimateUC.ConvertToInvoice(ctx, fixtureCompanyID, created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestEstimateConvert_CreaFacturaYCierraCotizacion(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	in := validEstimateRequest()
	in.DiscountType = pricing.DiscountPercentage
	in.DiscountValue = dec("10")
	created, err := f.estimateUC.Create(ctx, fixtureCompanyID, in)
	require.NoError(t, err)
	_, err = f.estimateUC.UpdateStatus(ctx, fixtureCompanyID, created.ID, entity.EstimateStatusAccepted)
	require.NoError(t, err)

	inv, err := f.estimateUC.ConvertToInvoice(ctx, fixtureCompanyID, created.ID)
	require.NoError(t, err)

	// mismos centavos que la cotización: 200 − 20 + 30
	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	assert.Equal(t, created.ID, inv.EstimateID)
	assertDec(t, "200.00", inv.Subtotal)
	assertDec(t, "20.00", inv.DiscountAmount)
	assertDec(t, "30.00", inv.TaxAmount)
	assertDec(t, "210.00", inv.TotalAmount)
	assertDec(t, "0", inv.PaidAmount)
	assertDec(t, "210.00", inv.BalanceDue)
	require.Len(t, inv.Items, 1)
	assertDec(t, "85.00", inv.Items[0].ActualUnitPrice)

	// la cotización queda cerrada y enlazada
	est, err := f.estimateUC.Get(ctx, fixtureCompanyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstimateStatusClosed, est.Status)
	assert.Equal(t, inv.ID, est.InvoiceID)

	// la factura quedó realmente persistida
	persisted, err := f.invoiceUC.Get(ctx, fixtureCompanyID, inv.ID)
	require.NoError(t, err)
	assertDec(t, "210.00", persisted.TotalAmount)
}

func TestEstimateDelete_RechazaConvertida(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.estimateUC.Create(ctx, fixtureCompanyID, validEstimateRequest())
	require.NoError(t, err)
	_, err = f.estimateUC.UpdateStatus(ctx, fixtureCompanyID, created.ID, entity.EstimateStatusAccepted)
	require.NoError(t, err)
	_, err = f.estimateUC.ConvertToInvoice(ctx, fixtureCompanyID, created.ID)
	require.NoError(t, err)

	err = f.estimateUC.Delete(ctx, fixtureCompanyID, created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestEstimateDelete_EliminaPendiente(t *testing.T) {
	f := newBillingFixture()
	ctx := context.Background()
	created, err := f.estimateUC.Create(ctx, fixtureCompanyID, validEstimateRequest())
	require.NoError(t, err)

	require.NoError(t, f.estimateUC.Delete(ctx, fixtureCompanyID, created.ID))
	_, err = f.estimateUC.Get(ctx, fixtureCompanyID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
