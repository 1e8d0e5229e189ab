package billing

import (
	"context"

	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye
// los repos de facturación. Cabecera y líneas de un documento se escriben
// siempre en la misma transacción; la conversión cotización → factura
// también (atomicidad).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		estimateRepo repository.EstimateRepository,
	) error) error
}
