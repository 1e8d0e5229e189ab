package repository

import "github.com/tu-usuario/factura-pyme/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	// Update reescribe la cabecera completa (totales, descuento, estado, pagos).
	Update(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetByNumber(companyID, number string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error)
	// DeleteItemsByInvoiceID borra las líneas para reescribirlas en una edición.
	DeleteItemsByInvoiceID(invoiceID string) error
	Delete(id string) error
}
