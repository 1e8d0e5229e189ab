package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/pricing"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, customer_id, employee_id, estimate_id,
	invoice_number, invoice_date, due_date, discount_type, discount_value,
	subtotal, tax_amount, discount_amount, total_amount, paid_amount, balance_due,
	status, notes, terms, shipping_address, billing_address, ship_via,
	shipping_date, tracking_number, created_at, updated_at`

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CompanyID, inv.CustomerID, nullIfEmpty(inv.EmployeeID), nullIfEmpty(inv.EstimateID),
		inv.InvoiceNumber, inv.InvoiceDate, inv.DueDate, string(inv.DiscountType), inv.DiscountValue,
		inv.Subtotal, inv.TaxAmount, inv.DiscountAmount, inv.TotalAmount, inv.PaidAmount, inv.BalanceDue,
		inv.Status, inv.Notes, inv.Terms, inv.ShippingAddress, inv.BillingAddress, inv.ShipVia,
		inv.ShippingDate, inv.TrackingNumber, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de factura con sus campos derivados.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (id, invoice_id, product_id, product_name, description,
			quantity, unit_price, actual_unit_price, tax_rate, tax_amount, total_price,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, nullIfEmpty(item.ProductID), item.ProductName, item.Description,
		item.Quantity, item.UnitPrice, item.ActualUnitPrice, item.TaxRate, item.TaxAmount,
		item.TotalPrice, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

func scanInvoice(row interface{ Scan(...any) error }) (*entity.Invoice, error) {
	var inv entity.Invoice
	var employeeID, estimateID *string
	var discountType string
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &employeeID, &estimateID,
		&inv.InvoiceNumber, &inv.InvoiceDate, &inv.DueDate, &discountType, &inv.DiscountValue,
		&inv.Subtotal, &inv.TaxAmount, &inv.DiscountAmount, &inv.TotalAmount, &inv.PaidAmount, &inv.BalanceDue,
		&inv.Status, &inv.Notes, &inv.Terms, &inv.ShippingAddress, &inv.BillingAddress, &inv.ShipVia,
		&inv.ShippingDate, &inv.TrackingNumber, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.EmployeeID = orEmpty(employeeID)
	inv.EstimateID = orEmpty(estimateID)
	inv.DiscountType = pricing.DiscountType(discountType)
	return &inv, nil
}

// GetByID obtiene la cabecera de una factura.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByNumber obtiene una factura por número dentro de una empresa.
func (r *InvoiceRepo) GetByNumber(companyID, number string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 AND invoice_number = $2`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, companyID, number))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by number: %w", err)
	}
	return inv, nil
}

// GetItemsByInvoiceID devuelve las líneas de una factura.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, product_id, product_name, description, quantity,
			unit_price, actual_unit_price, tax_rate, tax_amount, total_price,
			created_at, updated_at
		FROM invoice_items WHERE invoice_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		var productID *string
		if err := rows.Scan(&it.ID, &it.InvoiceID, &productID, &it.ProductName, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.ActualUnitPrice, &it.TaxRate, &it.TaxAmount,
			&it.TotalPrice, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		it.ProductID = orEmpty(productID)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByCompany devuelve las cabeceras de factura de una empresa con paginación.
func (r *InvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Update reescribe la cabecera completa.
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET customer_id = $2, employee_id = $3, invoice_number = $4,
			invoice_date = $5, due_date = $6, discount_type = $7, discount_value = $8,
			subtotal = $9, tax_amount = $10, discount_amount = $11, total_amount = $12,
			paid_amount = $13, balance_due = $14, status = $15, notes = $16, terms = $17,
			shipping_address = $18, billing_address = $19, ship_via = $20,
			shipping_date = $21, tracking_number = $22, updated_at = $23
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CustomerID, nullIfEmpty(inv.EmployeeID), inv.InvoiceNumber,
		inv.InvoiceDate, inv.DueDate, string(inv.DiscountType), inv.DiscountValue,
		inv.Subtotal, inv.TaxAmount, inv.DiscountAmount, inv.TotalAmount,
		inv.PaidAmount, inv.BalanceDue, inv.Status, inv.Notes, inv.Terms,
		inv.ShippingAddress, inv.BillingAddress, inv.ShipVia,
		inv.ShippingDate, inv.TrackingNumber, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// DeleteItemsByInvoiceID borra las líneas para reescribirlas en una edición.
func (r *InvoiceRepo) DeleteItemsByInvoiceID(invoiceID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// Delete elimina una factura por ID.
func (r *InvoiceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}
