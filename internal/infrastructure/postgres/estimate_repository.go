package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/pricing"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

var _ repository.EstimateRepository = (*EstimateRepo)(nil)

// EstimateRepo implementación de EstimateRepository (usable con pool o tx).
type EstimateRepo struct {
	q Querier
}

// NewEstimateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEstimateRepository(q Querier) *EstimateRepo {
	return &EstimateRepo{q: q}
}

const estimateColumns = `id, company_id, customer_id, employee_id, estimate_number,
	estimate_date, expiry_date, discount_type, discount_value,
	subtotal, tax_amount, discount_amount, total_amount, status, invoice_id, is_active,
	notes, terms, shipping_address, billing_address, ship_via,
	shipping_date, tracking_number, created_at, updated_at`

// Create persiste la cabecera de la cotización.
func (r *EstimateRepo) Create(est *entity.Estimate) error {
	query := `
		INSERT INTO estimates (` + estimateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	var expiry any
	if !est.ExpiryDate.IsZero() {
		expiry = est.ExpiryDate
	}
	_, err := r.q.Exec(context.Background(), query,
		est.ID, est.CompanyID, est.CustomerID, nullIfEmpty(est.EmployeeID), est.EstimateNumber,
		est.EstimateDate, expiry, string(est.DiscountType), est.DiscountValue,
		est.Subtotal, est.TaxAmount, est.DiscountAmount, est.TotalAmount,
		est.Status, nullIfEmpty(est.InvoiceID), est.IsActive,
		est.Notes, est.Terms, est.ShippingAddress, est.BillingAddress, est.ShipVia,
		est.ShippingDate, est.TrackingNumber, est.CreatedAt, est.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert estimate: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de cotización.
func (r *EstimateRepo) CreateItem(item *entity.EstimateItem) error {
	query := `
		INSERT INTO estimate_items (id, estimate_id, product_id, product_name, description,
			quantity, unit_price, actual_unit_price, tax_rate, tax_amount, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.EstimateID, nullIfEmpty(item.ProductID), item.ProductName, item.Description,
		item.Quantity, item.UnitPrice, item.ActualUnitPrice, item.TaxRate, item.TaxAmount,
		item.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert estimate item: %w", err)
	}
	return nil
}

func scanEstimate(row interface{ Scan(...any) error }) (*entity.Estimate, error) {
	var est entity.Estimate
	var employeeID, invoiceID *string
	var expiry *time.Time
	var discountType string
	err := row.Scan(
		&est.ID, &est.CompanyID, &est.CustomerID, &employeeID, &est.EstimateNumber,
		&est.EstimateDate, &expiry, &discountType, &est.DiscountValue,
		&est.Subtotal, &est.TaxAmount, &est.DiscountAmount, &est.TotalAmount,
		&est.Status, &invoiceID, &est.IsActive,
		&est.Notes, &est.Terms, &est.ShippingAddress, &est.BillingAddress, &est.ShipVia,
		&est.ShippingDate, &est.TrackingNumber, &est.CreatedAt, &est.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	est.EmployeeID = orEmpty(employeeID)
	est.InvoiceID = orEmpty(invoiceID)
	if expiry != nil {
		est.ExpiryDate = *expiry
	}
	est.DiscountType = pricing.DiscountType(discountType)
	return &est, nil
}

// GetByID obtiene la cabecera de una cotización.
func (r *EstimateRepo) GetByID(id string) (*entity.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE id = $1`
	est, err := scanEstimate(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estimate: %w", err)
	}
	return est, nil
}

// GetByNumber obtiene una cotización por número dentro de una empresa.
func (r *EstimateRepo) GetByNumber(companyID, number string) (*entity.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE company_id = $1 AND estimate_number = $2`
	est, err := scanEstimate(r.q.QueryRow(context.Background(), query, companyID, number))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estimate by number: %w", err)
	}
	return est, nil
}

// GetItemsByEstimateID devuelve las líneas de una cotización.
func (r *EstimateRepo) GetItemsByEstimateID(estimateID string) ([]*entity.EstimateItem, error) {
	query := `
		SELECT id, estimate_id, product_id, product_name, description, quantity,
			unit_price, actual_unit_price, tax_rate, tax_amount, total_price
		FROM estimate_items WHERE estimate_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, estimateID)
	if err != nil {
		return nil, fmt.Errorf("list estimate items: %w", err)
	}
	defer rows.Close()

	var list []*entity.EstimateItem
	for rows.Next() {
		var it entity.EstimateItem
		var productID *string
		if err := rows.Scan(&it.ID, &it.EstimateID, &productID, &it.ProductName, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.ActualUnitPrice, &it.TaxRate, &it.TaxAmount,
			&it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan estimate item: %w", err)
		}
		it.ProductID = orEmpty(productID)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByCompany devuelve las cabeceras de cotización de una empresa con paginación.
func (r *EstimateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	defer rows.Close()

	var list []*entity.Estimate
	for rows.Next() {
		est, err := scanEstimate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		list = append(list, est)
	}
	return list, rows.Err()
}

// Update reescribe la cabecera completa (incluye estado e invoice_id).
func (r *EstimateRepo) Update(est *entity.Estimate) error {
	query := `
		UPDATE estimates SET customer_id = $2, employee_id = $3, estimate_number = $4,
			estimate_date = $5, expiry_date = $6, discount_type = $7, discount_value = $8,
			subtotal = $9, tax_amount = $10, discount_amount = $11, total_amount = $12,
			status = $13, invoice_id = $14, is_active = $15, notes = $16, terms = $17,
			shipping_address = $18, billing_address = $19, ship_via = $20,
			shipping_date = $21, tracking_number = $22, updated_at = $23
		WHERE id = $1`
	var expiry any
	if !est.ExpiryDate.IsZero() {
		expiry = est.ExpiryDate
	}
	_, err := r.q.Exec(context.Background(), query,
		est.ID, est.CustomerID, nullIfEmpty(est.EmployeeID), est.EstimateNumber,
		est.EstimateDate, expiry, string(est.DiscountType), est.DiscountValue,
		est.Subtotal, est.TaxAmount, est.DiscountAmount, est.TotalAmount,
		est.Status, nullIfEmpty(est.InvoiceID), est.IsActive, est.Notes, est.Terms,
		est.ShippingAddress, est.BillingAddress, est.ShipVia,
		est.ShippingDate, est.TrackingNumber, est.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update estimate: %w", err)
	}
	return nil
}

// DeleteItemsByEstimateID borra las líneas para reescribirlas en una edición.
func (r *EstimateRepo) DeleteItemsByEstimateID(estimateID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM estimate_items WHERE estimate_id = $1`, estimateID)
	if err != nil {
		return fmt.Errorf("delete estimate items: %w", err)
	}
	return nil
}

// Delete elimina una cotización por ID.
func (r *EstimateRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM estimates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}
	return nil
}
