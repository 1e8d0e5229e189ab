package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, company_id, name, email, phone, is_taxable, tax_number,
	credit_limit, current_balance, opening_balance,
	billing_address, billing_city, billing_province, billing_postal_code, billing_country,
	shipping_same_as_billing,
	shipping_address, shipping_city, shipping_province, shipping_postal_code, shipping_country,
	primary_payment_method, terms, delivery_option, is_active, created_at, updated_at`

// Create persiste un cliente.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.CompanyID, c.Name, c.Email, c.Phone, c.IsTaxable, nullIfEmpty(c.TaxNumber),
		c.CreditLimit, c.CurrentBalance, c.OpeningBalance,
		c.Billing.Line, c.Billing.City, c.Billing.Province, c.Billing.PostalCode, c.Billing.Country,
		c.ShippingSameAsBilling,
		c.Shipping.Line, c.Shipping.City, c.Shipping.Province, c.Shipping.PostalCode, c.Shipping.Country,
		c.PaymentMethod, c.Terms, c.DeliveryOption, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func scanCustomer(row interface{ Scan(...any) error }) (*entity.Customer, error) {
	var c entity.Customer
	var taxNumber *string
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.IsTaxable, &taxNumber,
		&c.CreditLimit, &c.CurrentBalance, &c.OpeningBalance,
		&c.Billing.Line, &c.Billing.City, &c.Billing.Province, &c.Billing.PostalCode, &c.Billing.Country,
		&c.ShippingSameAsBilling,
		&c.Shipping.Line, &c.Shipping.City, &c.Shipping.Province, &c.Shipping.PostalCode, &c.Shipping.Country,
		&c.PaymentMethod, &c.Terms, &c.DeliveryOption, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.TaxNumber = orEmpty(taxNumber)
	return &c, nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// ListByCompany devuelve los clientes de una empresa con paginación.
func (r *CustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente existente.
func (r *CustomerRepo) Update(c *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, email = $3, phone = $4, is_taxable = $5, tax_number = $6,
			credit_limit = $7, current_balance = $8,
			billing_address = $9, billing_city = $10, billing_province = $11, billing_postal_code = $12, billing_country = $13,
			shipping_same_as_billing = $14,
			shipping_address = $15, shipping_city = $16, shipping_province = $17, shipping_postal_code = $18, shipping_country = $19,
			primary_payment_method = $20, terms = $21, delivery_option = $22, is_active = $23, updated_at = $24
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Email, c.Phone, c.IsTaxable, nullIfEmpty(c.TaxNumber),
		c.CreditLimit, c.CurrentBalance,
		c.Billing.Line, c.Billing.City, c.Billing.Province, c.Billing.PostalCode, c.Billing.Country,
		c.ShippingSameAsBilling,
		c.Shipping.Line, c.Shipping.City, c.Shipping.Province, c.Shipping.PostalCode, c.Shipping.Country,
		c.PaymentMethod, c.Terms, c.DeliveryOption, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
