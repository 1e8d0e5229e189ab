package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

// VendorRepo implementación de VendorRepository sobre PostgreSQL.
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

const vendorColumns = `id, company_id, name, vendor_company_name, email, phone, address,
	city, state, zip_code, country, tax_number, website, terms, account_number,
	balance, billing_rate, is_active, created_at, updated_at`

// Create persiste un proveedor.
func (r *VendorRepo) Create(v *entity.Vendor) error {
	query := `
		INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.CompanyID, v.Name, v.VendorCompany, v.Email, v.Phone, v.Address,
		v.City, v.State, v.ZipCode, v.Country, nullIfEmpty(v.TaxNumber), v.Website,
		v.Terms, v.AccountNumber, v.Balance, v.BillingRate, v.IsActive,
		v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

func scanVendor(row interface{ Scan(...any) error }) (*entity.Vendor, error) {
	var v entity.Vendor
	var taxNumber *string
	err := row.Scan(
		&v.ID, &v.CompanyID, &v.Name, &v.VendorCompany, &v.Email, &v.Phone, &v.Address,
		&v.City, &v.State, &v.ZipCode, &v.Country, &taxNumber, &v.Website,
		&v.Terms, &v.AccountNumber, &v.Balance, &v.BillingRate, &v.IsActive,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.TaxNumber = orEmpty(taxNumber)
	return &v, nil
}

// GetByID obtiene un proveedor por ID.
func (r *VendorRepo) GetByID(id string) (*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	v, err := scanVendor(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

// ListByCompany devuelve los proveedores de una empresa con paginación.
func (r *VendorRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var list []*entity.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Update actualiza un proveedor existente.
func (r *VendorRepo) Update(v *entity.Vendor) error {
	query := `
		UPDATE vendors SET name = $2, vendor_company_name = $3, email = $4, phone = $5,
			address = $6, city = $7, state = $8, zip_code = $9, country = $10,
			tax_number = $11, website = $12, terms = $13, account_number = $14,
			balance = $15, billing_rate = $16, is_active = $17, updated_at = $18
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.Name, v.VendorCompany, v.Email, v.Phone,
		v.Address, v.City, v.State, v.ZipCode, v.Country,
		nullIfEmpty(v.TaxNumber), v.Website, v.Terms, v.AccountNumber,
		v.Balance, v.BillingRate, v.IsActive, v.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	return nil
}

// Delete elimina un proveedor por ID.
func (r *VendorRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	return nil
}
