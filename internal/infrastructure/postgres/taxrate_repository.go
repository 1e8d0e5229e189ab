package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

var _ repository.TaxRateRepository = (*TaxRateRepo)(nil)

// TaxRateRepo implementación de TaxRateRepository sobre PostgreSQL.
type TaxRateRepo struct {
	q Querier
}

// NewTaxRateRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTaxRateRepository(q Querier) *TaxRateRepo {
	return &TaxRateRepo{q: q}
}

// Create persiste una tasa de impuesto.
func (r *TaxRateRepo) Create(rate *entity.TaxRate) error {
	query := `
		INSERT INTO tax_rates (id, company_id, name, rate, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		rate.ID, rate.CompanyID, rate.Name, rate.Rate, rate.IsDefault, rate.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tax rate: %w", err)
	}
	return nil
}

// ListByCompany devuelve las tasas de una empresa.
func (r *TaxRateRepo) ListByCompany(companyID string) ([]*entity.TaxRate, error) {
	query := `
		SELECT id, company_id, name, rate, is_default, created_at
		FROM tax_rates WHERE company_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list tax rates: %w", err)
	}
	defer rows.Close()

	var list []*entity.TaxRate
	for rows.Next() {
		var t entity.TaxRate
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Rate, &t.IsDefault, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tax rate: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// GetDefault devuelve la tasa marcada is_default, o nil si no hay.
func (r *TaxRateRepo) GetDefault(companyID string) (*entity.TaxRate, error) {
	query := `
		SELECT id, company_id, name, rate, is_default, created_at
		FROM tax_rates WHERE company_id = $1 AND is_default = true LIMIT 1`
	var t entity.TaxRate
	err := r.q.QueryRow(context.Background(), query, companyID).Scan(
		&t.ID, &t.CompanyID, &t.Name, &t.Rate, &t.IsDefault, &t.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get default tax rate: %w", err)
	}
	return &t, nil
}

// Update actualiza una tasa existente.
func (r *TaxRateRepo) Update(rate *entity.TaxRate) error {
	query := `UPDATE tax_rates SET name = $2, rate = $3, is_default = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, rate.ID, rate.Name, rate.Rate, rate.IsDefault)
	if err != nil {
		return fmt.Errorf("update tax rate: %w", err)
	}
	return nil
}

// Delete elimina una tasa por ID.
func (r *TaxRateRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM tax_rates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tax rate: %w", err)
	}
	return nil
}

// DeleteByCompany elimina todas las tasas de una empresa (cascada manual).
func (r *TaxRateRepo) DeleteByCompany(companyID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM tax_rates WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("delete tax rates by company: %w", err)
	}
	return nil
}
