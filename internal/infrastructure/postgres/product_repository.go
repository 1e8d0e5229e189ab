package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.ProductCategoryRepository = (*ProductCategoryRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, sku, name, description, category_id,
	preferred_vendor_id, added_employee_id, unit_price, cost_price,
	quantity_on_hand, reorder_level, is_active, created_at, updated_at`

// Create persiste un producto. El par (company_id, sku) es único.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, nullIfEmpty(p.SKU), p.Name, p.Description,
		nullIfEmpty(p.CategoryID), nullIfEmpty(p.PreferredVendorID), nullIfEmpty(p.AddedEmployeeID),
		p.UnitPrice, p.CostPrice, p.QuantityOnHand, p.ReorderLevel,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func scanProduct(row interface{ Scan(...any) error }) (*entity.Product, error) {
	var p entity.Product
	var sku, categoryID, vendorID, employeeID *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &sku, &p.Name, &p.Description,
		&categoryID, &vendorID, &employeeID,
		&p.UnitPrice, &p.CostPrice, &p.QuantityOnHand, &p.ReorderLevel,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.SKU = orEmpty(sku)
	p.CategoryID = orEmpty(categoryID)
	p.PreferredVendorID = orEmpty(vendorID)
	p.AddedEmployeeID = orEmpty(employeeID)
	return &p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCompanyAndSKU obtiene un producto por SKU dentro de una empresa.
func (r *ProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND sku = $2`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, companyID, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by SKU: %w", err)
	}
	return p, nil
}

// ListByCompany devuelve los productos de una empresa con paginación.
func (r *ProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, description = $4, category_id = $5,
			preferred_vendor_id = $6, unit_price = $7, cost_price = $8,
			quantity_on_hand = $9, reorder_level = $10, is_active = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, nullIfEmpty(p.SKU), p.Name, p.Description, nullIfEmpty(p.CategoryID),
		nullIfEmpty(p.PreferredVendorID), p.UnitPrice, p.CostPrice,
		p.QuantityOnHand, p.ReorderLevel, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// ProductCategoryRepo implementación de ProductCategoryRepository.
type ProductCategoryRepo struct {
	q Querier
}

// NewProductCategoryRepository construye el adaptador.
func NewProductCategoryRepository(q Querier) *ProductCategoryRepo {
	return &ProductCategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *ProductCategoryRepo) Create(c *entity.ProductCategory) error {
	query := `
		INSERT INTO product_categories (id, company_id, name, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.CompanyID, c.Name, c.IsActive, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *ProductCategoryRepo) GetByID(id string) (*entity.ProductCategory, error) {
	query := `SELECT id, company_id, name, is_active, created_at FROM product_categories WHERE id = $1`
	var c entity.ProductCategory
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product category: %w", err)
	}
	return &c, nil
}

// ListByCompany devuelve las categorías de una empresa.
func (r *ProductCategoryRepo) ListByCompany(companyID string) ([]*entity.ProductCategory, error) {
	query := `SELECT id, company_id, name, is_active, created_at FROM product_categories
		WHERE company_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list product categories: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductCategory
	for rows.Next() {
		var c entity.ProductCategory
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Delete elimina una categoría por ID.
func (r *ProductCategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product category: %w", err)
	}
	return nil
}
