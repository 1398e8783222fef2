package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mockmate/internal/domain"
)

// CatalogRepository expone el catálogo de categorías y posiciones activas.
type CatalogRepository interface {
	ListActiveCategories(ctx context.Context) ([]domain.JobCategory, error)
	ListActivePositions(ctx context.Context, categoryID string) ([]domain.JobPosition, error)
}

// PgCatalogRepository implementa CatalogRepository usando pgxpool.
type PgCatalogRepository struct {
	pool *pgxpool.Pool
}

func NewPgCatalogRepository(pool *pgxpool.Pool) *PgCatalogRepository {
	return &PgCatalogRepository{pool: pool}
}

func (r *PgCatalogRepository) ListActiveCategories(ctx context.Context) ([]domain.JobCategory, error) {
	const query = `
		SELECT id, name, COALESCE(description, ''), is_active
		FROM job_categories
		WHERE is_active = true
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.JobCategory
	for rows.Next() {
		var c domain.JobCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PgCatalogRepository) ListActivePositions(ctx context.Context, categoryID string) ([]domain.JobPosition, error) {
	const query = `
		SELECT id, category_id, title, is_active
		FROM job_positions
		WHERE category_id = $1 AND is_active = true
		ORDER BY title
	`
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []domain.JobPosition
	for rows.Next() {
		var p domain.JobPosition
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Title, &p.IsActive); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}
