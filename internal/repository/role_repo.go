package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"mockmate/internal/domain"
)

// RoleRepository define el contrato de persistencia para roles.
type RoleRepository interface {
	GetByID(ctx context.Context, id string) (domain.Role, error)
	GetByName(ctx context.Context, name string) (domain.Role, error)
}

// PgRoleRepository implementa RoleRepository usando pgxpool.
type PgRoleRepository struct {
	pool *pgxpool.Pool
}

func NewPgRoleRepository(pool *pgxpool.Pool) *PgRoleRepository {
	return &PgRoleRepository{pool: pool}
}

func (r *PgRoleRepository) GetByID(ctx context.Context, id string) (domain.Role, error) {
	const query = `
		SELECT id, name, COALESCE(description, '')
		FROM roles
		WHERE id = $1
	`
	var role domain.Role
	err := r.pool.QueryRow(ctx, query, id).Scan(&role.ID, &role.Name, &role.Description)
	return role, err
}

func (r *PgRoleRepository) GetByName(ctx context.Context, name string) (domain.Role, error) {
	const query = `
		SELECT id, name, COALESCE(description, '')
		FROM roles
		WHERE name = $1
	`
	var role domain.Role
	err := r.pool.QueryRow(ctx, query, name).Scan(&role.ID, &role.Name, &role.Description)
	return role, err
}
