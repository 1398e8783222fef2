package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mockmate/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
// GetByEmail con includeDeleted=false filtra cuentas con borrado lógico.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string, includeDeleted bool) (domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `
	u.id, u.role_id, u.full_name, u.email, u.password_hash,
	COALESCE(u.avatar_url, ''), COALESCE(u.phone_number, ''),
	COALESCE(u.cv_url, ''), COALESCE(u.cv_extracted_text, ''),
	COALESCE(u.experience_years, 0), COALESCE(u.is_deleted, false), u.created_at,
	r.id, COALESCE(r.name, ''), COALESCE(r.description, '')
`

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, role_id, full_name, email, password_hash, avatar_url, is_deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.RoleID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.AvatarURL,
		user.IsDeleted,
		user.CreatedAt,
	)
	return err
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string, includeDeleted bool) (domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1
	`
	if !includeDeleted {
		query += ` AND COALESCE(u.is_deleted, false) = false`
	}
	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

func (r *PgUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgUserRepository) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	const query = `UPDATE users SET avatar_url = NULLIF($2, '') WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, avatarURL)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgUserRepository) scanUser(row pgx.Row) (domain.User, error) {
	var (
		u        domain.User
		roleID   *string
		roleName string
		roleDesc string
	)
	err := row.Scan(
		&u.ID,
		&u.RoleID,
		&u.FullName,
		&u.Email,
		&u.PasswordHash,
		&u.AvatarURL,
		&u.PhoneNumber,
		&u.CvURL,
		&u.CvExtractedText,
		&u.ExperienceYears,
		&u.IsDeleted,
		&u.CreatedAt,
		&roleID,
		&roleName,
		&roleDesc,
	)
	if err != nil {
		return domain.User{}, err
	}
	if roleID != nil {
		u.Role = &domain.Role{ID: *roleID, Name: roleName, Description: roleDesc}
	}
	return u, nil
}
