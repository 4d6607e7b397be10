package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL profile repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves a profile by user ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT user_id, display_name, avatar_url, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var user User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.DisplayName,
		&user.AvatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// Create creates a new profile.
func (r *PostgresRepository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO user_profiles (user_id, display_name, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.DisplayName,
		user.AvatarURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// Update updates an existing profile.
func (r *PostgresRepository) Update(ctx context.Context, user *User) error {
	query := `
		UPDATE user_profiles
		SET display_name = $1, avatar_url = $2, updated_at = $3
		WHERE user_id = $4
	`

	tag, err := r.pool.Exec(ctx, query,
		user.DisplayName,
		user.AvatarURL,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete deletes a profile.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM user_profiles WHERE user_id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	return err
}
