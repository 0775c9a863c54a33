package repository

import (
	"context"
	"fmt"

	"furniture-store/internal/data/entity"
	"furniture-store/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// UserRepository lookups only ever see active users.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateProfile(ctx context.Context, user *entity.User) error
	// Deactivate tombstones the user and empties their cart in one transaction.
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, username, email, password_hash, first_name, last_name,
		       phone, address, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.Address,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user. Unique violations come back as ErrDuplicateUsername
// or ErrDuplicateEmail.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, first_name, last_name,
		                   phone, address, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Address,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	switch uniqueViolation(err) {
	case "users_username_key":
		return ErrDuplicateUsername
	case "users_active_email_key":
		return ErrDuplicateEmail
	}

	if err != nil {
		r.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
		)
		return wrapErr(fmt.Sprintf("create user %s", user.Username), err)
	}

	return nil
}

func (r *userRepository) findOne(ctx context.Context, op, where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` AND is_active`

	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err), zap.Any("key", arg))
		return nil, wrapErr(op, err)
	}

	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "find user by id", "id = $1", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "find user by email", "email = $1", email)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findOne(ctx, "find user by username", "username = $1", username)
}

// UpdateProfile writes the mutable profile columns. Username and password are
// not touched here.
func (r *userRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, phone = $5,
		    address = $6, updated_at = $7
		WHERE id = $1 AND is_active
	`

	result, err := r.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Address,
		user.UpdatedAt,
	)

	if uniqueViolation(err) == "users_active_email_key" {
		return ErrDuplicateEmail
	}
	if err != nil {
		r.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return wrapErr(fmt.Sprintf("update user %s", user.ID), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return runInTx(ctx, r.db, "deactivate user", func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx,
			`UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active`, id)
		if err != nil {
			r.log.Error("Failed to deactivate user", zap.Error(err), zap.String("user_id", id.String()))
			return wrapErr("deactivate user", err)
		}
		if result.RowsAffected() == 0 {
			return ErrNotFound
		}

		// same lock item mutations take, so no add can slip in after the clear
		if _, err := tx.Exec(ctx, `SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, id); err != nil {
			return wrapErr("lock cart on deactivate", err)
		}

		_, err = tx.Exec(ctx,
			`DELETE FROM cart_items WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)`, id)
		if err != nil {
			r.log.Error("Failed to clear cart of deactivated user", zap.Error(err), zap.String("user_id", id.String()))
			return wrapErr("clear cart on deactivate", err)
		}

		r.log.Info("User deactivated", zap.String("user_id", id.String()))
		return nil
	})
}
