package sqlite

import (
	"context"
	"database/sql"
	"time"

	"home-ledger/internal/domain"
	"home-ledger/internal/repository"
)

const userColumns = `id, name, email, password_hash, avatar, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := storedTime(time.Now())
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (`+userColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Avatar,
		toMillis(user.CreatedAt),
		toMillis(user.UpdatedAt),
	)
	if err != nil {
		return classify("insert user", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE email = ?`,
		email,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = storedTime(time.Now())
	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET name = ?, email = ?, password_hash = ?, updated_at = ?
WHERE id = ?`,
		user.Name,
		user.Email,
		user.PasswordHash,
		toMillis(user.UpdatedAt),
		user.ID,
	)
	if err != nil {
		return classify("update user", err)
	}
	return expectOne("update user", res)
}

func (r *UserRepository) SetAvatar(ctx context.Context, id, avatar string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET avatar = ?, updated_at = ?
WHERE id = ?`,
		avatar,
		toMillis(time.Now()),
		id,
	)
	if err != nil {
		return classify("update user avatar", err)
	}
	return expectOne("update user avatar", res)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return classify("delete user", err)
	}
	return expectOne("delete user", res)
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user             domain.User
		created, updated int64
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Avatar,
		&created,
		&updated,
	); err != nil {
		return nil, classify("scan user", err)
	}
	user.CreatedAt = fromMillis(created)
	user.UpdatedAt = fromMillis(updated)
	return &user, nil
}
