package users

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const userCols = `id, email, name, profile_image, password_hash, registered, created_at`

// UpsertOTP simpan OTP registrasi untuk email yang belum terdaftar.
func (r *Repo) UpsertOTP(ctx context.Context, email, otp string, expires time.Time) error {
	var registered bool
	err := r.DB.QueryRow(ctx, `SELECT registered FROM users WHERE email=$1`, email).Scan(&registered)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if err == nil && registered {
		return ErrEmailTaken
	}

	_, err = r.DB.Exec(ctx, `
		INSERT INTO users(id, email, otp, otp_expires)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (email) DO UPDATE
		SET otp=EXCLUDED.otp, otp_expires=EXCLUDED.otp_expires, updated_at=now()`,
		uuid.NewString(), email, otp, expires)
	return err
}

// Register selesaikan registrasi kalau OTP cocok dan belum expired.
func (r *Repo) Register(ctx context.Context, email, otp, name, passwordHash string) (*User, error) {
	row := r.DB.QueryRow(ctx, `
		UPDATE users
		SET name=$3, password_hash=$4, otp=NULL, otp_expires=NULL, registered=TRUE, updated_at=now()
		WHERE email=$1 AND otp=$2 AND otp_expires > now() AND NOT registered
		RETURNING `+userCols, email, otp, name, passwordHash)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidOTP
	}
	return u, err
}

func (r *Repo) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE email=$1 AND registered`, email)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *Repo) FindByID(ctx context.Context, id string) (*User, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1 AND registered`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// UpdateProfile hanya mengganti field yang dikirim (string kosong = biarkan).
func (r *Repo) UpdateProfile(ctx context.Context, id, name, profileImage string) (*User, error) {
	row := r.DB.QueryRow(ctx, `
		UPDATE users
		SET name          = CASE WHEN $2 = '' THEN name ELSE $2 END,
		    profile_image = CASE WHEN $3 = '' THEN profile_image ELSE $3 END,
		    updated_at    = now()
		WHERE id=$1 AND registered
		RETURNING `+userCols, id, name, profileImage)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (r *Repo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE users SET password_hash=$2, updated_at=now()
		WHERE id=$1 AND registered`, id, passwordHash)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.ProfileImage, &u.PasswordHash, &u.Registered, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
