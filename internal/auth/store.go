package auth

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"shieldops/internal/db"
)

// SQLStore reads and provisions the users table.
type SQLStore struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLStore(conn *sql.DB, dialect db.Dialect) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect}
}

func (s *SQLStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	q := s.dialect.Rebind(`SELECT id, username, password_hash, role FROM users WHERE username = ?`)
	u := &User{}
	var id int64
	if err := s.db.QueryRowContext(ctx, q, username).Scan(&id, &u.Username, &u.PasswordHash, &u.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.ID = &id
	return u, nil
}

func (s *SQLStore) List(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, username, role FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []User
	for rows.Next() {
		var u User
		var id int64
		if err := rows.Scan(&id, &u.Username, &u.Role); err != nil {
			return nil, err
		}
		u.ID = &id
		res = append(res, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// CreateIfAbsent hashes the password and inserts the user unless the username
// is already taken. It reports whether a row was inserted.
func (s *SQLStore) CreateIfAbsent(ctx context.Context, username, password string, role Role, cost int) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return false, err
	}
	q := s.dialect.Rebind(`
		INSERT INTO users (username, password_hash, role)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO NOTHING
	`)
	res, err := s.db.ExecContext(ctx, q, username, string(hash), role)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
