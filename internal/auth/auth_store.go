package auth

import (
	"database/sql"
	"errors"
	"log"

	"github.com/jmoiron/sqlx"
)

// Store는 'auth' 기능의 DB 로직을 관리합니다.
type Store struct {
	db *sqlx.DB
}

// NewStore는 새 Store를 생성합니다.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// GetUserByEmail은 이메일로 사용자를 조회합니다.
// 사용자가 없으면 (nil, nil)을 반환합니다. (에러 아님)
func (s *Store) GetUserByEmail(email string) (*User, error) {
	var user User
	query := `
		SELECT id, user_name, email, password_hash, privileges_type, is_active, created_at
		FROM users
		WHERE email = ?
	`
	err := s.db.Get(&user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Printf("[ERROR] GetUserByEmail DB 에러: %v", err)
		return nil, err
	}
	return &user, nil
}

// GetUserByID는 ID로 사용자를 조회합니다.
func (s *Store) GetUserByID(id uint64) (*User, error) {
	var user User
	query := `
		SELECT id, user_name, email, password_hash, privileges_type, is_active, created_at
		FROM users
		WHERE id = ?
	`
	err := s.db.Get(&user, query, id)
	if err != nil {
		log.Printf("[ERROR] GetUserByID(ID: %d) DB 에러: %v", id, err)
		return nil, err
	}
	return &user, nil
}

// CreateUser는 새 사용자를 INSERT합니다.
func (s *Store) CreateUser(user *User) error {
	query := `
		INSERT INTO users (user_name, email, password_hash, privileges_type, is_active)
		VALUES (:user_name, :email, :password_hash, :privileges_type, :is_active)
	`
	res, err := s.db.NamedExec(query, user)
	if err != nil {
		log.Printf("[ERROR] CreateUser DB 에러: %v", err)
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = uint64(id)
	return nil
}
