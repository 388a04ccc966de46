package auth

import "time"

// 권한 값입니다.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USERS"
)

// User는 'users' 테이블의 스키마입니다.
type User struct {
	ID           uint64    `json:"id" db:"id"`
	UserName     string    `json:"userName" db:"user_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"privileges_type"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
