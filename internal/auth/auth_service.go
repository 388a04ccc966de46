package auth

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// 발급한 토큰의 유효 기간입니다.
const TokenTTL = 12 * time.Hour

// Service는 'auth' 기능의 비즈니스 로직을 담당합니다.
// 토큰 저장소는 fiber.Storage 인터페이스로 받습니다. (운영은 MySQL 스토리지)
type Service struct {
	store  *Store
	tokens fiber.Storage
}

// NewService는 새 Service를 생성합니다.
func NewService(store *Store, tokens fiber.Storage) *Service {
	return &Service{store: store, tokens: tokens}
}

// Session은 토큰으로 복원한 로그인 정보입니다.
type Session struct {
	UserID uint64 `json:"userId"`
	Role   string `json:"role"`
}

// Login은 이메일/비밀번호를 검증하고 Bearer 토큰을 발급합니다.
// 실패 사유는 사용자에게 구분해서 알려주지 않습니다. (계정 존재 여부 노출 방지)
func (s *Service) Login(email, password string) (string, *User, error) {
	user, err := s.store.GetUserByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("로그인 처리 중 오류가 발생했습니다.")
	}
	if user == nil {
		log.Printf("[INFO] 로그인 실패: 존재하지 않는 이메일 (%s)", email)
		return "", nil, fmt.Errorf("이메일 또는 비밀번호가 올바르지 않습니다.")
	}
	if !user.IsActive {
		log.Printf("[INFO] 로그인 거부: 비활성 계정 (%s)", email)
		return "", nil, fmt.Errorf("비활성화된 계정입니다. 관리자에게 문의해주세요.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("[INFO] 로그인 실패: 비밀번호 불일치 (%s)", email)
		return "", nil, fmt.Errorf("이메일 또는 비밀번호가 올바르지 않습니다.")
	}

	token := uuid.NewString()
	value := fmt.Sprintf("%d:%s", user.ID, user.Role)
	if err := s.tokens.Set(token, []byte(value), TokenTTL); err != nil {
		log.Printf("[ERROR] 토큰 저장 실패 (%s): %v", email, err)
		return "", nil, fmt.Errorf("로그인 처리 중 오류가 발생했습니다.")
	}

	log.Printf("[INFO] 로그인 성공 (%s)", email)
	return token, user, nil
}

// Verify는 토큰을 검증하고 로그인 정보를 복원합니다.
func (s *Service) Verify(token string) (*Session, error) {
	if token == "" {
		return nil, fmt.Errorf("토큰이 없습니다.")
	}

	value, err := s.tokens.Get(token)
	if err != nil || len(value) == 0 {
		return nil, fmt.Errorf("유효하지 않은 토큰입니다.")
	}

	parts := strings.SplitN(string(value), ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("유효하지 않은 토큰입니다.")
	}
	userID, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("유효하지 않은 토큰입니다.")
	}

	return &Session{UserID: userID, Role: parts[1]}, nil
}

// Logout은 토큰을 폐기합니다.
func (s *Service) Logout(token string) error {
	if token == "" {
		return nil
	}
	return s.tokens.Delete(token)
}

// HashPassword는 가입/초기 계정 생성 시 비밀번호 해시를 만듭니다.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
