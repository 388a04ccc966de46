package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memStorage는 테스트용 인메모리 토큰 스토어입니다. (fiber.Storage 구현)
type memStorage map[string][]byte

func (m memStorage) Get(key string) ([]byte, error) { return m[key], nil }
func (m memStorage) Set(key string, val []byte, _ time.Duration) error {
	m[key] = val
	return nil
}
func (m memStorage) Delete(key string) error { delete(m, key); return nil }
func (m memStorage) Reset() error            { return nil }
func (m memStorage) Close() error            { return nil }

func TestVerify_RoundTrip(t *testing.T) {
	tokens := memStorage{}
	service := NewService(nil, tokens)

	require.NoError(t, tokens.Set("tok-1", []byte("42:ADMIN"), 0))

	session, err := service.Verify("tok-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), session.UserID)
	assert.Equal(t, RoleAdmin, session.Role)
}

func TestVerify_Rejects(t *testing.T) {
	service := NewService(nil, memStorage{})

	_, err := service.Verify("")
	assert.Error(t, err, "빈 토큰")

	_, err = service.Verify("없는-토큰")
	assert.Error(t, err, "미발급 토큰")
}

func TestVerify_MalformedValue(t *testing.T) {
	tokens := memStorage{"bad": []byte("형식이-아님")}
	service := NewService(nil, tokens)

	_, err := service.Verify("bad")
	assert.Error(t, err)
}

func TestLogout_RemovesToken(t *testing.T) {
	tokens := memStorage{"tok-1": []byte("1:USERS")}
	service := NewService(nil, tokens)

	require.NoError(t, service.Logout("tok-1"))

	_, err := service.Verify("tok-1")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("비밀번호1234")
	require.NoError(t, err)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("비밀번호1234")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("다른비밀번호")))
}
