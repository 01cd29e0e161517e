package service

import (
	"time"

	"github.com/acadverify/student-auth-service/internal/security"
)

// TokenService mints the stateless bearer tokens issued on signup and
// login. Verification lives with the auth middleware, which shares the
// same JWTManager.
type TokenService struct {
	jwtMgr *security.JWTManager
	ttl    time.Duration
}

func NewTokenService(jwtMgr *security.JWTManager, ttl time.Duration) *TokenService {
	return &TokenService{jwtMgr: jwtMgr, ttl: ttl}
}

func (s *TokenService) Issue(accountID string) (token string, expiresAt time.Time, err error) {
	token, err = s.jwtMgr.Sign(accountID, s.ttl)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, time.Now().Add(s.ttl), nil
}
