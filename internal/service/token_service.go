package service

import (
	"context"
	"strings"
	"time"

	"keepwise-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"
)

type ITokenService interface {
	// Verify resolves the Authorization header to an identity.
	// Returns entity.ErrTokenMissing when no bearer token is present and
	// entity.ErrTokenInvalid when verification fails.
	Verify(ctx context.Context, authHeader string) (*entity.AuthUser, error)
}

type tokenService struct {
	secret   string
	cacheTTL time.Duration
	cache    *gocache.Cache
}

func NewTokenService(secret string, cacheTTL time.Duration) ITokenService {
	return &tokenService{
		secret:   secret,
		cacheTTL: cacheTTL,
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
	}
}

func (s *tokenService) Verify(ctx context.Context, authHeader string) (*entity.AuthUser, error) {
	// No identity provider configured: authentication is disabled and every
	// caller shares the anonymous identity. Degraded mode, not an error.
	if s.secret == "" {
		user := entity.AnonymousUser
		return &user, nil
	}

	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return nil, entity.ErrTokenMissing
	}
	tokenStr := strings.TrimSpace(authHeader[7:])
	if tokenStr == "" {
		return nil, entity.ErrTokenMissing
	}

	if cached, found := s.cache.Get(tokenStr); found {
		user := cached.(entity.AuthUser)
		return &user, nil
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, entity.ErrTokenInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, entity.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, entity.ErrTokenInvalid
	}

	user := entity.AuthUser{}
	if uid, ok := claims["user_id"].(string); ok {
		user.Uid = uid
	} else if sub, ok := claims["sub"].(string); ok {
		user.Uid = sub
	}
	if user.Uid == "" {
		return nil, entity.ErrTokenInvalid
	}
	if email, ok := claims["email"].(string); ok {
		user.Email = email
	}

	// A cached result must not outlive the token itself.
	ttl := s.cacheTTL
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining < ttl {
			ttl = remaining
		}
	}
	s.cache.Set(tokenStr, user, ttl)

	return &user, nil
}
