// Package middleware provides gin middlewares for logging, authentication, role checks
// and idempotent requests.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/go-petr/cash-ledger/pkg/tokenpkg"
	"github.com/go-petr/cash-ledger/pkg/web"
	"github.com/rs/zerolog"
)

// Authorization header constants.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
	AuthPayloadKey = "authorization_payload"
)

// Authorization errors.
var (
	ErrAuthHeaderNotFound  = errors.New("authorization header is not provided")
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
	ErrUnknownRole         = errors.New("token carries an unknown role")
)

// AddAuthorization creates a token for username and role and sets it as the request's
// authorization header.
func AddAuthorization(r *http.Request, tokenMaker tokenpkg.Maker, authType, username string, role domain.Role, duration time.Duration) error {
	token, _, err := tokenMaker.CreateToken(username, string(role), duration)
	if err != nil {
		return err
	}

	authHeader := fmt.Sprintf("%s %s", authType, token)
	r.Header.Set(AuthHeaderKey, authHeader)

	return nil
}

func unauthorized(gctx *gin.Context, err error) {
	gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Response{
		Error: err.Error(),
		Kind:  errorspkg.KindPermissionDenied,
	})
}

// AuthMiddleware verifies the bearer token and stores its payload in the gin context.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		l := zerolog.Ctx(gctx.Request.Context())

		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			l.Info().Err(ErrAuthHeaderNotFound).Send()
			unauthorized(gctx, ErrAuthHeaderNotFound)

			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			l.Info().Err(ErrBadAuthHeaderFormat).Send()
			unauthorized(gctx, ErrBadAuthHeaderFormat)

			return
		}

		authType := strings.ToLower(fields[0])
		if authType != AuthTypeBearer {
			l.Info().Err(ErrUnsupportedAuthType).Str("auth_type", authType).Send()
			unauthorized(gctx, ErrUnsupportedAuthType)

			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			l.Info().Err(err).Send()
			unauthorized(gctx, err)

			return
		}

		if _, err := domain.ParseRole(payload.Role); err != nil {
			l.Info().Str("role", payload.Role).Msg("unknown role in token")
			unauthorized(gctx, ErrUnknownRole)

			return
		}

		gctx.Set(AuthPayloadKey, payload)
		gctx.Next()
	}
}

// GetActor returns the authenticated identity stored by AuthMiddleware.
func GetActor(gctx *gin.Context) (domain.Actor, bool) {
	value, ok := gctx.Get(AuthPayloadKey)
	if !ok {
		return domain.Actor{}, false
	}

	payload, ok := value.(*tokenpkg.Payload)
	if !ok {
		return domain.Actor{}, false
	}

	return domain.Actor{Username: payload.Username, Role: domain.Role(payload.Role)}, true
}

// RequireRole lets the request through only when the authenticated actor has one of roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		l := zerolog.Ctx(gctx.Request.Context())

		actor, ok := GetActor(gctx)
		if !ok {
			unauthorized(gctx, ErrAuthHeaderNotFound)
			return
		}

		for _, r := range roles {
			if actor.Role == r {
				gctx.Next()
				return
			}
		}

		l.Info().Str("username", actor.Username).Str("role", string(actor.Role)).Msg("role not allowed")
		gctx.AbortWithStatusJSON(http.StatusForbidden, web.Error(domain.ErrRoleNotAllowed))
	}
}
