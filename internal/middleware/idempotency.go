package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/go-petr/cash-ledger/pkg/web"
	"github.com/rs/zerolog"
)

// IdempotencyHeaderKey is the request header holding the client supplied idempotency key.
const IdempotencyHeaderKey = "Idempotency-Key"

// ErrDuplicateRequest indicates that the idempotency key is in flight or already used.
var ErrDuplicateRequest = fmt.Errorf("%w: idempotency key already used", errorspkg.ErrConflict)

// IdempotencyStore keeps idempotency keys per user.
//
//go:generate mockgen -source idempotency.go -destination idempotency_mock.go -package middleware
type IdempotencyStore interface {
	Reserve(ctx context.Context, username, key string) (bool, error)
	Complete(ctx context.Context, username, key string) error
	Release(ctx context.Context, username, key string) error
}

// Idempotency rejects a repeated request carrying the same Idempotency-Key. A failed
// request releases its key so it can be retried. Requests without the header pass through.
func Idempotency(store IdempotencyStore) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		key := gctx.GetHeader(IdempotencyHeaderKey)
		if key == "" {
			gctx.Next()
			return
		}

		ctx := gctx.Request.Context()
		l := zerolog.Ctx(ctx)

		actor, ok := GetActor(gctx)
		if !ok {
			unauthorized(gctx, ErrAuthHeaderNotFound)
			return
		}

		reserved, err := store.Reserve(ctx, actor.Username, key)
		if err != nil {
			gctx.AbortWithStatusJSON(http.StatusInternalServerError, web.Error(err))
			return
		}

		if !reserved {
			l.Info().Str("username", actor.Username).Str("idempotency_key", key).Msg("duplicate request")
			gctx.AbortWithStatusJSON(http.StatusConflict, web.Error(ErrDuplicateRequest))

			return
		}

		gctx.Next()

		if gctx.Writer.Status() >= http.StatusBadRequest {
			if err := store.Release(ctx, actor.Username, key); err != nil {
				l.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency key not released")
			}

			return
		}

		if err := store.Complete(ctx, actor.Username, key); err != nil {
			l.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency key not completed")
		}
	}
}
