// Package auditdelivery manages delivery layer of the audit log.
package auditdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/internal/middleware"
	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/go-petr/cash-ledger/pkg/web"
	"github.com/rs/zerolog"
)

// Service provides service layer interface needed by audit delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package auditdelivery
type Service interface {
	List(ctx context.Context, actor domain.Actor, username string, pageSize, pageID int32) ([]domain.AuditEntry, error)
}

// Handler facilitates audit delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns audit handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type listRequest struct {
	Username string `form:"username" binding:"omitempty,alphanum"`
	PageID   int32  `form:"page_id" binding:"required,min=1"`
	PageSize int32  `form:"page_size" binding:"required,min=1,max=100"`
}

type dataEntries struct {
	Entries []domain.AuditEntry `json:"entries"`
}

// List handles http request to list audit entries, optionally of one user.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	actor, ok := middleware.GetActor(gctx)
	if !ok {
		gctx.JSON(http.StatusUnauthorized, web.Error(middleware.ErrAuthHeaderNotFound))
		return
	}

	entries, err := h.service.List(ctx, actor, req.Username, req.PageSize, req.PageID)
	if err != nil {
		code := web.StatusCode(err)
		if code == http.StatusInternalServerError {
			l.Error().Err(err).Send()
			err = errorspkg.ErrInternal
		}

		gctx.JSON(code, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataEntries{entries}})
}
