// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/internal/middleware"
	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/go-petr/cash-ledger/pkg/web"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of transaction dates.
const DateLayout = "2006-01-02"

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Create(ctx context.Context, actor domain.Actor, p domain.CreateTransactionParams) (domain.TransactionResult, error)
	Get(ctx context.Context, id int64, actor domain.Actor) (domain.Transaction, error)
	List(ctx context.Context, actor domain.Actor, p domain.ListTransactionsParams) ([]domain.Transaction, error)
	Update(ctx context.Context, id int64, actor domain.Actor, p domain.UpdateTransactionParams) (domain.TransactionResult, error)
	Delete(ctx context.Context, id int64, actor domain.Actor) (domain.TransactionResult, error)
	Approve(ctx context.Context, id int64, actor domain.Actor) (domain.TransactionResult, error)
	Reject(ctx context.Context, id int64, actor domain.Actor) (domain.TransactionResult, error)
	Void(ctx context.Context, id int64, actor domain.Actor) (domain.TransactionResult, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type data struct {
	Transaction     domain.Transaction `json:"transaction"`
	RestoredBalance *decimal.Decimal   `json:"restored_balance,omitempty"`
}

type dataTransactions struct {
	Transactions []domain.Transaction `json:"transactions"`
}

func resultResponse(res domain.TransactionResult) web.Response {
	return web.Response{
		Data:    data{Transaction: res.Transaction, RestoredBalance: res.RestoredBalance},
		Warning: res.Warning,
	}
}

func actorOrAbort(gctx *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActor(gctx)
	if !ok {
		gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(middleware.ErrAuthHeaderNotFound))
	}

	return actor, ok
}

func fail(gctx *gin.Context, err error) {
	code := web.StatusCode(err)
	if code == http.StatusInternalServerError {
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
		err = errorspkg.ErrInternal
	}

	gctx.JSON(code, web.Error(err))
}

type createRequest struct {
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Amount      string `json:"amount" binding:"required,amount"`
	Type        string `json:"type" binding:"required,txtype"`
	Description string `json:"description" binding:"max=500"`
	Evidence    string `json:"evidence" binding:"max=1000"`
	ReferenceID string `json:"reference_id" binding:"omitempty,max=64"`
	AccountID   int64  `json:"account_id" binding:"required,min=1"`
	ToAccountID *int64 `json:"to_account_id" binding:"omitempty,min=1"`
	CategoryID  *int64 `json:"category_id" binding:"omitempty,min=1"`
	Status      string `json:"status" binding:"omitempty,txstatus"`
}

// Create handles http request to create a transaction.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	actor, ok := actorOrAbort(gctx)
	if !ok {
		return
	}

	// both were checked by the binding validators
	date, _ := time.Parse(DateLayout, req.Date)
	amount, _ := decimal.NewFromString(req.Amount)

	arg := domain.CreateTransactionParams{
		Date:        date,
		Amount:      amount,
		Type:        domain.TransactionType(req.Type),
		Description: req.Description,
		Evidence:    req.Evidence,
		ReferenceID: req.ReferenceID,
		AccountID:   req.AccountID,
		ToAccountID: req.ToAccountID,
		CategoryID:  req.CategoryID,
		Status:      domain.Status(req.Status),
	}

	res, err := h.service.Create(ctx, actor, arg)
	if err != nil {
		fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, resultResponse(res))
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get a transaction.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	actor, ok := actorOrAbort(gctx)
	if !ok {
		return
	}

	t, err := h.service.Get(ctx, req.ID, actor)
	if err != nil {
		fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: data{Transaction: t}})
}

type listRequest struct {
	PageID     int32  `form:"page_id" binding:"required,min=1"`
	PageSize   int32  `form:"page_size" binding:"required,min=1,max=100"`
	DateFrom   string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	AccountID  int64  `form:"account_id" binding:"omitempty,min=1"`
	CategoryID int64  `form:"category_id" binding:"omitempty,min=1"`
	Type       string `form:"type" binding:"omitempty,txtype"`
	Status     string `form:"status" binding:"omitempty,txstatus"`
	CreatedBy  string `form:"created_by" binding:"omitempty,alphanum"`
}

func (req listRequest) params() domain.ListTransactionsParams {
	p := domain.ListTransactionsParams{
		CreatedBy: req.CreatedBy,
		Type:      domain.TransactionType(req.Type),
		Status:    domain.Status(req.Status),
		Limit:     req.PageSize,
		Offset:    (req.PageID - 1) * req.PageSize,
	}

	if req.DateFrom != "" {
		from, _ := time.Parse(DateLayout, req.DateFrom)
		p.DateFrom = &from
	}

	if req.DateTo != "" {
		to, _ := time.Parse(DateLayout, req.DateTo)
		p.DateTo = &to
	}

	if req.AccountID != 0 {
		id := req.AccountID
		p.AccountID = &id
	}

	if req.CategoryID != 0 {
		id := req.CategoryID
		p.CategoryID = &id
	}

	return p
}

// List handles http request to list transactions matching the query filters.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	actor, ok := actorOrAbort(gctx)
	if !ok {
		return
	}

	transactions, err := h.service.List(ctx, actor, req.params())
	if err != nil {
		fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataTransactions{transactions}})
}

type updateRequest struct {
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Amount      string `json:"amount" binding:"required,amount"`
	Type        string `json:"type" binding:"required,txtype"`
	Description string `json:"description" binding:"max=500"`
	Evidence    string `json:"evidence" binding:"max=1000"`
	AccountID   int64  `json:"account_id" binding:"required,min=1"`
	ToAccountID *int64 `json:"to_account_id" binding:"omitempty,min=1"`
	CategoryID  *int64 `json:"category_id" binding:"omitempty,min=1"`
	Status      string `json:"status" binding:"omitempty,txstatus"`
}

// Update handles http request to replace the editable fields of a transaction.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	var req updateRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	actor, ok := actorOrAbort(gctx)
	if !ok {
		return
	}

	date, _ := time.Parse(DateLayout, req.Date)
	amount, _ := decimal.NewFromString(req.Amount)

	arg := domain.UpdateTransactionParams{
		Date:        date,
		Amount:      amount,
		Type:        domain.TransactionType(req.Type),
		Description: req.Description,
		Evidence:    req.Evidence,
		AccountID:   req.AccountID,
		ToAccountID: req.ToAccountID,
		CategoryID:  req.CategoryID,
		Status:      domain.Status(req.Status),
	}

	res, err := h.service.Update(ctx, uri.ID, actor, arg)
	if err != nil {
		fail(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, resultResponse(res))
}

type transition func(ctx context.Context, id int64, actor domain.Actor) (domain.TransactionResult, error)

func (h *Handler) run(gctx *gin.Context, op transition) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.BindError(err))

		return
	}

	actor, ok := actorOrAbort(gctx)
	if !ok {
		return
	}

	res, err := op(ctx, req.ID, actor)
	if err != nil {
		l.Debug().Err(err).Int64("transaction_id", req.ID).Send()
		fail(gctx, err)

		return
	}

	gctx.JSON(http.StatusOK, resultResponse(res))
}

// Delete handles http request to delete a transaction.
func (h *Handler) Delete(gctx *gin.Context) {
	h.run(gctx, h.service.Delete)
}

// Approve handles http request to move a transaction one approval tier forward.
func (h *Handler) Approve(gctx *gin.Context) {
	h.run(gctx, h.service.Approve)
}

// Reject handles http request to reject a transaction.
func (h *Handler) Reject(gctx *gin.Context) {
	h.run(gctx, h.service.Reject)
}

// Void handles http request to reverse an approved transaction.
func (h *Handler) Void(gctx *gin.Context) {
	h.run(gctx, h.service.Void)
}
