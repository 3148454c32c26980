// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/go-petr/cash-ledger/internal/accountdelivery"
	"github.com/go-petr/cash-ledger/internal/accountrepo"
	"github.com/go-petr/cash-ledger/internal/accountservice"
	"github.com/go-petr/cash-ledger/internal/auditdelivery"
	"github.com/go-petr/cash-ledger/internal/auditrepo"
	"github.com/go-petr/cash-ledger/internal/auditservice"
	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/internal/entryrepo"
	"github.com/go-petr/cash-ledger/internal/idempotencyrepo"
	"github.com/go-petr/cash-ledger/internal/middleware"
	"github.com/go-petr/cash-ledger/internal/sessiondelivery"
	"github.com/go-petr/cash-ledger/internal/sessionrepo"
	"github.com/go-petr/cash-ledger/internal/sessionservice"
	"github.com/go-petr/cash-ledger/internal/transactiondelivery"
	"github.com/go-petr/cash-ledger/internal/transactionrepo"
	"github.com/go-petr/cash-ledger/internal/transactionservice"
	"github.com/go-petr/cash-ledger/internal/userdelivery"
	"github.com/go-petr/cash-ledger/internal/userrepo"
	"github.com/go-petr/cash-ledger/internal/userservice"
	"github.com/go-petr/cash-ledger/pkg/configpkg"
	"github.com/go-petr/cash-ledger/pkg/dbpkg"
	"github.com/go-petr/cash-ledger/pkg/moneypkg"
	"github.com/go-petr/cash-ledger/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// unitOfWorkRepos binds every repository the engine writes through to one database transaction.
func unitOfWorkRepos(tx dbpkg.SQLInterface) transactionservice.Repos {
	return transactionservice.Repos{
		Transactions: transactionrepo.NewRepoPGS(tx),
		Accounts:     accountrepo.NewRepoPGS(tx),
		Entries:      entryrepo.NewRepoPGS(tx),
		Audit:        auditrepo.NewRepoPGS(tx),
	}
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}

	validators := map[string]validator.Func{
		"amount":   moneypkg.ValidAmount,
		"txtype":   transactiondelivery.ValidType,
		"txstatus": transactiondelivery.ValidStatus,
		"acctype":  accountdelivery.ValidAccountType,
		"balance":  accountdelivery.ValidBalance,
		"role":     userdelivery.ValidRole,
	}

	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("cannot register %s validator: %w", tag, err)
		}
	}

	return nil
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, rdb *redis.Client, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	entryRepo := entryrepo.NewRepoPGS(conn)
	auditRepo := auditrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	idempotencyStore := idempotencyrepo.NewRepoRedis(rdb, config.IdempotencyTTL)

	tokenMaker, err := tokenpkg.New(config.TokenFormat, config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo, entryRepo)
	auditService := auditservice.New(auditRepo)
	transactionService := transactionservice.New(
		dbpkg.NewTransactor(conn, config.LockTimeout),
		transactionRepo,
		unitOfWorkRepos,
	)

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	auditHandler := auditdelivery.NewHandler(auditService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	if err := registerValidators(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/", middleware.AuthMiddleware(tokenMaker))
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	authRoutes.PUT("/users/:username/role", adminOnly, userHandler.UpdateRole)

	authRoutes.POST("/accounts", adminOnly, accountHandler.Create)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.GET("/accounts/:id/entries", accountHandler.ListEntries)

	authRoutes.POST("/transactions", middleware.Idempotency(idempotencyStore), transactionHandler.Create)
	authRoutes.GET("/transactions", transactionHandler.List)
	authRoutes.GET("/transactions/:id", transactionHandler.Get)
	authRoutes.PUT("/transactions/:id", transactionHandler.Update)
	authRoutes.DELETE("/transactions/:id", transactionHandler.Delete)
	authRoutes.POST("/transactions/:id/approve", transactionHandler.Approve)
	authRoutes.POST("/transactions/:id/reject", transactionHandler.Reject)
	authRoutes.POST("/transactions/:id/void", transactionHandler.Void)

	authRoutes.GET("/audit-logs", middleware.RequireRole(domain.RoleAdmin, domain.RoleAuditor), auditHandler.List)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
