// Package auditservice manages business logic layer of the audit log.
package auditservice

import (
	"context"

	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by audit service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package auditservice
type Repo interface {
	List(ctx context.Context, username string, limit, offset int32) ([]domain.AuditEntry, error)
}

// Service facilitates audit service layer logic.
type Service struct {
	repo Repo
}

// New returns audit service struct.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// List returns the requested page of audit entries, newest first. An empty username
// lists the entries of every user. Only admins and auditors may read the log.
func (s *Service) List(ctx context.Context, actor domain.Actor, username string, pageSize, pageID int32) ([]domain.AuditEntry, error) {
	l := zerolog.Ctx(ctx)

	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleAuditor {
		l.Info().Str("username", actor.Username).Str("role", string(actor.Role)).Msg("audit log not readable")
		return nil, domain.ErrRoleNotAllowed
	}

	return s.repo.List(ctx, username, pageSize, (pageID-1)*pageSize)
}
