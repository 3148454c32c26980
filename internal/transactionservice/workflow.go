package transactionservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/pkg/dbpkg"
	"github.com/go-petr/cash-ledger/pkg/moneypkg"
	"github.com/go-petr/cash-ledger/pkg/referencepkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Create stores a new transaction created by actor.
//
// The transaction starts pending unless an admin asks for approved, in which case the
// balances are settled in the same unit of work. A generated reference id that collides
// is replaced and the whole unit of work retried, a supplied one fails with a conflict.
func (s *Service) Create(ctx context.Context, actor domain.Actor, p domain.CreateTransactionParams) (domain.TransactionResult, error) {
	l := zerolog.Ctx(ctx)

	if err := p.Validate(); err != nil {
		l.Info().Err(err).Send()
		return domain.TransactionResult{}, err
	}

	status, err := domain.InitialStatus(actor, p.Status)
	if err != nil {
		l.Info().Err(err).Str("username", actor.Username).Send()
		return domain.TransactionResult{}, err
	}

	attempts := maxReferenceAttempts
	if p.ReferenceID != "" {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		t := domain.Transaction{
			Date:        p.Date,
			Amount:      p.Amount,
			Type:        p.Type,
			Status:      status,
			Description: p.Description,
			Evidence:    p.Evidence,
			ReferenceID: p.ReferenceID,
			CreatedBy:   actor.Username,
			AccountID:   p.AccountID,
			ToAccountID: p.ToAccountID,
			CategoryID:  p.CategoryID,
		}

		if t.ReferenceID == "" {
			t.ReferenceID = referencepkg.New(p.Type.ReferencePrefix(), s.now())
		}

		var res domain.TransactionResult

		err = s.transactor.WithinTx(ctx, func(tx dbpkg.SQLInterface) error {
			r := s.repos(tx)

			created, err := r.Transactions.Create(ctx, t)
			if err != nil {
				return err
			}

			if created.Status == domain.StatusApproved {
				created, err = s.settle(ctx, r, created, actor)
				if err != nil {
					return err
				}
			}

			res.Transaction = created
			res.Warning = s.record(ctx, r, actor, domain.AuditCreate, created)

			return nil
		})

		if err == nil {
			return res, nil
		}

		if errors.Is(err, domain.ErrDuplicateReference) && attempt < attempts {
			l.Warn().Str("reference_id", t.ReferenceID).Int("attempt", attempt).Msg("reference id collision, retrying")
			continue
		}

		return domain.TransactionResult{}, err
	}
}

// Approve moves the transaction one approval tier forward. Reaching approved settles
// the balances.
func (s *Service) Approve(ctx context.Context, id int64, actor domain.Actor) (domain.TransactionResult, error) {
	l := zerolog.Ctx(ctx)

	var res domain.TransactionResult

	err := s.transactor.WithinTx(ctx, func(tx dbpkg.SQLInterface) error {
		r := s.repos(tx)

		t, err := r.Transactions.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		next, err := domain.NextOnApprove(actor, t)
		if err != nil {
			l.Info().Err(err).Str("username", actor.Username).Int64("transaction_id", id).Send()
			return err
		}

		switch next {
		case domain.StatusApproved:
			t, err = s.settle(ctx, r, t, actor)
			if err != nil {
				return err
			}
		default:
			if err := s.checkFunds(ctx, r, t); err != nil {
				return err
			}

			t.Status = next

			t, err = r.Transactions.Save(ctx, t)
			if err != nil {
				return err
			}
		}

		res.Transaction = t
		res.Warning = s.record(ctx, r, actor, domain.AuditApprove, t)

		return nil
	})
	if err != nil {
		return domain.TransactionResult{}, err
	}

	return res, nil
}

// Reject moves the transaction to rejected. Balances are never touched.
func (s *Service) Reject(ctx context.Context, id int64, actor domain.Actor) (domain.TransactionResult, error) {
	l := zerolog.Ctx(ctx)

	var res domain.TransactionResult

	err := s.transactor.WithinTx(ctx, func(tx dbpkg.SQLInterface) error {
		r := s.repos(tx)

		t, err := r.Transactions.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		next, err := domain.NextOnReject(actor, t)
		if err != nil {
			l.Info().Err(err).Str("username", actor.Username).Int64("transaction_id", id).Send()
			return err
		}

		t.Status = next

		t, err = r.Transactions.Save(ctx, t)
		if err != nil {
			return err
		}

		res.Transaction = t
		res.Warning = s.record(ctx, r, actor, domain.AuditReject, t)

		return nil
	})
	if err != nil {
		return domain.TransactionResult{}, err
	}

	return res, nil
}

// Void reverses the balance changes of an approved transaction.
//
// A transfer whose destination account is gone cannot be reversed and fails with a
// conflict. The result carries the restored balance of the source account.
func (s *Service) Void(ctx context.Context, id int64, actor domain.Actor) (domain.TransactionResult, error) {
	l := zerolog.Ctx(ctx)

	var res domain.TransactionResult

	err := s.transactor.WithinTx(ctx, func(tx dbpkg.SQLInterface) error {
		r := s.repos(tx)

		t, err := r.Transactions.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := domain.CheckVoid(actor, t); err != nil {
			l.Info().Err(err).Str("username", actor.Username).Int64("transaction_id", id).Send()
			return err
		}

		if t.Type == domain.TypeTransfer && t.ToAccountID == nil {
			l.Warn().Int64("transaction_id", id).Msg("transfer destination is gone")
			return domain.ErrDestinationMissing
		}

		balances, err := s.post(ctx, r, t, domain.VoidPostings(t))
		if err != nil {
			return err
		}

		restored := balances[t.AccountID]
		approver := actor.Username
		t.Status = domain.StatusVoid
		t.ApprovedBy = &approver

		t, err = r.Transactions.Save(ctx, t)
		if err != nil {
			return err
		}

		res.Transaction = t
		res.RestoredBalance = &restored
		res.Warning = s.record(ctx, r, actor, domain.AuditVoid, t)

		return nil
	})
	if err != nil {
		return domain.TransactionResult{}, err
	}

	return res, nil
}

// Update replaces the editable fields of a transaction that is not approved yet and
// resets its balance snapshots.
func (s *Service) Update(ctx context.Context, id int64, actor domain.Actor, p domain.UpdateTransactionParams) (domain.TransactionResult, error) {
	l := zerolog.Ctx(ctx)

	if err := p.Validate(); err != nil {
		l.Info().Err(err).Send()
		return domain.TransactionResult{}, err
	}

	var res domain.TransactionResult

	err := s.transactor.WithinTx(ctx, func(tx dbpkg.SQLInterface) error {
		r := s.repos(tx)

		t, err := r.Transactions.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		next, err := domain.NextOnUpdate(actor, t, p.Status)
		if err != nil {
			l.Info().Err(err).Str("username", actor.Username).Int64("transaction_id", id).Send()
			return err
		}

		t, err = r.Transactions.Save(ctx, p.Apply(t, next))
		if err != nil {
			return err
		}

		res.Transaction = t
		res.Warning = s.record(ctx, r, actor, domain.AuditUpdate, t)

		return nil
	})
	if err != nil {
		return domain.TransactionResult{}, err
	}

	return res, nil
}

// Delete removes a transaction that never affected balances.
func (s *Service) Delete(ctx context.Context, id int64, actor domain.Actor) (domain.TransactionResult, error) {
	l := zerolog.Ctx(ctx)

	var res domain.TransactionResult

	err := s.transactor.WithinTx(ctx, func(tx dbpkg.SQLInterface) error {
		r := s.repos(tx)

		t, err := r.Transactions.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := domain.CheckDelete(actor, t); err != nil {
			l.Info().Err(err).Str("username", actor.Username).Int64("transaction_id", id).Send()
			return err
		}

		if err := r.Transactions.Delete(ctx, id); err != nil {
			return err
		}

		res.Transaction = t
		res.Warning = s.record(ctx, r, actor, domain.AuditDelete, t)

		return nil
	})
	if err != nil {
		return domain.TransactionResult{}, err
	}

	return res, nil
}

// settle applies the approval postings of t, stores the source account snapshots and
// marks t approved by actor.
func (s *Service) settle(ctx context.Context, r Repos, t domain.Transaction, actor domain.Actor) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	if t.Type == domain.TypeTransfer && t.ToAccountID == nil {
		l.Warn().Int64("transaction_id", t.ID).Msg("transfer destination is gone")
		return t, domain.ErrDestinationMissing
	}

	postings := domain.ApprovalPostings(t)

	balances, err := s.post(ctx, r, t, postings)
	if err != nil {
		return t, err
	}

	approver := actor.Username
	t.BalanceAfter = balances[t.AccountID]
	t.BalanceBefore = t.BalanceAfter.Sub(sourceDelta(t, postings))
	t.Status = domain.StatusApproved
	t.ApprovedBy = &approver

	return r.Transactions.Save(ctx, t)
}

// post locks the touched accounts in ascending id order, checks that no balance goes
// negative and then writes the new balances and their entries. It returns the new
// balance of every touched account.
func (s *Service) post(ctx context.Context, r Repos, t domain.Transaction, postings []domain.Posting) (map[int64]decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	deltas := make(map[int64]decimal.Decimal, len(postings))
	for _, p := range postings {
		deltas[p.AccountID] = deltas[p.AccountID].Add(p.Amount)
	}

	order := domain.LockOrder(postings)
	balances := make(map[int64]decimal.Decimal, len(order))

	for _, id := range order {
		a, err := r.Accounts.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) && id != t.AccountID {
				return nil, domain.ErrDestinationMissing
			}

			return nil, err
		}

		after, err := domain.Apply(a.Balance, deltas[id])
		if err != nil {
			l.Info().Err(err).
				Int64("account_id", id).
				Str("balance", a.Balance.StringFixed(2)).
				Str("delta", deltas[id].StringFixed(2)).
				Send()

			return nil, err
		}

		balances[id] = after
	}

	for _, id := range order {
		if _, err := r.Accounts.SetBalance(ctx, id, balances[id]); err != nil {
			return nil, err
		}

		_, err := r.Entries.Create(ctx, domain.CreateEntryParams{
			AccountID:     id,
			TransactionID: t.ID,
			Amount:        deltas[id],
			BalanceAfter:  balances[id],
		})
		if err != nil {
			return nil, err
		}
	}

	return balances, nil
}

// checkFunds makes sure the source account currently covers a debit of t.
func (s *Service) checkFunds(ctx context.Context, r Repos, t domain.Transaction) error {
	l := zerolog.Ctx(ctx)

	if t.Type == domain.TypeIncome {
		return nil
	}

	if t.Type == domain.TypeTransfer && t.ToAccountID == nil {
		return domain.ErrDestinationMissing
	}

	a, err := r.Accounts.GetForUpdate(ctx, t.AccountID)
	if err != nil {
		return err
	}

	if _, err := domain.Apply(a.Balance, t.Amount.Neg()); err != nil {
		l.Info().Err(err).Int64("account_id", a.ID).Str("balance", a.Balance.StringFixed(2)).Send()
		return err
	}

	return nil
}

// record writes the audit entry of the operation. A failure does not abort the unit of
// work and is returned as a warning.
func (s *Service) record(ctx context.Context, r Repos, actor domain.Actor, action domain.AuditAction, t domain.Transaction) string {
	l := zerolog.Ctx(ctx)

	_, err := r.Audit.Record(ctx, domain.CreateAuditEntryParams{
		Username: actor.Username,
		Action:   action,
		Details:  fmt.Sprintf("transaction=%d reference=%s amount=%s status=%s", t.ID, t.ReferenceID, moneypkg.Format(t.Amount), t.Status),
	})
	if err != nil {
		l.Warn().Err(err).
			Str("action", string(action)).
			Int64("transaction_id", t.ID).
			Msg("audit entry not recorded")

		return AuditWarning
	}

	return ""
}

func sourceDelta(t domain.Transaction, postings []domain.Posting) decimal.Decimal {
	delta := decimal.Zero

	for _, p := range postings {
		if p.AccountID == t.AccountID {
			delta = delta.Add(p.Amount)
		}
	}

	return delta
}
