package auditservice

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	t.Parallel()

	entries := []domain.AuditEntry{
		{ID: 2, Username: "fiona", Action: domain.AuditApprove, Details: "transaction=1 reference=TRX-1-1000 amount=120.00 status=approved", CreatedAt: time.Now()},
		{ID: 1, Username: "sam", Action: domain.AuditCreate, Details: "transaction=1 reference=TRX-1-1000 amount=120.00 status=pending", CreatedAt: time.Now()},
	}

	testCases := []struct {
		name       string
		actor      domain.Actor
		username   string
		buildStubs func(repo *MockRepo)
		want       []domain.AuditEntry
		wantErr    error
	}{
		{
			name:  "Auditor",
			actor: domain.Actor{Username: "audrey", Role: domain.RoleAuditor},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any(), "", int32(10), int32(10)).Times(1).Return(entries, nil)
			},
			want: entries,
		},
		{
			name:     "AdminFiltersByUser",
			actor:    domain.Actor{Username: "adam", Role: domain.RoleAdmin},
			username: "sam",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any(), "sam", int32(10), int32(10)).Times(1).Return(entries[1:], nil)
			},
			want: entries[1:],
		},
		{
			name:  "Finance",
			actor: domain.Actor{Username: "fiona", Role: domain.RoleFinance},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: errorspkg.ErrPermissionDenied,
		},
		{
			name:  "Staff",
			actor: domain.Actor{Username: "sam", Role: domain.RoleStaff},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: errorspkg.ErrPermissionDenied,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			got, err := New(repo).List(context.Background(), tc.actor, tc.username, 10, 2)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("List() returned unexpected difference (-want +got):\n%s", diff)
			}
		})
	}
}
