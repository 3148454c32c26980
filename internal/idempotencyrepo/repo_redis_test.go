package idempotencyrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/require"
)

const ttl = time.Hour

func TestReserve(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		buildStubs func(mock redismock.ClientMock)
		want       bool
		wantErr    error
	}{
		{
			name: "Fresh",
			buildStubs: func(mock redismock.ClientMock) {
				mock.ExpectSetNX("idem:sam:abc", StatePending, ttl).SetVal(true)
			},
			want: true,
		},
		{
			name: "Used",
			buildStubs: func(mock redismock.ClientMock) {
				mock.ExpectSetNX("idem:sam:abc", StatePending, ttl).SetVal(false)
			},
			want: false,
		},
		{
			name: "RedisDown",
			buildStubs: func(mock redismock.ClientMock) {
				mock.ExpectSetNX("idem:sam:abc", StatePending, ttl).SetErr(errors.New("connection refused"))
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rdb, mock := redismock.NewClientMock()
			tc.buildStubs(mock)

			got, err := NewRepoRedis(rdb, ttl).Reserve(context.Background(), "sam", "abc")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.want, got)
			}

			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectSet("idem:sam:abc", StateDone, ttl).SetVal("OK")

	require.NoError(t, NewRepoRedis(rdb, ttl).Complete(context.Background(), "sam", "abc"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelease(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("idem:sam:abc").SetVal(1)
	mock.ExpectDel("idem:sam:xyz").SetErr(errors.New("connection refused"))

	repo := NewRepoRedis(rdb, ttl)

	require.NoError(t, repo.Release(context.Background(), "sam", "abc"))
	require.ErrorIs(t, repo.Release(context.Background(), "sam", "xyz"), errorspkg.ErrInternal)
	require.NoError(t, mock.ExpectationsWereMet())
}
