package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-petr/cash-ledger/cmd/httpserver"
	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/internal/middleware"
	"github.com/go-petr/cash-ledger/pkg/configpkg"
	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/go-petr/cash-ledger/pkg/randompkg"
	"github.com/go-petr/cash-ledger/pkg/tokenpkg"
	"github.com/go-petr/cash-ledger/pkg/web"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// TestRouteGuards covers requests that are answered before any storage is touched.
func TestRouteGuards(t *testing.T) {
	config := configpkg.Config{
		TokenFormat:         tokenpkg.FormatPaseto,
		TokenSymmetricKey:   randompkg.String(32),
		AccessTokenDuration: time.Minute,
	}

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	t.Cleanup(func() { _ = rdb.Close() })

	server, err := httpserver.New(nil, rdb, zerolog.Nop(), config)
	require.NoError(t, err)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	require.NoError(t, err)

	testCases := []struct {
		name           string
		method         string
		path           string
		body           any
		role           domain.Role
		wantStatusCode int
		wantKind       string
	}{
		{
			name:           "NoToken",
			method:         http.MethodGet,
			path:           "/transactions?page_id=1&page_size=10",
			wantStatusCode: http.StatusUnauthorized,
			wantKind:       errorspkg.KindPermissionDenied,
		},
		{
			name:           "StaffCreatesAccount",
			method:         http.MethodPost,
			path:           "/accounts",
			body:           map[string]string{"name": "Petty cash", "type": "cash"},
			role:           domain.RoleStaff,
			wantStatusCode: http.StatusForbidden,
			wantKind:       errorspkg.KindPermissionDenied,
		},
		{
			name:           "FinanceChangesRole",
			method:         http.MethodPut,
			path:           "/users/sam/role",
			body:           map[string]string{"role": "admin"},
			role:           domain.RoleFinance,
			wantStatusCode: http.StatusForbidden,
			wantKind:       errorspkg.KindPermissionDenied,
		},
		{
			name:           "StaffReadsAuditLog",
			method:         http.MethodGet,
			path:           "/audit-logs?page_id=1&page_size=10",
			role:           domain.RoleStaff,
			wantStatusCode: http.StatusForbidden,
			wantKind:       errorspkg.KindPermissionDenied,
		},
		{
			name:           "MalformedTransaction",
			method:         http.MethodPost,
			path:           "/transactions",
			body:           map[string]any{"date": "2024-01-01", "amount": "1.001", "type": "income", "account_id": 1},
			role:           domain.RoleStaff,
			wantStatusCode: http.StatusBadRequest,
			wantKind:       errorspkg.KindValidation,
		},
		{
			name:           "UnknownAccountType",
			method:         http.MethodPost,
			path:           "/accounts",
			body:           map[string]string{"name": "Vault", "type": "vault"},
			role:           domain.RoleAdmin,
			wantStatusCode: http.StatusBadRequest,
			wantKind:       errorspkg.KindValidation,
		},
		{
			name:           "UnknownRole",
			method:         http.MethodPut,
			path:           "/users/sam/role",
			body:           map[string]string{"role": "owner"},
			role:           domain.RoleAdmin,
			wantStatusCode: http.StatusBadRequest,
			wantKind:       errorspkg.KindValidation,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var body bytes.Buffer
			if tc.body != nil {
				require.NoError(t, json.NewEncoder(&body).Encode(tc.body))
			}

			req := httptest.NewRequest(tc.method, tc.path, &body)
			if tc.role != "" {
				require.NoError(t, middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, "sam", tc.role, time.Minute))
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)
			require.NotEmpty(t, recorder.Header().Get(middleware.RequestIDHeader))

			var res web.Response
			require.NoError(t, json.NewDecoder(recorder.Body).Decode(&res))
			require.Equal(t, tc.wantKind, res.Kind)
		})
	}
}
