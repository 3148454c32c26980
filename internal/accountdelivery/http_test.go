package accountdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/internal/test"
	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/go-petr/cash-ledger/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/shopspring/decimal"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("acctype", ValidAccountType)
		_ = v.RegisterValidation("balance", ValidBalance)
	}

	os.Exit(m.Run())
}

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func newServer(t *testing.T) (*gin.Engine, *MockService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	accountService := NewMockService(ctrl)
	handler := NewHandler(accountService)

	server := gin.New()
	server.POST("/accounts", handler.Create)
	server.GET("/accounts", handler.List)
	server.GET("/accounts/:id", handler.Get)
	server.GET("/accounts/:id/entries", handler.ListEntries)

	return server, accountService
}

func TestCreate(t *testing.T) {
	account := test.RandomAccount()

	testCases := []struct {
		name           string
		body           gin.H
		buildStubs     func(accountService *MockService)
		wantStatusCode int
		wantKind       string
	}{
		{
			name: "OK",
			body: gin.H{"name": account.Name, "type": string(account.Type), "balance": account.Balance.StringFixed(2)},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ any, arg domain.CreateAccountParams) (domain.Account, error) {
						if arg.Name != account.Name || arg.Type != account.Type || !arg.Balance.Equal(account.Balance) {
							t.Errorf("Create(%+v), want name %q type %q balance %v", arg, account.Name, account.Type, account.Balance)
						}

						return account, nil
					})
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "ZeroBalanceByDefault",
			body: gin.H{"name": account.Name, "type": "bank"},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					DoAndReturn(func(_ any, arg domain.CreateAccountParams) (domain.Account, error) {
						if !arg.Balance.IsZero() {
							t.Errorf("arg.Balance=%v, want 0", arg.Balance)
						}

						return account, nil
					})
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "InvalidType",
			body: gin.H{"name": account.Name, "type": "crypto"},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantKind:       errorspkg.KindValidation,
		},
		{
			name: "NegativeBalance",
			body: gin.H{"name": account.Name, "type": "cash", "balance": "-1"},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantKind:       errorspkg.KindValidation,
		},
		{
			name: "NameExists",
			body: gin.H{"name": account.Name, "type": "cash"},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNameExists)
			},
			wantStatusCode: http.StatusConflict,
			wantKind:       errorspkg.KindConflict,
		},
		{
			name: "InternalServerError",
			body: gin.H{"name": account.Name, "type": "cash"},
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantKind:       errorspkg.KindInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server, accountService := newServer(t)
			tc.buildStubs(accountService)

			body, err := json.Marshal(tc.body)
			if err != nil {
				t.Fatalf("Encoding request body error: %v", err)
			}

			req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &data{}}
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantKind != "" {
				if res.Kind != tc.wantKind {
					t.Errorf("res.Kind=%q, want %q", res.Kind, tc.wantKind)
				}

				return
			}

			got := res.Data.(*data)
			if diff := cmp.Diff(account, got.Account, decimalEqual, cmpopts.EquateApproxTime(time.Second)); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	account := test.RandomAccount()

	testCases := []struct {
		name           string
		id             string
		buildStubs     func(accountService *MockService)
		wantStatusCode int
		wantKind       string
	}{
		{
			name: "OK",
			id:   fmt.Sprint(account.ID),
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "NotFound",
			id:   fmt.Sprint(account.ID),
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantKind:       errorspkg.KindNotFound,
		},
		{
			name: "InvalidID",
			id:   "0",
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantKind:       errorspkg.KindValidation,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server, accountService := newServer(t)
			tc.buildStubs(accountService)

			req := httptest.NewRequest(http.MethodGet, "/accounts/"+tc.id, nil)
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			res := web.Response{Data: &data{}}
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			if tc.wantKind != "" {
				if res.Kind != tc.wantKind {
					t.Errorf("res.Kind=%q, want %q", res.Kind, tc.wantKind)
				}

				return
			}

			got := res.Data.(*data)
			if diff := cmp.Diff(account, got.Account, decimalEqual, cmpopts.EquateApproxTime(time.Second)); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList(t *testing.T) {
	accounts := []domain.Account{test.RandomAccount(), test.RandomAccount()}

	testCases := []struct {
		name           string
		query          string
		buildStubs     func(accountService *MockService)
		wantStatusCode int
	}{
		{
			name:  "OK",
			query: "page_id=1&page_size=5",
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					List(gomock.Any(), gomock.Eq(int32(5)), gomock.Eq(int32(1))).
					Times(1).
					Return(accounts, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:  "MissingPage",
			query: "page_size=5",
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:  "InternalServerError",
			query: "page_id=1&page_size=5",
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					List(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server, accountService := newServer(t)
			tc.buildStubs(accountService)

			req := httptest.NewRequest(http.MethodGet, "/accounts?"+tc.query, nil)
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Fatalf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			if tc.wantStatusCode != http.StatusOK {
				return
			}

			res := web.Response{Data: &dataAccounts{}}
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			got := res.Data.(*dataAccounts)
			if diff := cmp.Diff(accounts, got.Accounts, decimalEqual, cmpopts.EquateApproxTime(time.Second)); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListEntries(t *testing.T) {
	account := test.RandomAccount()
	entries := []domain.Entry{
		{
			ID:            1,
			AccountID:     account.ID,
			TransactionID: 10,
			Amount:        decimal.RequireFromString("-40.00"),
			BalanceAfter:  decimal.RequireFromString("60.00"),
			CreatedAt:     time.Now().UTC(),
		},
	}

	testCases := []struct {
		name           string
		path           string
		buildStubs     func(accountService *MockService)
		wantStatusCode int
	}{
		{
			name: "OK",
			path: fmt.Sprintf("/accounts/%d/entries?page_id=2&page_size=10", account.ID),
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					ListEntries(gomock.Any(), gomock.Eq(account.ID), gomock.Eq(int32(10)), gomock.Eq(int32(2))).
					Times(1).
					Return(entries, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "AccountNotFound",
			path: fmt.Sprintf("/accounts/%d/entries?page_id=1&page_size=10", account.ID),
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().
					ListEntries(gomock.Any(), gomock.Eq(account.ID), gomock.Any(), gomock.Any()).
					Times(1).
					Return(nil, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name: "PageTooLarge",
			path: fmt.Sprintf("/accounts/%d/entries?page_id=1&page_size=101", account.ID),
			buildStubs: func(accountService *MockService) {
				accountService.EXPECT().ListEntries(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server, accountService := newServer(t)
			tc.buildStubs(accountService)

			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Fatalf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			if tc.wantStatusCode != http.StatusOK {
				return
			}

			res := web.Response{Data: &dataEntries{}}
			if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
				t.Fatalf("Decoding response body error: %v", err)
			}

			got := res.Data.(*dataEntries)
			if diff := cmp.Diff(entries, got.Entries, decimalEqual, cmpopts.EquateApproxTime(time.Second)); diff != "" {
				t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValidBalance(t *testing.T) {
	type request struct {
		Balance string `validate:"balance"`
	}

	v := validator.New()
	if err := v.RegisterValidation("balance", ValidBalance); err != nil {
		t.Fatalf("RegisterValidation returned error: %v", err)
	}

	testCases := []struct {
		balance string
		wantOK  bool
	}{
		{balance: "0", wantOK: true},
		{balance: "1250.75", wantOK: true},
		{balance: "-0.01", wantOK: false},
		{balance: "1.234", wantOK: false},
		{balance: "ten", wantOK: false},
	}

	for _, tc := range testCases {
		err := v.Struct(request{Balance: tc.balance})
		if got := err == nil; got != tc.wantOK {
			t.Errorf("ValidBalance(%q)=%v, want %v", tc.balance, got, tc.wantOK)
		}
	}
}
