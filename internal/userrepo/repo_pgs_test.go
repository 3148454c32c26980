//go:build integration

package userrepo_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-petr/cash-ledger/internal/domain"
	"github.com/go-petr/cash-ledger/internal/integrationtest"
	"github.com/go-petr/cash-ledger/internal/test"
	"github.com/go-petr/cash-ledger/internal/userrepo"
	"github.com/go-petr/cash-ledger/pkg/configpkg"
	"github.com/go-petr/cash-ledger/pkg/passpkg"
	"github.com/go-petr/cash-ledger/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	_ "github.com/lib/pq"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load(integrationtest.ConfigPath)
	if err != nil {
		panic(err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	t.Parallel()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash() returned error: %v", err)
	}

	testCases := []struct {
		name    string
		arg     func(t *testing.T, users *userrepo.RepoPGS, seeded domain.User) domain.CreateUserParams
		want    domain.Role
		wantErr error
	}{
		{
			name: "DefaultsToStaff",
			arg: func(t *testing.T, users *userrepo.RepoPGS, seeded domain.User) domain.CreateUserParams {
				return domain.CreateUserParams{
					Username:       randompkg.Owner(),
					HashedPassword: hashedPassword,
					FullName:       randompkg.Owner(),
					Email:          randompkg.Email(),
				}
			},
			want: domain.RoleStaff,
		},
		{
			name: "Finance",
			arg: func(t *testing.T, users *userrepo.RepoPGS, seeded domain.User) domain.CreateUserParams {
				return domain.CreateUserParams{
					Username:       randompkg.Owner(),
					HashedPassword: hashedPassword,
					FullName:       randompkg.Owner(),
					Email:          randompkg.Email(),
					Role:           domain.RoleFinance,
				}
			},
			want: domain.RoleFinance,
		},
		{
			name: "UsernameDuplicate",
			arg: func(t *testing.T, users *userrepo.RepoPGS, seeded domain.User) domain.CreateUserParams {
				return domain.CreateUserParams{
					Username:       seeded.Username,
					HashedPassword: hashedPassword,
					FullName:       randompkg.Owner(),
					Email:          randompkg.Email(),
				}
			},
			wantErr: domain.ErrUsernameAlreadyExists,
		},
		{
			name: "EmailDuplicate",
			arg: func(t *testing.T, users *userrepo.RepoPGS, seeded domain.User) domain.CreateUserParams {
				return domain.CreateUserParams{
					Username:       randompkg.Owner(),
					HashedPassword: hashedPassword,
					FullName:       randompkg.Owner(),
					Email:          seeded.Email,
				}
			},
			wantErr: domain.ErrEmailALreadyExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := integrationtest.SetupTX(t, dbDriver, dbSource)
			seeded := test.SeedUser(t, tx, domain.RoleStaff)
			users := userrepo.NewRepoPGS(tx)
			arg := tc.arg(t, users, seeded)

			got, err := users.Create(context.Background(), arg)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("users.Create(%+v) returned error %v, want %v", arg, err, tc.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("users.Create(%+v) returned error: %v", arg, err)
			}

			want := domain.User{
				Username:       arg.Username,
				HashedPassword: arg.HashedPassword,
				FullName:       arg.FullName,
				Email:          arg.Email,
				Role:           tc.want,
			}

			ignore := cmpopts.IgnoreFields(domain.User{}, "PasswordChangedAt", "CreatedAt")
			if diff := cmp.Diff(want, got, ignore); diff != "" {
				t.Errorf("users.Create(%+v) returned unexpected difference (-want +got):\n%s", arg, diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	users := userrepo.NewRepoPGS(tx)

	want := test.SeedUser(t, tx, domain.RoleAuditor)

	got, err := users.Get(context.Background(), want.Username)
	if err != nil {
		t.Fatalf("users.Get(%q) returned error: %v", want.Username, err)
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("users.Get(%q) returned unexpected difference (-want +got):\n%s", want.Username, diff)
	}

	if _, err := users.Get(context.Background(), "non-existent"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf(`users.Get("non-existent") returned error %v, want %v`, err, domain.ErrUserNotFound)
	}
}

func TestUpdateRole(t *testing.T) {
	t.Parallel()

	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	users := userrepo.NewRepoPGS(tx)

	seeded := test.SeedUser(t, tx, domain.RoleStaff)

	got, err := users.UpdateRole(context.Background(), seeded.Username, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("users.UpdateRole() returned error: %v", err)
	}

	if got.Role != domain.RoleAdmin {
		t.Errorf("users.UpdateRole().Role = %q, want %q", got.Role, domain.RoleAdmin)
	}

	if _, err := users.UpdateRole(context.Background(), "ghost", domain.RoleAdmin); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf(`users.UpdateRole("ghost") returned error %v, want %v`, err, domain.ErrUserNotFound)
	}
}
