package web

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-petr/cash-ledger/pkg/errorspkg"
	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
)

func TestError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: transaction not found", errorspkg.ErrNotFound)

	want := Response{Error: err.Error(), Kind: errorspkg.KindNotFound}
	if diff := cmp.Diff(want, Error(err)); diff != "" {
		t.Errorf("Error(%v) returned unexpected difference (-want +got):\n%s", err, diff)
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	type request struct {
		Description string `validate:"required"`
		PageSize    int    `validate:"min=1"`
	}

	testCases := []struct {
		name    string
		request request
		want    string
	}{
		{name: "Required", request: request{PageSize: 1}, want: "Description is required"},
		{name: "Min", request: request{Description: "rent"}, want: "PageSize must be at least 1"},
	}

	v := validator.New()

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := v.Struct(tc.request)

			var ve validator.ValidationErrors
			if !errors.As(err, &ve) {
				t.Fatalf("v.Struct(%+v) returned %v, want validator.ValidationErrors", tc.request, err)
			}

			got := ValidationError(ve)
			if got.Error != tc.want {
				t.Errorf("ValidationError(%v).Error = %q, want %q", ve, got.Error, tc.want)
			}

			if got.Kind != errorspkg.KindValidation {
				t.Errorf("ValidationError(%v).Kind = %q, want %q", ve, got.Kind, errorspkg.KindValidation)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: bad date", errorspkg.ErrValidation), want: http.StatusBadRequest},
		{err: fmt.Errorf("%w: missing", errorspkg.ErrNotFound), want: http.StatusNotFound},
		{err: fmt.Errorf("%w: auditor", errorspkg.ErrPermissionDenied), want: http.StatusForbidden},
		{err: fmt.Errorf("%w: void", errorspkg.ErrInvalidTransition), want: http.StatusConflict},
		{err: errorspkg.ErrBusy, want: http.StatusConflict},
		{err: errorspkg.ErrConflict, want: http.StatusConflict},
		{err: fmt.Errorf("%w: short", errorspkg.ErrInsufficientFunds), want: http.StatusUnprocessableEntity},
		{err: errorspkg.ErrInternal, want: http.StatusInternalServerError},
		{err: errors.New("unknown"), want: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		if got := StatusCode(tc.err); got != tc.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestBindError(t *testing.T) {
	t.Parallel()

	type request struct {
		PageSize int `validate:"max=100"`
	}

	err := validator.New().Struct(request{PageSize: 101})

	got := BindError(err)
	if got.Error != "PageSize must be at most 100" {
		t.Errorf("BindError(%v).Error = %q, want %q", err, got.Error, "PageSize must be at most 100")
	}

	plain := errors.New("unexpected EOF")

	want := Response{Error: "unexpected EOF", Kind: errorspkg.KindValidation}
	if diff := cmp.Diff(want, BindError(plain)); diff != "" {
		t.Errorf("BindError(%v) returned unexpected difference (-want +got):\n%s", plain, diff)
	}
}
