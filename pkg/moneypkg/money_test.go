package moneypkg

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "Integer", input: "100000", want: "100000.00"},
		{name: "TwoDigits", input: "10.25", want: "10.25"},
		{name: "TrailingZeros", input: "10.2500", want: "10.25"},
		{name: "Malformed", input: "ten", wantErr: ErrMalformedAmount},
		{name: "Zero", input: "0", wantErr: ErrNonPositiveAmount},
		{name: "Negative", input: "-5", wantErr: ErrNonPositiveAmount},
		{name: "TooPrecise", input: "0.001", wantErr: ErrTooPrecise},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAmount(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.want, Format(got))
		})
	}
}

func TestFormatHasNoFloatDrift(t *testing.T) {
	t.Parallel()

	sum := decimal.Zero
	for i := 0; i < 10; i++ {
		sum = sum.Add(decimal.RequireFromString("0.10"))
	}

	require.Equal(t, "1.00", Format(sum))
}
