package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/domain"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	t.Run("valid date", func(t *testing.T) {
		d, err := domain.ParseDate("2024-12-31")
		require.NoError(t, err)
		require.Equal(t, "2024-12-31", d.String())
		require.Equal(t, time.December, d.Time().Month())
	})

	t.Run("rejects out of range parts", func(t *testing.T) {
		_, err := domain.ParseDate("2024-13-40")
		require.ErrorIs(t, err, domain.ErrInvalidDate)
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		for _, s := range []string{"31/12/2024", "2024-1-5", "2024-12-31T00:00:00Z", ""} {
			_, err := domain.ParseDate(s)
			require.ErrorIs(t, err, domain.ErrInvalidDate, "input %q", s)
		}
	})
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	d := domain.DateOf(time.Date(2025, time.March, 7, 18, 30, 0, 0, time.UTC))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	require.JSONEq(t, `"2025-03-07"`, string(b))

	var back domain.Date
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, d, back)

	require.Error(t, json.Unmarshal([]byte(`"2025-02-30"`), &back))
}

func TestOptionalDistinguishesAbsentAndNull(t *testing.T) {
	t.Parallel()

	var patch domain.InvoicePatch
	require.NoError(t, json.Unmarshal([]byte(`{"status":"paid","due_date":null}`), &patch))

	require.True(t, patch.Status.Set)
	require.False(t, patch.Status.Null)
	require.Equal(t, "paid", patch.Status.Value)

	require.True(t, patch.DueDate.Set)
	require.True(t, patch.DueDate.Null)
	require.Nil(t, patch.DueDate.Ptr())

	require.False(t, patch.Amount.Set)
	require.False(t, patch.Description.Set)
}

func TestOptionalHelpers(t *testing.T) {
	t.Parallel()

	some := domain.Some(12.5)
	require.True(t, some.Set)
	require.Equal(t, 12.5, *some.Ptr())

	null := domain.Null[string]()
	require.True(t, null.Set)
	require.True(t, null.Null)

	b, err := json.Marshal(null)
	require.NoError(t, err)
	require.Equal(t, "null", string(b))
}
