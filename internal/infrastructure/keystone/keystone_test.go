package keystone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rentas-dashboard/internal/infrastructure/keystone"
)

func ptr(s string) *string { return &s }

func TestParseDate_Formatos(t *testing.T) {
	cases := map[string]time.Time{
		"2026-03-15":                time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		"2026-03-15T10:30:00.000Z":  time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		"2026-03-15T10:30:00-05:00": time.Date(2026, 3, 15, 15, 30, 0, 0, time.UTC),
		"2026-03-15 10:30:00":       time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		"1773570600000":             time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
		"  2026-01-01  ":            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := keystone.ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%q: esperado %v, obtenido %v", in, want, got)
	}
}

func TestParseDateIn_DiaCalendarioSeAnclaEnLaZona(t *testing.T) {
	bogota := time.FixedZone("UTC-5", -5*60*60)

	mar, err := keystone.ParseDateIn("2026-03-01", bogota)
	require.NoError(t, err)
	assert.Equal(t, time.March, mar.In(bogota).Month())
	assert.Equal(t, 1, mar.In(bogota).Day())

	jan, err := keystone.ParseDateIn("2026-01-01", bogota)
	require.NoError(t, err)
	assert.Equal(t, 2026, jan.In(bogota).Year())
	assert.Equal(t, time.January, jan.In(bogota).Month())

	local, err := keystone.ParseDateIn("2026-03-01 08:00:00", bogota)
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC).Equal(local))

	// con zona explícita no se reinterpreta
	instant, err := keystone.ParseDateIn("2026-03-01T02:00:00Z", bogota)
	require.NoError(t, err)
	assert.Equal(t, time.February, instant.In(bogota).Month())

	pg, err := keystone.ParseDateIn("2026-03-01 02:00:00+00", bogota)
	require.NoError(t, err)
	assert.True(t, instant.Equal(pg))
}

func TestCalendarDay(t *testing.T) {
	bogota := time.FixedZone("UTC-5", -5*60*60)
	got := keystone.CalendarDay(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), bogota)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, bogota), got)
	assert.Equal(t, time.UTC, keystone.CalendarDay(got, nil).Location())
}

func TestDateValueIn_TextoSinZona(t *testing.T) {
	bogota := time.FixedZone("UTC-5", -5*60*60)
	for _, v := range []any{"2026-01-01", []byte("2026-01-01")} {
		got, err := keystone.DateValueIn(v, bogota)
		require.NoError(t, err, "%T", v)
		assert.Equal(t, 2026, got.In(bogota).Year(), "%T", v)
	}
	got, err := keystone.DateValueIn("1773570600000.0", bogota)
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC).Equal(got))
}

func TestParseDate_Invalida(t *testing.T) {
	for _, in := range []string{"", "ayer", "2026-13-01", "15/03/2026"} {
		_, err := keystone.ParseDate(in)
		assert.Error(t, err, in)
	}
}

func TestDateValue_Tipos(t *testing.T) {
	ref := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, v := range []any{ref, "2026-05-01", []byte("2026-05-01"), ref.UnixMilli(), float64(ref.UnixMilli())} {
		got, err := keystone.DateValue(v)
		require.NoError(t, err, "%T", v)
		assert.True(t, ref.Equal(got), "%T", v)
	}

	_, err := keystone.DateValue(nil)
	assert.Error(t, err)
	_, err = keystone.DateValue(true)
	assert.Error(t, err)
}

func TestBuilder_ArmaArbolEnOrden(t *testing.T) {
	d := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	b := keystone.NewBuilder()

	b.Add(keystone.Row{MallID: "m1", MallName: "Norte", StoreID: ptr("s1"), StoreName: ptr("Café"), RentAmount: 100, PaymentID: ptr("p1"), Amount: 100, PaymentDate: d})
	b.Add(keystone.Row{MallID: "m1", MallName: "Norte", StoreID: ptr("s1"), StoreName: ptr("Café"), RentAmount: 100, PaymentID: ptr("p2"), Amount: 50, PaymentDate: d})
	b.Add(keystone.Row{MallID: "m1", MallName: "Norte", StoreID: ptr("s2"), RentAmount: 70})
	b.Add(keystone.Row{MallID: "m2", MallName: "Vacío"})

	malls := b.Malls()
	require.Len(t, malls, 2)

	assert.Equal(t, "Norte", malls[0].Name)
	require.Len(t, malls[0].Stores, 2)
	assert.Equal(t, "Café", malls[0].Stores[0].Name)
	assert.Equal(t, 100.0, malls[0].Stores[0].RentAmount)
	require.Len(t, malls[0].Stores[0].Payments, 2)
	assert.Equal(t, "p2", malls[0].Stores[0].Payments[1].ID)
	assert.Equal(t, 50.0, malls[0].Stores[0].Payments[1].Amount)

	assert.Equal(t, "", malls[0].Stores[1].Name)
	assert.Empty(t, malls[0].Stores[1].Payments)

	assert.Equal(t, "m2", malls[1].ID)
	assert.NotNil(t, malls[1].Stores)
	assert.Empty(t, malls[1].Stores)
}

func TestBuilder_SinFilas(t *testing.T) {
	malls := keystone.NewBuilder().Malls()
	assert.NotNil(t, malls)
	assert.Empty(t, malls)
}
