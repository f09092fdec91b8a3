package services

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormReadsTypedFields(t *testing.T) {
	form := NewForm(url.Values{
		"name":     {"  Hall A "},
		"capacity": {"25"},
		"price":    {"19,99"},
		"day":      {"2024-02-29"},
		"time":     {"18:05:30"},
		"id_rooms": {"3"},
	})

	require.Equal(t, "Hall A", form.String("name"))
	require.Equal(t, 25, form.Int("capacity"))
	price, err := form.Decimal("price").Value()
	require.NoError(t, err)
	require.Equal(t, "19.99", price)
	require.Equal(t, "2024-02-29", form.Date("day").String())
	require.Equal(t, "18:05:30", form.Clock("time").String())
	require.Equal(t, int64(3), form.ID("id_rooms"))
	require.Nil(t, form.OptionalString("comments"))
	require.NoError(t, form.Err())
}

func TestFormKeepsFirstError(t *testing.T) {
	form := NewForm(url.Values{"capacity": {"many"}})

	form.Int("capacity")
	form.String("name")

	serr, ok := AsServiceError(form.Err())
	require.True(t, ok)
	require.Equal(t, KindValidation, serr.Kind)
	require.Equal(t, "Invalid value for field: capacity", serr.Message)
}

func TestFormBlankRequiredFieldIsMissing(t *testing.T) {
	form := NewForm(url.Values{"name": {"   "}})
	form.String("name")
	require.EqualError(t, form.Err(), "Missing field: name")
}

func TestFormRejectsNonPositiveReference(t *testing.T) {
	form := NewForm(url.Values{"id_client": {"0"}})
	form.ID("id_client")
	require.EqualError(t, form.Err(), "Invalid value for field: id_client")
}

func TestFormRejectsBadDateAndTime(t *testing.T) {
	form := NewForm(url.Values{"day": {"2023-02-30"}})
	form.Date("day")
	require.EqualError(t, form.Err(), "Invalid value for field: day")

	form = NewForm(url.Values{"time": {"25:00"}})
	form.Clock("time")
	require.EqualError(t, form.Err(), "Invalid value for field: time")
}

func TestNilFormValuesReportMissing(t *testing.T) {
	form := NewForm(nil)
	form.String("full_name")
	require.EqualError(t, form.Err(), "Missing field: full_name")
}

func TestFormDecimalKeepsExactDigits(t *testing.T) {
	form := NewForm(url.Values{"price": {"12345678.10"}})
	price := form.Decimal("price")
	require.NoError(t, form.Err())

	value, err := price.Value()
	require.NoError(t, err)
	require.Equal(t, "12345678.10", value)

	body, err := json.Marshal(price)
	require.NoError(t, err)
	require.Equal(t, "12345678.10", string(body))
}

func TestFormRejectsNegativeAndSpecialDecimals(t *testing.T) {
	for _, raw := range []string{"-1", "NaN", "Infinity", "1e3", "12.5.1"} {
		form := NewForm(url.Values{"price": {raw}})
		form.Decimal("price")
		require.EqualError(t, form.Err(), "Invalid value for field: price", raw)
	}
}

func TestFormRejectsZeroDate(t *testing.T) {
	form := NewForm(url.Values{"date_of_birth": {"0001-01-01"}})
	form.Date("date_of_birth")
	serr, ok := AsServiceError(form.Err())
	require.True(t, ok)
	require.Equal(t, KindValidation, serr.Kind)
	require.Equal(t, "Invalid value for field: date_of_birth", serr.Message)
}
