package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestParseReserveStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected ReserveStatus
	}{
		{raw: "no_reserve", expected: NoReserve},
		{raw: "reserve_not_met", expected: ReserveNotMet},
		{raw: "reserve_met", expected: ReserveMet},
		{raw: "RESERVE_MET", expected: ReserveMet},
		{raw: " reserve_not_met ", expected: ReserveNotMet},
		{raw: "", expected: NoReserve},
		{raw: "something_new", expected: NoReserve},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			check.Equal(t, tt.expected, ParseReserveStatus(tt.raw))
		})
	}
}

func TestParseOptionalReserveStatus_AbsentIsNoReserve(t *testing.T) {
	check.Equal(t, NoReserve, ParseOptionalReserveStatus(None[string]()))
	check.Equal(t, ReserveMet, ParseOptionalReserveStatus(Some("reserve_met")))
}

func TestReserveStatus_Predicates(t *testing.T) {
	check.True(t, ReserveNotMet.IsReserveNotMet())
	check.False(t, ReserveMet.IsReserveNotMet())
	check.False(t, NoReserve.IsReserveNotMet())

	check.False(t, NoReserve.HasReserve())
	check.True(t, ReserveMet.HasReserve())
}

func TestReserveStatus_StringRoundTrips(t *testing.T) {
	for _, status := range []ReserveStatus{NoReserve, ReserveNotMet, ReserveMet} {
		check.Equal(t, status, ParseReserveStatus(status.String()))
	}
}

func TestParseSoldStatus(t *testing.T) {
	check.Equal(t, Sold, ParseSoldStatus("sold"))
	check.Equal(t, Sold, ParseSoldStatus("SOLD"))
	check.Equal(t, NotSold, ParseSoldStatus(""))
	check.Equal(t, NotSold, ParseSoldStatus("for_sale"))
}
