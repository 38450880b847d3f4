package core

import "strings"

// ReserveStatus is the reserve state of a lot.
type ReserveStatus int

const (
	NoReserve ReserveStatus = iota
	ReserveNotMet
	ReserveMet
)

// Raw server values for each reserve status.
const (
	rawNoReserve     = "no_reserve"
	rawReserveNotMet = "reserve_not_met"
	rawReserveMet    = "reserve_met"
)

// ParseReserveStatus maps a raw server value to a ReserveStatus.
// Empty or unrecognized input maps to NoReserve; parsing never fails.
func ParseReserveStatus(raw string) ReserveStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case rawReserveNotMet:
		return ReserveNotMet
	case rawReserveMet:
		return ReserveMet
	default:
		return NoReserve
	}
}

// ParseOptionalReserveStatus is ParseReserveStatus with absent input mapping to NoReserve.
func ParseOptionalReserveStatus(raw Optional[string]) ReserveStatus {
	return ParseReserveStatus(raw.OrElse(""))
}

// IsReserveNotMet reports whether the lot has a reserve that has not been met.
func (s ReserveStatus) IsReserveNotMet() bool {
	return s == ReserveNotMet
}

// HasReserve reports whether the lot carries a reserve at all.
func (s ReserveStatus) HasReserve() bool {
	return s != NoReserve
}

// String returns the raw server value.
func (s ReserveStatus) String() string {
	switch s {
	case ReserveNotMet:
		return rawReserveNotMet
	case ReserveMet:
		return rawReserveMet
	default:
		return rawNoReserve
	}
}
