package core

import "strings"

// SoldStatus is the sale state of an artwork.
type SoldStatus int

const (
	NotSold SoldStatus = iota
	Sold
)

// ParseSoldStatus maps a raw sold-status value to a SoldStatus.
// Only "sold" (case-insensitive) maps to Sold; everything else is NotSold.
func ParseSoldStatus(raw string) SoldStatus {
	if strings.EqualFold(strings.TrimSpace(raw), "sold") {
		return Sold
	}
	return NotSold
}

func (s SoldStatus) String() string {
	if s == Sold {
		return "sold"
	}
	return "not_sold"
}
