package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Cadence is the expected publication frequency of a series.
type Cadence string

const (
	CadenceMonthly   Cadence = "monthly"
	CadenceQuarterly Cadence = "quarterly"
	CadenceAnnual    Cadence = "annual"
)

// Period identifies one publication interval of a series: a year plus a
// BLS sub-period code (M01-M12 for months, M13 for the annual average,
// Q01-Q04 for quarters, A01 for annual).
type Period struct {
	Year int
	Code string
}

// Key returns the fixed-width row key used for storage and ordering,
// e.g. "2022M01". Codes are fixed width, so keys within a year sort
// lexicographically in publication order.
func (p Period) Key() string {
	return strconv.Itoa(p.Year) + p.Code
}

func (p Period) String() string {
	return p.Key()
}

// Before reports whether p precedes other in publication order.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Code < other.Code
}

// ParsePeriod parses a row key such as "2022M01" back into a Period.
func ParsePeriod(key string) (Period, error) {
	if len(key) != 7 {
		return Period{}, fmt.Errorf("invalid period key %q", key)
	}
	year, err := strconv.Atoi(key[:4])
	if err != nil {
		return Period{}, fmt.Errorf("invalid period key %q", key)
	}
	code := key[4:]
	switch code[0] {
	case 'M', 'Q', 'A':
	default:
		return Period{}, fmt.Errorf("invalid period code %q", code)
	}
	return Period{Year: year, Code: code}, nil
}

// MarshalJSON encodes a period as its row key string.
func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Key())
}

// UnmarshalJSON decodes a period from its row key string.
func (p *Period) UnmarshalJSON(data []byte) error {
	var key string
	if err := json.Unmarshal(data, &key); err != nil {
		return err
	}
	parsed, err := ParsePeriod(key)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PeriodsInRange enumerates every period a series with the given cadence is
// expected to publish between startYear and endYear inclusive. The annual
// average (M13) is excluded from monthly enumeration; it only appears when
// the upstream source returns it.
func PeriodsInRange(cadence Cadence, startYear, endYear int) []Period {
	var periods []Period
	for year := startYear; year <= endYear; year++ {
		switch cadence {
		case CadenceQuarterly:
			for q := 1; q <= 4; q++ {
				periods = append(periods, Period{Year: year, Code: fmt.Sprintf("Q%02d", q)})
			}
		case CadenceAnnual:
			periods = append(periods, Period{Year: year, Code: "A01"})
		default:
			for m := 1; m <= 12; m++ {
				periods = append(periods, Period{Year: year, Code: fmt.Sprintf("M%02d", m)})
			}
		}
	}
	return periods
}
