// Package resolver translates logical queries (a national indicator key, or
// a state/county geography plus a LAUS measure) into canonical BLS series
// IDs. Resolution is pure and deterministic: no network or cache access.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"laborstats/internal/models"
)

// ResolutionErrorKind classifies why a query could not be resolved.
type ResolutionErrorKind string

const (
	UnknownGeography ResolutionErrorKind = "unknown_geography"
	UnknownMeasure   ResolutionErrorKind = "unknown_measure"
	UnknownIndicator ResolutionErrorKind = "unknown_indicator"
	EmptyQuery       ResolutionErrorKind = "empty_query"
)

// ResolutionError reports a caller input problem. It affects only the series
// it was raised for, never sibling series in the same request.
type ResolutionError struct {
	Kind  ResolutionErrorKind
	Input string
}

func (e *ResolutionError) Error() string {
	switch e.Kind {
	case UnknownGeography:
		return fmt.Sprintf("unknown geography %q: use a state name, abbreviation, or FIPS code", e.Input)
	case UnknownMeasure:
		return fmt.Sprintf("unknown measure %q", e.Input)
	case UnknownIndicator:
		return fmt.Sprintf("unknown indicator %q", e.Input)
	default:
		return "query must name an indicator or a geography"
	}
}

// Resolver resolves logical queries against the built-in catalog plus any
// extra indicators registered at construction.
type Resolver struct {
	indicators map[string]Indicator
}

// New returns a resolver over the built-in national catalog merged with
// extra indicators (typically from the YAML config overlay). Extra entries
// with a key already in the catalog override the built-in mapping.
func New(extra map[string]Indicator) *Resolver {
	indicators := make(map[string]Indicator, len(nationalIndicators)+len(extra))
	for key, ind := range nationalIndicators {
		indicators[key] = ind
	}
	for key, ind := range extra {
		indicators[key] = ind
	}
	return &Resolver{indicators: indicators}
}

// Resolve maps a logical query to the series it identifies.
func (r *Resolver) Resolve(q models.Query) (*models.Series, error) {
	if q.Indicator != "" {
		return r.resolveIndicator(q.Indicator)
	}
	if q.Geography != "" {
		return r.resolveGeography(q)
	}
	return nil, &ResolutionError{Kind: EmptyQuery}
}

func (r *Resolver) resolveIndicator(key string) (*models.Series, error) {
	ind, ok := r.indicators[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil, &ResolutionError{Kind: UnknownIndicator, Input: key}
	}
	return &models.Series{
		ID:        ind.SeriesID,
		Title:     ind.Title,
		Geography: models.GeographyNational,
		Cadence:   models.CadenceMonthly,
	}, nil
}

func (r *Resolver) resolveGeography(q models.Query) (*models.Series, error) {
	measure := q.Measure
	if measure == "" {
		measure = "unemployment-rate"
	}
	code, ok := lausMeasures[strings.ToLower(strings.TrimSpace(measure))]
	if !ok {
		return nil, &ResolutionError{Kind: UnknownMeasure, Input: q.Measure}
	}

	geo := strings.TrimSpace(q.Geography)

	// A 5-digit numeric code is a county FIPS; everything else is resolved
	// as a state by name, abbreviation, or 2-digit FIPS.
	if isDigits(geo) && len(geo) == 5 {
		return &models.Series{
			ID:        BuildCountySeriesID(geo, code),
			Title:     fmt.Sprintf("County FIPS %s - %s", geo, lausMeasureTitles[code]),
			Geography: models.GeographyCounty,
			Measure:   code,
			Cadence:   models.CadenceMonthly,
		}, nil
	}

	fips, name, ok := ResolveState(geo)
	if !ok {
		return nil, &ResolutionError{Kind: UnknownGeography, Input: q.Geography}
	}
	return &models.Series{
		ID:        BuildStateSeriesID(fips, code, q.Seasonal),
		Title:     fmt.Sprintf("%s - %s", name, lausMeasureTitles[code]),
		Geography: models.GeographyState,
		Measure:   code,
		Cadence:   models.CadenceMonthly,
	}, nil
}

// ResolveState resolves a state name, abbreviation, or 2-digit FIPS code to
// (fips, full name). All three input forms for the same state yield the same
// FIPS code, and therefore byte-identical series IDs.
func ResolveState(input string) (fips, name string, ok bool) {
	val := strings.TrimSpace(input)
	if val == "" {
		return "", "", false
	}

	if full, ok := stateAbbreviations[strings.ToUpper(val)]; ok {
		return stateFIPS[full], full, true
	}

	for state, code := range stateFIPS {
		if strings.EqualFold(state, val) {
			return code, state, true
		}
	}

	if isDigits(val) && len(val) <= 2 {
		padded := val
		if len(padded) == 1 {
			padded = "0" + padded
		}
		if state, ok := fipsToState[padded]; ok {
			return padded, state, true
		}
	}

	return "", "", false
}

// BuildStateSeriesID builds a LAUS state series ID:
// LA + seasonal(S|U) + ST + 2-digit FIPS + 11 zeros + 2-digit measure.
func BuildStateSeriesID(fips, measure string, seasonal bool) string {
	adj := "U"
	if seasonal {
		adj = "S"
	}
	return "LA" + adj + "ST" + fips + "00000000000" + measure
}

// BuildCountySeriesID builds a LAUS county series ID:
// LAUCN + 5-digit FIPS + 8 zeros + 2-digit measure. County series are only
// published without seasonal adjustment.
func BuildCountySeriesID(countyFIPS, measure string) string {
	return "LAUCN" + countyFIPS + "00000000" + measure
}

// Indicators lists the national indicator catalog, sorted by key.
func (r *Resolver) Indicators() []models.IndicatorInfo {
	out := make([]models.IndicatorInfo, 0, len(r.indicators))
	for key, ind := range r.indicators {
		out = append(out, models.IndicatorInfo{Key: key, SeriesID: ind.SeriesID, Title: ind.Title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// SearchIndicators returns catalog entries whose key or title contains the
// keyword, case-insensitively.
func (r *Resolver) SearchIndicators(keyword string) []models.IndicatorInfo {
	kw := strings.ToLower(keyword)
	var out []models.IndicatorInfo
	for _, info := range r.Indicators() {
		if strings.Contains(strings.ToLower(info.Title), kw) || strings.Contains(info.Key, kw) {
			out = append(out, info)
		}
	}
	return out
}

// States lists all resolvable states with FIPS codes and an example
// unemployment-rate series ID, sorted by name.
func (r *Resolver) States() []models.StateInfo {
	out := make([]models.StateInfo, 0, len(stateFIPS))
	for name, fips := range stateFIPS {
		out = append(out, models.StateInfo{
			State:           name,
			Abbreviation:    stateToAbbreviation[name],
			FIPS:            fips,
			ExampleSeriesID: BuildStateSeriesID(fips, "03", true),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].State < out[j].State })
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
