// Package tle decodes Two-Line-Element text into orbital element sets.
//
// TLE feeds are repeating three-line groups (name, line 1, line 2) where
// every field lives at a fixed column range of a 69-column line. Parsing is
// deliberately forgiving at the group level: a malformed triplet is reported
// and skipped, and the rest of the input is still parsed.
package tle

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/signalsfoundry/orbital-sentinel/model"
)

// Reporter receives the object name and error for each triplet that failed
// to parse. A nil Reporter drops the reports.
type Reporter func(name string, err error)

// Parse decodes raw TLE text into element sets, skipping malformed triplets.
func Parse(text string) []model.ElementSet {
	return ParseWithReporter(text, nil)
}

// ParseWithReporter is Parse with per-triplet failure reporting.
//
// Lines are consumed in groups of exactly three; a dangling partial group at
// the end of the input is dropped. Field errors within a group exclude that
// group only. The returned order matches input order.
func ParseWithReporter(text string, report Reporter) []model.ElementSet {
	lines := splitLines(text)

	var sets []model.ElementSet
	for i := 0; i+2 < len(lines); i += 3 {
		name := strings.TrimSpace(lines[i])
		set, err := parseSet(name, lines[i+1], lines[i+2])
		if err != nil {
			if report != nil {
				report(name, err)
			}
			continue
		}
		sets = append(sets, set)
	}
	return sets
}

// parseSet decodes a single (name, line1, line2) group.
func parseSet(name, line1, line2 string) (model.ElementSet, error) {
	catnum, err := column(line1, 2, 7)
	if err != nil {
		return model.ElementSet{}, fmt.Errorf("catalog number: %w", err)
	}

	designator, err := column(line1, 9, 17)
	if err != nil {
		return model.ElementSet{}, fmt.Errorf("international designator: %w", err)
	}

	epochYear, err := columnInt(line1, 18, 20)
	if err != nil {
		return model.ElementSet{}, fmt.Errorf("epoch year: %w", err)
	}
	epochDay, err := columnFloat(line1, 20, 32)
	if err != nil {
		return model.ElementSet{}, fmt.Errorf("epoch day: %w", err)
	}

	inclination, err := columnFloat(line2, 8, 16)
	if err != nil {
		return model.ElementSet{}, fmt.Errorf("inclination: %w", err)
	}

	// Eccentricity is stored as the digits after an implicit "0." prefix.
	eccDigits, err := column(line2, 26, 33)
	if err != nil {
		return model.ElementSet{}, fmt.Errorf("eccentricity: %w", err)
	}
	eccentricity, err := strconv.ParseFloat("0."+eccDigits, 64)
	if err != nil {
		return model.ElementSet{}, fmt.Errorf("eccentricity %q: %w", eccDigits, err)
	}

	meanMotion, err := columnFloat(line2, 52, 63)
	if err != nil {
		return model.ElementSet{}, fmt.Errorf("mean motion: %w", err)
	}

	return model.ElementSet{
		Name:           name,
		CatalogNumber:  catnum,
		IntlDesignator: designator,
		Epoch:          epochTime(resolveYear(epochYear), epochDay),
		MeanMotion:     meanMotion,
		Eccentricity:   eccentricity,
		InclinationDeg: inclination,
		Line1:          line1,
		Line2:          line2,
	}, nil
}

// column extracts the [start,end) byte range of a fixed-width line, trimmed.
// A line shorter than end is rejected rather than silently truncated.
func column(line string, start, end int) (string, error) {
	if len(line) < end {
		return "", fmt.Errorf("line is %d columns, field needs [%d,%d)", len(line), start, end)
	}
	return strings.TrimSpace(line[start:end]), nil
}

func columnInt(line string, start, end int) (int, error) {
	s, err := column(line, start, end)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return v, nil
}

func columnFloat(line string, start, end int) (float64, error) {
	s, err := column(line, start, end)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// resolveYear maps a TLE two-digit year to a full year. Values below 57 are
// 2000s, the rest 1900s (the catalog starts with Sputnik in 1957).
func resolveYear(twoDigit int) int {
	if twoDigit < 57 {
		return 2000 + twoDigit
	}
	return 1900 + twoDigit
}

// epochTime converts a fractional day-of-year to a UTC timestamp.
// Day 1.0 is January 1 at 00:00.
func epochTime(year int, dayOfYear float64) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return jan1.Add(time.Duration((dayOfYear - 1) * 24 * float64(time.Hour)))
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimRight(l, " \t\r"))
	}
	// Drop surrounding blank lines so they don't form phantom groups.
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
