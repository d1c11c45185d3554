package models

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterAll is the control value meaning "no restriction".
const FilterAll = "all"

// FilterState is the current selection of the dashboard filter controls.
// A zero Year or empty Company means "all".
type FilterState struct {
	Year    int
	Company string
}

// ParseFilterState builds a FilterState from the raw control values.
// Empty strings and "all" leave the dimension unrestricted.
func ParseFilterState(year, company string) (FilterState, error) {
	var fs FilterState

	year = strings.TrimSpace(year)
	if year != "" && !strings.EqualFold(year, FilterAll) {
		y, err := strconv.Atoi(year)
		if err != nil || y <= 0 {
			return FilterState{}, fmt.Errorf("invalid year filter %q", year)
		}
		fs.Year = y
	}

	company = strings.TrimSpace(company)
	if company != "" && !strings.EqualFold(company, FilterAll) {
		fs.Company = company
	}

	return fs, nil
}

// IsAll reports whether the filter lets every record through.
func (f FilterState) IsAll() bool {
	return f.Year == 0 && f.Company == ""
}

// YearValue is the control value for the year selector.
func (f FilterState) YearValue() string {
	if f.Year == 0 {
		return FilterAll
	}
	return strconv.Itoa(f.Year)
}

// CompanyValue is the control value for the company selector.
func (f FilterState) CompanyValue() string {
	if f.Company == "" {
		return FilterAll
	}
	return f.Company
}

// FilterOptions lists the values available to the filter controls
// for the dataset currently held by the dashboard.
type FilterOptions struct {
	Years     []int    `json:"years"`
	Companies []string `json:"companies"`
}
