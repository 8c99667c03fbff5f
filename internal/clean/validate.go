package clean

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	maxPartNumberLen = 50
	maxProjectLen    = 100
	maxPrice         = 10000.0
)

var partNumberPattern = regexp.MustCompile(`^[A-Z0-9\-_]+$`)

// validStatuses are the recognized activation status codes.
var validStatuses = map[string]bool{
	"A": true, "D": true, "0": true, "X": true,
}

// ValidatePartNumber checks a cleaned part-number value: uppercase
// alphanumerics, dashes and underscores, at most 50 characters.
func ValidatePartNumber(pn string) error {
	pn = strings.TrimSpace(pn)
	if pn == "" {
		return fmt.Errorf("part number is empty")
	}
	if len(pn) > maxPartNumberLen {
		return fmt.Errorf("part number exceeds %d characters: %q", maxPartNumberLen, pn)
	}
	if !partNumberPattern.MatchString(strings.ToUpper(pn)) {
		return fmt.Errorf("part number contains invalid characters: %q", pn)
	}
	return nil
}

// ValidateProject checks a project/program name.
func ValidateProject(project string) error {
	project = strings.TrimSpace(project)
	if project == "" {
		return fmt.Errorf("project name is empty")
	}
	if len(project) > maxProjectLen {
		return fmt.Errorf("project name exceeds %d characters", maxProjectLen)
	}
	return nil
}

// ValidateStatus checks an activation status value. Empty is allowed:
// an absent status is meaningful downstream.
func ValidateStatus(status string) error {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status == "" {
		return nil
	}
	if !validStatuses[status] {
		return fmt.Errorf("unrecognized status code: %q", status)
	}
	return nil
}

// ValidatePrice checks a unit price string. Empty is allowed.
func ValidatePrice(price string) error {
	price = strings.TrimSpace(price)
	if price == "" {
		return nil
	}
	v, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return fmt.Errorf("price is not numeric: %q", price)
	}
	if v < 0 || v > maxPrice {
		return fmt.Errorf("price out of range [0, %g]: %g", maxPrice, v)
	}
	return nil
}
