// Package country validates ISO-3166-1 alpha-2 country codes
package country

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Code is a validated, upper case ISO-3166-1 alpha-2 country code
type Code string

// Commonly requested codes
const (
	US Code = "US"
	CA Code = "CA"
	GB Code = "GB"
	IE Code = "IE"
	FR Code = "FR"
	ES Code = "ES"
	NL Code = "NL"
	DE Code = "DE"
)

// Error is returned when a string is not a valid alpha-2 country code
type Error struct {
	Input string
}

func (e Error) Error() string {
	return fmt.Sprintf("Invalid ISO-3166-1 alpha-2 country code: '%s'", e.Input)
}

// Parse validates s and returns its canonical Code
func Parse(s string) (Code, error) {
	if len(s) != 2 || !isLetter(s[0]) || !isLetter(s[1]) {
		return "", Error{Input: s}
	}
	upper := strings.ToUpper(s)
	if notAssigned[upper] {
		return "", Error{Input: s}
	}
	region, err := language.ParseRegion(upper)
	if err != nil || !region.IsCountry() || region.Canonicalize().String() != upper {
		// deprecated aliases like "UK" and "DD" canonicalize to another code
		return "", Error{Input: s}
	}
	return Code(upper), nil
}

// notAssigned holds codes the language package reports as countries which are not
// officially assigned ISO-3166-1 alpha-2 codes: exceptional reservations and
// withdrawn codes without a single successor.
var notAssigned = map[string]bool{
	"AC": true, // Ascension Island
	"CP": true, // Clipperton Island
	"CS": true, // Serbia and Montenegro
	"DG": true, // Diego Garcia
	"EA": true, // Ceuta, Melilla
	"EU": true,
	"EZ": true,
	"IC": true, // Canary Islands
	"SU": true, // USSR
	"TA": true, // Tristan da Cunha
	"UN": true,
	"YU": true, // Yugoslavia
}

// ParseAll parses each of codes, failing on the first invalid one
func ParseAll(codes []string) ([]Code, error) {
	parsed := make([]Code, 0, len(codes))
	for _, s := range codes {
		code, err := Parse(s)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, code)
	}
	return parsed, nil
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func (c Code) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, rejecting invalid codes
func (c *Code) UnmarshalText(b []byte) error {
	code, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = code
	return nil
}
