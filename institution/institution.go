// Package institution holds the request and response types of Plaid's institution lookup endpoints
package institution

import (
	"encoding/json"
	"fmt"

	"github.com/johnstarich/plaid/country"
	sErrors "github.com/johnstarich/plaid/errors"
)

const institutionType = "Institution"

// Institution is metadata about a financial institution supported by Plaid
type Institution struct {
	id             string
	name           string
	products       []string
	countryCodes   []country.Code
	url            *string
	primaryColor   *string
	logo           *string
	routingNumbers []string
	oauth          bool
}

type institutionJSON struct {
	InstitutionID  string         `json:"institution_id"`
	Name           string         `json:"name"`
	Products       []string       `json:"products"`
	CountryCodes   []country.Code `json:"country_codes"`
	URL            *string        `json:"url"`
	PrimaryColor   *string        `json:"primary_color"`
	Logo           *string        `json:"logo"`
	RoutingNumbers []string       `json:"routing_numbers"`
	OAuth          bool           `json:"oauth"`
}

// institutionWire detects absent and null fields. Pointers are nil for both.
type institutionWire struct {
	InstitutionID  *string   `json:"institution_id"`
	Name           *string   `json:"name"`
	Products       *[]string `json:"products"`
	CountryCodes   *[]string `json:"country_codes"`
	URL            *string   `json:"url"`
	PrimaryColor   *string   `json:"primary_color"`
	Logo           *string   `json:"logo"`
	RoutingNumbers *[]string `json:"routing_numbers"`
	OAuth          *bool     `json:"oauth"`
}

// ID returns Plaid's unique identifier for the institution
func (i Institution) ID() string {
	return i.id
}

// Name returns the official name of the institution
func (i Institution) Name() string {
	return i.name
}

// Products returns the Plaid products supported by the institution, e.g. "auth" or "transactions"
func (i Institution) Products() []string {
	return copyStrings(i.products)
}

// CountryCodes returns the countries the institution supports
func (i Institution) CountryCodes() []country.Code {
	return copyCodes(i.countryCodes)
}

// URL returns the institution's website, if known
func (i Institution) URL() (string, bool) {
	return optional(i.url)
}

// PrimaryColor returns the hexadecimal primary brand color, if known
func (i Institution) PrimaryColor() (string, bool) {
	return optional(i.primaryColor)
}

// Logo returns the base64 encoded logo, if known
func (i Institution) Logo() (string, bool) {
	return optional(i.logo)
}

// RoutingNumbers returns a partial list of routing numbers for the institution.
// It is only suitable for looking up institutions by routing number and is never a complete list.
func (i Institution) RoutingNumbers() []string {
	return copyStrings(i.routingNumbers)
}

// OAuth returns true if the institution has an OAuth login flow
func (i Institution) OAuth() bool {
	return i.oauth
}

// MarshalJSON implements json.Marshaler
func (i Institution) MarshalJSON() ([]byte, error) {
	return json.Marshal(institutionJSON{
		InstitutionID:  i.id,
		Name:           i.name,
		Products:       copyStrings(i.products),
		CountryCodes:   i.CountryCodes(),
		URL:            i.url,
		PrimaryColor:   i.primaryColor,
		Logo:           i.logo,
		RoutingNumbers: copyStrings(i.routingNumbers),
		OAuth:          i.oauth,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Errors are always sErrors.DecodeError or sErrors.Errors of them.
func (i *Institution) UnmarshalJSON(b []byte) error {
	inst, err := decodeInstitution(b)
	if err != nil {
		return err
	}
	*i = inst
	return nil
}

func decodeInstitution(b []byte) (Institution, error) {
	var wire institutionWire
	if err := json.Unmarshal(b, &wire); err != nil {
		return Institution{}, sErrors.NewDecodeError(institutionType, "", err)
	}

	var errs sErrors.Errors
	require := func(present bool, field string) {
		if !present {
			errs.AddErr(sErrors.MissingField(institutionType, field))
		}
	}
	require(wire.InstitutionID != nil, "institution_id")
	require(wire.Name != nil, "name")
	require(wire.Products != nil, "products")
	require(wire.CountryCodes != nil, "country_codes")
	require(wire.RoutingNumbers != nil, "routing_numbers")
	require(wire.OAuth != nil, "oauth")

	var codes []country.Code
	if wire.CountryCodes != nil {
		codes = make([]country.Code, 0, len(*wire.CountryCodes))
		for ix, s := range *wire.CountryCodes {
			code, err := country.Parse(s)
			if err != nil {
				errs.AddErr(sErrors.NewDecodeError(institutionType, fmt.Sprintf("country_codes[%d]", ix), err))
				continue
			}
			codes = append(codes, code)
		}
	}
	if err := errs.ErrOrNil(); err != nil {
		return Institution{}, err
	}

	return Institution{
		id:             *wire.InstitutionID,
		name:           *wire.Name,
		products:       copyStrings(*wire.Products),
		countryCodes:   codes,
		url:            wire.URL,
		primaryColor:   wire.PrimaryColor,
		logo:           wire.Logo,
		routingNumbers: copyStrings(*wire.RoutingNumbers),
		oauth:          *wire.OAuth,
	}, nil
}

// nest re-homes decode errors from a nested value under typeName's field
func nest(err error, typeName, field string) error {
	switch err := err.(type) {
	case sErrors.DecodeError:
		return err.Nest(typeName, field)
	case sErrors.Errors:
		var nested sErrors.Errors
		for _, e := range err {
			nested.AddErr(nest(e, typeName, field))
		}
		return nested.ErrOrNil()
	default:
		return sErrors.NewDecodeError(typeName, field, err)
	}
}

func copyStrings(s []string) []string {
	return append(make([]string, 0, len(s)), s...)
}

func optional(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
