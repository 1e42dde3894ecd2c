package institution

import (
	"encoding/json"

	"github.com/johnstarich/plaid/country"
	"github.com/johnstarich/plaid/secret"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// GetInstitutionRequest holds the parameters of a get institution by ID request.
// Fields are not validated here, Plaid responds with an error for invalid values.
type GetInstitutionRequest struct {
	InstitutionID string
	ClientID      string
	Secret        secret.Secret

	// CountryCodes should include at least one country the institution supports
	CountryCodes []country.Code
	Options      []Option
}

type getInstitutionRequestJSON struct {
	InstitutionID string          `json:"institution_id"`
	ClientID      string          `json:"client_id"`
	Secret        string          `json:"secret"`
	CountryCodes  []country.Code  `json:"country_codes"`
	Options       map[string]bool `json:"options"`
}

// NewGetInstitutionRequest creates a request for the institution with the given ID
func NewGetInstitutionRequest(institutionID, clientID string, s secret.Secret, countryCodes []country.Code, options ...Option) GetInstitutionRequest {
	return GetInstitutionRequest{
		InstitutionID: institutionID,
		ClientID:      clientID,
		Secret:        s,
		CountryCodes:  countryCodes,
		Options:       options,
	}
}

// MarshalJSON encodes the request body, including the plaintext secret
func (r GetInstitutionRequest) MarshalJSON() ([]byte, error) {
	options, err := EncodeOptions(r.Options)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to encode get institution request")
	}
	return json.Marshal(getInstitutionRequestJSON{
		InstitutionID: r.InstitutionID,
		ClientID:      r.ClientID,
		Secret:        r.Secret.Reveal(),
		CountryCodes:  copyCodes(r.CountryCodes),
		Options:       options,
	})
}

// MarshalLogObject implements zapcore.ObjectMarshaler. The secret is never logged.
func (r GetInstitutionRequest) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("institution_id", r.InstitutionID)
	enc.AddString("client_id", r.ClientID)
	return addCommonFields(enc, r.CountryCodes, r.Options)
}

// ListInstitutionsRequest holds the parameters of a paginated list institutions request
type ListInstitutionsRequest struct {
	ClientID     string
	Secret       secret.Secret
	Count        int
	Offset       int
	CountryCodes []country.Code
	Options      []Option
}

type listInstitutionsRequestJSON struct {
	ClientID     string          `json:"client_id"`
	Secret       string          `json:"secret"`
	Count        int             `json:"count"`
	Offset       int             `json:"offset"`
	CountryCodes []country.Code  `json:"country_codes"`
	Options      map[string]bool `json:"options"`
}

// NewListInstitutionsRequest creates a request for count institutions, skipping the first offset
func NewListInstitutionsRequest(clientID string, s secret.Secret, count, offset int, countryCodes []country.Code, options ...Option) ListInstitutionsRequest {
	return ListInstitutionsRequest{
		ClientID:     clientID,
		Secret:       s,
		Count:        count,
		Offset:       offset,
		CountryCodes: countryCodes,
		Options:      options,
	}
}

// MarshalJSON encodes the request body, including the plaintext secret
func (r ListInstitutionsRequest) MarshalJSON() ([]byte, error) {
	options, err := EncodeOptions(r.Options)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to encode list institutions request")
	}
	return json.Marshal(listInstitutionsRequestJSON{
		ClientID:     r.ClientID,
		Secret:       r.Secret.Reveal(),
		Count:        r.Count,
		Offset:       r.Offset,
		CountryCodes: copyCodes(r.CountryCodes),
		Options:      options,
	})
}

// MarshalLogObject implements zapcore.ObjectMarshaler. The secret is never logged.
func (r ListInstitutionsRequest) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("client_id", r.ClientID)
	enc.AddInt("count", r.Count)
	enc.AddInt("offset", r.Offset)
	return addCommonFields(enc, r.CountryCodes, r.Options)
}

type stringArray []string

func (s stringArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, elem := range s {
		enc.AppendString(elem)
	}
	return nil
}

func addCommonFields(enc zapcore.ObjectEncoder, codes []country.Code, options []Option) error {
	codeNames := make(stringArray, 0, len(codes))
	for _, code := range codes {
		codeNames = append(codeNames, code.String())
	}
	names := make(stringArray, 0, len(options))
	for _, option := range options {
		names = append(names, option.String())
	}
	if err := enc.AddArray("country_codes", codeNames); err != nil {
		return err
	}
	return enc.AddArray("options", names)
}

func copyCodes(codes []country.Code) []country.Code {
	return append(make([]country.Code, 0, len(codes)), codes...)
}
