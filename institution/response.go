package institution

import (
	"encoding/json"
	"fmt"

	sErrors "github.com/johnstarich/plaid/errors"
)

const (
	listResponseType = "ListInstitutionsResponse"
	getResponseType  = "GetInstitutionResponse"
)

// ListInstitutionsResponse is the result of listing institutions
type ListInstitutionsResponse struct {
	institutions []Institution
	requestID    string
}

type listInstitutionsResponseWire struct {
	Institutions []json.RawMessage `json:"institutions"`
	RequestID    *string           `json:"request_id"`
}

type listInstitutionsResponseJSON struct {
	Institutions []Institution `json:"institutions"`
	RequestID    string        `json:"request_id"`
}

// DecodeListInstitutionsResponse decodes a wire payload. A missing institutions list is empty.
func DecodeListInstitutionsResponse(b []byte) (ListInstitutionsResponse, error) {
	var wire listInstitutionsResponseWire
	if err := json.Unmarshal(b, &wire); err != nil {
		return ListInstitutionsResponse{}, sErrors.NewDecodeError(listResponseType, "", err)
	}

	var errs sErrors.Errors
	errs.AddErr(requireRequestID(listResponseType, wire.RequestID))
	institutions := make([]Institution, 0, len(wire.Institutions))
	for ix, raw := range wire.Institutions {
		inst, err := decodeInstitution(raw)
		if err != nil {
			errs.AddErr(nest(err, listResponseType, fmt.Sprintf("institutions[%d]", ix)))
			continue
		}
		institutions = append(institutions, inst)
	}
	if err := errs.ErrOrNil(); err != nil {
		return ListInstitutionsResponse{}, err
	}
	return ListInstitutionsResponse{
		institutions: institutions,
		requestID:    *wire.RequestID,
	}, nil
}

// Institutions returns the listed institutions
func (l ListInstitutionsResponse) Institutions() []Institution {
	return append(make([]Institution, 0, len(l.institutions)), l.institutions...)
}

// RequestID returns Plaid's identifier for the request that produced this response
func (l ListInstitutionsResponse) RequestID() string {
	return l.requestID
}

// MarshalJSON implements json.Marshaler
func (l ListInstitutionsResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(listInstitutionsResponseJSON{
		Institutions: l.Institutions(),
		RequestID:    l.requestID,
	})
}

// UnmarshalJSON implements json.Unmarshaler with the same rules as DecodeListInstitutionsResponse
func (l *ListInstitutionsResponse) UnmarshalJSON(b []byte) error {
	resp, err := DecodeListInstitutionsResponse(b)
	if err != nil {
		return err
	}
	*l = resp
	return nil
}

// GetInstitutionResponse is the result of getting an institution by ID
type GetInstitutionResponse struct {
	institution Institution
	requestID   string
}

type getInstitutionResponseWire struct {
	Institution json.RawMessage `json:"institution"`
	RequestID   *string         `json:"request_id"`
}

type getInstitutionResponseJSON struct {
	Institution Institution `json:"institution"`
	RequestID   string      `json:"request_id"`
}

// DecodeGetInstitutionResponse decodes a wire payload. Both institution and request_id are required.
func DecodeGetInstitutionResponse(b []byte) (GetInstitutionResponse, error) {
	var wire getInstitutionResponseWire
	if err := json.Unmarshal(b, &wire); err != nil {
		return GetInstitutionResponse{}, sErrors.NewDecodeError(getResponseType, "", err)
	}

	var errs sErrors.Errors
	var inst Institution
	if isNull(wire.Institution) {
		errs.AddErr(sErrors.MissingField(getResponseType, "institution"))
	} else {
		var err error
		inst, err = decodeInstitution(wire.Institution)
		if err != nil {
			errs.AddErr(nest(err, getResponseType, "institution"))
		}
	}
	errs.AddErr(requireRequestID(getResponseType, wire.RequestID))
	if err := errs.ErrOrNil(); err != nil {
		return GetInstitutionResponse{}, err
	}
	return GetInstitutionResponse{
		institution: inst,
		requestID:   *wire.RequestID,
	}, nil
}

// Institution returns the requested institution
func (g GetInstitutionResponse) Institution() Institution {
	return g.institution
}

// RequestID returns Plaid's identifier for the request that produced this response
func (g GetInstitutionResponse) RequestID() string {
	return g.requestID
}

// MarshalJSON implements json.Marshaler
func (g GetInstitutionResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(getInstitutionResponseJSON{
		Institution: g.institution,
		RequestID:   g.requestID,
	})
}

// UnmarshalJSON implements json.Unmarshaler with the same rules as DecodeGetInstitutionResponse
func (g *GetInstitutionResponse) UnmarshalJSON(b []byte) error {
	resp, err := DecodeGetInstitutionResponse(b)
	if err != nil {
		return err
	}
	*g = resp
	return nil
}

func requireRequestID(typeName string, requestID *string) error {
	if requestID == nil {
		return sErrors.MissingField(typeName, "request_id")
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
