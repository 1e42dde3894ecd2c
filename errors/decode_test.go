package errors

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingField(t *testing.T) {
	err := MissingField("GetInstitutionResponse", "request_id")
	assert.True(t, err.Missing())
	assert.EqualError(t, err, "Failed to decode GetInstitutionResponse: missing required field 'request_id'")
}

func TestNewDecodeError(t *testing.T) {
	cause := errors.New("bad shape")
	err := NewDecodeError("Institution", "name", cause)
	assert.False(t, err.Missing())
	assert.Equal(t, cause, err.Unwrap())
	assert.EqualError(t, err, "Failed to decode Institution: malformed field 'name': bad shape")

	err = NewDecodeError("Institution", "", cause)
	assert.EqualError(t, err, "Failed to decode Institution: bad shape")
}

func TestNewDecodeErrorFromTypeError(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	jsonErr := json.Unmarshal([]byte(`{"name": 1}`), &v)
	require.IsType(t, &json.UnmarshalTypeError{}, jsonErr)

	err := NewDecodeError("Institution", "", jsonErr)
	assert.Equal(t, "name", err.Field)
}

func TestNest(t *testing.T) {
	err := MissingField("Institution", "name").Nest("GetInstitutionResponse", "institution")
	assert.Equal(t, MissingField("GetInstitutionResponse", "institution.name"), err)

	cause := errors.New("syntax")
	err = NewDecodeError("Institution", "", cause).Nest("ListInstitutionsResponse", "institutions[2]")
	assert.Equal(t, DecodeError{Type: "ListInstitutionsResponse", Field: "institutions[2]", Cause: cause}, err)
}
