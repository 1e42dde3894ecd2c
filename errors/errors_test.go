package errors

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrIf(t *testing.T) {
	var errs Errors
	assert.False(t, errs.ErrIf(false, "not added"))
	assert.True(t, errs.ErrIf(true, "added %d", 1))
	require.Len(t, errs, 1)
	assert.Equal(t, "added 1", errs[0].Error())
}

func TestAddErr(t *testing.T) {
	var errs Errors
	assert.True(t, errs.AddErr(nil))
	assert.False(t, errs.AddErr(errors.New("one")))
	assert.False(t, errs.AddErr(Errors{errors.New("two"), errors.New("three")}))
	assert.Len(t, errs, 3)
	assert.Equal(t, "one\ntwo\nthree", errs.Error())
}

func TestErrOrNil(t *testing.T) {
	var errs Errors
	assert.NoError(t, errs.ErrOrNil())

	someErr := errors.New("some error")
	errs.AddErr(someErr)
	assert.Equal(t, someErr, errs.ErrOrNil())

	errs.AddErr(errors.New("another error"))
	assert.Equal(t, errs, errs.ErrOrNil())
}

func TestErrorsMarshalJSON(t *testing.T) {
	errs := Errors{errors.New("some error")}
	b, err := json.Marshal(errs)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"Description": "some error"}]`, string(b))

	b, err = json.Marshal(Errors{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))
}
