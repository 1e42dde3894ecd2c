package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/johnstarich/plaid/client"
	"github.com/johnstarich/plaid/country"
	"github.com/johnstarich/plaid/institution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestParseFlags(t *testing.T) {
	f, usageErr, err := parseFlags([]string{"-client-id", "abc", "-country", "US", "-country", "GB", "-option", "include_status", "-port", "9000"})
	require.NoError(t, err)
	assert.False(t, usageErr)
	assert.Equal(t, "abc", f.clientID)
	assert.Equal(t, stringSlice{"US", "GB"}, f.countries)
	assert.Equal(t, stringSlice{"include_status"}, f.options)
	assert.True(t, f.isServer, "-port implies -server")
	assert.Equal(t, uint(9000), f.port)
	assert.Equal(t, defaultCacheFor, f.cacheDuration)
}

func TestParseFlagsDefaults(t *testing.T) {
	f, _, err := parseFlags([]string{"-client-id", "abc"})
	require.NoError(t, err)
	assert.Equal(t, stringSlice{"US"}, f.countries)
	assert.Equal(t, string(client.Sandbox), f.env)
	assert.Equal(t, uint(defaultPort), f.port)
	assert.False(t, f.isServer)
	assert.Equal(t, defaultCount, f.count)
}

func TestParseFlagsErrors(t *testing.T) {
	_, usageErr, err := parseFlags(nil)
	assert.True(t, usageErr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing required flags: [client-id]")

	_, usageErr, err = parseFlags([]string{"-client-id", "abc", "-port", "70000"})
	assert.True(t, usageErr)
	assert.Error(t, err)

	_, usageErr, err = parseFlags([]string{"-not-a-flag"})
	assert.True(t, usageErr)
	assert.Error(t, err)
}

func TestUsageListsOptions(t *testing.T) {
	_, _, err := parseFlags(nil)
	require.Error(t, err)
	for _, option := range institution.Options() {
		assert.Contains(t, err.Error(), option.String())
	}
	assert.Equal(t, "include_optional_metadata, include_status", optionNames())
}

func TestClientConfig(t *testing.T) {
	f := &flags{clientID: "abc", env: "development", rateLimit: 2, cacheDuration: time.Minute}
	config, err := f.clientConfig(func(key string) string {
		assert.Equal(t, secretEnv, key)
		return "some secret"
	})
	require.NoError(t, err)
	assert.Equal(t, client.Development, config.Environment)
	assert.Equal(t, "abc", config.ClientID)
	assert.Equal(t, "some secret", config.Secret.Reveal())
	assert.Equal(t, rate.Limit(2), config.RateLimit)
	assert.Equal(t, 1, config.Burst)
	assert.Equal(t, time.Minute, config.CacheDuration)

	_, err = f.clientConfig(func(string) string { return "" })
	assert.EqualError(t, err, "Missing Plaid secret: set $PLAID_SECRET")

	f.env = "staging"
	_, err = f.clientConfig(func(string) string { return "some secret" })
	assert.Error(t, err)
}

func TestLookupOptions(t *testing.T) {
	f := &flags{countries: stringSlice{"us", "CA"}, options: stringSlice{"include_optional_metadata"}}
	codes, options, err := f.lookupOptions()
	require.NoError(t, err)
	assert.Equal(t, []country.Code{country.US, country.CA}, codes)
	assert.Equal(t, []institution.Option{institution.IncludeOptionalMetadata}, options)

	f.options = append(f.options, "nope")
	_, _, err = f.lookupOptions()
	assert.Error(t, err)
}

type fakeLookup struct {
	getCalls, listCalls int
}

func (f *fakeLookup) GetInstitution(ctx context.Context, institutionID string, countryCodes []country.Code, options ...institution.Option) (institution.GetInstitutionResponse, error) {
	f.getCalls++
	return institution.DecodeGetInstitutionResponse([]byte(`{"institution": {"institution_id": "` + institutionID + `", "name": "Bank A",
		"products": [], "country_codes": ["US"], "routing_numbers": [], "oauth": false}, "request_id": "req_1"}`))
}

func (f *fakeLookup) ListInstitutions(ctx context.Context, count, offset int, countryCodes []country.Code, options ...institution.Option) (institution.ListInstitutionsResponse, error) {
	f.listCalls++
	return institution.DecodeListInstitutionsResponse([]byte(`{"request_id": "req_2"}`))
}

func TestLookup(t *testing.T) {
	lookupClient := &fakeLookup{}
	var buf bytes.Buffer
	require.NoError(t, lookup(context.Background(), &flags{institutionID: "ins_1", countries: stringSlice{"US"}}, lookupClient, &buf))
	assert.Equal(t, 1, lookupClient.getCalls)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "req_1", got["request_id"])

	buf.Reset()
	require.NoError(t, lookup(context.Background(), &flags{count: 10, countries: stringSlice{"US"}}, lookupClient, &buf))
	assert.Equal(t, 1, lookupClient.listCalls)
	assert.JSONEq(t, `{"institutions": [], "request_id": "req_2"}`, buf.String())
}
