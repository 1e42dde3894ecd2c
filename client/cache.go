package client

import (
	"sort"
	"strings"
	"time"

	"github.com/johnstarich/plaid/country"
	"github.com/johnstarich/plaid/institution"
	"github.com/patrickmn/go-cache"
	"go.uber.org/atomic"
)

// institutionCache holds get by ID responses. A nil cache never stores anything.
type institutionCache struct {
	responses *cache.Cache
	hits      atomic.Int64
}

func newInstitutionCache(duration time.Duration) *institutionCache {
	if duration <= 0 {
		return nil
	}
	return &institutionCache{
		responses: cache.New(duration, duration*2),
	}
}

func (c *institutionCache) Get(key string) (institution.GetInstitutionResponse, bool) {
	if c == nil {
		return institution.GetInstitutionResponse{}, false
	}
	value, found := c.responses.Get(key)
	if !found {
		return institution.GetInstitutionResponse{}, false
	}
	c.hits.Inc()
	return value.(institution.GetInstitutionResponse), true
}

func (c *institutionCache) Set(key string, resp institution.GetInstitutionResponse) {
	if c == nil {
		return
	}
	c.responses.SetDefault(key, resp)
}

func (c *institutionCache) Hits() int64 {
	if c == nil {
		return 0
	}
	return c.hits.Load()
}

// cacheKey ignores the order of country codes and options
func cacheKey(institutionID string, countryCodes []country.Code, options []institution.Option) string {
	codes := make([]string, 0, len(countryCodes))
	for _, code := range countryCodes {
		codes = append(codes, code.String())
	}
	sort.Strings(codes)
	optionNames := make([]string, 0, len(options))
	for _, option := range options {
		optionNames = append(optionNames, option.String())
	}
	sort.Strings(optionNames)
	return institutionID + "|" + strings.Join(codes, ",") + "|" + strings.Join(optionNames, ",")
}
