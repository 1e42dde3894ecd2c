package client

import (
	"context"

	"github.com/johnstarich/plaid/country"
	"github.com/johnstarich/plaid/institution"
)

// GetInstitution looks up an institution by ID. Responses are cached if the Client has a cache duration.
// A malformed response returns the decode error unwrapped.
func (c *Client) GetInstitution(ctx context.Context, institutionID string, countryCodes []country.Code, options ...institution.Option) (institution.GetInstitutionResponse, error) {
	key := cacheKey(institutionID, countryCodes, options)
	if resp, found := c.cache.Get(key); found {
		return resp, nil
	}

	req := institution.NewGetInstitutionRequest(institutionID, c.clientID, c.secret, countryCodes, options...)
	b, err := c.post(ctx, getInstitutionPath, req)
	if err != nil {
		return institution.GetInstitutionResponse{}, err
	}
	resp, err := institution.DecodeGetInstitutionResponse(b)
	if err != nil {
		return institution.GetInstitutionResponse{}, err
	}
	c.cache.Set(key, resp)
	return resp, nil
}

// ListInstitutions returns up to count institutions, skipping the first offset
func (c *Client) ListInstitutions(ctx context.Context, count, offset int, countryCodes []country.Code, options ...institution.Option) (institution.ListInstitutionsResponse, error) {
	req := institution.NewListInstitutionsRequest(c.clientID, c.secret, count, offset, countryCodes, options...)
	b, err := c.post(ctx, listInstitutionsPath, req)
	if err != nil {
		return institution.ListInstitutionsResponse{}, err
	}
	return institution.DecodeListInstitutionsResponse(b)
}
