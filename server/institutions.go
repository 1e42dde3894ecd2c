package server

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/johnstarich/plaid/client"
	"github.com/johnstarich/plaid/country"
	sErrors "github.com/johnstarich/plaid/errors"
	"github.com/johnstarich/plaid/institution"
	"go.uber.org/zap"
)

const (
	defaultCount = 100
	maxCount     = 500
)

func abortWithClientError(c *gin.Context, status int, err error) {
	logger := c.MustGet(loggerKey).(*zap.Logger)
	if status/100 == 5 {
		logger.Error("Aborting with server error", zap.Error(err))
	} else {
		logger.Info("Aborting with client error", zap.String("error", err.Error()))
	}
	body := gin.H{"Error": err.Error()}
	if errs, ok := err.(sErrors.Errors); ok {
		body["Errors"] = errs
	}
	c.AbortWithStatusJSON(status, body)
}

// abortWithLookupError maps Plaid failures onto a response status
func abortWithLookupError(c *gin.Context, err error) {
	switch err := err.(type) {
	case client.APIError:
		status := err.StatusCode
		if status == 0 {
			status = http.StatusBadGateway
		}
		abortWithClientError(c, status, err)
	case sErrors.DecodeError, sErrors.Errors:
		abortWithClientError(c, http.StatusBadGateway, err)
	default:
		abortWithClientError(c, http.StatusInternalServerError, err)
	}
}

// parseLookupQuery reads the repeated 'country' and 'option' query parameters
func parseLookupQuery(c *gin.Context) ([]country.Code, []institution.Option, error) {
	countries := c.QueryArray("country")
	if len(countries) == 0 {
		countries = []string{country.US.String()}
	}
	codes, err := country.ParseAll(countries)
	if err != nil {
		return nil, nil, err
	}

	var errs sErrors.Errors
	var options []institution.Option
	for _, name := range c.QueryArray("option") {
		option, err := institution.ParseOption(name)
		if errs.AddErr(err) {
			options = append(options, option)
		}
	}
	return codes, options, errs.ErrOrNil()
}

func queryInt(c *gin.Context, key string, defaultValue, min, max int) (int, error) {
	s, ok := c.GetQuery(key)
	if !ok {
		return defaultValue, nil
	}
	var errs sErrors.Errors
	value, err := strconv.Atoi(s)
	if errs.ErrIf(err != nil || value < min || value > max, "Query parameter '%s' must be an integer from %d to %d: '%s'", key, min, max, s) {
		return 0, errs.ErrOrNil()
	}
	return value, nil
}

func getInstitution(lookup Lookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		codes, options, err := parseLookupQuery(c)
		if err != nil {
			abortWithClientError(c, http.StatusBadRequest, err)
			return
		}
		resp, err := lookup.GetInstitution(c.Request.Context(), c.Param("id"), codes, options...)
		if err != nil {
			abortWithLookupError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func listInstitutions(lookup Lookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		var errs sErrors.Errors
		codes, options, err := parseLookupQuery(c)
		errs.AddErr(err)
		count, err := queryInt(c, "count", defaultCount, 1, maxCount)
		errs.AddErr(err)
		offset, err := queryInt(c, "offset", 0, 0, math.MaxInt32)
		errs.AddErr(err)
		if err := errs.ErrOrNil(); err != nil {
			abortWithClientError(c, http.StatusBadRequest, err)
			return
		}

		resp, err := lookup.ListInstitutions(c.Request.Context(), count, offset, codes, options...)
		if err != nil {
			abortWithLookupError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func getStats(s statser) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, s.Stats())
	}
}
