package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/johnstarich/plaid/client"
	"github.com/johnstarich/plaid/country"
	"github.com/johnstarich/plaid/institution"
	"github.com/johnstarich/plaid/secret"
	"github.com/johnstarich/plaid/server"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	secretEnv       = "PLAID_SECRET"
	loggerDevEnv    = "DEVELOPMENT"
	defaultPort     = 8080
	defaultCount    = 100
	defaultCacheFor = 10 * time.Minute
)

// stringSlice is a repeatable string flag
type stringSlice []string

func (s *stringSlice) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

type flags struct {
	clientID      string
	env           string
	countries     stringSlice
	options       stringSlice
	institutionID string
	count         int
	offset        int
	isServer      bool
	port          uint
	rateLimit     float64
	cacheDuration time.Duration
}

func parseFlags(args []string) (*flags, bool, error) {
	var f flags
	flagSet := flag.NewFlagSet("plaid-institutions", flag.ContinueOnError)
	flagSet.StringVar(&f.clientID, "client-id", "", "Required: Plaid client ID. The secret is read from $"+secretEnv)
	flagSet.StringVar(&f.env, "env", string(client.Sandbox), "Plaid environment: sandbox, development, or production")
	flagSet.Var(&f.countries, "country", "Country code to search, may be repeated. Defaults to US")
	flagSet.Var(&f.options, "option", "Institution option to request, may be repeated: "+optionNames())
	flagSet.StringVar(&f.institutionID, "id", "", "Look up a single institution by ID instead of listing")
	flagSet.IntVar(&f.count, "count", defaultCount, "Number of institutions to list")
	flagSet.IntVar(&f.offset, "offset", 0, "Number of institutions to skip when listing")
	flagSet.BoolVar(&f.isServer, "server", false, "Serves the institution lookup API until terminated")
	flagSet.UintVar(&f.port, "port", 0, fmt.Sprintf("Sets the port the server listens on. Defaults to %d. Implies -server", defaultPort))
	flagSet.Float64Var(&f.rateLimit, "rate", 0, "Maximum requests per second sent to Plaid. 0 is unlimited")
	flagSet.DurationVar(&f.cacheDuration, "cache", defaultCacheFor, "How long to reuse institution lookups. 0 disables caching")
	if err := flagSet.Parse(args); err != nil {
		return nil, true, err
	}
	if err := requireFlags(flagSet); err != nil {
		return nil, true, errors.Errorf("%s\n%s", err.Error(), usage(flagSet))
	}

	f.isServer = f.isServer || f.port != 0
	if f.port == 0 {
		f.port = defaultPort
	}
	if f.port > 1<<16-1 {
		return nil, true, errors.Errorf("Port number must be a positive 16-bit integer: %d", f.port)
	}
	if len(f.countries) == 0 {
		f.countries = stringSlice{country.US.String()}
	}
	return &f, false, nil
}

func optionNames() string {
	var names []string
	for _, option := range institution.Options() {
		names = append(names, option.String())
	}
	return strings.Join(names, ", ")
}

func usage(flagSet *flag.FlagSet) string {
	oldOutput := flagSet.Output()
	buf := bytes.NewBuffer(nil)
	flagSet.SetOutput(buf)
	flagSet.Usage()
	flagSet.SetOutput(oldOutput)
	return buf.String()
}

func requireFlags(flagSet *flag.FlagSet) error {
	setFlags := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})
	var missingFlags []string
	flagSet.VisitAll(func(f *flag.Flag) {
		if strings.HasPrefix(f.Usage, "Required: ") && !setFlags[f.Name] {
			missingFlags = append(missingFlags, f.Name)
		}
	})
	if len(missingFlags) > 0 {
		return errors.Errorf("Missing required flags: %s", missingFlags)
	}
	return nil
}

func (f *flags) clientConfig(getenv func(string) string) (client.Config, error) {
	env, err := client.ParseEnvironment(f.env)
	if err != nil {
		return client.Config{}, err
	}
	s := getenv(secretEnv)
	if s == "" {
		return client.Config{}, errors.Errorf("Missing Plaid secret: set $%s", secretEnv)
	}
	config := client.Config{
		Environment:   env,
		ClientID:      f.clientID,
		Secret:        secret.New(s),
		CacheDuration: f.cacheDuration,
	}
	if f.rateLimit > 0 {
		config.RateLimit = rate.Limit(f.rateLimit)
		config.Burst = 1
	}
	return config, nil
}

func (f *flags) lookupOptions() ([]country.Code, []institution.Option, error) {
	codes, err := country.ParseAll(f.countries)
	if err != nil {
		return nil, nil, err
	}
	options := make([]institution.Option, 0, len(f.options))
	for _, name := range f.options {
		option, err := institution.ParseOption(name)
		if err != nil {
			return nil, nil, err
		}
		options = append(options, option)
	}
	return codes, options, nil
}

func getLoggerFromEnv() (*zap.Logger, error) {
	if os.Getenv(loggerDevEnv) == "true" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func lookup(ctx context.Context, f *flags, c server.Lookup, out io.Writer) error {
	codes, options, err := f.lookupOptions()
	if err != nil {
		return err
	}
	var result interface{}
	if f.institutionID != "" {
		result, err = c.GetInstitution(ctx, f.institutionID, codes, options...)
	} else {
		result, err = c.ListInstitutions(ctx, f.count, f.offset, codes, options...)
	}
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func handleErrors(ctx context.Context) (usageErr bool, err error) {
	f, usageErr, err := parseFlags(os.Args[1:])
	if err != nil {
		return usageErr, err
	}
	config, err := f.clientConfig(os.Getenv)
	if err != nil {
		return true, err
	}
	logger, err := getLoggerFromEnv()
	if err != nil {
		return false, err
	}
	defer logger.Sync()

	c, err := client.New(config, logger)
	if err != nil {
		return false, err
	}
	if f.isServer {
		errs := make(chan error, 1)
		go func() {
			errs <- server.Run(fmt.Sprintf("0.0.0.0:%d", f.port), c, logger)
		}()
		select {
		case err = <-errs:
			logger.Error("Server run failed", zap.Error(err))
			return false, err
		case <-ctx.Done():
			logger.Info("Shutting down server")
			return false, nil
		}
	}
	return false, lookup(ctx, f, c, os.Stdout)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		s := <-c
		fmt.Fprintln(os.Stderr, "Handling signal: "+s.String())
		cancel()
	}()

	usageErr, err := handleErrors(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if usageErr {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
