package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"match-service/internal/config"
	"match-service/internal/fileio"
	"match-service/internal/match/catalog"
	"match-service/internal/match/model"
	matchSvc "match-service/internal/match/service"
)

const (
	defaultProducts = "products.txt"
	defaultListings = "listings.txt"
	defaultResults  = "results.txt"
)

type runOptions struct {
	products    string
	listings    string
	output      string
	weightsFile string
	workers     int
	timeout     time.Duration
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "match [products-file listings-file]",
		Short: "Match product records against retailer listings",
		Long: "Reads products and listings (JSON lines, CSV, XLSX or XLS), decides for every\n" +
			"pair whether the listing advertises the product and writes one result line\n" +
			"per product. Without arguments " + defaultProducts + " and " + defaultListings + " are used;\n" +
			"when given, both files must be named.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return errors.New("give both the products and the listings file, or neither")
			}
			return nil
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.products, opts.listings = defaultProducts, defaultListings
			if len(args) == 2 {
				opts.products, opts.listings = args[0], args[1]
			}
			logger := config.SetupLogger(config.Config{LogLevel: opts.logLevel})
			return run(cmd.Context(), opts, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultResults, "results file (.txt/.jsonl or .xlsx)")
	cmd.Flags().StringVarP(&opts.weightsFile, "weights", "w", os.Getenv("WEIGHTS_FILE"), "YAML file with the point table")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "parallel workers (0 = all CPUs)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "give up after this long (0 = no limit)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}

// run is the batch: check inputs, load, match, write, report the elapsed time.
func run(ctx context.Context, opts runOptions, stdout io.Writer, logger zerolog.Logger) error {
	start := time.Now()

	for _, f := range []struct{ what, path string }{{"products", opts.products}, {"listings", opts.listings}} {
		if _, err := os.Stat(f.path); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s file not found: %s", f.what, f.path)
		} else if err != nil {
			return fmt.Errorf("%s file: %w", f.what, err)
		}
	}

	weights, err := config.LoadWeights(opts.weightsFile)
	if err != nil {
		return err
	}

	listings, err := loadListings(opts.listings, logger)
	if err != nil {
		return err
	}
	products, err := loadProducts(opts.products, logger)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}
	results, err := matchSvc.Run(ctx, products, listings, matchSvc.NewScorer(weights), matchSvc.Options{Workers: opts.workers})
	if err != nil {
		return fmt.Errorf("match: %w", err)
	}

	if err := writeResults(opts.output, results); err != nil {
		return err
	}

	matched := 0
	for _, r := range results {
		matched += len(r.Listings)
	}
	logger.Info().
		Int("products", len(products)).
		Int("listings", len(listings)).
		Int("matches", matched).
		Str("output", opts.output).
		Msg("results written")
	fmt.Fprintf(stdout, "Completed in %s!\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func readTable(path string) (fileio.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileio.Table{}, err
	}
	defer f.Close()
	return fileio.ReadAnyMaps(f, path, 1)
}

func loadProducts(path string, logger zerolog.Logger) ([]model.Product, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	products, issues := catalog.Products(t, catalog.DefaultProductColumns())
	reportIssues(logger, path, issues)
	return products, nil
}

func loadListings(path string, logger zerolog.Logger) ([]model.Listing, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("read listings: %w", err)
	}
	listings, issues := catalog.Listings(t, catalog.DefaultListingColumns())
	reportIssues(logger, path, issues)
	return listings, nil
}

func reportIssues(logger zerolog.Logger, path string, issues []fileio.Issue) {
	for _, is := range issues {
		logger.Warn().Str("file", path).Int("line", is.Line).Err(is.Err).Msg("could not read line, skipped")
	}
}

func writeResults(path string, results []model.Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return fileio.WriteXLSX(f, results)
	}
	return fileio.WriteJSONLines(f, results)
}
