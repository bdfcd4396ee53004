package handler

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"match-service/internal/config"
	"match-service/internal/fileio"
	"match-service/internal/match/catalog"
	"match-service/internal/match/model"
	matchSvc "match-service/internal/match/service"
	"match-service/internal/middleware"
)

// WeightsSource hands out the point table in effect for a request.
type WeightsSource interface {
	Current() model.Weights
}

type matchResponse struct {
	Results  []model.Result `json:"results"`
	Skipped  skipped        `json:"skipped"`
	Weights  model.Weights  `json:"weights"`
	Products int            `json:"products"`
	Listings int            `json:"listings"`
}

type skipped struct {
	Products []issueJSON `json:"products"`
	Listings []issueJSON `json:"listings"`
}

// Match takes multipart "products" and "listings" files (JSON lines, CSV,
// XLSX or XLS), matches every product against every listing and answers with
// one result per accepted product. format=jsonl|xlsx switches the body to a
// results file.
func Match(cfg config.Config, weights WeightsSource, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := logger.With().Str("req_id", middleware.GetRequestID(r)).Logger()

		defer r.Body.Close()
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		pt, err := readUpload(r, "products", atoi(r.FormValue("p_header_row"), 1))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		lt, err := readUpload(r, "listings", atoi(r.FormValue("l_header_row"), 1))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		products, pIssues := catalog.Products(pt, productColumns(r))
		listings, lIssues := catalog.Listings(lt, listingColumns(r))
		logIssues(log, "products", pIssues)
		logIssues(log, "listings", lIssues)

		wt := weightsFrom(r, weights.Current())
		ctx := r.Context()
		if cfg.BatchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.BatchTimeout)
			defer cancel()
		}

		results, err := matchSvc.Run(ctx, products, listings, matchSvc.NewScorer(wt),
			matchSvc.Options{Workers: atoi(r.FormValue("workers"), cfg.Workers)})
		if err != nil {
			log.Warn().Err(err).Int("products", len(products)).Int("listings", len(listings)).Msg("match aborted")
			if errors.Is(err, context.DeadlineExceeded) {
				http.Error(w, "batch time budget exceeded", http.StatusGatewayTimeout)
			}
			return
		}

		switch strings.ToLower(r.FormValue("format")) {
		case "jsonl":
			w.Header().Set("Content-Type", "application/x-ndjson")
			w.Header().Set("Content-Disposition", `attachment; filename="results.txt"`)
			err = fileio.WriteJSONLines(w, results)
		case "xlsx":
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", `attachment; filename="results.xlsx"`)
			err = fileio.WriteXLSX(w, results)
		default:
			err = writeJSON(w, http.StatusOK, matchResponse{
				Results:  results,
				Skipped:  skipped{Products: issuesJSON(pIssues), Listings: issuesJSON(lIssues)},
				Weights:  wt,
				Products: len(products),
				Listings: len(listings),
			})
		}
		if err != nil {
			log.Error().Err(err).Msg("write response")
			return
		}

		log.Info().
			Int("products", len(products)).
			Int("listings", len(listings)).
			Int("skipped_products", len(pIssues)).
			Int("skipped_listings", len(lIssues)).
			Dur("elapsed", time.Since(start)).
			Msg("match done")
	}
}

type scoreRequest struct {
	Product model.Product  `json:"product"`
	Listing model.Listing  `json:"listing"`
	Weights *model.Weights `json:"weights,omitempty"`
}

// Score explains the decision for a single (product, listing) pair.
func Score(weights WeightsSource, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req scoreRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		switch {
		case strings.TrimSpace(req.Product.Model) == "":
			http.Error(w, catalog.ErrMissingModel.Error(), http.StatusUnprocessableEntity)
			return
		case strings.TrimSpace(req.Product.Manufacturer) == "":
			http.Error(w, catalog.ErrMissingManufacturer.Error(), http.StatusUnprocessableEntity)
			return
		}

		wt := weights.Current()
		if req.Weights != nil {
			if err := config.ValidateWeights(*req.Weights); err != nil {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			wt = *req.Weights
		}

		d := matchSvc.NewScorer(wt).Score(req.Product, req.Listing)
		logger.Debug().
			Str("req_id", middleware.GetRequestID(r)).
			Str("model", req.Product.Model).
			Str("title", req.Listing.Title).
			Float64("points", d.Points).
			Bool("match", d.Match).
			Msg("score")
		if err := writeJSON(w, http.StatusOK, d); err != nil {
			logger.Error().Err(err).Msg("write json")
		}
	}
}

func readUpload(r *http.Request, field string, headerRow int) (fileio.Table, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return fileio.Table{}, errors.New("missing " + field + ": " + err.Error())
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	t, err := fileio.ReadAnyMaps(f, hdr.Filename, headerRow)
	if err != nil {
		return fileio.Table{}, errors.New("failed to read " + field + ": " + err.Error())
	}
	return t, nil
}

// logIssues reports skipped rows; past the first few only the count is logged.
func logIssues(log zerolog.Logger, what string, issues []fileio.Issue) {
	const maxLogged = 20
	for i, is := range issues {
		if i == maxLogged {
			log.Warn().Str("file", what).Int("more", len(issues)-maxLogged).Msg("more rows skipped")
			return
		}
		log.Warn().Str("file", what).Int("line", is.Line).Err(is.Err).Msg("row skipped")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
