// Package api exposes the HTTP surface: analyze, compare, stock listing,
// and health endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/validator/v10"
	"github.com/phuslu/log"
	"golang.org/x/exp/slices"

	"psxanalyzer/analyzer"
	"psxanalyzer/cache"
	"psxanalyzer/comparator"
	"psxanalyzer/config"
	"psxanalyzer/psx"
)

var companyURLPattern = regexp.MustCompile(`^https://dps\.psx\.com\.pk/company/[A-Za-z0-9]+$`)

const invalidURLDetail = "URL must match https://dps.psx.com.pk/company/{SYMBOL} " +
	"where SYMBOL contains only letters and numbers."

var validIndices = []string{"ALL", "KSE100", "KSE30"}

// Service wires the fetcher, cache, and settings behind the HTTP handlers.
type Service struct {
	fetcher  psx.Fetcher
	store    cache.Store
	settings config.Settings
	validate *validator.Validate
}

// NewService builds the handler service. The company-URL format is
// registered as a custom validation so request structs can declare it.
func NewService(fetcher psx.Fetcher, store cache.Store, settings config.Settings) *Service {
	validate := validator.New()
	_ = validate.RegisterValidation("psxurl", func(fl validator.FieldLevel) bool {
		return companyURLPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	return &Service{
		fetcher:  fetcher,
		store:    store,
		settings: settings,
		validate: validate,
	}
}

type analyzeRequest struct {
	URL string `json:"url" validate:"required,psxurl"`
}

type compareRequest struct {
	URLA string `json:"url_a" validate:"required,psxurl"`
	URLB string `json:"url_b" validate:"required,psxurl"`
}

type compareResponse struct {
	StockA     analyzer.AnalyzedCompany `json:"stock_a"`
	StockB     analyzer.AnalyzedCompany `json:"stock_b"`
	Comparison comparator.Result        `json:"comparison"`
}

type stockListResponse struct {
	Stocks []psx.StockListItem `json:"stocks"`
	Cached bool                `json:"cached"`
}

// HealthHandler reports service liveness.
func (s *Service) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// AnalyzeHandler scrapes one company page and returns the structured
// report with its analysis.
func (s *Service) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	url := strings.TrimSpace(req.URL)

	log.Info().Str("url", url).Msg("analyzing company")

	report, err := s.scrape(r.Context(), url)
	if err != nil {
		writeScrapeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzer.AnalyzeCompany(*report))
}

// CompareHandler scrapes two company pages concurrently and returns both
// analyzed reports plus the side-by-side comparison. Either side failing
// aborts the whole request.
func (s *Service) CompareHandler(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	urlA := strings.TrimSpace(req.URLA)
	urlB := strings.TrimSpace(req.URLB)

	log.Info().Str("url_a", urlA).Str("url_b", urlB).Msg("comparing companies")

	var (
		wg               sync.WaitGroup
		reportA, reportB *psx.CompanyReport
		errA, errB       error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		reportA, errA = s.scrape(r.Context(), urlA)
	}()
	go func() {
		defer wg.Done()
		reportB, errB = s.scrape(r.Context(), urlB)
	}()
	wg.Wait()

	if errA != nil {
		writeScrapeError(w, errA)
		return
	}
	if errB != nil {
		writeScrapeError(w, errB)
		return
	}

	stockA := analyzer.AnalyzeCompany(*reportA)
	stockB := analyzer.AnalyzeCompany(*reportB)

	writeJSON(w, http.StatusOK, compareResponse{
		StockA:     stockA,
		StockB:     stockB,
		Comparison: comparator.Compare(stockA, stockB),
	})
}

// StockListHandler returns the stock list for one PSX index, or all
// equities. Lists are cached per index.
func (s *Service) StockListHandler(w http.ResponseWriter, r *http.Request) {
	index := strings.ToUpper(r.URL.Query().Get("index"))
	if index == "" {
		index = "KSE100"
	}
	if !slices.Contains(validIndices, index) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf(
			"Invalid index. Must be one of: %s", strings.Join(validIndices, ", ")))
		return
	}

	key := "stocks:" + index
	stocks, cached, err := cache.Memoize(r.Context(), s.store, key, s.settings.StockListTTL, func() ([]psx.StockListItem, error) {
		return s.fetchStockList(r.Context(), index)
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	slices.SortFunc(stocks, func(a, b psx.StockListItem) int {
		return strings.Compare(a.Symbol, b.Symbol)
	})

	writeJSON(w, http.StatusOK, stockListResponse{Stocks: stocks, Cached: cached})
}

// scrape fetches, parses, and extracts one company page.
func (s *Service) scrape(ctx context.Context, url string) (*psx.CompanyReport, error) {
	html, err := s.fetcher.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &psx.ExtractError{Kind: psx.KindMalformed, Symbol: psx.SymbolFromURL(url)}
	}
	return psx.Extract(doc, url)
}

func (s *Service) fetchStockList(ctx context.Context, index string) ([]psx.StockListItem, error) {
	url := psx.ListURL(s.settings.PortalBaseURL, index)
	html, err := s.fetcher.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse stock list page: %w", err)
	}
	return psx.ExtractStockList(doc), nil
}

func (s *Service) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return false
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, invalidURLDetail)
		return false
	}
	return true
}

// writeScrapeError maps pipeline failures onto HTTP statuses: a missing
// company is a 404, an unreachable or slow portal a 502, anything else a
// 500 with a generic message.
func writeScrapeError(w http.ResponseWriter, err error) {
	var fetchErr *psx.FetchError
	if errors.As(err, &fetchErr) {
		if fetchErr.Kind == psx.FetchNotFound {
			writeError(w, http.StatusNotFound, fetchErr.Error())
			return
		}
		writeError(w, http.StatusBadGateway, fetchErr.Error())
		return
	}

	var extractErr *psx.ExtractError
	if errors.As(err, &extractErr) {
		writeError(w, http.StatusNotFound, extractErr.Error())
		return
	}

	log.Error().Err(err).Msg("unexpected scrape failure")
	writeError(w, http.StatusInternalServerError, "An internal error occurred. Please try again.")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
