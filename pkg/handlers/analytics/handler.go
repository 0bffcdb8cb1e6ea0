package analytics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/eco-tools/cpi-pulse/pkg/adapters"
	"github.com/eco-tools/cpi-pulse/pkg/export"
	"github.com/eco-tools/cpi-pulse/pkg/models/api"
	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
	analyticssvc "github.com/eco-tools/cpi-pulse/pkg/services/analytics"
	"github.com/eco-tools/cpi-pulse/pkg/services/insight"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Default analysis window when the request carries no explicit range.
const defaultWindowYears = 2

type Handler struct {
	explorer analyticssvc.Explorer
	analyzer insight.Analyzer
}

func NewHandler(explorer analyticssvc.Explorer, analyzer insight.Analyzer) *Handler {
	return &Handler{
		explorer: explorer,
		analyzer: analyzer,
	}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	attrs, err := h.explorer.ListProducts(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list products")
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		return
	}

	response := make([]api.Product, 0, len(attrs))
	for _, attr := range attrs {
		response = append(response, adapters.MapPriceAttributeToApi(attr))
	}
	respondJSON(w, logger, response)
}

func (h *Handler) GetChangeRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	product := chi.URLParam(r, "product")
	start, end, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.explorer.GetChangeRates(ctx, product, start, end)
	if err != nil {
		logger.Error().Err(err).Str("product", product).Msg("failed to compute change rates")
		http.Error(w, "failed to compute change rates", http.StatusInternalServerError)
		return
	}

	respondJSON(w, logger, api.ChangeRateTable{
		Product: result.Product,
		Rates:   adapters.MapChangeRatesDomainToApi(result.Rates),
		Range:   adapters.MapDisplayRangeDomainToApi(result.Range),
	})
}

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	product := chi.URLParam(r, "product")
	start, end, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	metrics, err := h.explorer.GetMetrics(ctx, product, start, end)
	if err != nil {
		logger.Error().Err(err).Str("product", product).Msg("failed to compute metrics")
		http.Error(w, "failed to compute metrics", http.StatusInternalServerError)
		return
	}

	respondJSON(w, logger, adapters.MapMetricSetDomainToApi(*metrics))
}

func (h *Handler) ExportChangeRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	product := chi.URLParam(r, "product")
	start, end, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.explorer.GetChangeRates(ctx, product, start, end)
	if err != nil {
		logger.Error().Err(err).Str("product", product).Msg("failed to compute change rates for export")
		http.Error(w, "failed to export change rates", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "cpi-rates.xlsx"))
	if err := export.WriteChangeRates(w, result.Product, result.Rates); err != nil {
		logger.Error().Err(err).Str("product", product).Msg("failed to write export workbook")
	}
}

func (h *Handler) GetContributions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	start, end, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	includeCore := r.URL.Query().Get("core") == "true"
	categories := r.URL.Query()["category"]

	result, err := h.explorer.GetContributions(ctx, start, end, includeCore, categories)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute contributions")
		http.Error(w, "failed to compute contributions", http.StatusInternalServerError)
		return
	}

	respondJSON(w, logger, api.ContributionTable{
		Points: adapters.MapContributionPointsDomainToApi(result.Points),
		Range:  adapters.MapDisplayRangeDomainToApi(result.Range),
	})
}

func (h *Handler) GetContributionSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	start, end, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.explorer.GetContributionSummary(ctx, start, end)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute contribution summary")
		http.Error(w, "failed to compute contribution summary", http.StatusInternalServerError)
		return
	}

	response := api.ContributionSummary{
		Date:       summary.Date,
		Categories: make([]api.CategorySummary, 0, len(summary.Categories)),
		Waterfall:  make([]api.WaterfallBar, 0, len(summary.Waterfall)),
	}
	for _, category := range summary.Categories {
		response.Categories = append(response.Categories, adapters.MapCategorySummaryDomainToApi(category))
	}
	for _, bar := range summary.Waterfall {
		response.Waterfall = append(response.Waterfall, adapters.MapWaterfallBarDomainToApi(bar))
	}
	respondJSON(w, logger, response)
}

func (h *Handler) GenerateAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var request api.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(request.Products) == 0 {
		http.Error(w, "at least one product is required", http.StatusBadRequest)
		return
	}

	end := time.Now()
	start := end.AddDate(-defaultWindowYears, 0, 0)

	var metricSets []domain.MetricSet
	for _, product := range request.Products {
		metrics, err := h.explorer.GetMetrics(ctx, product, start, end)
		if err != nil {
			logger.Error().Err(err).Str("product", product).Msg("failed to compute metrics for analysis")
			http.Error(w, "failed to compute metrics", http.StatusInternalServerError)
			return
		}
		metricSets = append(metricSets, *metrics)
	}

	summary := insight.BuildMetricsSummary(metricSets)
	prompt := insight.BuildAnalysisPrompt(request.Products, summary)

	analysis, err := h.analyzer.Analyze(ctx, prompt)
	if err != nil {
		logger.Error().Err(err).Msg("analysis generation failed")
		http.Error(w, "analysis generation failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, logger, api.AnalysisResponse{
		Model:    h.analyzer.Model(),
		Summary:  summary,
		Analysis: analysis,
	})
}

func parseWindow(r *http.Request) (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(-defaultWindowYears, 0, 0)

	if raw := r.URL.Query().Get("end"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q", raw)
		}
		end = parsed
		start = end.AddDate(-defaultWindowYears, 0, 0)
	}
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q", raw)
		}
		start = parsed
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date must be before end date")
	}
	return start, end, nil
}

func respondJSON(w http.ResponseWriter, logger *zerolog.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
