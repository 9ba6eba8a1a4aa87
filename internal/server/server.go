// Package server exposes the amortisation calculator as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/loan-amortisation/internal/comparison"
	"github.com/iwvelando/loan-amortisation/internal/config"
	"github.com/iwvelando/loan-amortisation/pkg/amortisation"
	"github.com/iwvelando/loan-amortisation/pkg/constants"
	"github.com/iwvelando/loan-amortisation/pkg/currency"
	"github.com/iwvelando/loan-amortisation/pkg/datetime"
	"github.com/iwvelando/loan-amortisation/pkg/output"
	"github.com/iwvelando/loan-amortisation/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	currencies     currency.Lookup
	now            func() time.Time
}

// NewHandler constructs the HTTP handler that serves the schedule API.
// A nil currencies lookup falls back to the built-in locale table.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string, currencies currency.Lookup) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if currencies == nil {
		currencies = currency.NewLocaleTable()
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		currencies:     currencies,
		now:            time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule", h.handleSchedule)
	mux.HandleFunc("/api/schedule.csv", h.handleScheduleCSV)
	mux.HandleFunc("/api/currency", h.handleCurrency)
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// scheduleRequest is the loan form as submitted by a client.
type scheduleRequest struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermYears         int     `json:"termYears"`
	TermMonths        int     `json:"termMonths"`
	RecurringExtra    float64 `json:"recurringExtra"`
	LumpSum           float64 `json:"lumpSum"`
	LumpSumDate       string  `json:"lumpSumDate"`
	StartDate         string  `json:"startDate"`
	Locale            string  `json:"locale"`
}

func (req scheduleRequest) configuration() *config.Configuration {
	return &config.Configuration{
		Loan: config.LoanConfig{
			Principal:    req.Principal,
			InterestRate: req.AnnualRatePercent,
			TermYears:    req.TermYears,
			TermMonths:   req.TermMonths,
			StartDate:    req.StartDate,
		},
		Overpayment: config.OverpaymentConfig{
			RecurringExtra: req.RecurringExtra,
			LumpSum:        req.LumpSum,
			LumpSumDate:    req.LumpSumDate,
		},
		Locale: req.Locale,
	}
}

type scheduleResponse struct {
	Summary        []summaryRow     `json:"summary"`
	Baseline       scheduleSnapshot `json:"baseline"`
	Overpaid       scheduleSnapshot `json:"overpaid"`
	InterestSaved  float64          `json:"interestSaved"`
	MonthsSaved    int              `json:"monthsSaved"`
	CSV            string           `json:"csv"`
	CurrencySymbol string           `json:"currencySymbol"`
	Warnings       []string         `json:"warnings,omitempty"`
	Duration       string           `json:"duration"`
}

type summaryRow struct {
	Label   string `json:"label"`
	Without string `json:"without"`
	With    string `json:"with"`
	Changed bool   `json:"changed,omitempty"`
}

type scheduleSnapshot struct {
	MonthlyPayment float64     `json:"monthlyPayment"`
	PayoffDate     string      `json:"payoffDate"`
	TotalPayment   float64     `json:"totalPayment"`
	TotalInterest  float64     `json:"totalInterest"`
	TotalPrincipal float64     `json:"totalPrincipal"`
	Entries        []entryJSON `json:"entries"`
}

type entryJSON struct {
	Period    int     `json:"period"`
	Date      string  `json:"date"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

type currencyResponse struct {
	Locale string `json:"locale"`
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// requestError is a failure to turn a request into a comparison, carrying
// the status to answer with.
type requestError struct {
	status int
	msg    string
	errs   []string
}

func (e *requestError) Error() string {
	return e.msg
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, c, warnings, err := h.compare(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	csvData, err := output.CSVString(c.Overpaid)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
		return
	}

	symbol := h.currencies.Symbol(localeOrDefault(req.Locale))
	elapsed := time.Since(start)

	response := scheduleResponse{
		Summary:        buildSummary(c, symbol),
		Baseline:       buildSnapshot(c.Baseline),
		Overpaid:       buildSnapshot(c.Overpaid),
		InterestSaved:  c.InterestSaved,
		MonthsSaved:    c.MonthsSaved,
		CSV:            csvData,
		CurrencySymbol: symbol,
		Warnings:       warnings,
		Duration:       elapsed.String(),
	}

	h.logger.Info("schedule computed",
		zap.String("op", op),
		zap.Int("baseline_periods", c.Baseline.Len()),
		zap.Int("overpaid_periods", c.Overpaid.Len()),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleScheduleCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScheduleCSV"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	which := r.URL.Query().Get("schedule")
	filename := "amortisation-schedule.csv"
	switch which {
	case "", "overpaid":
	case "baseline":
		filename = "amortisation-schedule-baseline.csv"
	default:
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("unknown schedule %q: expected baseline or overpaid", which), op)
		return
	}

	_, c, _, err := h.compare(w, r)
	if err != nil {
		h.respondRequestError(w, err, op)
		return
	}

	schedule := c.Overpaid
	if which == "baseline" {
		schedule = c.Baseline
	}

	csvData, err := output.CSVString(schedule)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render csv: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, csvData); err != nil {
		h.logger.Error("failed to write csv response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleCurrency(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	locale := currency.Normalize(localeOrDefault(r.URL.Query().Get("locale")))
	h.writeJSON(w, http.StatusOK, currencyResponse{
		Locale: locale,
		Code:   h.currencies.Code(locale),
		Symbol: h.currencies.Symbol(locale),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// compare decodes and validates the request body and runs the comparison.
func (h *handler) compare(w http.ResponseWriter, r *http.Request) (scheduleRequest, *comparison.Comparison, []string, error) {
	var req scheduleRequest

	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return req, nil, nil, &requestError{
				status: http.StatusRequestEntityTooLarge,
				msg:    fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize),
			}
		}
		return req, nil, nil, &requestError{
			status: http.StatusBadRequest,
			msg:    fmt.Sprintf("failed to decode request: %v", err),
		}
	}

	conf := req.configuration()
	spec, policy, start, err := conf.Inputs(h.now())
	if err != nil {
		messages := validation.Messages(err)
		return req, nil, nil, &requestError{
			status: http.StatusBadRequest,
			msg:    strings.Join(messages, "; "),
			errs:   messages,
		}
	}

	c, err := comparison.Compare(h.logger, spec, policy, start)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, amortisation.ErrInvalidInput) || errors.Is(err, amortisation.ErrInvalidTerm) {
			status = http.StatusBadRequest
		}
		return req, nil, nil, &requestError{status: status, msg: err.Error()}
	}

	return req, c, conf.ValidateConfiguration(), nil
}

func buildSummary(c *comparison.Comparison, symbol string) []summaryRow {
	baseline := c.BaselineSummary.Rows(symbol)
	overpaid := c.OverpaidSummary.Rows(symbol)

	changed := make(map[string]bool)
	for _, label := range c.Changed() {
		changed[label] = true
	}

	rows := make([]summaryRow, 0, len(baseline))
	for i := range baseline {
		rows = append(rows, summaryRow{
			Label:   baseline[i].Label,
			Without: baseline[i].Value,
			With:    overpaid[i].Value,
			Changed: changed[baseline[i].Label],
		})
	}
	return rows
}

func buildSnapshot(result amortisation.Result) scheduleSnapshot {
	entries := make([]entryJSON, 0, result.Len())
	for _, e := range result.Entries {
		entries = append(entries, entryJSON{
			Period:    e.Period,
			Date:      datetime.FormatDate(e.Date),
			Payment:   e.Payment,
			Principal: e.Principal,
			Interest:  e.Interest,
			Balance:   e.Balance,
		})
	}
	return scheduleSnapshot{
		MonthlyPayment: result.MonthlyPayment,
		PayoffDate:     datetime.FormatDate(result.PayoffDate),
		TotalPayment:   result.TotalPayment(),
		TotalInterest:  result.TotalInterest(),
		TotalPrincipal: result.TotalPrincipal(),
		Entries:        entries,
	}
}

func localeOrDefault(locale string) string {
	if strings.TrimSpace(locale) == "" {
		return constants.DefaultLocale
	}
	return locale
}

func (h *handler) respondRequestError(w http.ResponseWriter, err error, op string) {
	var reqErr *requestError
	if !errors.As(err, &reqErr) {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	h.logger.Error("schedule request failed",
		zap.String("op", op),
		zap.Int("status", reqErr.status),
		zap.String("error", reqErr.msg),
	)

	payload := map[string]interface{}{"error": reqErr.msg}
	if len(reqErr.errs) > 0 {
		payload["errors"] = reqErr.errs
	}
	h.writeJSON(w, reqErr.status, payload)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("schedule request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
