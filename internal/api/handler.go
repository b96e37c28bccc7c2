// Package api exposes the affordability engine over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/homewise/affordability/internal/calculation"
	"github.com/homewise/affordability/internal/config"
	"github.com/homewise/affordability/internal/domain"
	"github.com/homewise/affordability/internal/ratesource"
	"github.com/homewise/affordability/pkg/money"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// ReadinessCheck reports whether a dependency is usable.
type ReadinessCheck func(ctx context.Context) error

// Handler serves the affordability endpoints. It resolves the current
// cash rate once per request and derives the loan rate from it.
type Handler struct {
	engine      *calculation.CalculationEngine
	resolver    ratesource.Resolver
	margin      decimal.Decimal
	termYears   int
	environment string
	logger      *zap.Logger
	metrics     *Metrics
	checks      map[string]ReadinessCheck
}

// NewHandler creates a handler. A nil metrics disables calculation counters.
func NewHandler(engine *calculation.CalculationEngine, resolver ratesource.Resolver, cfg config.ServerConfig, logger *zap.Logger, metrics *Metrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine:      engine,
		resolver:    resolver,
		margin:      cfg.LoanRateMargin,
		termYears:   cfg.LoanTermYears,
		environment: cfg.Environment,
		logger:      logger,
		metrics:     metrics,
		checks:      make(map[string]ReadinessCheck),
	}
}

// AddReadinessCheck registers a dependency probed by /readyz.
func (h *Handler) AddReadinessCheck(name string, check ReadinessCheck) {
	h.checks[name] = check
}

// ProfileRequest is the household as posted by a client. Pointer fields are required.
type ProfileRequest struct {
	Deposit          *decimal.Decimal      `json:"deposit"`
	AnnualIncome     *decimal.Decimal      `json:"annual_income"`
	MonthlyExpenses  *decimal.Decimal      `json:"monthly_expenses"`
	OtherIncome      decimal.Decimal       `json:"other_income"`
	Dependents       int                   `json:"dependents"`
	EmploymentType   domain.EmploymentType `json:"employment_type"`
	ExistingDebts    decimal.Decimal       `json:"existing_debts"`
	Jurisdiction     domain.Jurisdiction   `json:"jurisdiction"`
	IsFirstHomeBuyer bool                  `json:"is_first_home_buyer"`
}

// Profile checks required fields and builds a validated FinancialProfile.
func (p ProfileRequest) Profile() (domain.FinancialProfile, error) {
	required := []struct {
		field string
		value *decimal.Decimal
	}{
		{"deposit", p.Deposit},
		{"annual_income", p.AnnualIncome},
		{"monthly_expenses", p.MonthlyExpenses},
	}
	for _, r := range required {
		if r.value == nil {
			return domain.FinancialProfile{}, &domain.ValidationError{Field: r.field, Reason: "is required"}
		}
	}

	profile := domain.FinancialProfile{
		Deposit:          *p.Deposit,
		AnnualIncome:     *p.AnnualIncome,
		MonthlyExpenses:  *p.MonthlyExpenses,
		OtherIncome:      p.OtherIncome,
		Dependents:       p.Dependents,
		EmploymentType:   p.EmploymentType.Normalize(),
		ExistingDebts:    p.ExistingDebts,
		Jurisdiction:     p.Jurisdiction.Normalize(),
		IsFirstHomeBuyer: p.IsFirstHomeBuyer,
	}
	if profile.Jurisdiction == "" {
		profile.Jurisdiction = domain.DefaultJurisdiction
	}
	if err := profile.Validate(); err != nil {
		return domain.FinancialProfile{}, err
	}
	return profile, nil
}

// ScenarioRequest is a profile plus the price to test.
type ScenarioRequest struct {
	ProfileRequest
	TargetPrice *decimal.Decimal `json:"target_price"`
}

// InterestRates reports the rate a calculation used, in percent.
type InterestRates struct {
	RBACashRate         decimal.Decimal `json:"rba_cash_rate"`
	TypicalHomeLoanRate decimal.Decimal `json:"typical_home_loan_rate"`
	EffectiveDate       civil.Date      `json:"effective_date"`
	Source              string          `json:"source"`
}

// BuyingPowerResponse is the body of a successful buying power calculation.
type BuyingPowerResponse struct {
	Result               domain.AffordabilityResult `json:"result"`
	CurrentInterestRates InterestRates              `json:"current_interest_rates"`
}

// ScenarioResponse is the body of a successful scenario evaluation.
type ScenarioResponse struct {
	Result               domain.AffordabilityResult `json:"result"`
	Scenario             domain.ScenarioResult      `json:"scenario"`
	CurrentInterestRates InterestRates              `json:"current_interest_rates"`
}

// StampDutyResponse is the body of a duty quote.
type StampDutyResponse struct {
	Jurisdiction     domain.Jurisdiction `json:"jurisdiction"`
	Price            decimal.Decimal     `json:"price"`
	IsFirstHomeBuyer bool                `json:"is_first_home_buyer"`
	StampDuty        decimal.Decimal     `json:"stamp_duty"`
}

// CalculateBuyingPower handles POST /api/calculate-buying-power.
func (h *Handler) CalculateBuyingPower(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, h.logger, http.MethodPost)
		return
	}

	var req ProfileRequest
	if !h.decode(w, r, &req) {
		return
	}
	profile, err := req.Profile()
	if err != nil {
		writeErr(w, h.logger, err)
		return
	}

	terms, rates, err := h.resolveTerms(r.Context())
	if err != nil {
		writeErr(w, h.logger, err)
		return
	}

	result := h.engine.Analyze(profile, terms)
	h.observe(result)
	writeJSON(w, h.logger, http.StatusOK, BuyingPowerResponse{Result: result, CurrentInterestRates: rates})
}

// EvaluateScenario handles POST /api/scenario.
func (h *Handler) EvaluateScenario(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, h.logger, http.MethodPost)
		return
	}

	var req ScenarioRequest
	if !h.decode(w, r, &req) {
		return
	}
	profile, err := req.Profile()
	if err != nil {
		writeErr(w, h.logger, err)
		return
	}
	if req.TargetPrice == nil {
		writeErr(w, h.logger, &domain.ValidationError{Field: "target_price", Reason: "is required"})
		return
	}

	terms, rates, err := h.resolveTerms(r.Context())
	if err != nil {
		writeErr(w, h.logger, err)
		return
	}

	result := h.engine.Analyze(profile, terms)
	scenario, err := h.engine.Evaluate(result, *req.TargetPrice)
	if err != nil {
		writeErr(w, h.logger, err)
		return
	}
	h.observe(result)
	writeJSON(w, h.logger, http.StatusOK, ScenarioResponse{Result: result, Scenario: scenario, CurrentInterestRates: rates})
}

// StampDuty handles GET /api/stamp-duty?jurisdiction=&price=&first_home=.
func (h *Handler) StampDuty(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, h.logger, http.MethodGet)
		return
	}

	q := r.URL.Query()
	priceText := strings.TrimSpace(q.Get("price"))
	if priceText == "" {
		writeErr(w, h.logger, &domain.ValidationError{Field: "price", Reason: "is required"})
		return
	}
	price, err := decimal.NewFromString(priceText)
	if err != nil {
		writeErr(w, h.logger, &domain.ValidationError{Field: "price", Reason: "must be a number"})
		return
	}
	if price.IsNegative() {
		writeErr(w, h.logger, &domain.ValidationError{Field: "price", Reason: "cannot be negative"})
		return
	}

	firstHome := false
	if v := q.Get("first_home"); v != "" {
		if firstHome, err = strconv.ParseBool(v); err != nil {
			writeErr(w, h.logger, &domain.ValidationError{Field: "first_home", Reason: "must be true or false"})
			return
		}
	}

	requested := domain.Jurisdiction(q.Get("jurisdiction"))
	schedule, _ := h.engine.StampDuty.Schedule(requested)
	duty := h.engine.StampDuty.DutyFor(requested, price, firstHome)
	writeJSON(w, h.logger, http.StatusOK, StampDutyResponse{
		Jurisdiction:     schedule.Jurisdiction,
		Price:            price,
		IsFirstHomeBuyer: firstHome,
		StampDuty:        money.Cents(duty),
	})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "healthy", "environment": h.environment})
}

// Ready handles GET /readyz by running every readiness check.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	for name, check := range h.checks {
		if err := check(r.Context()); err != nil {
			h.logger.Warn("readiness check failed", zap.String("check", name), zap.Error(err))
			writeError(w, h.logger, http.StatusServiceUnavailable, KindNotReady, fmt.Sprintf("%s: %v", name, err), "")
			return
		}
	}
	writeJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, KindInvalidInput, "invalid request body: "+err.Error(), "")
		return false
	}
	return true
}

func (h *Handler) resolveTerms(ctx context.Context) (domain.LoanTerms, InterestRates, error) {
	quote, err := h.resolver.CurrentCashRate(ctx)
	if err != nil {
		if h.metrics != nil {
			h.metrics.observeRateFailure()
		}
		if !errors.Is(err, ratesource.ErrRateUnavailable) {
			err = fmt.Errorf("%w: %w", ratesource.ErrRateUnavailable, err)
		}
		return domain.LoanTerms{}, InterestRates{}, err
	}

	loanRate := quote.LoanRate(h.margin)
	terms := domain.LoanTerms{BaseAnnualRate: loanRate, TermYears: h.termYears}
	if err := terms.Validate(); err != nil {
		return domain.LoanTerms{}, InterestRates{}, err
	}
	rates := InterestRates{
		RBACashRate:         quote.CashRatePercent,
		TypicalHomeLoanRate: loanRate.Mul(decimal.NewFromInt(100)),
		EffectiveDate:       quote.EffectiveDate,
		Source:              quote.Source,
	}
	return terms, rates, nil
}

func (h *Handler) observe(result domain.AffordabilityResult) {
	if h.metrics != nil {
		h.metrics.observeCalculation(result.AffordabilityRating)
	}
}
