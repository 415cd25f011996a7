package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	ierr "taxengine/internal/errors"
	"taxengine/internal/logger"
	"taxengine/internal/metrics"
	"taxengine/internal/tax"
)

const dateLayout = "2006-01-02"

// --- DTOs ---

type CalculateTaxRequest struct {
	CompanyID        *uuid.UUID            `json:"company_id"`
	ProfileID        *uuid.UUID            `json:"profile_id"`
	Amount           string                `json:"amount" binding:"required"` // decimal string, e.g. "1000.00"
	TaxType          tax.TaxType           `json:"tax_type"`
	ProductCategory  string                `json:"product_category"`
	CustomerCategory string                `json:"customer_category"`
	Jurisdictions    []tax.JurisdictionRef `json:"jurisdictions"`
	Exemptions       []string              `json:"exemptions"`
	EvaluationDate   string                `json:"evaluation_date" example:"2024-06-01"` // RFC3339 or YYYY-MM-DD, defaults to now
}

type TaxBreakdownItemResponse struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Type   string `json:"type"`
	Rate   string `json:"rate"`
	Amount string `json:"amount"`
}

type CalculateTaxResponse struct {
	ProfileID      string                     `json:"profile_id"`
	TaxType        string                     `json:"tax_type"`
	EvaluationDate string                     `json:"evaluation_date"`
	TotalTax       string                     `json:"total_tax"`
	TaxableAmount  string                     `json:"taxable_amount"`
	TotalAmount    string                     `json:"total_amount"`
	TaxBreakdown   []TaxBreakdownItemResponse `json:"tax_breakdown"`
}

// --- Interface ---

type TaxCalculationService interface {
	Calculate(ctx context.Context, req CalculateTaxRequest) (CalculateTaxResponse, error)
}

type taxCalculationService struct {
	profiles TaxProfileService
	log      *logger.Logger
}

func NewTaxCalculationService(profiles TaxProfileService, log *logger.Logger) TaxCalculationService {
	return &taxCalculationService{profiles: profiles, log: log}
}

// --- Implementation ---

func (s *taxCalculationService) Calculate(ctx context.Context, req CalculateTaxRequest) (res CalculateTaxResponse, err error) {
	start := time.Now()
	defer func() { metrics.ObserveCalculation(start, err) }()

	amount, err := tax.ParseAmount(req.Amount)
	if err != nil {
		return CalculateTaxResponse{}, err
	}

	date, err := parseEvaluationDate(req.EvaluationDate)
	if err != nil {
		return CalculateTaxResponse{}, err
	}

	profile, err := s.resolveProfile(ctx, req)
	if err != nil {
		return CalculateTaxResponse{}, err
	}

	calcCtx := tax.CalculationContext{
		TaxType:          req.TaxType,
		ProductCategory:  req.ProductCategory,
		CustomerCategory: req.CustomerCategory,
		Jurisdictions:    req.Jurisdictions,
		Exemptions:       req.Exemptions,
		EvaluationDate:   date,
	}
	if calcCtx.TaxType == "" {
		calcCtx.TaxType = profile.DefaultTaxType
	}

	result, err := tax.CalculateTax(profile, amount, calcCtx)
	if err != nil {
		return CalculateTaxResponse{}, err
	}

	s.log.WithContext(ctx).Debugw("tax calculated",
		"profile_id", profile.ID,
		"tax_type", calcCtx.TaxType,
		"amount", amount.String(),
		"total_tax", result.TotalTax.String(),
		"rules_applied", len(result.TaxBreakdown))

	return toCalculateTaxResponse(profile, calcCtx, result), nil
}

// resolveProfile prefers an explicit profile id over the company lookup.
func (s *taxCalculationService) resolveProfile(ctx context.Context, req CalculateTaxRequest) (tax.Profile, error) {
	if req.ProfileID == nil {
		return s.profiles.GetProfile(ctx, req.CompanyID)
	}

	profile, err := s.profiles.GetProfileByID(ctx, *req.ProfileID)
	if err != nil {
		return tax.Profile{}, err
	}
	if !profile.IsActive {
		return tax.Profile{}, ierr.NewErrorf("tax profile %s is inactive", profile.ID).
			WithHint("The requested tax profile is inactive").
			Mark(ierr.ErrValidation)
	}
	return profile, nil
}

// parseEvaluationDate resolves an empty date to now, once, here at the boundary.
func parseEvaluationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("Evaluation date %q must be RFC3339 or YYYY-MM-DD", s).
			Mark(ierr.ErrValidation)
	}
	return t, nil
}

func toCalculateTaxResponse(profile tax.Profile, calcCtx tax.CalculationContext, result tax.CalculationResult) CalculateTaxResponse {
	precision := profile.RoundingPrecision
	return CalculateTaxResponse{
		ProfileID:      profile.ID.String(),
		TaxType:        string(calcCtx.TaxType),
		EvaluationDate: calcCtx.EvaluationDate.Format(time.RFC3339),
		TotalTax:       result.TotalTax.StringFixed(precision),
		TaxableAmount:  exactFixed(result.TaxableAmount, precision),
		TotalAmount:    exactFixed(result.TotalAmount, precision),
		TaxBreakdown: lo.Map(result.TaxBreakdown, func(item tax.TaxBreakdownItem, _ int) TaxBreakdownItemResponse {
			return TaxBreakdownItemResponse{
				Name:   item.Name,
				Code:   item.Code,
				Type:   string(item.Type),
				Rate:   item.Rate.String(),
				Amount: item.Amount.StringFixed(precision),
			}
		}),
	}
}

// exactFixed renders d with at least precision decimals, widening the scale
// instead of rounding when d carries more digits than the profile precision.
func exactFixed(d decimal.Decimal, precision int32) string {
	return d.StringFixed(max(precision, -d.Exponent()))
}
