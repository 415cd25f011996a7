package tax

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TaxType categorizes a tax rate. Exemptions name the types they suppress.
type TaxType string

const (
	TaxTypeVAT         TaxType = "VAT"
	TaxTypeGST         TaxType = "GST"
	TaxTypeSales       TaxType = "SALES"
	TaxTypeIncome      TaxType = "INCOME"
	TaxTypeWithholding TaxType = "WITHHOLDING"
	TaxTypeService     TaxType = "SERVICE"
	TaxTypeCustom      TaxType = "CUSTOM"
)

// CalculationMethod says whether an amount already contains tax.
type CalculationMethod string

const (
	CalculationMethodInclusive CalculationMethod = "INCLUSIVE"
	CalculationMethodExclusive CalculationMethod = "EXCLUSIVE"
)

// RoundingMethod is applied to every individual tax amount.
type RoundingMethod string

const (
	RoundingMethodUp      RoundingMethod = "UP"
	RoundingMethodDown    RoundingMethod = "DOWN"
	RoundingMethodNearest RoundingMethod = "NEAREST"
)

const MaxRoundingPrecision = 6

type JurisdictionLevel string

const (
	JurisdictionLevelCountry  JurisdictionLevel = "COUNTRY"
	JurisdictionLevelState    JurisdictionLevel = "STATE"
	JurisdictionLevelProvince JurisdictionLevel = "PROVINCE"
	JurisdictionLevelCounty   JurisdictionLevel = "COUNTY"
	JurisdictionLevelCity     JurisdictionLevel = "CITY"
	JurisdictionLevelDistrict JurisdictionLevel = "DISTRICT"
	JurisdictionLevelZIP      JurisdictionLevel = "ZIP"
	JurisdictionLevelOther    JurisdictionLevel = "OTHER"
)

// Jurisdiction restricts a rate or exemption to a geographic scope.
type Jurisdiction struct {
	Level JurisdictionLevel `json:"level" validate:"required,oneof=COUNTRY STATE PROVINCE COUNTY CITY DISTRICT ZIP OTHER"`
	Code  string            `json:"code" validate:"required,max=50"`
	Name  string            `json:"name,omitempty" validate:"max=255"`
}

// Ref drops the display name; matching only uses level and code.
func (j Jurisdiction) Ref() JurisdictionRef {
	return JurisdictionRef{Level: j.Level, Code: j.Code}
}

// JurisdictionRef identifies a jurisdiction a transaction belongs to.
type JurisdictionRef struct {
	Level JurisdictionLevel `json:"level"`
	Code  string            `json:"code"`
}

// TaxRate is a single tax rule of a profile.
type TaxRate struct {
	Code               string            `json:"code" validate:"required,max=50"`
	Name               string            `json:"name" validate:"required,max=255"`
	Type               TaxType           `json:"type" validate:"required,oneof=VAT GST SALES INCOME WITHHOLDING SERVICE CUSTOM"`
	Rate               decimal.Decimal   `json:"rate"` // percent, 0-100
	// CalculationMethod is informational; the profile's default method decides
	// whether amounts are treated as inclusive or exclusive.
	CalculationMethod  CalculationMethod `json:"calculation_method,omitempty" validate:"omitempty,oneof=INCLUSIVE EXCLUSIVE"`
	IsCompound         bool              `json:"is_compound"`
	Priority           int               `json:"priority"`
	IsActive           bool              `json:"is_active"`
	EffectiveFrom      time.Time         `json:"effective_from"`
	EffectiveTo        *time.Time        `json:"effective_to,omitempty"`
	Jurisdictions      []Jurisdiction    `json:"jurisdictions,omitempty" validate:"dive"`
	ProductCategories  []string          `json:"product_categories,omitempty" validate:"dive,required"`
	CustomerCategories []string          `json:"customer_categories,omitempty" validate:"dive,required"`
	MinAmount          *decimal.Decimal  `json:"min_amount,omitempty"`
	MaxAmount          *decimal.Decimal  `json:"max_amount,omitempty"`
	Description        string            `json:"description,omitempty"`
}

func (r TaxRate) clone() TaxRate {
	r.Jurisdictions = slices.Clone(r.Jurisdictions)
	r.ProductCategories = slices.Clone(r.ProductCategories)
	r.CustomerCategories = slices.Clone(r.CustomerCategories)
	if r.EffectiveTo != nil {
		r.EffectiveTo = lo.ToPtr(*r.EffectiveTo)
	}
	if r.MinAmount != nil {
		r.MinAmount = lo.ToPtr(*r.MinAmount)
	}
	if r.MaxAmount != nil {
		r.MaxAmount = lo.ToPtr(*r.MaxAmount)
	}
	return r
}

// TaxExemption suppresses the listed tax types when claimed by a transaction.
type TaxExemption struct {
	Code              string         `json:"code" validate:"required,max=50"`
	Name              string         `json:"name,omitempty" validate:"max=255"`
	Description       string         `json:"description,omitempty"`
	TaxTypes          []TaxType      `json:"tax_types" validate:"required,min=1,dive,oneof=VAT GST SALES INCOME WITHHOLDING SERVICE CUSTOM"`
	Jurisdictions     []Jurisdiction `json:"jurisdictions,omitempty" validate:"dive"`
	IsActive          bool           `json:"is_active"`
	ExpiryDate        *time.Time     `json:"expiry_date,omitempty"`
	CertificateNumber string         `json:"certificate_number,omitempty" validate:"max=100"`
}

func (e TaxExemption) clone() TaxExemption {
	e.TaxTypes = slices.Clone(e.TaxTypes)
	e.Jurisdictions = slices.Clone(e.Jurisdictions)
	if e.ExpiryDate != nil {
		e.ExpiryDate = lo.ToPtr(*e.ExpiryDate)
	}
	return e
}

// Profile owns the ordered rate and exemption lists plus the defaults and
// rounding policy used when calculating.
type Profile struct {
	ID                       uuid.UUID         `json:"id"`
	CompanyID                *uuid.UUID        `json:"company_id,omitempty"`
	Name                     string            `json:"name" validate:"required,max=255"`
	IsActive                 bool              `json:"is_active"`
	IsGlobalDefault          bool              `json:"is_global_default"`
	DefaultTaxType           TaxType           `json:"default_tax_type" validate:"required,oneof=VAT GST SALES INCOME WITHHOLDING SERVICE CUSTOM"`
	DefaultCalculationMethod CalculationMethod `json:"default_calculation_method" validate:"required,oneof=INCLUSIVE EXCLUSIVE"`
	RoundingMethod           RoundingMethod    `json:"rounding_method" validate:"required,oneof=UP DOWN NEAREST"`
	RoundingPrecision        int32             `json:"rounding_precision" validate:"min=0,max=6"`
	TaxRates                 []TaxRate         `json:"tax_rates"`
	TaxExemptions            []TaxExemption    `json:"tax_exemptions"`
	Version                  int64             `json:"version"`
	CreatedAt                time.Time         `json:"created_at"`
	UpdatedAt                time.Time         `json:"updated_at"`
}

// Rounder returns the rounding policy bound to this profile.
func (p Profile) Rounder() Rounder {
	return NewRounder(p.RoundingMethod, p.RoundingPrecision)
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Profile) Clone() Profile {
	if p.CompanyID != nil {
		p.CompanyID = lo.ToPtr(*p.CompanyID)
	}
	p.TaxRates = lo.Map(p.TaxRates, func(r TaxRate, _ int) TaxRate { return r.clone() })
	p.TaxExemptions = lo.Map(p.TaxExemptions, func(e TaxExemption, _ int) TaxExemption { return e.clone() })
	return p
}

// CalculationContext describes the transaction being taxed.
type CalculationContext struct {
	TaxType          TaxType           `json:"tax_type,omitempty"`
	ProductCategory  string            `json:"product_category,omitempty"`
	CustomerCategory string            `json:"customer_category,omitempty"`
	Jurisdictions    []JurisdictionRef `json:"jurisdictions,omitempty"`
	Exemptions       []string          `json:"exemptions,omitempty"`
	EvaluationDate   time.Time         `json:"evaluation_date"`
}

type TaxBreakdownItem struct {
	Name   string          `json:"name"`
	Code   string          `json:"code"`
	Type   TaxType         `json:"type"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

type CalculationResult struct {
	TotalTax      decimal.Decimal    `json:"total_tax"`
	TaxBreakdown  []TaxBreakdownItem `json:"tax_breakdown"`
	TaxableAmount decimal.Decimal    `json:"taxable_amount"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
}
