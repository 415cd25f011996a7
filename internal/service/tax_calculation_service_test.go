package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	ierr "taxengine/internal/errors"
	"taxengine/internal/tax"
	"taxengine/internal/testutil"
)

type TaxCalculationServiceTestSuite struct {
	testutil.BaseServiceTestSuite
	profiles    TaxProfileService
	calculation TaxCalculationService
	companyID   uuid.UUID
	profile     tax.Profile
}

func TestTaxCalculationService(t *testing.T) {
	suite.Run(t, new(TaxCalculationServiceTestSuite))
}

func (s *TaxCalculationServiceTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.profiles = NewTaxProfileService(
		s.GetStores().TaxProfileRepo,
		s.GetStores().AuditRepo,
		s.GetTxManager(),
		s.GetCache(),
		s.GetPublisher(),
		s.GetConfig(),
		s.GetLogger(),
	)
	s.calculation = NewTaxCalculationService(s.profiles, s.GetLogger())

	s.companyID = uuid.New()
	vat := vatRate("VAT", 20)
	vat.EffectiveFrom = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reduced := vatRate("VAT_SERVICES", 10)
	reduced.ProductCategories = []string{"consulting"}
	reduced.Priority = 5

	p, err := s.profiles.CreateProfile(s.GetContext(), profileRequest(&s.companyID, false, vat, reduced), "")
	s.Require().NoError(err)
	s.profile = p
}

func (s *TaxCalculationServiceTestSuite) TestCalculateExclusive() {
	res, err := s.calculation.Calculate(s.GetContext(), CalculateTaxRequest{
		CompanyID:      &s.companyID,
		Amount:         "1000",
		EvaluationDate: "2024-06-01",
	})
	s.Require().NoError(err)

	s.Equal(s.profile.ID.String(), res.ProfileID)
	s.Equal("VAT", res.TaxType)
	s.Equal("200.00", res.TotalTax)
	s.Equal("1000.00", res.TaxableAmount)
	s.Equal("1200.00", res.TotalAmount)
	s.Require().Len(res.TaxBreakdown, 1)
	s.Equal("VAT", res.TaxBreakdown[0].Code)
	s.Equal("20", res.TaxBreakdown[0].Rate)
	s.Equal("200.00", res.TaxBreakdown[0].Amount)
}

func (s *TaxCalculationServiceTestSuite) TestCalculateWithCategoryAndRFC3339Date() {
	res, err := s.calculation.Calculate(s.GetContext(), CalculateTaxRequest{
		CompanyID:       &s.companyID,
		Amount:          "1000",
		ProductCategory: "consulting",
		EvaluationDate:  "2024-06-01T10:00:00Z",
	})
	s.Require().NoError(err)

	s.Equal("300.00", res.TotalTax)
	s.Equal([]string{"VAT_SERVICES", "VAT"}, lo.Map(res.TaxBreakdown, func(i TaxBreakdownItemResponse, _ int) string { return i.Code }))
}

func (s *TaxCalculationServiceTestSuite) TestCalculateBeforeRateIsEffective() {
	res, err := s.calculation.Calculate(s.GetContext(), CalculateTaxRequest{
		CompanyID:      &s.companyID,
		Amount:         "1000",
		EvaluationDate: "2023-12-31",
	})
	s.Require().NoError(err)

	s.Equal("0.00", res.TotalTax)
	s.Equal("1000.00", res.TotalAmount)
	s.NotNil(res.TaxBreakdown)
	s.Empty(res.TaxBreakdown)
}

func (s *TaxCalculationServiceTestSuite) TestCalculateInclusiveProfile() {
	_, err := s.profiles.DeactivateProfile(s.GetContext(), s.profile.ID, "")
	s.Require().NoError(err)

	req := profileRequest(&s.companyID, false, vatRate("VAT", 25))
	req.DefaultCalculationMethod = tax.CalculationMethodInclusive
	_, err = s.profiles.CreateProfile(s.GetContext(), req, "")
	s.Require().NoError(err)

	res, err := s.calculation.Calculate(s.GetContext(), CalculateTaxRequest{
		CompanyID:      &s.companyID,
		Amount:         "125",
		EvaluationDate: "2024-06-01",
	})
	s.Require().NoError(err)

	total := decimal.RequireFromString(res.TotalAmount)
	taxable := decimal.RequireFromString(res.TaxableAmount)
	totalTax := decimal.RequireFromString(res.TotalTax)
	s.True(total.Equal(decimal.NewFromInt(125)))
	s.True(taxable.Add(totalTax).Equal(total))
}

func (s *TaxCalculationServiceTestSuite) TestCalculateKeepsPrincipalBeyondPrecision() {
	res, err := s.calculation.Calculate(s.GetContext(), CalculateTaxRequest{
		CompanyID:      &s.companyID,
		Amount:         "100.005",
		EvaluationDate: "2024-06-01",
	})
	s.Require().NoError(err)

	s.Equal("20.00", res.TotalTax)
	s.Equal("100.005", res.TaxableAmount)
	s.Equal("120.005", res.TotalAmount)
}

func (s *TaxCalculationServiceTestSuite) TestCalculateInclusiveKeepsTotalAtZeroPrecision() {
	_, err := s.profiles.DeactivateProfile(s.GetContext(), s.profile.ID, "")
	s.Require().NoError(err)

	req := profileRequest(&s.companyID, false, vatRate("VAT", 25))
	req.DefaultCalculationMethod = tax.CalculationMethodInclusive
	req.RoundingMethod = tax.RoundingMethodDown
	req.RoundingPrecision = 0
	_, err = s.profiles.CreateProfile(s.GetContext(), req, "")
	s.Require().NoError(err)

	res, err := s.calculation.Calculate(s.GetContext(), CalculateTaxRequest{
		CompanyID:      &s.companyID,
		Amount:         "100.5",
		EvaluationDate: "2024-06-01",
	})
	s.Require().NoError(err)

	s.Equal("25", res.TotalTax)
	s.Equal("100.5", res.TotalAmount)
	s.Equal("75.5", res.TaxableAmount)
}

func (s *TaxCalculationServiceTestSuite) TestCalculateErrors() {
	inactive := s.create(profileRequest(nil, false))
	_, err := s.profiles.DeactivateProfile(s.GetContext(), inactive.ID, "")
	s.Require().NoError(err)

	otherCompany := uuid.New()
	missing := uuid.New()

	tests := []struct {
		name string
		req  CalculateTaxRequest
		kind error
	}{
		{
			name: "non_numeric_amount",
			req:  CalculateTaxRequest{CompanyID: &s.companyID, Amount: "ten"},
			kind: ierr.ErrInvalidAmount,
		},
		{
			name: "negative_amount",
			req:  CalculateTaxRequest{CompanyID: &s.companyID, Amount: "-1"},
			kind: ierr.ErrInvalidAmount,
		},
		{
			name: "bad_evaluation_date",
			req:  CalculateTaxRequest{CompanyID: &s.companyID, Amount: "10", EvaluationDate: "01/06/2024"},
			kind: ierr.ErrValidation,
		},
		{
			name: "inactive_explicit_profile",
			req:  CalculateTaxRequest{ProfileID: &inactive.ID, Amount: "10"},
			kind: ierr.ErrValidation,
		},
		{
			name: "unknown_explicit_profile",
			req:  CalculateTaxRequest{ProfileID: &missing, Amount: "10"},
			kind: ierr.ErrNotFound,
		},
		{
			name: "no_company_profile_and_no_default",
			req:  CalculateTaxRequest{CompanyID: &otherCompany, Amount: "10"},
			kind: ierr.ErrNoDefaultProfile,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.calculation.Calculate(s.GetContext(), tt.req)
			s.Require().Error(err)
			s.True(ierr.Is(err, tt.kind), "got %v", err)
		})
	}
}

func (s *TaxCalculationServiceTestSuite) create(req CreateTaxProfileRequest) tax.Profile {
	p, err := s.profiles.CreateProfile(s.GetContext(), req, "")
	s.Require().NoError(err)
	return p
}
