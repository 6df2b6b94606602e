package intake

import (
	"strings"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
)

// inNetwork is the static table of payers the organization accepts. The
// estimate shown at intake is a mock; real eligibility runs during admission.
var inNetwork = map[string]domain.CoverageDetails{
	"medicaid":         {EstimatedCoverage: "100%", Deductible: "$0", PreAuthRequired: false},
	"caresource":       {EstimatedCoverage: "100%", Deductible: "$0", PreAuthRequired: false},
	"molina":           {EstimatedCoverage: "100%", Deductible: "$0", PreAuthRequired: false},
	"medicare":         {EstimatedCoverage: "90-100%", Deductible: "$0-$250", PreAuthRequired: false},
	"aetna":            {EstimatedCoverage: "80-90%", Deductible: "$500-$2,500", PreAuthRequired: true},
	"anthem":           {EstimatedCoverage: "70-90%", Deductible: "$500-$3,000", PreAuthRequired: true},
	"bcbs":             {EstimatedCoverage: "70-90%", Deductible: "$500-$3,000", PreAuthRequired: true},
	"cigna":            {EstimatedCoverage: "70-85%", Deductible: "$750-$3,500", PreAuthRequired: true},
	"unitedhealthcare": {EstimatedCoverage: "75-90%", Deductible: "$500-$3,000", PreAuthRequired: true},
	"humana":           {EstimatedCoverage: "70-85%", Deductible: "$750-$3,500", PreAuthRequired: true},
}

// outOfNetwork is the estimate returned for payers not in the table.
var outOfNetwork = domain.CoverageDetails{
	EstimatedCoverage: "40-60%",
	Deductible:        "$2,500-$7,500",
	PreAuthRequired:   true,
}

// EstimateCoverage returns the mocked coverage summary for a payer name.
func EstimateCoverage(provider string) domain.CoverageEstimate {
	key := strings.ToLower(strings.TrimSpace(provider))
	if details, ok := inNetwork[key]; ok {
		return domain.CoverageEstimate{IsAccepted: true, Provider: key, CoverageDetails: details}
	}
	return domain.CoverageEstimate{IsAccepted: false, Provider: key, CoverageDetails: outOfNetwork}
}
