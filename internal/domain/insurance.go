package domain

// CoverageEstimate is the mocked coverage summary returned to an
// insurance-verification submission. Values come from a static table of
// payers the organization is in-network with; no real eligibility check is
// performed at this stage.
type CoverageEstimate struct {
	IsAccepted      bool            `json:"isAccepted"`
	Provider        string          `json:"provider"`
	CoverageDetails CoverageDetails `json:"coverageDetails"`
}

type CoverageDetails struct {
	EstimatedCoverage string `json:"estimatedCoverage"`
	Deductible        string `json:"deductible"`
	PreAuthRequired   bool   `json:"preAuthRequired"`
}
