package domain

type TermComparisonInput struct {
	Mortgage          MortgageInput `json:"mortgage"`
	TermsYears        []float64     `json:"terms_years"`
	MaxMonthlyPayment float64       `json:"max_monthly_payment,omitempty"` // 0 means no limit
	Preference        string        `json:"preference"`                    // "minimize_interest", "minimize_payment", "balanced"
}

type TermCandidate struct {
	TermYears        float64 `json:"term_years"`
	MonthlyPayment   float64 `json:"monthly_payment"`
	TotalInterest    float64 `json:"total_interest"`
	NumberOfPayments int     `json:"number_of_payments"`
	// Sum of the tax-adjusted yearly totals; only set when the input carries tax params.
	TotalNetCost float64 `json:"total_net_cost,omitempty"`
	Score        float64 `json:"score"`
	Reason       string  `json:"reason"`
}

type TermComparisonResult struct {
	RecommendedTermYears float64         `json:"recommended_term_years"`
	Candidates           []TermCandidate `json:"candidates"`
}
