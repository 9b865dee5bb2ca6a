package main

import "math"

// Compute runs the ROI comparison over the default one-year horizon.
// It never fails: zero or negative LeadCost/LeadsPerDeal produce NaN or ±Inf
// in the affected fields following IEEE-754 division.
func Compute(in CalculationInputs) CalculationResult {
	return ComputeWithHorizon(in, DefaultHorizon)
}

// ComputeWithHorizon is Compute with explicit calendar constants
func ComputeWithHorizon(in CalculationInputs, h Horizon) CalculationResult {
	monthlyAdSpend := in.AdSpendDaily * h.DaysPerMonth
	yearlyAdSpend := monthlyAdSpend * h.MonthsPerYear

	return CalculationResult{
		A: computeOption(in.ServiceFeeA*h.MonthsPerYear, yearlyAdSpend, in),
		B: computeOption(in.InstallFeeB, yearlyAdSpend, in),
	}
}

// computeOption applies the shared lead pipeline to one fixed-cost term.
// Both options see the same ad spend and lead cost, so leads, deals and
// revenue are identical; only the fixed cost differs.
func computeOption(fixedCost, yearlyAdSpend float64, in CalculationInputs) OptionResult {
	totalCost := fixedCost + yearlyAdSpend
	leads := yearlyAdSpend / in.LeadCost
	deals := leads / in.LeadsPerDeal
	revenue := deals * in.DealValue

	return OptionResult{
		TotalCost:        totalCost,
		Leads:            leads,
		CostPerLead:      totalCost / leads,
		DealsClosed:      deals,
		EstimatedRevenue: revenue,
		NetROI:           revenue - totalCost,
	}
}

// Compare derives the headline differences between the two options
func Compare(in CalculationInputs, r CalculationResult) Comparison {
	c := Comparison{
		Savings:         r.A.TotalCost - r.B.TotalCost,
		ROIAdvantage:    r.B.NetROI - r.A.NetROI,
		BreakEvenDealsA: r.A.TotalCost / in.DealValue,
		BreakEvenDealsB: r.B.TotalCost / in.DealValue,
	}

	switch {
	case !isFinite(r.A.NetROI) || !isFinite(r.B.NetROI):
		// no meaningful winner, leave Better empty
	case c.ROIAdvantage > 0:
		c.Better = OptionB.ShortName()
	case c.ROIAdvantage < 0:
		c.Better = OptionA.ShortName()
	}

	return c
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsFinite reports whether every field of the result is a finite number
func (o OptionResult) IsFinite() bool {
	for _, v := range []float64{o.TotalCost, o.Leads, o.CostPerLead, o.DealsClosed, o.EstimatedRevenue, o.NetROI} {
		if !isFinite(v) {
			return false
		}
	}
	return true
}
