package evaluation

import (
	"fmt"
	"math"

	"loan-evaluator/domain"
)

// ClassifyDefaultRisk buckets a default probability in [0,1].
func ClassifyDefaultRisk(probability float64) (domain.RiskLevel, error) {
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return "", fmt.Errorf("%w: default probability must be in [0,1], got %v", domain.ErrInvalidInput, probability)
	}

	switch {
	case probability < LowRiskCeiling:
		return domain.RiskLow, nil
	case probability < MediumRiskCeiling:
		return domain.RiskMedium, nil
	default:
		return domain.RiskHigh, nil
	}
}
