package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{3, BandLowRisk},
		{4, BandLowRisk},
		{5, BandMediumRisk},
		{7, BandMediumRisk},
		{8, BandHighRisk},
		{12, BandHighRisk},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RiskLevel(tt.score), "score %d", tt.score)
	}
}
