package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanScoreEmpty(t *testing.T) {
	assert.Equal(t, 0.0, MeanScore(nil))
	assert.Equal(t, 0.0, MeanScore([]int{}))
}

func TestMeanScoreSingle(t *testing.T) {
	assert.Equal(t, 4.0, MeanScore([]int{4}))
}

func TestMeanScoreRoundsToOneDecimal(t *testing.T) {
	// (5+4+4)/3 = 4.333... -> 4.3
	assert.Equal(t, 4.3, MeanScore([]int{5, 4, 4}))
	// (5+4)/2 = 4.5 stays 4.5
	assert.Equal(t, 4.5, MeanScore([]int{5, 4}))
	// (1+2)/3 would be wrong; (1+2+2)/3 = 1.666... -> 1.7
	assert.Equal(t, 1.7, MeanScore([]int{1, 2, 2}))
}

func TestValidRatingsDropsOutOfBand(t *testing.T) {
	assert.Equal(t, []int{1, 5, 3}, ValidRatings([]int{1, 5, 0, 6, 3}))
}
