package quizgen

import "math"

// Distribution is the per-difficulty split of one generation batch.
type Distribution struct {
	Easy   int
	Medium int
	Hard   int
}

// Total returns the number of questions the distribution covers.
func (d Distribution) Total() int {
	return d.Easy + d.Medium + d.Hard
}

// CalculateDistribution applies the DECA 40/40/20 rule: easy and hard are
// rounded shares of the total and medium absorbs the remainder, so the three
// buckets always sum to total.
func CalculateDistribution(total int) Distribution {
	easy := int(math.Round(float64(total) * 0.4))
	hard := int(math.Round(float64(total) * 0.2))
	return Distribution{
		Easy:   easy,
		Medium: total - easy - hard,
		Hard:   hard,
	}
}
