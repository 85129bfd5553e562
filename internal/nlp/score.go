package nlp

const (
	baseScore       = 30.0
	seriousBonus    = 35.0
	inquiringBonus  = 20.0
	budgetBonus     = 20.0
	budgetThreshold = 100000.0
	timelineBonus   = 15.0
	maxScore        = 100.0
)

// nearTermTimelines earn the timeline bonus.
var nearTermTimelines = map[string]struct{}{
	"immediately": {},
	"this month":  {},
	"next month":  {},
}

// Score maps intent, budget and timeline to a 0-100 lead score. The result
// is always within [30,100]: there are no negative contributions and the
// total is clamped at 100.
func Score(intent Intent, budget *float64, timeline *string) float64 {
	score := baseScore

	switch intent {
	case IntentSerious:
		score += seriousBonus
	case IntentInquiring:
		score += inquiringBonus
	}

	if budget != nil && *budget >= budgetThreshold {
		score += budgetBonus
	}

	if timeline != nil {
		if _, ok := nearTermTimelines[*timeline]; ok {
			score += timelineBonus
		}
	}

	if score > maxScore {
		return maxScore
	}
	return score
}
