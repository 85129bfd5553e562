package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestScoreBaseline(t *testing.T) {
	assert.Equal(t, 30.0, Score(IntentBrowsing, nil, nil))
}

func TestScoreIntentContribution(t *testing.T) {
	assert.Equal(t, 65.0, Score(IntentSerious, nil, nil))
	assert.Equal(t, 50.0, Score(IntentInquiring, nil, nil))
}

func TestScoreBudgetContribution(t *testing.T) {
	assert.Equal(t, 50.0, Score(IntentBrowsing, floatPtr(100000), nil))
	assert.Equal(t, 30.0, Score(IntentBrowsing, floatPtr(99999), nil))
	assert.Equal(t, 30.0, Score(IntentBrowsing, nil, nil))
}

func TestScoreTimelineContribution(t *testing.T) {
	assert.Equal(t, 45.0, Score(IntentBrowsing, nil, strptr("immediately")))
	assert.Equal(t, 45.0, Score(IntentBrowsing, nil, strptr("this month")))
	assert.Equal(t, 45.0, Score(IntentBrowsing, nil, strptr("next month")))
	assert.Equal(t, 30.0, Score(IntentBrowsing, nil, strptr("6 months")))
}

func TestScoreClampedAtMaximum(t *testing.T) {
	// 30 + 35 + 20 + 15 = 100; never exceeds it.
	score := Score(IntentSerious, floatPtr(250000), strptr("this month"))
	assert.Equal(t, 100.0, score)
}

func TestScoreBounds(t *testing.T) {
	intents := []Intent{IntentBrowsing, IntentInquiring, IntentSerious}
	budgets := []*float64{nil, floatPtr(50000), floatPtr(500000)}
	timelines := []*string{nil, strptr("immediately"), strptr("3 months")}

	for _, intent := range intents {
		for _, budget := range budgets {
			for _, timeline := range timelines {
				score := Score(intent, budget, timeline)
				assert.GreaterOrEqual(t, score, 30.0)
				assert.LessOrEqual(t, score, 100.0)
			}
		}
	}
}
