package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the coarse interest classification derived from keywords.
type Intent string

const (
	IntentBrowsing  Intent = "browsing"
	IntentInquiring Intent = "inquiring"
	IntentSerious   Intent = "serious"
)

// ExtractionResult carries the structured attributes inferred from a raw
// message. Fields are nil when nothing matched; Intent always has a value.
type ExtractionResult struct {
	PropertyType *string
	Location     *string
	Budget       *float64
	Timeline     *string
	Intent       Intent
}

var propertyTypes = []string{"apartment", "villa", "house", "condo", "office"}

var timelines = []string{"immediately", "this month", "next month", "3 months", "6 months"}

var seriousKeywords = []string{"book", "visit", "schedule", "ready", "buy", "rent now"}

var inquiringKeywords = []string{"price", "details", "info", "inquire"}

// budgetPattern matches either a separator-grouped amount with at least one
// group of three digits, or a bare 5-8 digit number.
var budgetPattern = regexp.MustCompile(`\$?([0-9]{2,3}(?:[,.][0-9]{3})+|[0-9]{5,8})`)

var budgetSeparators = strings.NewReplacer(",", "", ".", "")

// Extract infers property type, location, budget, timeline and intent from
// free text using keyword and pattern matching. It never fails; an empty or
// unrecognized message yields all-nil fields with browsing intent.
func Extract(message string) ExtractionResult {
	text := strings.ToLower(message)

	result := ExtractionResult{Intent: IntentBrowsing}

	for _, candidate := range propertyTypes {
		if strings.Contains(text, candidate) {
			result.PropertyType = strptr(candidate)
			break
		}
	}

	if idx := strings.Index(text, " in "); idx >= 0 {
		afterIn := strings.TrimSpace(text[idx+len(" in "):])
		if afterIn != "" {
			token := strings.Trim(strings.SplitN(afterIn, " ", 2)[0], ",.")
			if token != "" {
				result.Location = strptr(token)
			}
		}
	}

	// Grouping separators are stripped, not treated as decimal points, so
	// "12.500" parses as 12500. Kept for compatibility with stored scores.
	if match := budgetPattern.FindStringSubmatch(message); match != nil {
		if value, err := strconv.ParseFloat(budgetSeparators.Replace(match[1]), 64); err == nil {
			result.Budget = &value
		}
	}

	for _, t := range timelines {
		if strings.Contains(text, t) {
			result.Timeline = strptr(t)
			break
		}
	}

	if containsAny(text, seriousKeywords) {
		result.Intent = IntentSerious
	} else if containsAny(text, inquiringKeywords) {
		result.Intent = IntentInquiring
	}

	return result
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func strptr(s string) *string {
	return &s
}
