package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeE164(t *testing.T) {
	assert.Equal(t, "+14155552671", NormalizeE164("(415) 555-2671", "US"))
	assert.Equal(t, "+14155552671", NormalizeE164("+1 415 555 2671", "US"))
	assert.Equal(t, "", NormalizeE164("   ", "US"))
	// unparseable input passes through trimmed so dedup can still match
	assert.Equal(t, "not-a-number", NormalizeE164(" not-a-number ", "US"))
}
