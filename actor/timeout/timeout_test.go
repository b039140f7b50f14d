package timeout

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestInfinity_IsLargerThanAnyRealTimeout(t *testing.T) {
	assert.Assert(t, Infinity > 24*time.Hour)
}

func TestDefault_IsFiveSeconds(t *testing.T) {
	assert.Equal(t, Default, 5*time.Second)
}
