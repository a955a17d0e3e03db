package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, OK, Outcome(nil))
	assert.Equal(t, Fail, Outcome(errors.New("boom")))
}
