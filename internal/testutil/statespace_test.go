package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/operator-framework/ferryman/pkg/ferry"
)

func TestCountSchedules(t *testing.T) {
	free := func(items ...ferry.Identifier) ferry.Puzzle {
		return ferry.Puzzle{Carrier: "farmer", Items: items}
	}

	assert.Equal(t, 2, CountSchedules(ferry.Classic(), 7))
	assert.Equal(t, 0, CountSchedules(ferry.Classic(), 6))
	assert.Equal(t, 1, CountSchedules(free(), 3))
	assert.Equal(t, 0, CountSchedules(free(), 2))
	assert.Equal(t, 2, CountSchedules(free("a", "b"), 3))
	assert.Equal(t, 24, CountSchedules(free("a", "b", "c", "d"), 7))
	assert.Equal(t, 822, CountSchedules(free("a", "b", "c"), 9))
}
