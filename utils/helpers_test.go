package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundToTwo(t *testing.T) {
	assert.Equal(t, 10.57, RoundToTwo(10.567))
	assert.Equal(t, 10.56, RoundToTwo(10.564))
	assert.Equal(t, -30.0, RoundToTwo(-29.999))
	assert.Equal(t, 0.0, RoundToTwo(0.001))
}

func TestPaginationOffset(t *testing.T) {
	p := PaginationQuery{Page: 1, Limit: 20}
	assert.Equal(t, 0, p.Offset())

	p = PaginationQuery{Page: 3, Limit: 25}
	assert.Equal(t, 50, p.Offset())
}
