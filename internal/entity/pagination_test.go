package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationInput(t *testing.T) {
	cases := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{5, 0, 5, 0},
		{0, 0, 0, 0},
		{50, 100, 50, 100},
		{51, 0, 50, 0},
		{1000, -1, 50, 0},
		{-7, -7, 0, 0},
	}

	for _, tc := range cases {
		pg := NewPaginationInput(tc.limit, tc.offset)
		assert.Equal(t, tc.wantLimit, pg.Limit, "limit %d", tc.limit)
		assert.Equal(t, tc.wantOffset, pg.Offset, "offset %d", tc.offset)
	}
}
