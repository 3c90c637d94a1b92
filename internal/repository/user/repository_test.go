package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordAddressDropsEmptyParts(t *testing.T) {
	rec := Record{
		Address1: "12 Main St",
		City:     "Denver",
		State:    "CO",
		Country:  "US",
	}
	assert.Equal(t, "12 Main St, Denver, CO, US", rec.Address())

	assert.Empty(t, Record{}.Address())
	assert.Equal(t, "Madrid", Record{State: "   ", City: "Madrid"}.Address())
}
