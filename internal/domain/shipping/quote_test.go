package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterPriced(t *testing.T) {
	quotes := []CarrierQuote{
		{ID: "a", Amount: 1500},
		{ID: "b", Amount: 0},
		{ID: "c", Amount: -10},
		{ID: "d", Amount: 800},
	}

	filtered := FilterPriced(quotes)

	assert.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "d", filtered[1].ID)
}

func TestSortByAmount(t *testing.T) {
	quotes := []CarrierQuote{
		{ID: "express", Amount: 3000},
		{ID: "economy", Amount: 800},
		{ID: "standard", Amount: 1500},
	}

	SortByAmount(quotes)

	assert.Equal(t, []string{"economy", "standard", "express"},
		[]string{quotes[0].ID, quotes[1].ID, quotes[2].ID})
}
