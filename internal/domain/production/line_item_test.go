package production

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		in   CalculationInput
		want Calculation
	}{
		{
			name: "no coverage no stock",
			in:   CalculationInput{OrderedQuantity: 62},
			want: Calculation{OrderedQuantity: 62, OrderedQuantityNew: 62, TotalToProduce: 62},
		},
		{
			name: "coverage reduces new demand",
			in:   CalculationInput{OrderedQuantity: 2, PreviousCoverage: 1},
			want: Calculation{OrderedQuantity: 2, OrderedQuantityNew: 1, TotalToProduce: 1},
		},
		{
			name: "coverage larger than demand floors at zero",
			in:   CalculationInput{OrderedQuantity: 1, PreviousCoverage: 2},
			want: Calculation{OrderedQuantity: 1, OrderedQuantityNew: 0, TotalToProduce: 0},
		},
		{
			name: "stock is subtracted",
			in:   CalculationInput{OrderedQuantity: 21, CurrentStock: 2},
			want: Calculation{OrderedQuantity: 21, OrderedQuantityNew: 21, TotalToProduce: 19},
		},
		{
			name: "manual quantity wins over new demand",
			in:   CalculationInput{OrderedQuantity: 10, PreviousCoverage: 4, ManualQuantity: 15, CurrentStock: 3},
			want: Calculation{OrderedQuantity: 10, OrderedQuantityNew: 6, Quantity: 15, TotalToProduce: 12},
		},
		{
			name: "stock above target",
			in:   CalculationInput{OrderedQuantity: 5, CurrentStock: 9},
			want: Calculation{OrderedQuantity: 5, OrderedQuantityNew: 5, TotalToProduce: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculate_RejectsNegativeInput(t *testing.T) {
	inputs := []CalculationInput{
		{OrderedQuantity: -1},
		{PreviousCoverage: -1},
		{ManualQuantity: -3},
	}
	for _, in := range inputs {
		_, err := Calculate(in)
		assert.True(t, errors.Is(err, ErrValidation))
	}
}

func TestLineItem_Apply(t *testing.T) {
	c, err := Calculate(CalculationInput{OrderedQuantity: 10, PreviousCoverage: 4})
	require.NoError(t, err)

	li := NewLineItem(uuid.New(), uuid.New(), c)
	assert.Equal(t, int64(6), li.EffectiveTarget())

	c2, err := Calculate(CalculationInput{OrderedQuantity: 10, PreviousCoverage: 4, ManualQuantity: 20})
	require.NoError(t, err)
	li.Apply(c2)
	assert.Equal(t, int64(20), li.EffectiveTarget())
	assert.Equal(t, int64(20), li.TotalToProduce)
}
