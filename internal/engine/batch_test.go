package engine

import (
	"context"
	"testing"

	"github.com/piwi3910/blastplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignBatch_PreservesOrder(t *testing.T) {
	var inputs []model.BlastDesignInputs
	for i := range 12 {
		in := baseInputs()
		in.Geometry.Length = 20 + float64(i)*10
		inputs = append(inputs, in)
	}

	results, err := DesignBatch(context.Background(), inputs, 3)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, br := range results {
		assert.Equal(t, i, br.Index)
		require.NoError(t, br.Err)
		want, err := Design(inputs[i])
		require.NoError(t, err)
		assert.Equal(t, want, br.Result)
	}
}

func TestDesignBatch_ItemErrorsDoNotStopBatch(t *testing.T) {
	bad := baseInputs()
	bad.Cost = model.CostSensitivity(42)
	inputs := []model.BlastDesignInputs{baseInputs(), bad, baseInputs()}

	results, err := DesignBatch(context.Background(), inputs, 0)
	require.NoError(t, err)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
}

func TestDesignBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DesignBatch(ctx, []model.BlastDesignInputs{baseInputs()}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
