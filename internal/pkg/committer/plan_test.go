package committer

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_IgnoresNilMutations(t *testing.T) {
	p := NewPlan()
	assert.True(t, p.IsEmpty())

	p.Add(nil)
	assert.True(t, p.IsEmpty())

	p.Add(spanner.InsertOrUpdate("preset_store", []string{"store_key"}, []interface{}{"k"}))
	assert.False(t, p.IsEmpty())
	assert.Equal(t, 1, p.Len())
	assert.Len(t, p.Mutations(), 1)
}

func TestAdapter_EmptyPlanIsNoop(t *testing.T) {
	a := NewAdapter(nil)
	require.NoError(t, a.Apply(context.Background(), NewPlan()))
	require.NoError(t, a.Apply(context.Background(), nil))
}

func TestAdapter_NilClient(t *testing.T) {
	a := NewAdapter(nil)
	p := NewPlan()
	p.Add(spanner.InsertOrUpdate("preset_store", []string{"store_key"}, []interface{}{"k"}))
	assert.Error(t, a.Apply(context.Background(), p))
}
