package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextRecord_Text(t *testing.T) {
	t.Run("returns text entry", func(t *testing.T) {
		assert.Equal(t, "A man is eating.", TextRecord{"text": "A man is eating."}.Text())
	})

	t.Run("missing text defaults to empty string", func(t *testing.T) {
		assert.Equal(t, "", TextRecord{"id": "p1"}.Text())
	})

	t.Run("nil record defaults to empty string", func(t *testing.T) {
		var r TextRecord
		assert.Equal(t, "", r.Text())
	})

	t.Run("non-string text defaults to empty string", func(t *testing.T) {
		assert.Equal(t, "", TextRecord{"text": 42}.Text())
	})
}

func TestNewFrame(t *testing.T) {
	pair := NewTextPair(TextRecord{"text": "A man is eating."}, nil)
	frame := NewFrame(pair)

	assert.Equal(t, 1, frame.Len())
	assert.Equal(t, []string{"A man is eating."}, frame.PremiseText)
	assert.Equal(t, []string{""}, frame.HypothesisText)
}

func TestFeatureBatch_IsEmpty(t *testing.T) {
	var absent *FeatureBatch
	assert.True(t, absent.IsEmpty())
	assert.True(t, (&FeatureBatch{}).IsEmpty())
	assert.True(t, (&FeatureBatch{Rows: [][]float64{}}).IsEmpty())
	assert.False(t, (&FeatureBatch{Rows: [][]float64{{0.1, 0.2}}}).IsEmpty())
	assert.Equal(t, 1, (&FeatureBatch{Rows: [][]float64{{0.1}}}).Len())
}
