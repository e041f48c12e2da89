package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

func TestStateManager(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	err := s.RequireFitted("Forest", "Predict")
	var nf *scierrors.NotFittedError
	require.True(t, scierrors.As(err, &nf))
	assert.Equal(t, "Forest", nf.ModelName)
	assert.Equal(t, "Predict", nf.Method)

	s.SetDimensions(4, 6)
	s.SetFitted()
	assert.NoError(t, s.RequireFitted("Forest", "Predict"))
	a, n := s.Dimensions()
	assert.Equal(t, 4, a)
	assert.Equal(t, 6, n)
	assert.Equal(t, State{Fitted: true, NAttributes: 4, NSamples: 6}, s.State())

	s.Reset()
	assert.Equal(t, State{}, s.State())
}
