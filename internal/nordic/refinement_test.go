package nordic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRefinement(t *testing.T) {
	ref, err := DecodeRefinement(2, refLine)
	require.NoError(t, err)
	assert.Equal(t, Refinement{
		Second:    Some(12.345),
		Latitude:  Some(28.50123),
		Longitude: Some(-15.40045),
		Depth:     Some(10.25),
		RMS:       Some(0.412),
	}, ref)
}

func TestDecodeRefinement_Short(t *testing.T) {
	_, err := DecodeRefinement(2, "   12.345   H\n")
	var le *LineLengthError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 2, le.Line)
}

func TestDecodeRefinement_FieldError(t *testing.T) {
	ref, err := DecodeRefinement(2, splice(refLine, 44, "  bad   "))
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	require.Len(t, fe, 1)
	assert.Equal(t, RefinementColumns.Depth, fe[0].Span)
	assert.False(t, ref.Depth.Present())
	assert.Equal(t, Some(12.345), ref.Second)
}

func TestRefinement_Apply(t *testing.T) {
	h, err := DecodeHypocenter(1, hypLine)
	require.NoError(t, err)

	t.Run("present fields replace", func(t *testing.T) {
		ref, err := DecodeRefinement(2, refLine)
		require.NoError(t, err)

		got := ref.Apply(h)
		assert.Equal(t, Some(12.345), got.Second)
		assert.Equal(t, Some(28.50123), got.Latitude)
		assert.Equal(t, Some(-15.40045), got.Longitude)
		assert.Equal(t, Some(10.25), got.Depth)
		assert.Equal(t, Some(0.412), got.RMS)
		assert.Equal(t, h.Magnitudes, got.Magnitudes)

		// The original is untouched.
		assert.Equal(t, Some(12.3), h.Second)
	})

	t.Run("absent fields keep hypocenter values", func(t *testing.T) {
		got := Refinement{Depth: Some(11.0)}.Apply(h)
		assert.Equal(t, Some(11.0), got.Depth)
		assert.Equal(t, h.Latitude, got.Latitude)
		assert.Equal(t, h.Second, got.Second)
	})
}

func TestEncodeRefinement_RoundTrip(t *testing.T) {
	ref, err := DecodeRefinement(2, refLine)
	require.NoError(t, err)

	got, err := EncodeRefinement(ref)
	require.NoError(t, err)
	assert.Equal(t, refLine, got)
}
