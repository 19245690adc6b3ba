package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32, CPU)
	require.NoError(t, err)

	assert.Equal(t, Shape{2, 3}, raw.Shape())
	assert.Equal(t, Float32, raw.DType())
	assert.Equal(t, CPU, raw.Device())
	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, 24, raw.ByteSize())
}

func TestNewRawScalar(t *testing.T) {
	raw, err := NewRaw(Shape{}, Float64, CPU)
	require.NoError(t, err)

	assert.Equal(t, 1, raw.NumElements())
	assert.Equal(t, 8, raw.ByteSize())
	assert.True(t, raw.Shape().IsScalar())
}

func TestNewRawInvalidShape(t *testing.T) {
	_, err := NewRaw(Shape{2, -1}, Float32, CPU)
	require.Error(t, err)

	_, err = NewRaw(Shape{0}, Float32, CPU)
	require.Error(t, err)
}

func TestRawZeroInitialized(t *testing.T) {
	raw, err := NewRaw(Shape{4}, Float32, CPU)
	require.NoError(t, err)

	for _, v := range raw.AsFloat32() {
		assert.Equal(t, float32(0), v)
	}
}

func TestAsFloat32WrongDType(t *testing.T) {
	raw, err := NewRaw(Shape{2}, Float64, CPU)
	require.NoError(t, err)

	assert.Panics(t, func() { raw.AsFloat32() })
}

func TestCloneSharesBuffer(t *testing.T) {
	raw, err := NewRaw(Shape{3}, Float32, CPU)
	require.NoError(t, err)
	raw.AsFloat32()[0] = 42

	clone := raw.Clone()
	assert.False(t, raw.IsUnique())
	assert.False(t, clone.IsUnique())

	// Shared buffer: a write through one is visible through the other.
	clone.AsFloat32()[1] = 7
	assert.Equal(t, float32(42), clone.AsFloat32()[0])
	assert.Equal(t, float32(7), raw.AsFloat32()[1])

	clone.Release()
	assert.True(t, raw.IsUnique())
}

func TestForceNonUnique(t *testing.T) {
	raw, err := NewRaw(Shape{3}, Float32, CPU)
	require.NoError(t, err)
	require.True(t, raw.IsUnique())

	restore := raw.ForceNonUnique()
	assert.False(t, raw.IsUnique())

	restore()
	assert.True(t, raw.IsUnique())
}

func TestDataTypeSize(t *testing.T) {
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 8, Float64.Size())
	assert.Equal(t, "float32", Float32.String())
	assert.Equal(t, "float64", Float64.String())
}

func TestDeviceString(t *testing.T) {
	assert.Equal(t, "CPU", CPU.String())
	assert.Equal(t, "WebGPU", WebGPU.String())
}
