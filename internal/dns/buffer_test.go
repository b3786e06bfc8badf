package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferReadWriteRoundTrip(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.WriteUint8(0x42))
	require.NoError(t, b.WriteUint16(0xABCD))
	require.NoError(t, b.WriteUint32(0xDEADBEEF))

	b.Seek(0)
	v8, err := b.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), v8)

	v16, err := b.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xABCD), v16)

	v32, err := b.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v32)
}

func TestBuffer512thWriteSucceeds513thFails(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < BufferSize; i++ {
		require.NoError(t, b.WriteUint8(byte(i)))
	}
	err := b.WriteUint8(0)
	assert.ErrorIs(t, err, ErrBufferOverflow)
}

func TestBufferPatchUint16DoesNotMoveCursor(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.WriteUint16(0))
	require.NoError(t, b.WriteUint16(0xAAAA))
	posBefore := b.Pos()

	require.NoError(t, b.PatchUint16(0, 0x1234))
	assert.Equal(t, posBefore, b.Pos())

	b.Seek(0)
	v, err := b.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)
}

func TestBufferSliceAndPeekDoNotMoveCursor(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, b.WriteUint8(1))
	require.NoError(t, b.WriteUint8(2))
	require.NoError(t, b.WriteUint8(3))

	b.Seek(0)
	peeked, err := b.PeekUint8(1)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), peeked)
	assert.Equal(t, 0, b.Pos())

	sl, err := b.Slice(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, sl)
	assert.Equal(t, 0, b.Pos())
}

func TestBufferSetSizeLowersUsableEnd(t *testing.T) {
	b := NewBuffer()
	b.SetSize(2)
	require.NoError(t, b.WriteUint8(1))
	require.NoError(t, b.WriteUint8(2))
	err := b.WriteUint8(3)
	assert.ErrorIs(t, err, ErrBufferOverflow)
}

func TestBufferStepAndSeekDoNotValidate(t *testing.T) {
	b := NewBuffer()
	b.Seek(600)
	assert.Equal(t, 600, b.Pos())
	_, err := b.ReadUint8()
	assert.ErrorIs(t, err, ErrBufferOverflow)
}
