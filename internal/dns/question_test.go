package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionRoundTrip(t *testing.T) {
	q := Question{Name: "rust-lang.org", QType: TypeMX}

	b := NewBuffer()
	require.NoError(t, q.Marshal(b))
	writtenPos := b.Pos()

	b.Seek(0)
	parsed, err := ParseQuestion(b)
	require.NoError(t, err)

	assert.Equal(t, q, parsed)
	assert.Equal(t, writtenPos, b.Pos())
}

func TestQuestionClassIsAlwaysIN(t *testing.T) {
	q := Question{Name: "example.com", QType: TypeA}
	b := NewBuffer()
	require.NoError(t, q.Marshal(b))

	b.Seek(0)
	require.NoError(t, skipQName(b))
	_, err := b.ReadUint16() // qtype
	require.NoError(t, err)
	class, err := b.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(ClassIN), class)
}

func skipQName(b *Buffer) error {
	_, err := ReadQName(b)
	return err
}
