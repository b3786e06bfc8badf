package dns

import "fmt"

// BufferSize is the classic UDP DNS message limit. Callers that need
// more must layer TCP or EDNS above this codec (out of scope here).
const BufferSize = 512

// Buffer is a fixed 512-byte packet store with a bounded cursor and
// big-endian primitives. The zero value is not usable; construct one
// with NewBuffer.
type Buffer struct {
	data [BufferSize]byte
	pos  int
	size int // usable end; defaults to BufferSize, lowered by SetSize
}

// NewBuffer returns an empty, cursor-at-zero buffer ready for writing.
func NewBuffer() *Buffer {
	b := &Buffer{}
	b.Reset()
	return b
}

// Reset rewinds the cursor and usable size so the buffer can be reused
// (e.g. when returned to a pool). The underlying bytes are not cleared;
// every write path overwrites what it needs before it is read back.
func (b *Buffer) Reset() {
	b.pos = 0
	b.size = BufferSize
}

// Pos returns the current cursor position.
func (b *Buffer) Pos() int {
	return b.pos
}

// Seek moves the cursor to an absolute position. It does not validate
// range; the next read or write does.
func (b *Buffer) Seek(pos int) {
	b.pos = pos
}

// Step advances the cursor by delta (which may be negative). It does
// not validate range; the next read or write does.
func (b *Buffer) Step(delta int) {
	b.pos += delta
}

// SetSize records the logical message length for a buffer populated
// from a received packet, so that bounds checks reject reads past the
// bytes actually received rather than padding with zeros out to 512.
func (b *Buffer) SetSize(n int) {
	if n > BufferSize {
		n = BufferSize
	}
	b.size = n
}

// Bytes returns the bytes written so far, i.e. buf[0:Pos()].
func (b *Buffer) Bytes() []byte {
	return b.data[:b.pos]
}

// Raw exposes the full backing array for transport code that needs to
// fill it directly (e.g. net.Conn.Read).
func (b *Buffer) Raw() []byte {
	return b.data[:]
}

func (b *Buffer) checkRange(pos, length int) error {
	if pos < 0 || length < 0 || pos+length > b.size {
		return fmt.Errorf("%w: pos=%d len=%d limit=%d", ErrBufferOverflow, pos, length, b.size)
	}
	return nil
}

// ReadUint8 reads one byte and advances the cursor.
func (b *Buffer) ReadUint8() (uint8, error) {
	if err := b.checkRange(b.pos, 1); err != nil {
		return 0, err
	}
	v := b.data[b.pos]
	b.pos++
	return v, nil
}

// ReadUint16 reads a big-endian uint16 and advances the cursor.
func (b *Buffer) ReadUint16() (uint16, error) {
	hi, err := b.ReadUint8()
	if err != nil {
		return 0, err
	}
	lo, err := b.ReadUint8()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// ReadUint32 reads a big-endian uint32 and advances the cursor.
func (b *Buffer) ReadUint32() (uint32, error) {
	var v uint32
	for i := 0; i < 4; i++ {
		byt, err := b.ReadUint8()
		if err != nil {
			return 0, err
		}
		v = v<<8 | uint32(byt)
	}
	return v, nil
}

// WriteUint8 writes one byte and advances the cursor.
func (b *Buffer) WriteUint8(v uint8) error {
	if err := b.checkRange(b.pos, 1); err != nil {
		return err
	}
	b.data[b.pos] = v
	b.pos++
	return nil
}

// WriteUint16 writes a big-endian uint16 and advances the cursor.
func (b *Buffer) WriteUint16(v uint16) error {
	if err := b.WriteUint8(uint8(v >> 8)); err != nil {
		return err
	}
	return b.WriteUint8(uint8(v))
}

// WriteUint32 writes a big-endian uint32 and advances the cursor.
func (b *Buffer) WriteUint32(v uint32) error {
	if err := b.WriteUint8(uint8(v >> 24)); err != nil {
		return err
	}
	if err := b.WriteUint8(uint8(v >> 16)); err != nil {
		return err
	}
	if err := b.WriteUint8(uint8(v >> 8)); err != nil {
		return err
	}
	return b.WriteUint8(uint8(v))
}

// PeekUint8 reads the byte at pos without moving the cursor.
func (b *Buffer) PeekUint8(pos int) (uint8, error) {
	if err := b.checkRange(pos, 1); err != nil {
		return 0, err
	}
	return b.data[pos], nil
}

// Slice returns the length bytes starting at pos without moving the
// cursor. The returned slice aliases the buffer's storage.
func (b *Buffer) Slice(pos, length int) ([]byte, error) {
	if err := b.checkRange(pos, length); err != nil {
		return nil, err
	}
	return b.data[pos : pos+length], nil
}

// PatchUint16 overwrites the big-endian uint16 at pos in place without
// moving the cursor. Used to back-patch an rdlength slot once the
// variable-length rdata that follows it has been written.
func (b *Buffer) PatchUint16(pos int, val uint16) error {
	if err := b.checkRange(pos, 2); err != nil {
		return err
	}
	b.data[pos] = uint8(val >> 8)
	b.data[pos+1] = uint8(val)
	return nil
}
