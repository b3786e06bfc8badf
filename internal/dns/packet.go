package dns

import "github.com/wiredns/wiredns/internal/pool"

// bufferPool recycles *Buffer allocations across encode/decode calls
// instead of allocating a fresh 512-byte array every time.
var bufferPool = pool.New(func() *Buffer { return NewBuffer() })

// Packet is a full DNS message: header plus the four sections.
type Packet struct {
	Header      Header
	Questions   []Question
	Answers     []Record
	Authorities []Record
	Resources   []Record
}

// EncodePacket serializes p into a buffer, recomputing the header's
// section counts from the list lengths as a required side effect.
// The returned bytes are the buffer's written prefix (cursor length),
// never more than BufferSize.
func EncodePacket(p *Packet) ([]byte, error) {
	b := bufferPool.Get()
	defer func() {
		b.Reset()
		bufferPool.Put(b)
	}()

	p.Header.QDCount = uint16(len(p.Questions))
	p.Header.ANCount = uint16(len(p.Answers))
	p.Header.NSCount = uint16(len(p.Authorities))
	p.Header.ARCount = uint16(len(p.Resources))

	if err := p.Header.Marshal(b); err != nil {
		return nil, err
	}
	for i := range p.Questions {
		if err := p.Questions[i].Marshal(b); err != nil {
			return nil, err
		}
	}
	for _, lst := range [][]Record{p.Answers, p.Authorities, p.Resources} {
		for i := range lst {
			if err := lst[i].Marshal(b); err != nil {
				return nil, err
			}
		}
	}

	out := make([]byte, b.Pos())
	copy(out, b.Bytes())
	return out, nil
}

// DecodePacket parses a Packet from data, treating only the first
// length bytes as valid (the rest of a 512-byte buffer, if any, is
// never read). A truncated message fails with ErrBufferOverflow.
func DecodePacket(data []byte, length int) (Packet, error) {
	b := bufferPool.Get()
	defer func() {
		b.Reset()
		bufferPool.Put(b)
	}()
	copy(b.Raw(), data)
	b.SetSize(length)

	var p Packet

	header, err := ParseHeader(b)
	if err != nil {
		return Packet{}, err
	}
	p.Header = header

	p.Questions = make([]Question, 0, header.QDCount)
	for i := uint16(0); i < header.QDCount; i++ {
		q, err := ParseQuestion(b)
		if err != nil {
			return Packet{}, err
		}
		p.Questions = append(p.Questions, q)
	}

	p.Answers, err = parseRecords(b, header.ANCount)
	if err != nil {
		return Packet{}, err
	}
	p.Authorities, err = parseRecords(b, header.NSCount)
	if err != nil {
		return Packet{}, err
	}
	p.Resources, err = parseRecords(b, header.ARCount)
	if err != nil {
		return Packet{}, err
	}

	return p, nil
}

func parseRecords(b *Buffer, count uint16) ([]Record, error) {
	records := make([]Record, 0, count)
	for i := uint16(0); i < count; i++ {
		rec, err := ParseRecord(b)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
