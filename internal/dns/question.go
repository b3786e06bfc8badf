package dns

// Question is a single entry in the question section: a domain name,
// a query type, and an implicit class (always IN on the wire).
type Question struct {
	Name  string
	QType RecordType
}

// Marshal writes the question: qname, qtype, class=IN.
func (q *Question) Marshal(b *Buffer) error {
	if err := WriteQName(b, q.Name); err != nil {
		return err
	}
	if err := b.WriteUint16(uint16(q.QType)); err != nil {
		return err
	}
	return b.WriteUint16(uint16(ClassIN))
}

// ParseQuestion reads a question, discarding the class field.
func ParseQuestion(b *Buffer) (Question, error) {
	name, err := ReadQName(b)
	if err != nil {
		return Question{}, err
	}
	qtype, err := b.ReadUint16()
	if err != nil {
		return Question{}, err
	}
	if _, err := b.ReadUint16(); err != nil { // class, discarded
		return Question{}, err
	}
	return Question{Name: name, QType: RecordType(qtype)}, nil
}
