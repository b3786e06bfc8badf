package dns

// RecordType identifies the kind of resource record or question, per
// the IANA DNS parameters registry. Every uint16 value is a valid
// RecordType; values outside the named set below are still handled,
// by Record's Unknown rdata path.
type RecordType uint16

const (
	TypeA     RecordType = 1
	TypeNS    RecordType = 2
	TypeCNAME RecordType = 5
	TypeSOA   RecordType = 6
	TypePTR   RecordType = 12
	TypeMX    RecordType = 15
	TypeTXT   RecordType = 16
	TypeAAAA  RecordType = 28
)

// String returns the mnemonic for known types, or a numeric fallback
// for anything else — used by the stub client's pretty-printer.
func (t RecordType) String() string {
	switch t {
	case TypeA:
		return "A"
	case TypeNS:
		return "NS"
	case TypeCNAME:
		return "CNAME"
	case TypeSOA:
		return "SOA"
	case TypePTR:
		return "PTR"
	case TypeMX:
		return "MX"
	case TypeTXT:
		return "TXT"
	case TypeAAAA:
		return "AAAA"
	default:
		return "TYPE" + uitoa(uint16(t))
	}
}

func uitoa(v uint16) string {
	if v == 0 {
		return "0"
	}
	var buf [5]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// RecordClass identifies the protocol family of a record. Questions
// are always written with IN, and a Record with a zero Class is
// written as IN; other classes are parsed and preserved, and a Record
// carrying one is written back with that class.
type RecordClass uint16

const ClassIN RecordClass = 1

// RCode is the closed set of DNS response codes. Any numeric value
// outside the set decodes permissively to RCodeNoError.
type RCode uint8

const (
	RCodeNoError  RCode = 0
	RCodeFormErr  RCode = 1
	RCodeServFail RCode = 2
	RCodeNXDomain RCode = 3
	RCodeNotImp   RCode = 4
	RCodeRefused  RCode = 5
)

// ParseRCode maps a 4-bit wire value to an RCode, falling back to
// RCodeNoError for anything outside the closed set.
func ParseRCode(n uint8) RCode {
	switch n {
	case uint8(RCodeFormErr):
		return RCodeFormErr
	case uint8(RCodeServFail):
		return RCodeServFail
	case uint8(RCodeNXDomain):
		return RCodeNXDomain
	case uint8(RCodeNotImp):
		return RCodeNotImp
	case uint8(RCodeRefused):
		return RCodeRefused
	default:
		return RCodeNoError
	}
}

func (r RCode) String() string {
	switch r {
	case RCodeFormErr:
		return "FORMERR"
	case RCodeServFail:
		return "SERVFAIL"
	case RCodeNXDomain:
		return "NXDOMAIN"
	case RCodeNotImp:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	default:
		return "NOERROR"
	}
}
