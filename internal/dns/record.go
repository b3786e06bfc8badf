package dns

import (
	"fmt"
	"net"
	"strings"
)

// RData is the type-specific payload of a resource record. Each
// concrete type below corresponds to one RecordType; Unknown covers
// everything this codec does not interpret.
type RData interface {
	recordType() RecordType
}

// AData is the rdata for an A record: an IPv4 address.
type AData struct {
	IP net.IP
}

func (AData) recordType() RecordType { return TypeA }

// AAAAData is the rdata for an AAAA record: an IPv6 address.
type AAAAData struct {
	IP net.IP
}

func (AAAAData) recordType() RecordType { return TypeAAAA }

// NSData is the rdata for an NS record: the authoritative nameserver.
type NSData struct {
	Host string
}

func (NSData) recordType() RecordType { return TypeNS }

// CNAMEData is the rdata for a CNAME record: the canonical name.
type CNAMEData struct {
	Host string
}

func (CNAMEData) recordType() RecordType { return TypeCNAME }

// PTRData is the rdata for a PTR record: the pointed-to domain.
type PTRData struct {
	Host string
}

func (PTRData) recordType() RecordType { return TypePTR }

// MXData is the rdata for an MX record: preference and mail exchanger.
type MXData struct {
	Preference uint16
	Exchange   string
}

func (MXData) recordType() RecordType { return TypeMX }

// SOAData is the rdata for an SOA record.
type SOAData struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

func (SOAData) recordType() RecordType { return TypeSOA }

// TXTData is the rdata for a TXT record: an ordered list of
// length-prefixed character strings.
type TXTData struct {
	Strings []string
}

func (TXTData) recordType() RecordType { return TypeTXT }

// UnknownData is the rdata for any qtype this codec does not
// interpret: the raw bytes, preserved and re-emitted verbatim.
type UnknownData struct {
	QType RecordType
	Raw   []byte
}

func (u UnknownData) recordType() RecordType { return u.QType }

// Record is one resource record: the common preamble plus
// type-specific rdata.
type Record struct {
	Domain string
	Class  RecordClass
	TTL    uint32
	Data   RData
}

// Type returns the wire qtype of the record's rdata.
func (r *Record) Type() RecordType {
	return r.Data.recordType()
}

// Marshal writes the record's preamble and rdata, back-patching
// rdlength for variable-length rdata once the payload is known.
func (r *Record) Marshal(b *Buffer) error {
	if err := WriteQName(b, r.Domain); err != nil {
		return err
	}
	if err := b.WriteUint16(uint16(r.Type())); err != nil {
		return err
	}
	class := r.Class
	if class == 0 {
		class = ClassIN
	}
	if err := b.WriteUint16(uint16(class)); err != nil {
		return err
	}
	if err := b.WriteUint32(r.TTL); err != nil {
		return err
	}

	switch d := r.Data.(type) {
	case AData:
		ip4 := d.IP.To4()
		if ip4 == nil {
			return fmt.Errorf("%w: A record IP %v is not IPv4", ErrBadArg, d.IP)
		}
		if err := b.WriteUint16(4); err != nil {
			return err
		}
		for _, octet := range ip4 {
			if err := b.WriteUint8(octet); err != nil {
				return err
			}
		}
		return nil

	case AAAAData:
		ip16 := d.IP.To16()
		if ip16 == nil {
			return fmt.Errorf("%w: AAAA record IP %v is not IPv6", ErrBadArg, d.IP)
		}
		if err := b.WriteUint16(16); err != nil {
			return err
		}
		for _, octet := range ip16 {
			if err := b.WriteUint8(octet); err != nil {
				return err
			}
		}
		return nil

	case NSData:
		return writeVariableRData(b, func() error { return WriteQName(b, d.Host) })

	case CNAMEData:
		return writeVariableRData(b, func() error { return WriteQName(b, d.Host) })

	case PTRData:
		return writeVariableRData(b, func() error { return WriteQName(b, d.Host) })

	case MXData:
		return writeVariableRData(b, func() error {
			if err := b.WriteUint16(d.Preference); err != nil {
				return err
			}
			return WriteQName(b, d.Exchange)
		})

	case SOAData:
		return writeVariableRData(b, func() error {
			if err := WriteQName(b, d.MName); err != nil {
				return err
			}
			if err := WriteQName(b, d.RName); err != nil {
				return err
			}
			for _, v := range []uint32{d.Serial, d.Refresh, d.Retry, d.Expire, d.Minimum} {
				if err := b.WriteUint32(v); err != nil {
					return err
				}
			}
			return nil
		})

	case TXTData:
		return writeVariableRData(b, func() error {
			for _, s := range d.Strings {
				if len(s) > 255 {
					return fmt.Errorf("%w: TXT character-string %d bytes exceeds 255", ErrTxtOverrun, len(s))
				}
				if err := b.WriteUint8(uint8(len(s))); err != nil {
					return err
				}
				for i := 0; i < len(s); i++ {
					if err := b.WriteUint8(s[i]); err != nil {
						return err
					}
				}
			}
			return nil
		})

	case UnknownData:
		if err := b.WriteUint16(uint16(len(d.Raw))); err != nil {
			return err
		}
		for _, by := range d.Raw {
			if err := b.WriteUint8(by); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: unsupported rdata type %T", ErrBadArg, r.Data)
	}
}

// writeVariableRData writes a placeholder rdlength, invokes write to
// emit the rdata, then patches the placeholder with the actual
// number of bytes written.
func writeVariableRData(b *Buffer, write func() error) error {
	slot := b.Pos()
	if err := b.WriteUint16(0); err != nil {
		return err
	}
	start := b.Pos()
	if err := write(); err != nil {
		return err
	}
	return b.PatchUint16(slot, uint16(b.Pos()-start))
}

// ParseRecord reads one resource record, dispatching on qtype.
func ParseRecord(b *Buffer) (Record, error) {
	domain, err := ReadQName(b)
	if err != nil {
		return Record{}, err
	}
	qtypeNum, err := b.ReadUint16()
	if err != nil {
		return Record{}, err
	}
	qtype := RecordType(qtypeNum)
	classNum, err := b.ReadUint16()
	if err != nil {
		return Record{}, err
	}
	ttl, err := b.ReadUint32()
	if err != nil {
		return Record{}, err
	}
	rdlength, err := b.ReadUint16()
	if err != nil {
		return Record{}, err
	}

	rec := Record{Domain: domain, Class: RecordClass(classNum), TTL: ttl}

	switch qtype {
	case TypeA:
		raw, err := b.Slice(b.Pos(), 4)
		if err != nil {
			return Record{}, err
		}
		ip := net.IPv4(raw[0], raw[1], raw[2], raw[3])
		b.Step(4)
		rec.Data = AData{IP: ip}

	case TypeAAAA:
		raw, err := b.Slice(b.Pos(), 16)
		if err != nil {
			return Record{}, err
		}
		ip := make(net.IP, 16)
		copy(ip, raw)
		b.Step(16)
		rec.Data = AAAAData{IP: ip}

	case TypeNS:
		host, err := ReadQName(b)
		if err != nil {
			return Record{}, err
		}
		rec.Data = NSData{Host: host}

	case TypeCNAME:
		host, err := ReadQName(b)
		if err != nil {
			return Record{}, err
		}
		rec.Data = CNAMEData{Host: host}

	case TypePTR:
		host, err := ReadQName(b)
		if err != nil {
			return Record{}, err
		}
		rec.Data = PTRData{Host: host}

	case TypeMX:
		pref, err := b.ReadUint16()
		if err != nil {
			return Record{}, err
		}
		exchange, err := ReadQName(b)
		if err != nil {
			return Record{}, err
		}
		rec.Data = MXData{Preference: pref, Exchange: exchange}

	case TypeSOA:
		mname, err := ReadQName(b)
		if err != nil {
			return Record{}, err
		}
		rname, err := ReadQName(b)
		if err != nil {
			return Record{}, err
		}
		var nums [5]uint32
		for i := range nums {
			nums[i], err = b.ReadUint32()
			if err != nil {
				return Record{}, err
			}
		}
		rec.Data = SOAData{
			MName: mname, RName: rname,
			Serial: nums[0], Refresh: nums[1], Retry: nums[2], Expire: nums[3], Minimum: nums[4],
		}

	case TypeTXT:
		strs, err := readTXTStrings(b, rdlength)
		if err != nil {
			return Record{}, err
		}
		rec.Data = TXTData{Strings: strs}

	default:
		raw, err := b.Slice(b.Pos(), int(rdlength))
		if err != nil {
			return Record{}, err
		}
		cp := make([]byte, len(raw))
		copy(cp, raw)
		b.Step(int(rdlength))
		rec.Data = UnknownData{QType: qtype, Raw: cp}
	}

	return rec, nil
}

func readTXTStrings(b *Buffer, rdlength uint16) ([]string, error) {
	var strs []string
	consumed := uint16(0)
	for consumed < rdlength {
		length, err := b.ReadUint8()
		if err != nil {
			return nil, err
		}
		consumed++
		if uint32(consumed)+uint32(length) > uint32(rdlength) {
			return nil, fmt.Errorf("%w: character-string of %d bytes at offset %d overruns rdlength %d",
				ErrTxtOverrun, length, consumed, rdlength)
		}
		raw, err := b.Slice(b.Pos(), int(length))
		if err != nil {
			return nil, err
		}
		b.Step(int(length))
		consumed += uint16(length)
		strs = append(strs, strings.ToValidUTF8(string(raw), "�"))
	}
	return strs, nil
}
