package dns

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTripRecord(t *testing.T, r Record) Record {
	t.Helper()
	b := NewBuffer()
	require.NoError(t, r.Marshal(b))
	b.Seek(0)
	parsed, err := ParseRecord(b)
	require.NoError(t, err)
	return parsed
}

func TestARecordRoundTrip(t *testing.T) {
	r := Record{Domain: "example.com", Class: ClassIN, TTL: 3600, Data: AData{IP: net.IPv4(127, 0, 0, 1)}}
	parsed := roundTripRecord(t, r)
	assert.Equal(t, r.Domain, parsed.Domain)
	assert.Equal(t, r.TTL, parsed.TTL)
	a, ok := parsed.Data.(AData)
	require.True(t, ok)
	assert.True(t, a.IP.Equal(net.IPv4(127, 0, 0, 1)))
}

func TestARecordWireLayoutMatchesScenarioS2(t *testing.T) {
	r := Record{Domain: "example.com", Class: ClassIN, TTL: 60, Data: AData{IP: net.IPv4(192, 0, 2, 1)}}
	b := NewBuffer()
	require.NoError(t, r.Marshal(b))

	raw := b.Bytes()
	rdlength := raw[len(raw)-6 : len(raw)-4]
	assert.Equal(t, []byte{0x00, 0x04}, rdlength)
	assert.Equal(t, []byte{192, 0, 2, 1}, raw[len(raw)-4:])
}

func TestAAAARecordRoundTrip(t *testing.T) {
	ip := net.ParseIP("::1")
	r := Record{Domain: "ipv6.example", Class: ClassIN, TTL: 600, Data: AAAAData{IP: ip}}
	parsed := roundTripRecord(t, r)
	aaaa, ok := parsed.Data.(AAAAData)
	require.True(t, ok)
	assert.True(t, aaaa.IP.Equal(ip))
}

func TestCNAMEAndMXRecordsRoundTrip(t *testing.T) {
	cname := Record{Domain: "alias.example", Class: ClassIN, TTL: 123, Data: CNAMEData{Host: "target.example"}}
	parsedCNAME := roundTripRecord(t, cname)
	assert.Equal(t, CNAMEData{Host: "target.example"}, parsedCNAME.Data)

	mx := Record{Domain: "mx.example", Class: ClassIN, TTL: 55, Data: MXData{Preference: 10, Exchange: "mail.example"}}
	parsedMX := roundTripRecord(t, mx)
	assert.Equal(t, MXData{Preference: 10, Exchange: "mail.example"}, parsedMX.Data)
}

func TestSOARecordRoundTrip(t *testing.T) {
	soa := SOAData{
		MName: "ns1.example.com", RName: "admin.example.com",
		Serial: 2024010101, Refresh: 7200, Retry: 3600, Expire: 1209600, Minimum: 300,
	}
	r := Record{Domain: "example.com", Class: ClassIN, TTL: 86400, Data: soa}
	parsed := roundTripRecord(t, r)
	assert.Equal(t, soa, parsed.Data)
}

func TestTXTRecordRoundTrip(t *testing.T) {
	txt := TXTData{Strings: []string{"v=spf1 -all", "second string"}}
	r := Record{Domain: "example.com", Class: ClassIN, TTL: 300, Data: txt}
	parsed := roundTripRecord(t, r)
	assert.Equal(t, txt, parsed.Data)
}

func TestTXTDecodeOverrunFails(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, WriteQName(b, "example.com"))
	require.NoError(t, b.WriteUint16(uint16(TypeTXT)))
	require.NoError(t, b.WriteUint16(uint16(ClassIN)))
	require.NoError(t, b.WriteUint32(0))
	require.NoError(t, b.WriteUint16(2)) // rdlength=2, but declares a 10-byte string
	require.NoError(t, b.WriteUint8(10))
	require.NoError(t, b.WriteUint8('x'))

	b.Seek(0)
	_, err := ParseRecord(b)
	assert.ErrorIs(t, err, ErrTxtOverrun)
}

func TestUnknownRecordPreservesRawRdata(t *testing.T) {
	b := NewBuffer()
	require.NoError(t, WriteQName(b, "unknown.example"))
	require.NoError(t, b.WriteUint16(65000))
	require.NoError(t, b.WriteUint16(uint16(ClassIN)))
	require.NoError(t, b.WriteUint32(0))
	require.NoError(t, b.WriteUint16(3))
	require.NoError(t, b.WriteUint8(0xAA))
	require.NoError(t, b.WriteUint8(0xBB))
	require.NoError(t, b.WriteUint8(0xCC))

	b.Seek(0)
	parsed, err := ParseRecord(b)
	require.NoError(t, err)
	unk, ok := parsed.Data.(UnknownData)
	require.True(t, ok)
	assert.Equal(t, RecordType(65000), unk.QType)
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, unk.Raw)

	out := NewBuffer()
	require.NoError(t, parsed.Marshal(out))
	wire := out.Bytes()
	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, wire[len(wire)-3:])
}
