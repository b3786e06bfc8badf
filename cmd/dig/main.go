// Command dig is a minimal UDP stub resolver client: it builds a
// single DNS query, sends it to an upstream resolver, and pretty
// prints the reply in a format reminiscent of BIND's dig(1).
package main

import (
	"crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wiredns/wiredns/internal/dns"
	"github.com/wiredns/wiredns/internal/logging"
)

const (
	defaultServer = "8.8.8.8"
	dnsPort       = 53
	readTimeout   = 5 * time.Second
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("dig", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "enable debug logging to stderr")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", dns.ErrBadArg, err)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger := logging.Configure(logging.Config{Level: level})

	server, name, qtype, err := parseArgs(fs.Args())
	if err != nil {
		return err
	}

	logger.Debug("resolving", "server", server, "name", name, "qtype", qtype.String())

	start := time.Now()
	query := buildQuery(name, qtype)
	reply, err := exchange(server, query)
	if err != nil {
		return err
	}
	logger.Debug("round trip complete", "elapsed", time.Since(start))

	printPacket(os.Stdout, server, reply)
	return nil
}

// parseArgs implements the positional `dig [@server] <name> [type]`
// surface: any argument beginning with @ sets the server, the first
// remaining argument is the query name, the second is the qtype.
func parseArgs(args []string) (server, name string, qtype dns.RecordType, err error) {
	server = defaultServer
	var positional []string

	for _, a := range args {
		if strings.HasPrefix(a, "@") {
			server = strings.TrimPrefix(a, "@")
			continue
		}
		positional = append(positional, a)
	}

	if len(positional) == 0 {
		return "", "", 0, fmt.Errorf("%w: missing query name", dns.ErrBadArg)
	}
	name = positional[0]

	qtype = dns.TypeA
	if len(positional) > 1 {
		qtype, err = parseQType(positional[1])
		if err != nil {
			return "", "", 0, err
		}
	}

	if net.ParseIP(server) == nil {
		return "", "", 0, fmt.Errorf("%w: malformed server address %q", dns.ErrBadArg, server)
	}

	return server, name, qtype, nil
}

func parseQType(s string) (dns.RecordType, error) {
	normalized := strings.ToUpper(s)
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, "_", "")

	switch normalized {
	case "A":
		return dns.TypeA, nil
	case "NS":
		return dns.TypeNS, nil
	case "CNAME":
		return dns.TypeCNAME, nil
	case "SOA":
		return dns.TypeSOA, nil
	case "PTR":
		return dns.TypePTR, nil
	case "MX":
		return dns.TypeMX, nil
	case "TXT":
		return dns.TypeTXT, nil
	case "AAAA":
		return dns.TypeAAAA, nil
	}

	if n, convErr := strconv.ParseUint(s, 10, 16); convErr == nil {
		return dns.RecordType(n), nil
	}

	return 0, fmt.Errorf("%w: unrecognized query type %q", dns.ErrBadArg, s)
}

func buildQuery(name string, qtype dns.RecordType) *dns.Packet {
	return &dns.Packet{
		Header: dns.Header{
			ID:               randomID(),
			RecursionDesired: true,
		},
		Questions: []dns.Question{{Name: name, QType: qtype}},
	}
}

func randomID() uint16 {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return uint16(time.Now().UnixNano())
	}
	return binary.BigEndian.Uint16(buf[:])
}

func exchange(server string, query *dns.Packet) (dns.Packet, error) {
	wire, err := dns.EncodePacket(query)
	if err != nil {
		return dns.Packet{}, fmt.Errorf("%w: encoding query: %v", dns.ErrBadArg, err)
	}

	conn, err := net.DialUDP("udp", nil, &net.UDPAddr{IP: net.ParseIP(server), Port: dnsPort})
	if err != nil {
		return dns.Packet{}, fmt.Errorf("%w: dialing %s: %v", dns.ErrIO, server, err)
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return dns.Packet{}, fmt.Errorf("%w: setting read deadline: %v", dns.ErrIO, err)
	}

	if _, err := conn.Write(wire); err != nil {
		return dns.Packet{}, fmt.Errorf("%w: sending query: %v", dns.ErrIO, err)
	}

	recvBuf := make([]byte, dns.BufferSize)
	n, err := conn.Read(recvBuf)
	if err != nil {
		return dns.Packet{}, fmt.Errorf("%w: reading reply: %v", dns.ErrIO, err)
	}

	reply, err := dns.DecodePacket(recvBuf, n)
	if err != nil {
		return dns.Packet{}, fmt.Errorf("decoding reply: %w", err)
	}
	return reply, nil
}

func printPacket(w *os.File, server string, p dns.Packet) {
	fmt.Fprintf(w, "; <<>> wiredns-dig <<>> @%s\n", server)
	fmt.Fprintf(w, ";; ->>HEADER<<- opcode: %d, status: %s, id: %d\n", p.Header.Opcode, p.Header.RCode, p.Header.ID)
	fmt.Fprintf(w, ";; flags: %s; QUERY: %d, ANSWER: %d, AUTHORITY: %d, ADDITIONAL: %d\n",
		headerFlags(p.Header), p.Header.QDCount, p.Header.ANCount, p.Header.NSCount, p.Header.ARCount)

	if len(p.Questions) > 0 {
		fmt.Fprintln(w, "\n;; QUESTION SECTION:")
		for _, q := range p.Questions {
			fmt.Fprintf(w, ";%s.\tIN\t%s\n", q.Name, q.QType)
		}
	}

	printRecordSection(w, "ANSWER", p.Answers)
	printRecordSection(w, "AUTHORITY", p.Authorities)
	printRecordSection(w, "ADDITIONAL", p.Resources)
}

func headerFlags(h dns.Header) string {
	var flags []string
	if h.Response {
		flags = append(flags, "qr")
	}
	if h.AuthoritativeAnswer {
		flags = append(flags, "aa")
	}
	if h.Truncated {
		flags = append(flags, "tc")
	}
	if h.RecursionDesired {
		flags = append(flags, "rd")
	}
	if h.RecursionAvailable {
		flags = append(flags, "ra")
	}
	if h.AuthenticatedData {
		flags = append(flags, "ad")
	}
	if h.CheckingDisabled {
		flags = append(flags, "cd")
	}
	return strings.Join(flags, " ")
}

func printRecordSection(w *os.File, title string, records []dns.Record) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(w, "\n;; %s SECTION:\n", title)
	for _, r := range records {
		fmt.Fprintf(w, "%s.\t%d\tIN\t%s\t%s\n", r.Domain, r.TTL, r.Type(), rdataString(r.Data))
	}
}

func rdataString(d dns.RData) string {
	switch v := d.(type) {
	case dns.AData:
		return v.IP.String()
	case dns.AAAAData:
		return v.IP.String()
	case dns.NSData:
		return v.Host + "."
	case dns.CNAMEData:
		return v.Host + "."
	case dns.PTRData:
		return v.Host + "."
	case dns.MXData:
		return fmt.Sprintf("%d %s.", v.Preference, v.Exchange)
	case dns.SOAData:
		return fmt.Sprintf("%s. %s. %d %d %d %d %d", v.MName, v.RName, v.Serial, v.Refresh, v.Retry, v.Expire, v.Minimum)
	case dns.TXTData:
		var parts []string
		for _, s := range v.Strings {
			parts = append(parts, strconv.Quote(s))
		}
		return strings.Join(parts, " ")
	case dns.UnknownData:
		return fmt.Sprintf("\\# %d %x", len(v.Raw), v.Raw)
	default:
		return ""
	}
}
