package main

import (
	"flag"
	"log"
	"math/rand"
	"net"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"TrafficLens/internal/core/model"
	"TrafficLens/internal/store"
)

// Renders a CSV dataset as a synthetic pcap file, one frame per record, so
// the mock traffic can be opened in standard capture tooling.
func main() {
	inputFile := flag.String("i", "mock_traffic.csv", "Input dataset path")
	outputFile := flag.String("o", "mock_traffic.pcap", "Output pcap file path")
	flag.Parse()

	ds, err := store.Load(*inputFile)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	f, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	pcapWriter := pcapgo.NewWriter(f)
	if err := pcapWriter.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		log.Fatalf("Failed to write pcap header: %v", err)
	}

	// Source ports are not part of the record model; draw them from a fixed
	// seed so the export is reproducible.
	rng := rand.New(rand.NewSource(1))

	log.Printf("Exporting %d records into %s...", len(ds.Records), *outputFile)

	for i, rec := range ds.Records {
		ts, err := time.Parse(model.TimestampLayout, rec.Timestamp)
		if err != nil {
			log.Fatalf("Record %d has unparseable timestamp %q: %v", i, rec.Timestamp, err)
		}

		buf := gopacket.NewSerializeBuffer()
		opts := gopacket.SerializeOptions{
			ComputeChecksums: true,
			FixLengths:       true,
		}

		ethLayer := &layers.Ethernet{
			SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
			DstMAC:       net.HardwareAddr{0x00, 0x66, 0x77, 0x88, 0x99, 0xAA},
			EthernetType: layers.EthernetTypeIPv4,
		}
		ipLayer := &layers.IPv4{
			SrcIP:   parseIP(rec.SourceIP),
			DstIP:   parseIP(rec.DestIP),
			Version: 4,
			TTL:     64,
		}

		switch transportFor(rec.Protocol) {
		case layers.IPProtocolUDP:
			ipLayer.Protocol = layers.IPProtocolUDP
			udpLayer := &layers.UDP{
				SrcPort: layers.UDPPort(rng.Intn(65535-1024) + 1024),
				DstPort: layers.UDPPort(rec.Port),
			}
			udpLayer.SetNetworkLayerForChecksum(ipLayer)
			err = gopacket.SerializeLayers(buf, opts, ethLayer, ipLayer, udpLayer, payloadFor(rec, 42))
		case layers.IPProtocolICMPv4:
			ipLayer.Protocol = layers.IPProtocolICMPv4
			icmpLayer := &layers.ICMPv4{
				TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0),
			}
			err = gopacket.SerializeLayers(buf, opts, ethLayer, ipLayer, icmpLayer, payloadFor(rec, 42))
		default:
			ipLayer.Protocol = layers.IPProtocolTCP
			tcpLayer := &layers.TCP{
				SrcPort: layers.TCPPort(rng.Intn(65535-1024) + 1024),
				DstPort: layers.TCPPort(rec.Port),
				Seq:     rng.Uint32(),
				SYN:     true,
				Window:  14600,
			}
			tcpLayer.SetNetworkLayerForChecksum(ipLayer)
			err = gopacket.SerializeLayers(buf, opts, ethLayer, ipLayer, tcpLayer, payloadFor(rec, 54))
		}
		if err != nil {
			log.Fatalf("Failed to serialize record %d: %v", i, err)
		}

		ci := gopacket.CaptureInfo{
			Timestamp:     ts,
			CaptureLength: len(buf.Bytes()),
			Length:        len(buf.Bytes()),
		}
		if err := pcapWriter.WritePacket(ci, buf.Bytes()); err != nil {
			log.Fatalf("Failed to write packet %d: %v", i, err)
		}
	}

	log.Printf("Successfully exported %d records into %s.", len(ds.Records), *outputFile)
}

// transportFor maps a protocol label to the transport used for the frame.
// Application labels ride their usual transport; unknown labels default to TCP.
func transportFor(protocol string) layers.IPProtocol {
	switch protocol {
	case "UDP", "DNS":
		return layers.IPProtocolUDP
	case "ICMP":
		return layers.IPProtocolICMPv4
	}
	return layers.IPProtocolTCP
}

// payloadFor pads the frame so the on-wire size approximates the recorded
// length once the given header overhead is added.
func payloadFor(rec model.TrafficRecord, overhead int) gopacket.Payload {
	size := rec.Length - overhead
	if size < 0 {
		size = 0
	}
	return gopacket.Payload(make([]byte, size))
}

func parseIP(s string) net.IP {
	if ip := net.ParseIP(s); ip != nil {
		return ip.To4()
	}
	// Dataset addresses are not validated as routable; fall back to a
	// placeholder rather than failing the export.
	return net.IP{192, 0, 2, 1}
}
