// Package dmx sends channel frames to the rig. The only transport is
// Art-Net over UDP; a null sink stands in when no node is reachable so the
// rest of the show keeps running.
package dmx

import (
	"errors"
	"log"
	"net"
)

// Sink accepts complete DMX frames. Send must not block the render loop;
// failures are reported through the sink's own logging, not the caller.
type Sink interface {
	Send(frame []byte) error
	Close() error
}

// ArtNet sends ArtDMX packets to a node over UDP.
type ArtNet struct {
	conn     net.Conn
	universe uint16
	seq      uint8
	log      *log.Logger
	failures int
}

// NewArtNet dials the node at target (host:port, typically port 6454) and
// prepares ArtDMX framing for the given universe.
func NewArtNet(target string, universe uint16, logger *log.Logger) (*ArtNet, error) {
	conn, err := net.Dial("udp", target)
	if err != nil {
		return nil, err
	}
	return &ArtNet{conn: conn, universe: universe, seq: 1, log: logger}, nil
}

// Send wraps frame in an ArtDMX packet and writes it. Write errors are
// logged (first occurrence and every 300th after, to keep a dead node from
// flooding the log) and swallowed so the render loop keeps its cadence.
func (a *ArtNet) Send(frame []byte) error {
	if len(frame) > 512 {
		return errors.New("dmx: frame longer than 512 channels")
	}
	pkt := buildArtDMX(a.seq, a.universe, frame)
	a.seq++
	if a.seq == 0 {
		a.seq = 1 // sequence 0 means "not used" in the protocol
	}

	if _, err := a.conn.Write(pkt); err != nil {
		if a.failures%300 == 0 {
			a.log.Printf("dmx send: %v", err)
		}
		a.failures++
		return nil
	}
	a.failures = 0
	return nil
}

// Close releases the UDP socket.
func (a *ArtNet) Close() error { return a.conn.Close() }

// buildArtDMX frames dmx data as an ArtDMX (OpOutput) packet, protocol
// version 14.
func buildArtDMX(seq uint8, universe uint16, dmx []byte) []byte {
	pkt := make([]byte, 18+len(dmx))
	copy(pkt, []byte("Art-Net\x00"))
	// OpCode, little-endian 0x5000
	pkt[8] = 0x00
	pkt[9] = 0x50
	// ProtVer
	pkt[10] = 0x00
	pkt[11] = 14
	// Sequence, Physical
	pkt[12] = seq
	pkt[13] = 0x00
	// SubUni (low byte), Net (high 7 bits)
	pkt[14] = byte(universe & 0xFF)
	pkt[15] = byte((universe >> 8) & 0x7F)
	// Length, big-endian
	pkt[16] = byte(len(dmx) >> 8)
	pkt[17] = byte(len(dmx) & 0xFF)
	copy(pkt[18:], dmx)
	return pkt
}

// Null discards frames. Used when the node address cannot be resolved so a
// show can still be previewed in the terminal.
type Null struct{}

func (Null) Send([]byte) error { return nil }
func (Null) Close() error      { return nil }
