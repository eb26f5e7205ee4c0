// Package probe checks that a provisioned link pair forwards frames: a
// frame sent out of one endpoint must arrive on the other.
package probe

import (
	"bytes"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/gopacket/gopacket"
	"github.com/gopacket/gopacket/layers"
)

// EtherType is the IEEE 802 local experimental EtherType (0x88B5) carried
// by probe frames.
const EtherType = 0x88B5

var magic = []byte("VPRB")

var errNotProbe = errors.New("not a probe frame")

// BuildFrame serializes an Ethernet probe frame from src to dst carrying
// token.
func BuildFrame(src, dst net.HardwareAddr, token uuid.UUID) ([]byte, error) {
	if len(src) != 6 || len(dst) != 6 {
		return nil, fmt.Errorf("probe needs 6-byte addresses, got %q -> %q", src, dst)
	}

	eth := &layers.Ethernet{
		SrcMAC:       src,
		DstMAC:       dst,
		EthernetType: layers.EthernetType(EtherType),
	}
	payload := make([]byte, 0, len(magic)+len(token))
	payload = append(payload, magic...)
	payload = append(payload, token[:]...)

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, gopacket.Payload(payload)); err != nil {
		return nil, fmt.Errorf("failed to serialize probe frame: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseFrame extracts the source address and token of a probe frame.
// Ethernet padding after the token is ignored.
func ParseFrame(frame []byte) (net.HardwareAddr, uuid.UUID, error) {
	var eth layers.Ethernet
	if err := eth.DecodeFromBytes(frame, gopacket.NilDecodeFeedback); err != nil {
		return nil, uuid.Nil, err
	}
	if eth.EthernetType != layers.EthernetType(EtherType) {
		return nil, uuid.Nil, errNotProbe
	}

	payload := eth.Payload
	if len(payload) < len(magic)+16 || !bytes.Equal(payload[:len(magic)], magic) {
		return nil, uuid.Nil, errNotProbe
	}

	token, err := uuid.FromBytes(payload[len(magic) : len(magic)+16])
	if err != nil {
		return nil, uuid.Nil, err
	}
	return eth.SrcMAC, token, nil
}
