package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/mdlayher/packet"

	"grimm.is/vethpair/internal/logging"
	"grimm.is/vethpair/internal/metrics"
)

// ResendInterval is how long Probe waits for a frame before sending
// another one.
const ResendInterval = 250 * time.Millisecond

// ErrNoReply is returned when no probe frame arrived before the context
// ended.
var ErrNoReply = errors.New("probe frame not received")

// Endpoint is one end of the segment under test. linkpair.Endpoint
// satisfies it.
type Endpoint interface {
	Name() string
	HardwareAddr() net.HardwareAddr
}

// Probe sends frames out of from until one arrives on to or ctx ends.
// Sockets are opened in the calling thread's network namespace.
func Probe(ctx context.Context, from, to Endpoint) (err error) {
	log := logging.WithComponent("probe")
	defer func() {
		metrics.Get().RecordProbe(err)
	}()

	rx, err := listen(to.Name())
	if err != nil {
		return err
	}
	defer rx.Close()

	tx, err := listen(from.Name())
	if err != nil {
		return err
	}
	defer tx.Close()

	token := uuid.New()
	frame, err := BuildFrame(from.HardwareAddr(), to.HardwareAddr(), token)
	if err != nil {
		return err
	}
	dst := &packet.Addr{HardwareAddr: to.HardwareAddr()}

	buf := make([]byte, 1500)
	sent := 0
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			log.Warn("probe failed", "from", from.Name(), "to", to.Name(), "sent", sent)
			return fmt.Errorf("%w on %s after %d frames: %w", ErrNoReply, to.Name(), sent, ctx.Err())
		default:
		}

		if _, err := tx.WriteTo(frame, dst); err != nil {
			return fmt.Errorf("failed to send probe on %s: %w", from.Name(), err)
		}
		sent++

		deadline := time.Now().Add(ResendInterval)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		ok, err := received(rx, deadline, buf, from.HardwareAddr(), token)
		if err != nil {
			return fmt.Errorf("failed to read probe on %s: %w", to.Name(), err)
		}
		if ok {
			log.Info("probe received", "from", from.Name(), "to", to.Name(), "sent", sent, "rtt", time.Since(start))
			return nil
		}
	}
}

// frameReader is the part of *packet.Conn that received uses.
type frameReader interface {
	SetReadDeadline(t time.Time) error
	ReadFrom(b []byte) (int, net.Addr, error)
}

// received reads from conn until deadline, reporting whether the frame
// carrying token arrived. Unrelated frames are skipped.
func received(conn frameReader, deadline time.Time, buf []byte, src net.HardwareAddr, token uuid.UUID) (bool, error) {
	if err := conn.SetReadDeadline(deadline); err != nil {
		return false, fmt.Errorf("failed to set read deadline: %w", err)
	}
	for {
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return false, nil
			}
			return false, err
		}

		from, got, err := ParseFrame(buf[:n])
		if err != nil {
			continue
		}
		if got == token && bytes.Equal(from, src) {
			return true, nil
		}
	}
}

func listen(name string) (*packet.Conn, error) {
	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to find interface %s: %w", name, err)
	}

	conn, err := packet.Listen(ifi, packet.Raw, EtherType, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open socket on %s: %w", name, err)
	}
	return conn, nil
}
