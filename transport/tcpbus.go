package transport

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/pierrec/lz4/v3"

	"github.com/nagielhachem/Distributed-Memory/apc"
	"github.com/nagielhachem/Distributed-Memory/cmn/nlog"
)

const flagCompressed = 1 << 0

// TCPBus is a real-socket Bus for running each rank as its own
// process: a listener accepting one long-lived connection per peer
// rank. Payloads above CompressThreshold are lz4-compressed before
// framing.
type TCPBus struct {
	self              apc.Rank
	peerAddrs         map[apc.Rank]string
	compressThreshold int

	ln net.Listener

	outMu sync.Mutex
	out   map[apc.Rank]net.Conn

	inMu sync.Mutex
	in   map[apc.Rank]chan Envelope

	closeOnce sync.Once
}

// NewTCPBus starts a listener for `self` on listenAddr and prepares to
// dial peerAddrs lazily on first Send. peerAddrs need only contain the
// ranks this rank will actually address (a worker only ever talks to
// the coordinator; the coordinator talks to the client and every
// worker; the client only talks to the coordinator).
func NewTCPBus(self apc.Rank, listenAddr string, peerAddrs map[apc.Rank]string, compressThreshold int) (*TCPBus, error) {
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("transport: listen %s: %w", listenAddr, err)
	}
	b := &TCPBus{
		self:              self,
		peerAddrs:         peerAddrs,
		compressThreshold: compressThreshold,
		ln:                ln,
		out:               make(map[apc.Rank]net.Conn),
		in:                make(map[apc.Rank]chan Envelope),
	}
	go b.acceptLoop()
	return b, nil
}

func (b *TCPBus) acceptLoop() {
	for {
		conn, err := b.ln.Accept()
		if err != nil {
			return // listener closed
		}
		go b.readLoop(conn)
	}
}

func (b *TCPBus) readLoop(conn net.Conn) {
	defer conn.Close()
	for {
		frame, err := readFrame(conn)
		if err != nil {
			if err != io.EOF {
				nlog.Warningf("transport: rank %d: read from peer: %v", b.self, err)
			}
			return
		}
		payload, err := decodePayload(frame.Kind, frame.Payload)
		if err != nil {
			nlog.Errorf("transport: rank %d: decode frame from %d: %v", b.self, frame.From, err)
			continue
		}
		b.inbox(frame.From) <- Envelope{Tag: frame.Tag, Payload: payload}
	}
}

func (b *TCPBus) inbox(from apc.Rank) chan Envelope {
	b.inMu.Lock()
	defer b.inMu.Unlock()
	ch, ok := b.in[from]
	if !ok {
		ch = make(chan Envelope, 64)
		b.in[from] = ch
	}
	return ch
}

func (b *TCPBus) connTo(to apc.Rank) (net.Conn, error) {
	b.outMu.Lock()
	defer b.outMu.Unlock()
	if c, ok := b.out[to]; ok {
		return c, nil
	}
	addr, ok := b.peerAddrs[to]
	if !ok {
		return nil, fmt.Errorf("transport: no address configured for rank %d", to)
	}
	c, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("transport: dial rank %d at %s: %w", to, addr, err)
	}
	b.out[to] = c
	return c, nil
}

func (b *TCPBus) Send(from, to apc.Rank, env Envelope) error {
	kind, err := payloadKind(env.Payload)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(env.Payload)
	if err != nil {
		return fmt.Errorf("transport: marshal payload: %w", err)
	}
	body, err := json.Marshal(wireFrame{From: from, Tag: env.Tag, Kind: kind, Payload: payload})
	if err != nil {
		return fmt.Errorf("transport: marshal frame: %w", err)
	}

	conn, err := b.connTo(to)
	if err != nil {
		return err
	}
	return writeFrame(conn, body, b.compressThreshold)
}

func (b *TCPBus) Recv(_, from apc.Rank) (Envelope, error) {
	env, ok := <-b.inbox(from)
	if !ok {
		return Envelope{}, fmt.Errorf("transport: rank %d's inbox from %d closed", b.self, from)
	}
	return env, nil
}

func (b *TCPBus) Close(apc.Rank) error {
	b.closeOnce.Do(func() {
		b.ln.Close()
		b.outMu.Lock()
		for _, c := range b.out {
			c.Close()
		}
		b.outMu.Unlock()
	})
	return nil
}

// --- framing: [4B total len][1B flags][4B original len][body] ---

func writeFrame(w io.Writer, body []byte, compressThreshold int) error {
	flags := byte(0)
	origLen := len(body)
	payload := body
	if compressThreshold > 0 && len(body) > compressThreshold {
		bound := lz4.CompressBlockBound(len(body))
		compressed := make([]byte, bound)
		n, err := lz4.CompressBlock(body, compressed, nil)
		if err == nil && n > 0 && n < len(body) {
			flags |= flagCompressed
			payload = compressed[:n]
		}
	}

	header := make([]byte, 9)
	binary.BigEndian.PutUint32(header[0:4], uint32(5+len(payload)))
	header[4] = flags
	binary.BigEndian.PutUint32(header[5:9], uint32(origLen))
	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

func readFrame(r io.Reader) (wireFrame, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return wireFrame{}, err
	}
	total := binary.BigEndian.Uint32(lenBuf[:])
	if total < 5 {
		return wireFrame{}, fmt.Errorf("transport: corrupt frame length %d", total)
	}
	rest := make([]byte, total)
	if _, err := io.ReadFull(r, rest); err != nil {
		return wireFrame{}, err
	}
	flags := rest[0]
	origLen := binary.BigEndian.Uint32(rest[1:5])
	payload := rest[5:]

	var body []byte
	if flags&flagCompressed != 0 {
		body = make([]byte, origLen)
		n, err := lz4.UncompressBlock(payload, body)
		if err != nil {
			return wireFrame{}, fmt.Errorf("transport: lz4 decompress: %w", err)
		}
		body = body[:n]
	} else {
		body = payload
	}

	var frame wireFrame
	if err := json.Unmarshal(body, &frame); err != nil {
		return wireFrame{}, fmt.Errorf("transport: unmarshal frame: %w", err)
	}
	return frame, nil
}
