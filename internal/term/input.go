package term

import (
	"io"
	"time"
)

// escDelay is how long a lone Esc waits for the rest of a sequence that
// arrived split across reads.
const escDelay = 50 * time.Millisecond

// pump reads the device on its own goroutine so callers can wait for
// input with a timeout. It is consumed from a single goroutine. After
// the first read error or stop it is finished and must be replaced.
type pump struct {
	r       io.Reader
	ch      chan []byte
	done    chan struct{}
	quit    chan struct{}
	err     error
	pending []byte
	started bool
}

func newPump(r io.Reader) *pump {
	return &pump{
		r:    r,
		ch:   make(chan []byte),
		done: make(chan struct{}),
		quit: make(chan struct{}),
	}
}

func (p *pump) start() {
	if p.started {
		return
	}
	p.started = true
	go p.loop()
}

func (p *pump) loop() {
	defer close(p.done)
	for {
		select {
		case <-p.quit:
			p.err = io.EOF
			return
		default:
		}
		buf := make([]byte, 256)
		n, err := p.r.Read(buf)
		if n > 0 {
			select {
			case p.ch <- buf[:n]:
			case <-p.quit:
				p.err = io.EOF
				return
			}
		}
		if err != nil {
			p.err = err
			return
		}
	}
}

// stop ends the reader goroutine once its current Read returns.
func (p *pump) stop() {
	select {
	case <-p.quit:
	default:
		close(p.quit)
	}
}

func (p *pump) Read(b []byte) (int, error) {
	p.start()
	if len(p.pending) == 0 {
		select {
		case p.pending = <-p.ch:
		case <-p.done:
			return 0, p.err
		}
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

// ready reports whether input arrives within d. A finished pump is
// ready since the next Read returns its error at once.
func (p *pump) ready(d time.Duration) bool {
	p.start()
	if len(p.pending) > 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case p.pending = <-p.ch:
		return true
	case <-p.done:
		return true
	case <-timer.C:
		return false
	}
}
