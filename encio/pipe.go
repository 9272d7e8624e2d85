package encio

import (
	"io"
	"sync"
)

// NewPipe creates a new Pipe
func NewPipe() *Pipe {
	return &Pipe{
		cond: sync.NewCond(new(sync.Mutex)),
	}
}

// Pipe is a buffered pipe. It operates like Buffer, but read calls will block until a call to write if the buffer is empty.
// It lets one goroutine write typed bytes while another reads them, turn by turn.
type Pipe struct {
	cond   *sync.Cond
	buff   []byte
	off    int
	closed bool
}

// Read implements io.Reader
// Once the pipe is closed, Read drains what is left before returning io.EOF.
func (p *Pipe) Read(buff []byte) (int, error) {
	p.cond.L.Lock()
	defer p.cond.L.Unlock()

	for p.len() == 0 && !p.closed {
		p.cond.Wait()
	}
	if p.len() == 0 {
		return 0, io.EOF
	}

	n := copy(buff, p.buff[p.off:])
	p.off += n
	return n, nil
}

// Write implements io.Writer
func (p *Pipe) Write(buff []byte) (int, error) {
	p.cond.L.Lock()
	defer p.cond.L.Unlock()

	if p.closed {
		return 0, io.ErrClosedPipe
	}

	n := copy(p.buff[p.grow(len(buff)):], buff)
	p.cond.Broadcast()
	return n, nil
}

// Close implements io.Closer
// Read calls will return io.EOF once the buffer is empty, and write calls will return io.ErrClosedPipe.
func (p *Pipe) Close() error {
	p.cond.L.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.cond.L.Unlock()
	return nil
}

// len returns the length of the unread portion of the buffer
// mutex must be held
func (p *Pipe) len() int {
	return len(p.buff) - p.off
}

// mutex must be held
func (p *Pipe) grow(n int) int {
	l := len(p.buff)
	if l+n <= cap(p.buff) {
		p.buff = p.buff[:l+n]
		return l
	}

	l -= p.off
	c := cap(p.buff)
	if (l+n)*8 <= c { // let cap grow to 8 time the size so we're not always sliding.
		// slide down
		copy(p.buff, p.buff[p.off:])
		p.buff = p.buff[:l+n]
		p.off = 0
		return l
	}
	// must allocate
	nb := make([]byte, l+n, c*2+n)
	copy(nb, p.buff[p.off:])
	p.buff = nb
	p.off = 0
	return l
}
