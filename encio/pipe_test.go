package encio_test

import (
	"io"
	"io/ioutil"
	"math/rand"
	"testing"
	"time"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/typedbytes/encio"
)

func TestPipe(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	count := 100
	maxBuffer := 500

	p := encio.NewPipe()

	read := make(chan int64)
	var written int64

	go func() {
		n, err := io.Copy(ioutil.Discard, p)
		if err != nil {
			t.Error(err)
		}
		read <- n
	}()

	for i := 0; i < count; i++ {
		// Add a small random delay so the synchronisation logic is tested better.
		time.Sleep(time.Duration(rng.Intn(1000)) * time.Microsecond)

		buff := randomBytes(rng, maxBuffer)

		n, err := p.Write(buff)
		if err != nil {
			t.Fatal(err)
		}

		written += int64(n)
	}

	p.Close()

	totalRead := <-read

	if written != totalRead {
		t.Fatalf("wrote %v bytes, but read %v", written, totalRead)
	}
}

func TestPipeClosed(t *testing.T) {
	p := encio.NewPipe()

	_, err := p.Write([]byte{1, 2})
	td.CmpNoError(t, err)
	td.CmpNoError(t, p.Close())

	_, err = p.Write([]byte{3})
	td.Cmp(t, err, io.ErrClosedPipe)

	buff := make([]byte, 4)
	n, err := p.Read(buff)
	td.CmpNoError(t, err)
	td.Cmp(t, buff[:n], []byte{1, 2}, "buffered data is drained after close")

	_, err = p.Read(buff)
	td.Cmp(t, err, io.EOF)
}
