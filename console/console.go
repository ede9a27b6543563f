// This file is part of Tivasim.
//
// Tivasim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tivasim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tivasim.  If not, see <https://www.gnu.org/licenses/>.

package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/tivasim/tivasim/logger"
)

// Injector runs a function in the context of the simulation.
type Injector interface {
	Inject(f func())
}

// Receiver accepts a byte from the host. It returns false if the byte was
// dropped.
type Receiver interface {
	Receive(b uint8) bool
}

// Stream is a host byte stream. A nil reader means the stream is output only.
type Stream struct {
	Name   string
	Reader io.Reader
	Writer io.Writer
	Closer io.Closer
}

// Stdio is an output only stream to standard output.
func Stdio() Stream {
	return Stream{Name: "stdout", Writer: os.Stdout}
}

// Console bridges a Stream and a UART.
type Console struct {
	stream Stream
	inj    Injector
	rx     Receiver

	// guards received and dropped, which are updated from the simulation
	// context and read from anywhere
	mu       sync.Mutex
	received int
	dropped  int

	done chan struct{}
}

// Attach the stream to the receiver. Input from the stream is posted to the
// injector. The Console should be used as the sink of the UART.
func Attach(stream Stream, inj Injector, rx Receiver) *Console {
	con := &Console{
		stream: stream,
		inj:    inj,
		rx:     rx,
		done:   make(chan struct{}),
	}

	if stream.Reader == nil {
		close(con.done)
	} else {
		go con.input()
	}

	logger.Logf(logger.Allow, "console", "attached to %s", stream.Name)

	return con
}

func (con *Console) String() string {
	con.mu.Lock()
	defer con.mu.Unlock()
	return fmt.Sprintf("%s: received %d, dropped %d", con.stream.Name, con.received, con.dropped)
}

func (con *Console) input() {
	defer close(con.done)

	b := make([]byte, 64)
	for {
		n, err := con.stream.Reader.Read(b)
		for _, v := range b[:n] {
			con.inj.Inject(func() {
				ok := con.rx.Receive(v)
				con.mu.Lock()
				if ok {
					con.received++
				} else {
					con.dropped++
				}
				con.mu.Unlock()
			})
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				logger.Logf(logger.Allow, "console", "%s: %v", con.stream.Name, err)
			}
			return
		}
	}
}

// Write implements the io.Writer interface.
func (con *Console) Write(p []byte) (int, error) {
	if con.stream.Writer == nil {
		return len(p), nil
	}
	return con.stream.Writer.Write(p)
}

// Counts returns the number of bytes received and dropped by the UART.
func (con *Console) Counts() (int, int) {
	con.mu.Lock()
	defer con.mu.Unlock()
	return con.received, con.dropped
}

// Wait until there is no more input from the stream.
func (con *Console) Wait() {
	<-con.done
}

// Close the stream.
func (con *Console) Close() error {
	if con.stream.Closer == nil {
		return nil
	}
	return con.stream.Closer.Close()
}
