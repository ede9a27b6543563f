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

package irqtrace

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tivasim/tivasim/curated"
	"github.com/tivasim/tivasim/logger"
)

// DefaultSampleRate is one sample per microsecond.
const DefaultSampleRate = 1000000

// MaxFrames limits the length of a recording.
const MaxFrames = 1 << 28

const (
	bitDepth = 16
	high     = math.MaxInt16
	low      = 0

	// frames rendered per call to the encoder
	chunk = 4096
)

type signal struct {
	when    int64
	channel int
	level   bool
}

// Recorder implements the interrupts.Observer interface.
type Recorder struct {
	rate    int
	lines   []int
	channel map[int]int
	signals []signal
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type. Each line becomes a channel of the recording, in the order given.
// Use interrupts.NMILine to record the non-maskable interrupt.
func NewRecorder(rate int, lines ...int) (*Recorder, error) {
	if rate <= 0 {
		return nil, curated.Errorf("irqtrace: sample rate must be positive (%d)", rate)
	}
	if len(lines) == 0 {
		return nil, curated.Errorf("irqtrace: no lines to record")
	}

	r := &Recorder{
		rate:    rate,
		lines:   lines,
		channel: make(map[int]int),
	}
	for i, l := range lines {
		if _, ok := r.channel[l]; ok {
			return nil, curated.Errorf("irqtrace: line %d listed twice", l)
		}
		r.channel[l] = i
	}

	return r, nil
}

func (r *Recorder) String() string {
	return fmt.Sprintf("irqtrace: %d lines at %dHz, %d signals", len(r.lines), r.rate, len(r.signals))
}

// Signal implements the interrupts.Observer interface.
func (r *Recorder) Signal(line int, level bool, when int64) {
	ch, ok := r.channel[line]
	if !ok {
		return
	}
	r.signals = append(r.signals, signal{when: when, channel: ch, level: level})
}

// Signals returns the number of signals recorded.
func (r *Recorder) Signals() int {
	return len(r.signals)
}

// the time at the start of a frame
func (r *Recorder) frameTime(f int64) int64 {
	return f * 1000000000 / int64(r.rate)
}

// Write the recording from time zero to end as a WAV file.
func (r *Recorder) Write(ws io.WriteSeeker, end int64) error {
	rate := int64(r.rate)
	frames := end/1000000000*rate + end%1000000000*rate/1000000000 + 1
	if frames > MaxFrames {
		return curated.Errorf("irqtrace: recording too long (%d frames)", frames)
	}

	enc := wav.NewEncoder(ws, r.rate, bitDepth, len(r.lines), 1)

	nch := len(r.lines)
	level := make([]bool, nch)
	seen := make([]bool, nch)
	rose := make([]bool, nch)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: nch,
			SampleRate:  r.rate,
		},
		SourceBitDepth: bitDepth,
	}

	next := 0
	for f := int64(0); f < frames; {
		n := int64(chunk)
		if f+n > frames {
			n = frames - f
		}
		buf.Data = buf.Data[:0]

		for i := int64(0); i < n; i++ {
			start := r.frameTime(f + i)
			limit := r.frameTime(f + i + 1)
			for c := range seen {
				seen[c] = level[c]
				rose[c] = false
			}

			// a line that falls at the very start of the frame is low for
			// the whole frame
			for next < len(r.signals) && r.signals[next].when < limit {
				s := r.signals[next]
				level[s.channel] = s.level
				if s.level {
					rose[s.channel] = true
				} else if s.when <= start {
					seen[s.channel] = false
				}
				next++
			}

			for c := range seen {
				if seen[c] || rose[c] {
					buf.Data = append(buf.Data, high)
				} else {
					buf.Data = append(buf.Data, low)
				}
			}
		}

		if err := enc.Write(buf); err != nil {
			return curated.Errorf("irqtrace: %v", err)
		}
		f += n
	}

	if err := enc.Close(); err != nil {
		return curated.Errorf("irqtrace: %v", err)
	}

	return nil
}

// Save the recording from time zero to end in the named file.
func (r *Recorder) Save(filename string, end int64) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("irqtrace: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("irqtrace: %v", err)
		}
	}()

	logger.Logf(logger.Allow, "irqtrace", "writing %d lines to %s", len(r.lines), filename)

	return r.Write(f, end)
}
