// Package replay records published physics snapshots as a msgpack stream so a
// run can be inspected or played back later.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"kinetic3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/vmihailenco/msgpack/v5"
)

type Body struct {
	Name     string     `msgpack:"n"`
	Position [3]float32 `msgpack:"p"`
	Velocity [3]float32 `msgpack:"v"`
}

type Frame struct {
	Tick     uint64 `msgpack:"t"`
	Contacts int    `msgpack:"c"`
	Bodies   []Body `msgpack:"b"`
}

func vec(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// FromSnapshot converts a published snapshot into a frame.
func FromSnapshot(s *physics.Snapshot) Frame {
	f := Frame{Tick: s.Tick, Contacts: s.Contacts, Bodies: make([]Body, len(s.Bodies))}
	for i, b := range s.Bodies {
		f.Bodies[i] = Body{Name: b.Name, Position: vec(b.Position), Velocity: vec(b.Velocity)}
	}
	return f
}

// Recorder appends frames to a writer. Snapshots already recorded (same tick)
// are skipped, so it can be fed from a frame loop that runs faster than the
// physics rate.
type Recorder struct {
	buf      *bufio.Writer
	enc      *msgpack.Encoder
	lastTick uint64
	frames   int
}

func NewRecorder(w io.Writer) *Recorder {
	buf := bufio.NewWriter(w)
	return &Recorder{buf: buf, enc: msgpack.NewEncoder(buf)}
}

// Record writes s unless it was already written. It reports whether a frame was added.
func (r *Recorder) Record(s *physics.Snapshot) (bool, error) {
	if s == nil || s.Tick == 0 || s.Tick == r.lastTick {
		return false, nil
	}
	if err := r.enc.Encode(FromSnapshot(s)); err != nil {
		return false, fmt.Errorf("encode frame %d: %w", s.Tick, err)
	}
	r.lastTick = s.Tick
	r.frames++
	return true, nil
}

func (r *Recorder) Frames() int {
	return r.frames
}

// Flush pushes buffered frames to the underlying writer.
func (r *Recorder) Flush() error {
	return r.buf.Flush()
}

// Reader decodes frames written by a Recorder.
type Reader struct {
	dec *msgpack.Decoder
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: msgpack.NewDecoder(bufio.NewReader(r))}
}

// Next returns the next frame, or io.EOF after the last one.
func (r *Reader) Next() (Frame, error) {
	var f Frame
	if err := r.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("decode frame: %w", err)
	}
	return f, nil
}

// ReadAll decodes every frame in r.
func ReadAll(r io.Reader) ([]Frame, error) {
	rd := NewReader(r)
	var frames []Frame
	for {
		f, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
}
