package stream

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/matt-g-everett/sketchtx/trace"
	"github.com/matt-g-everett/sketchtx/util"
)

// FrameKind tells a receiver what to do with the entries of a Frame.
type FrameKind uint8

const (
	FrameProgress FrameKind = iota
	FrameClear
	FramePrepare
)

func (k FrameKind) String() string {
	switch k {
	case FrameProgress:
		return "progress"
	case FrameClear:
		return "clear"
	case FramePrepare:
		return "prepare"
	}
	return fmt.Sprintf("FrameKind(%d)", uint8(k))
}

const (
	headerSize = 3
	entrySize  = 8
	maxEntries = math.MaxUint16
)

// Entry is the state of one segment inside a Frame.
type Entry struct {
	Index    int
	Progress float64
	Length   float64
}

// Frame represents a batch of segment updates to send to a receiver.
type Frame struct {
	Kind    FrameKind
	Entries []Entry
}

// NewFrame creates a new Frame instance.
func NewFrame(kind FrameKind) *Frame {
	f := new(Frame)
	f.Kind = kind
	return f
}

// Add appends the state of s.
func (f *Frame) Add(s trace.Segment) {
	f.Entries = append(f.Entries, Entry{Index: s.Index, Progress: s.Progress, Length: s.Length})
}

// Len returns the number of entries.
func (f *Frame) Len() int {
	return len(f.Entries)
}

// Reset drops all entries, keeping the kind.
func (f *Frame) Reset() {
	f.Entries = f.Entries[:0]
}

// MarshalBinary converts a Frame into binary data.
//
// The layout is little endian: kind (u8), entry count (u16), then for every
// entry its index (u16), its progress scaled to 0..65535 (u16) and its
// length (f32).
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.Entries) > maxEntries {
		return nil, fmt.Errorf("stream: %d entries do not fit in a frame", len(f.Entries))
	}
	data = make([]byte, headerSize, headerSize+len(f.Entries)*entrySize)
	data[0] = byte(f.Kind)
	binary.LittleEndian.PutUint16(data[1:], uint16(len(f.Entries)))
	for _, e := range f.Entries {
		if e.Index < 0 || e.Index > math.MaxUint16 {
			return nil, fmt.Errorf("stream: segment index %d out of range", e.Index)
		}
		progress := uint16(math.Round(util.Clamp(e.Progress, 0, 1) * math.MaxUint16))
		data = binary.LittleEndian.AppendUint16(data, uint16(e.Index))
		data = binary.LittleEndian.AppendUint16(data, progress)
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(float32(e.Length)))
	}

	return data, nil
}

// UnmarshalBinary decodes data produced by MarshalBinary. Progress comes
// back quantised to 1/65535.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("stream: frame too short (%d bytes)", len(data))
	}
	count := int(binary.LittleEndian.Uint16(data[1:]))
	if len(data) != headerSize+count*entrySize {
		return fmt.Errorf("stream: frame of %d entries has %d bytes", count, len(data))
	}

	f.Kind = FrameKind(data[0])
	f.Entries = make([]Entry, count)
	body := data[headerSize:]
	for i := range f.Entries {
		e := body[i*entrySize:]
		f.Entries[i] = Entry{
			Index:    int(binary.LittleEndian.Uint16(e)),
			Progress: float64(binary.LittleEndian.Uint16(e[2:])) / math.MaxUint16,
			Length:   float64(math.Float32frombits(binary.LittleEndian.Uint32(e[4:]))),
		}
	}
	return nil
}
