package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Message types, the first byte of every frame.
const (
	TypeMesh   byte = 0x01
	TypeRender byte = 0x02
)

// maxVertices bounds a decoded mesh: a 63-voxel chunk with every other cell
// solid, six faces each.
const maxVertices = 63 * 63 * 63 / 2 * 36

// MeshFrame carries one chunk's packed vertex buffer. Vertices are written
// little-endian so a browser can upload them as a Uint32Array.
type MeshFrame struct {
	Index    int32
	Coord    [3]int32
	Empty    bool
	Vertices []uint32
}

// RenderFrame carries the per-tick state a renderer draws with.
type RenderFrame struct {
	Tick int64
	// Visible lists chunk arena indices.
	Visible []int32

	Position   [3]float32
	Yaw, Pitch float32
	// ViewProj is the column-major projection * view matrix.
	ViewProj [16]float32

	HasSelection bool
	Hit          [3]int
	LastEmpty    [3]int
	HasEmpty     bool

	Material uint8
}

func (f *MeshFrame) Encode() []byte {
	var buf bytes.Buffer
	n := 2 + VarIntSize(f.Index) + VarIntSize(int32(len(f.Vertices))) + 4*len(f.Vertices)
	for _, c := range f.Coord {
		n += VarIntSize(c)
	}
	buf.Grow(n)
	buf.WriteByte(TypeMesh)
	WriteVarInt(&buf, f.Index)
	for _, c := range f.Coord {
		WriteVarInt(&buf, c)
	}
	writeBool(&buf, f.Empty)
	WriteVarInt(&buf, int32(len(f.Vertices)))
	var word [4]byte
	for _, v := range f.Vertices {
		binary.LittleEndian.PutUint32(word[:], v)
		buf.Write(word[:])
	}
	return buf.Bytes()
}

func (f *MeshFrame) decode(r io.Reader) error {
	var err error
	if f.Index, _, err = ReadVarInt(r); err != nil {
		return fmt.Errorf("read index: %w", err)
	}
	for i := range f.Coord {
		if f.Coord[i], _, err = ReadVarInt(r); err != nil {
			return fmt.Errorf("read coord: %w", err)
		}
	}
	if f.Empty, err = readBool(r); err != nil {
		return fmt.Errorf("read empty flag: %w", err)
	}
	n, _, err := ReadVarInt(r)
	if err != nil {
		return fmt.Errorf("read vertex count: %w", err)
	}
	if n < 0 || n > maxVertices {
		return fmt.Errorf("vertex count out of range: %d", n)
	}
	raw := make([]byte, 4*int(n))
	if _, err := io.ReadFull(r, raw); err != nil {
		return fmt.Errorf("read vertices: %w", err)
	}
	f.Vertices = make([]uint32, n)
	for i := range f.Vertices {
		f.Vertices[i] = binary.LittleEndian.Uint32(raw[4*i:])
	}
	return nil
}

func (f *RenderFrame) Encode() []byte {
	var buf bytes.Buffer
	buf.WriteByte(TypeRender)
	writeI64(&buf, f.Tick)
	WriteVarInt(&buf, int32(len(f.Visible)))
	for _, i := range f.Visible {
		WriteVarInt(&buf, i)
	}
	for _, p := range f.Position {
		writeF32(&buf, p)
	}
	writeF32(&buf, f.Yaw)
	writeF32(&buf, f.Pitch)
	for _, m := range f.ViewProj {
		writeF32(&buf, m)
	}
	writeBool(&buf, f.HasSelection)
	writeI64(&buf, EncodePos(f.Hit[0], f.Hit[1], f.Hit[2]))
	writeI64(&buf, EncodePos(f.LastEmpty[0], f.LastEmpty[1], f.LastEmpty[2]))
	writeBool(&buf, f.HasEmpty)
	buf.WriteByte(f.Material)
	return buf.Bytes()
}

func (f *RenderFrame) decode(r io.Reader) error {
	var err error
	if f.Tick, err = readI64(r); err != nil {
		return fmt.Errorf("read tick: %w", err)
	}
	n, _, err := ReadVarInt(r)
	if err != nil {
		return fmt.Errorf("read visible count: %w", err)
	}
	if n < 0 || n > 1<<20 {
		return fmt.Errorf("visible count out of range: %d", n)
	}
	f.Visible = make([]int32, n)
	for i := range f.Visible {
		if f.Visible[i], _, err = ReadVarInt(r); err != nil {
			return fmt.Errorf("read visible index: %w", err)
		}
	}
	for i := range f.Position {
		if f.Position[i], err = readF32(r); err != nil {
			return fmt.Errorf("read position: %w", err)
		}
	}
	if f.Yaw, err = readF32(r); err != nil {
		return fmt.Errorf("read yaw: %w", err)
	}
	if f.Pitch, err = readF32(r); err != nil {
		return fmt.Errorf("read pitch: %w", err)
	}
	for i := range f.ViewProj {
		if f.ViewProj[i], err = readF32(r); err != nil {
			return fmt.Errorf("read view projection: %w", err)
		}
	}
	if f.HasSelection, err = readBool(r); err != nil {
		return fmt.Errorf("read selection flag: %w", err)
	}
	hit, err := readI64(r)
	if err != nil {
		return fmt.Errorf("read hit: %w", err)
	}
	f.Hit[0], f.Hit[1], f.Hit[2] = DecodePos(hit)
	empty, err := readI64(r)
	if err != nil {
		return fmt.Errorf("read last empty: %w", err)
	}
	f.LastEmpty[0], f.LastEmpty[1], f.LastEmpty[2] = DecodePos(empty)
	if f.HasEmpty, err = readBool(r); err != nil {
		return fmt.Errorf("read empty flag: %w", err)
	}
	if f.Material, err = readU8(r); err != nil {
		return fmt.Errorf("read material: %w", err)
	}
	return nil
}

// Decode parses one uncompressed frame into a *MeshFrame or *RenderFrame.
func Decode(b []byte) (any, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("empty frame")
	}
	r := bytes.NewReader(b[1:])
	switch b[0] {
	case TypeMesh:
		f := &MeshFrame{}
		if err := f.decode(r); err != nil {
			return nil, fmt.Errorf("decode mesh frame: %w", err)
		}
		return f, nil
	case TypeRender:
		f := &RenderFrame{}
		if err := f.decode(r); err != nil {
			return nil, fmt.Errorf("decode render frame: %w", err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown frame type 0x%02x", b[0])
	}
}
