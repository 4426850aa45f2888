// Package wire encodes viewer stream messages.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

func ReadVarInt(r io.Reader) (int32, int, error) {
	var result uint32
	var numRead int
	var buf [1]byte

	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, numRead, err
		}
		numRead++

		result |= uint32(buf[0]&0x7F) << (7 * (numRead - 1))

		if buf[0]&0x80 == 0 {
			break
		}

		if numRead >= 5 {
			return 0, numRead, fmt.Errorf("VarInt too long")
		}
	}

	return int32(result), numRead, nil
}

func WriteVarInt(w io.Writer, value int32) (int, error) {
	var buf [5]byte
	n := PutVarInt(buf[:], value)
	return w.Write(buf[:n])
}

func PutVarInt(buf []byte, value int32) int {
	val := uint32(value)
	n := 0
	for {
		b := byte(val & 0x7F)
		val >>= 7
		if val != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if val == 0 {
			break
		}
	}
	return n
}

func VarIntSize(value int32) int {
	val := uint32(value)
	size := 0
	for {
		size++
		val >>= 7
		if val == 0 {
			break
		}
	}
	return size
}

// MaxPosY is the largest y EncodePos can carry.
const MaxPosY = 1<<11 - 1

// EncodePos packs a voxel position as 26-bit x, 12-bit y, 26-bit z.
func EncodePos(x, y, z int) int64 {
	return int64((int64(x)&0x3FFFFFF)<<38) | int64((int64(y)&0xFFF)<<26) | int64(int64(z)&0x3FFFFFF)
}

// DecodePos reverses EncodePos, sign-extending each field.
func DecodePos(val int64) (x, y, z int) {
	x = int(val >> 38)
	y = int((val >> 26) & 0xFFF)
	z = int(val & 0x3FFFFFF)

	if x >= 1<<25 {
		x -= 1 << 26
	}
	if y >= 1<<11 {
		y -= 1 << 12
	}
	if z >= 1<<25 {
		z -= 1 << 26
	}
	return
}

func readU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func readBool(r io.Reader) (bool, error) {
	b, err := readU8(r)
	return b != 0, err
}

func writeBool(w io.Writer, v bool) error {
	var b [1]byte
	if v {
		b[0] = 1
	}
	_, err := w.Write(b[:])
	return err
}

func readI64(r io.Reader) (int64, error) {
	var val int64
	if err := binary.Read(r, binary.BigEndian, &val); err != nil {
		return 0, err
	}
	return val, nil
}

func writeI64(w io.Writer, v int64) error {
	return binary.Write(w, binary.BigEndian, v)
}

func readF32(r io.Reader) (float32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(buf[:])), nil
}

func writeF32(w io.Writer, v float32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(v))
	_, err := w.Write(buf[:])
	return err
}
