package wire

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// maxDecodedSize caps a decompressed frame.
const maxDecodedSize = 64 << 20

// Codec compresses whole frames. It is safe for concurrent use.
type Codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func NewCodec() (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecodedSize))
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Compress returns frame compressed.
func (c *Codec) Compress(frame []byte) []byte {
	return c.enc.EncodeAll(frame, make([]byte, 0, len(frame)/2))
}

// Decompress returns the frame held in b.
func (c *Codec) Decompress(b []byte) ([]byte, error) {
	out, err := c.dec.DecodeAll(b, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}

func (c *Codec) Close() error {
	c.dec.Close()
	return c.enc.Close()
}
