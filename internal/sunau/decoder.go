// Package sunau 解码 Sun/NeXT 音频（.au）
//
// 输出统一为 16 位小端立体声 PCM，这是 Ebitengine audio.Player 要求的格式；
// 采样率保持原样，由调用者用 audio.Resample 转换。
package sunau

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrUnsupported 编码或声道数不受支持
var ErrUnsupported = errors.New("unsupported au stream")

const (
	headerSize   = 24
	magic        = 0x2e736e64 // ".snd"
	encodingULaw = 1          // 8 位 μ-law
	encodingPCM  = 3          // 16 位大端线性 PCM
)

type header struct {
	Magic      uint32
	DataOffset uint32
	DataSize   uint32 // 0xFFFFFFFF 表示未知
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

// Stream 解码后的 PCM 流，实现 io.ReadSeeker
type Stream struct {
	*bytes.Reader
	sampleRate int
}

// SampleRate 原始采样率（Hz）
func (s *Stream) SampleRate() int {
	return s.sampleRate
}

// Length PCM 数据总字节数
func (s *Stream) Length() int64 {
	return s.Size()
}

// Decode 读取并解码整个 .au 文件
func Decode(r io.Reader) (*Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read au file: %w", err)
	}
	if len(data) < headerSize {
		return nil, fmt.Errorf("au file too short: %d bytes", len(data))
	}

	var h header
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &h); err != nil {
		return nil, fmt.Errorf("failed to read au header: %w", err)
	}
	if h.Magic != magic {
		return nil, fmt.Errorf("invalid au magic 0x%08x", h.Magic)
	}
	if h.Channels < 1 || h.Channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupported, h.Channels)
	}
	if h.SampleRate == 0 {
		return nil, fmt.Errorf("invalid au sample rate 0")
	}

	offset := int(h.DataOffset)
	if offset < headerSize || offset > len(data) {
		return nil, fmt.Errorf("invalid au data offset %d (file size %d)", offset, len(data))
	}
	body := data[offset:]
	if h.DataSize != 0xFFFFFFFF && int(h.DataSize) < len(body) {
		body = body[:h.DataSize]
	}

	var samples []int16
	switch h.Encoding {
	case encodingULaw:
		samples = make([]int16, len(body))
		for i, b := range body {
			samples[i] = ulaw(b)
		}
	case encodingPCM:
		samples = make([]int16, len(body)/2)
		for i := range samples {
			samples[i] = int16(binary.BigEndian.Uint16(body[i*2:]))
		}
	default:
		return nil, fmt.Errorf("%w: encoding %d", ErrUnsupported, h.Encoding)
	}

	return &Stream{
		Reader:     bytes.NewReader(toStereo(samples, int(h.Channels))),
		sampleRate: int(h.SampleRate),
	}, nil
}

// toStereo 转为 16 位小端立体声，单声道复制到左右声道
func toStereo(samples []int16, channels int) []byte {
	if channels == 2 {
		samples = samples[:len(samples)/2*2]
		out := make([]byte, len(samples)*2)
		for i, s := range samples {
			binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
		}
		return out
	}

	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}

// ulaw G.711 μ-law 解压
func ulaw(b byte) int16 {
	b = ^b
	sign := b & 0x80
	exponent := (b >> 4) & 0x07
	mantissa := b & 0x0F
	sample := (int32(mantissa)<<3 + 0x84) << exponent
	sample -= 0x84
	if sign != 0 {
		return int16(-sample)
	}
	return int16(sample)
}
