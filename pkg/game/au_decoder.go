package game

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Sun/NeXT audio (.au) header fields, all big-endian.
const (
	auMagic         = 0x2e736e64 // ".snd"
	auHeaderSize    = 24
	auEncodingULaw  = 1 // 8-bit μ-law
	auEncodingPCM16 = 3 // 16-bit linear PCM
)

// auStream is decoded .au audio in the format the audio context plays:
// 16-bit signed little-endian stereo at the context sample rate.
type auStream struct {
	*bytes.Reader
}

// Length returns the size of the decoded PCM in bytes.
func (s *auStream) Length() int64 { return s.Size() }

// decodeAU decodes a μ-law or 16-bit PCM .au file, expanding mono to stereo
// and linearly resampling to rate. A rate of 0 keeps the file's own rate.
func decodeAU(data []byte, rate int) (*auStream, error) {
	if len(data) < auHeaderSize {
		return nil, fmt.Errorf("au data too short: %d bytes", len(data))
	}
	be := binary.BigEndian
	if magic := be.Uint32(data[0:]); magic != auMagic {
		return nil, fmt.Errorf("invalid au magic 0x%08x", magic)
	}
	offset := int(be.Uint32(data[4:]))
	encoding := be.Uint32(data[12:])
	srcRate := int(be.Uint32(data[16:]))
	channels := int(be.Uint32(data[20:]))

	if offset < auHeaderSize || offset > len(data) {
		return nil, fmt.Errorf("invalid au data offset %d", offset)
	}
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("unsupported au channel count %d", channels)
	}
	if srcRate <= 0 {
		return nil, fmt.Errorf("invalid au sample rate %d", srcRate)
	}
	body := data[offset:]

	var samples []int16
	switch encoding {
	case auEncodingULaw:
		samples = make([]int16, len(body))
		for i, b := range body {
			samples[i] = ulaw(b)
		}
	case auEncodingPCM16:
		samples = make([]int16, len(body)/2)
		for i := range samples {
			samples[i] = int16(be.Uint16(body[i*2:]))
		}
	default:
		return nil, fmt.Errorf("unsupported au encoding %d", encoding)
	}

	frames := stereo(samples, channels)
	if rate > 0 && rate != srcRate {
		frames = resample(frames, srcRate, rate)
	}

	out := make([]byte, len(frames)*4)
	for i, f := range frames {
		binary.LittleEndian.PutUint16(out[i*4:], uint16(f[0]))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(f[1]))
	}
	return &auStream{bytes.NewReader(out)}, nil
}

// ulaw expands one G.711 μ-law byte to linear PCM.
func ulaw(b byte) int16 {
	b = ^b
	exponent := (b >> 4) & 0x07
	mantissa := int(b & 0x0f)
	v := ((mantissa << 3) + 0x84) << exponent
	v -= 0x84
	if b&0x80 != 0 {
		return int16(-v)
	}
	return int16(v)
}

func stereo(samples []int16, channels int) [][2]int16 {
	n := len(samples) / channels
	frames := make([][2]int16, n)
	for i := range frames {
		if channels == 1 {
			frames[i] = [2]int16{samples[i], samples[i]}
		} else {
			frames[i] = [2]int16{samples[i*2], samples[i*2+1]}
		}
	}
	return frames
}

func resample(frames [][2]int16, from, to int) [][2]int16 {
	if len(frames) == 0 {
		return frames
	}
	n := int(int64(len(frames)) * int64(to) / int64(from))
	out := make([][2]int16, n)
	step := float64(from) / float64(to)
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= len(frames)-1 {
			out[i] = frames[len(frames)-1]
			continue
		}
		t := pos - float64(j)
		a, b := frames[j], frames[j+1]
		out[i] = [2]int16{
			int16(float64(a[0]) + (float64(b[0])-float64(a[0]))*t),
			int16(float64(a[1]) + (float64(b[1])-float64(a[1]))*t),
		}
	}
	return out
}
