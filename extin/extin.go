// This file is part of Gophersid.
//
// Gophersid is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophersid is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophersid.  If not, see <https://www.gnu.org/licenses/>.

package extin

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/logger"
)

// Sentinal errors returned by the decoding functions.
const (
	UnsupportedFile = "extin: unsupported file type (%s)"
	InvalidWAV      = "extin: wav: not a valid wav file"
	UnsupportedBits = "extin: wav: unsupported bit depth (%d)"
	DecodeError     = "extin: %v"
)

const logTag = "extin"

// Source is a mono 16 bit signal that can be played into the EXT IN pin. It
// satisfies the player.ExtIn interface.
type Source struct {
	buf *audio.IntBuffer

	// 16.16 fixed point position in the buffer and the number of buffer
	// samples per output sample
	pos  int
	step int

	// start again from the beginning when the end of the buffer is reached
	Loop bool
}

func newSource(data []int, sampleRate int) *Source {
	src := &Source{
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: 1,
				SampleRate:  sampleRate,
			},
			Data:           data,
			SourceBitDepth: 16,
		},
	}
	src.SetSampleRate(sampleRate)
	return src
}

// Load decodes the named file. The type of the file is decided by the file
// extension.
func Load(perm logger.Permission, filename string) (*Source, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(DecodeError, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		return DecodeWAV(perm, f)
	case ".mp3":
		return DecodeMP3(perm, f)
	}

	return nil, curated.Errorf(UnsupportedFile, filepath.Ext(filename))
}

// DecodeWAV decodes WAV data. Bit depths of 8, 16, 24 and 32 are supported.
func DecodeWAV(perm logger.Permission, r io.ReadSeeker) (*Source, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, curated.Errorf(InvalidWAV)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf(DecodeError, err)
	}

	chans := int(dec.NumChans)
	if chans < 1 {
		chans = 1
	}

	var conv func(int) int
	switch dec.BitDepth {
	case 8:
		// 8 bit wav data is unsigned
		conv = func(v int) int { return (v - 128) << 8 }
	case 16:
		conv = func(v int) int { return v }
	case 24:
		conv = func(v int) int { return v >> 8 }
	case 32:
		conv = func(v int) int { return v >> 16 }
	default:
		return nil, curated.Errorf(UnsupportedBits, dec.BitDepth)
	}

	// first channel only
	data := make([]int, 0, len(buf.Data)/chans)
	for i := 0; i < len(buf.Data); i += chans {
		data = append(data, conv(buf.Data[i]))
	}

	src := newSource(data, int(dec.SampleRate))
	logger.Logf(perm, logTag, "wav: %d samples at %dHz", len(data), dec.SampleRate)

	return src, nil
}

// DecodeMP3 decodes MP3 data.
func DecodeMP3(perm logger.Permission, r io.Reader) (*Source, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, curated.Errorf(DecodeError, err)
	}

	// the decoded stream is always 16 bit little endian stereo. the left
	// channel is the first two bytes of every four
	data := make([]int, 0)
	chunk := make([]byte, 4096)
	for {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 4 {
			data = append(data, int(int16(uint16(chunk[i])|uint16(chunk[i+1])<<8)))
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, curated.Errorf(DecodeError, err)
		}
	}

	src := newSource(data, dec.SampleRate())
	logger.Logf(perm, logTag, "mp3: %d samples at %dHz", len(data), dec.SampleRate())

	return src, nil
}

// SampleRate returns the sample rate of the decoded data.
func (src *Source) SampleRate() int {
	return src.buf.Format.SampleRate
}

// Len returns the number of decoded samples.
func (src *Source) Len() int {
	return len(src.buf.Data)
}

// SetSampleRate sets the rate at which Sample() will be called.
func (src *Source) SetSampleRate(rate int) {
	if rate <= 0 {
		return
	}
	src.step = (src.buf.Format.SampleRate << 16) / rate
}

// Rewind to the start of the data.
func (src *Source) Rewind() {
	src.pos = 0
}

// Sample returns the next sample. Returns zero once the end of the data has
// been reached, unless Loop is set.
func (src *Source) Sample() int16 {
	idx := src.pos >> 16
	if idx >= len(src.buf.Data) {
		if !src.Loop || len(src.buf.Data) == 0 {
			return 0
		}
		src.pos = 0
		idx = 0
	}
	src.pos += src.step

	v := src.buf.Data[idx]
	if v > 32767 {
		v = 32767
	} else if v < -32768 {
		v = -32768
	}
	return int16(v)
}
