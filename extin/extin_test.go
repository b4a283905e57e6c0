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

package extin_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/extin"
	"github.com/jetsetilly/gophersid/logger"
	"github.com/jetsetilly/gophersid/test"
)

var samples = []int{0, 1000, -1000, 32767, -32768, 12, -12, 0}

func writeWAV(t *testing.T, chans int) string {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "extin.wav")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	data := make([]int, 0, len(samples)*chans)
	for _, s := range samples {
		for c := 0; c < chans; c++ {
			data = append(data, s/(c+1))
		}
	}

	enc := wav.NewEncoder(f, 8000, 16, chans, 1)
	err = enc.Write(&audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: chans,
			SampleRate:  8000,
		},
		Data:           data,
		SourceBitDepth: 16,
	})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, enc.Close())

	return fn
}

func TestWAV(t *testing.T) {
	src, err := extin.Load(logger.Allow, writeWAV(t, 1))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, src.SampleRate(), 8000)
	test.ExpectEquality(t, src.Len(), len(samples))

	for i, s := range samples {
		test.ExpectEquality(t, src.Sample(), int16(s), i)
	}

	// silence after the end of the data
	test.ExpectEquality(t, src.Sample(), int16(0))
}

func TestStereo(t *testing.T) {
	src, err := extin.Load(logger.Allow, writeWAV(t, 2))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, src.Len(), len(samples))

	for i, s := range samples {
		test.ExpectEquality(t, src.Sample(), int16(s), i)
	}
}

func TestResample(t *testing.T) {
	src, err := extin.Load(logger.Allow, writeWAV(t, 1))
	test.DemandSuccess(t, err)

	src.SetSampleRate(16000)
	for i, s := range samples {
		test.ExpectEquality(t, src.Sample(), int16(s), i)
		test.ExpectEquality(t, src.Sample(), int16(s), i)
	}

	src.Rewind()
	src.SetSampleRate(4000)
	for i := 0; i < len(samples); i += 2 {
		test.ExpectEquality(t, src.Sample(), int16(samples[i]), i)
	}
}

func TestLoop(t *testing.T) {
	src, err := extin.Load(logger.Allow, writeWAV(t, 1))
	test.DemandSuccess(t, err)
	src.Loop = true

	for i := 0; i < len(samples); i++ {
		src.Sample()
	}
	test.ExpectEquality(t, src.Sample(), int16(samples[0]))
	test.ExpectEquality(t, src.Sample(), int16(samples[1]))
}

func TestErrors(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "extin.txt")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("not audio"), 0o600))
	_, err := extin.Load(logger.Allow, fn)
	test.ExpectEquality(t, curated.Is(err, extin.UnsupportedFile), true)

	fn = filepath.Join(t.TempDir(), "extin.wav")
	test.DemandSuccess(t, os.WriteFile(fn, []byte("not a wav file at all"), 0o600))
	_, err = extin.Load(logger.Allow, fn)
	test.ExpectEquality(t, curated.Is(err, extin.InvalidWAV), true)

	_, err = extin.Load(logger.Allow, filepath.Join(t.TempDir(), "missing.wav"))
	test.ExpectFailure(t, err)
}
