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

package psid_test

import (
	"testing"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/hardware/clocks"
	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/psid"
	"github.com/jetsetilly/gophersid/test"
)

type header struct {
	magic   string
	version int
	load    uint16
	init    uint16
	play    uint16
	songs   int
	start   int
	speed   uint32
	flags   uint16
	name    string
}

func (h header) bytes(data []byte) []byte {
	l := 0x7c
	if h.version == 1 {
		l = 0x76
	}
	b := make([]byte, l)
	copy(b, h.magic)
	put16 := func(off int, v uint16) {
		b[off] = byte(v >> 8)
		b[off+1] = byte(v)
	}
	put16(0x04, uint16(h.version))
	put16(0x06, uint16(l))
	put16(0x08, h.load)
	put16(0x0a, h.init)
	put16(0x0c, h.play)
	put16(0x0e, uint16(h.songs))
	put16(0x10, uint16(h.start))
	put16(0x12, uint16(h.speed>>16))
	put16(0x14, uint16(h.speed))
	copy(b[0x16:], h.name)
	if h.version >= 2 {
		put16(0x76, h.flags)
	}
	return append(b, data...)
}

func TestParse(t *testing.T) {
	h := header{
		magic:   "PSID",
		version: 2,
		load:    0x1000,
		init:    0x1000,
		play:    0x1003,
		songs:   3,
		start:   2,
		speed:   0x02,
		flags:   0x2<<4 | 0x1<<2,
		name:    "Test Tune",
	}

	tn, err := psid.Parse(h.bytes([]byte{0x4c, 0x00, 0x10}))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tn.Magic, "PSID")
	test.ExpectEquality(t, tn.Version, 2)
	test.ExpectEquality(t, tn.LoadAddress, uint16(0x1000))
	test.ExpectEquality(t, tn.InitAddress, uint16(0x1000))
	test.ExpectEquality(t, tn.PlayAddress, uint16(0x1003))
	test.ExpectEquality(t, tn.Songs, 3)
	test.ExpectEquality(t, tn.StartSong, 2)
	test.ExpectEquality(t, tn.Name, "Test Tune")
	test.ExpectEquality(t, len(tn.Data), 3)
	test.ExpectEquality(t, tn.IsRSID(), false)

	test.ExpectEquality(t, tn.CIATimed(1), false)
	test.ExpectEquality(t, tn.CIATimed(2), true)

	m, ok := tn.Model()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, m, chipmodel.MOS8580)

	c, ok := tn.Standard()
	test.ExpectEquality(t, ok, true)
	test.ExpectEquality(t, c, clocks.PAL)
}

func TestEmbeddedLoadAddress(t *testing.T) {
	h := header{magic: "PSID", version: 1, songs: 1, start: 1}

	tn, err := psid.Parse(h.bytes([]byte{0x00, 0xc0, 0x60}))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tn.LoadAddress, uint16(0xc000))
	test.ExpectEquality(t, tn.InitAddress, uint16(0xc000))
	test.ExpectEquality(t, len(tn.Data), 1)
	test.ExpectEquality(t, tn.Data[0], uint8(0x60))

	_, ok := tn.Model()
	test.ExpectEquality(t, ok, false)
	_, ok = tn.Standard()
	test.ExpectEquality(t, ok, false)
}

func TestLateSongs(t *testing.T) {
	h := header{magic: "PSID", version: 2, load: 0x1000, songs: 40, start: 1, speed: 0x80000000}

	tn, err := psid.Parse(h.bytes([]byte{0x60}))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tn.CIATimed(31), false)
	test.ExpectEquality(t, tn.CIATimed(32), true)
	test.ExpectEquality(t, tn.CIATimed(40), true)
}

func TestRSID(t *testing.T) {
	h := header{magic: "RSID", version: 2, load: 0x1000, songs: 1, start: 1}

	tn, err := psid.Parse(h.bytes([]byte{0x60}))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tn.IsRSID(), true)
	test.ExpectEquality(t, tn.CIATimed(1), true)
}

func TestErrors(t *testing.T) {
	_, err := psid.Parse([]byte("PSID"))
	test.ExpectEquality(t, curated.Is(err, psid.TooShort), true)

	h := header{magic: "XSID", version: 2, load: 0x1000, songs: 1, start: 1}
	_, err = psid.Parse(h.bytes([]byte{0x60}))
	test.ExpectEquality(t, curated.Is(err, psid.NotSIDFile), true)

	h = header{magic: "PSID", version: 2, load: 0x1000, songs: 2, start: 3}
	_, err = psid.Parse(h.bytes([]byte{0x60}))
	test.ExpectEquality(t, curated.Is(err, psid.BadSongs), true)

	h = header{magic: "PSID", version: 2, load: 0xfff0, songs: 1, start: 1}
	_, err = psid.Parse(h.bytes(make([]byte, 0x20)))
	test.ExpectEquality(t, curated.Is(err, psid.DataOverflow), true)

	b := header{magic: "PSID", version: 2, load: 0x1000, songs: 1, start: 1}.bytes([]byte{0x60})
	b[0x07] = 0x70
	_, err = psid.Parse(b)
	test.ExpectEquality(t, curated.Is(err, psid.BadDataOffset), true)
}
