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

package psid

import (
	"fmt"
	"os"
	"strings"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/hardware/clocks"
	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
)

// Sentinal errors returned by Parse() and Load().
const (
	NotSIDFile    = "psid: not a PSID or RSID file"
	TooShort      = "psid: file too short (%d bytes)"
	BadDataOffset = "psid: unexpected data offset (%#04x) for version %d"
	BadSongs      = "psid: start song %d out of range (%d songs)"
	DataOverflow  = "psid: data overflows memory (load %#04x, %d bytes)"
	FileError     = "psid: %v"
)

// header offsets
const (
	offMagic      = 0x00
	offVersion    = 0x04
	offDataOffset = 0x06
	offLoad       = 0x08
	offInit       = 0x0a
	offPlay       = 0x0c
	offSongs      = 0x0e
	offStartSong  = 0x10
	offSpeed      = 0x12
	offName       = 0x16
	offAuthor     = 0x36
	offReleased   = 0x56
	offFlags      = 0x76
	offStartPage  = 0x78
	offPageLength = 0x79
	offSecondSID  = 0x7a
	offThirdSID   = 0x7b

	headerLenV1 = 0x76
	headerLenV2 = 0x7c

	stringLen = 32
)

// Flags bits.
const (
	FlagMUS     = 0x0001
	FlagPlaySID = 0x0002

	flagClockShift = 2
	flagModelShift = 4
)

// Header is the decoded header of a PSID or RSID file.
type Header struct {
	Magic      string
	Version    int
	DataOffset int

	LoadAddress uint16
	InitAddress uint16
	PlayAddress uint16

	Songs     int
	StartSong int

	// one bit per song. a set bit means the song is timed by CIA timer A
	// rather than the vertical blank
	Speed uint32

	Name     string
	Author   string
	Released string

	// version 2 fields onwards. zero for version 1
	Flags      uint16
	StartPage  uint8
	PageLength uint8

	// version 3 and 4 fields. the address of the additional SID is
	// 0xd000|value<<4
	SecondSID uint8
	ThirdSID  uint8
}

// Tune is the header and the 6502 data of a tune. The data does not include
// the embedded load address.
type Tune struct {
	Header
	Data []byte
}

func be16(b []byte, off int) uint16 {
	return uint16(b[off])<<8 | uint16(b[off+1])
}

func be32(b []byte, off int) uint32 {
	return uint32(b[off])<<24 | uint32(b[off+1])<<16 | uint32(b[off+2])<<8 | uint32(b[off+3])
}

// strings in the header are padded with zero bytes and use the Latin-1
// character set
func latin1(b []byte) string {
	s := strings.Builder{}
	for _, c := range b {
		if c == 0x00 {
			break
		}
		s.WriteRune(rune(c))
	}
	return strings.TrimSpace(s.String())
}

// Parse the contents of a PSID or RSID file.
func Parse(b []byte) (*Tune, error) {
	if len(b) < headerLenV1 {
		return nil, curated.Errorf(TooShort, len(b))
	}

	t := &Tune{}
	t.Magic = string(b[offMagic : offMagic+4])
	if t.Magic != "PSID" && t.Magic != "RSID" {
		return nil, curated.Errorf(NotSIDFile)
	}

	t.Version = int(be16(b, offVersion))
	t.DataOffset = int(be16(b, offDataOffset))

	switch t.Version {
	case 1:
		if t.DataOffset != headerLenV1 {
			return nil, curated.Errorf(BadDataOffset, t.DataOffset, t.Version)
		}
	default:
		if t.DataOffset != headerLenV2 {
			return nil, curated.Errorf(BadDataOffset, t.DataOffset, t.Version)
		}
	}

	if len(b) < t.DataOffset {
		return nil, curated.Errorf(TooShort, len(b))
	}

	t.LoadAddress = be16(b, offLoad)
	t.InitAddress = be16(b, offInit)
	t.PlayAddress = be16(b, offPlay)
	t.Songs = int(be16(b, offSongs))
	t.StartSong = int(be16(b, offStartSong))
	t.Speed = be32(b, offSpeed)
	t.Name = latin1(b[offName : offName+stringLen])
	t.Author = latin1(b[offAuthor : offAuthor+stringLen])
	t.Released = latin1(b[offReleased : offReleased+stringLen])

	if t.Version >= 2 {
		t.Flags = be16(b, offFlags)
		t.StartPage = b[offStartPage]
		t.PageLength = b[offPageLength]
	}
	if t.Version >= 3 {
		t.SecondSID = b[offSecondSID]
	}
	if t.Version >= 4 {
		t.ThirdSID = b[offThirdSID]
	}

	if t.Songs < 1 {
		t.Songs = 1
	}
	if t.StartSong == 0 {
		t.StartSong = 1
	}
	if t.StartSong > t.Songs {
		return nil, curated.Errorf(BadSongs, t.StartSong, t.Songs)
	}

	data := b[t.DataOffset:]
	if t.LoadAddress == 0 {
		if len(data) < 2 {
			return nil, curated.Errorf(TooShort, len(b))
		}
		t.LoadAddress = uint16(data[0]) | uint16(data[1])<<8
		data = data[2:]
	}

	if int(t.LoadAddress)+len(data) > 0x10000 {
		return nil, curated.Errorf(DataOverflow, t.LoadAddress, len(data))
	}

	// the init address defaults to the load address
	if t.InitAddress == 0 {
		t.InitAddress = t.LoadAddress
	}

	t.Data = make([]byte, len(data))
	copy(t.Data, data)

	return t, nil
}

// Load and parse the named file.
func Load(filename string) (*Tune, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(FileError, err)
	}
	return Parse(b)
}

// IsRSID returns true if the tune requires a full C64 environment.
func (h Header) IsRSID() bool {
	return h.Magic == "RSID"
}

// CIATimed returns true if the song (numbered from one) is timed by CIA timer
// A. Songs after the 32nd share the setting of the 32nd.
func (h Header) CIATimed(song int) bool {
	if h.IsRSID() {
		return true
	}
	bit := song - 1
	if bit < 0 {
		bit = 0
	} else if bit > 31 {
		bit = 31
	}
	return h.Speed&(1<<uint(bit)) != 0
}

// Model returns the chip model the tune was written for. The ok value is false
// if the tune does not specify a single model.
func (h Header) Model() (chipmodel.Model, bool) {
	switch (h.Flags >> flagModelShift) & 0x03 {
	case 1:
		return chipmodel.MOS6581, true
	case 2:
		return chipmodel.MOS8580, true
	}
	return chipmodel.MOS6581, false
}

// Standard returns the clock standard the tune was written for. The ok value
// is false if the tune does not specify a single standard.
func (h Header) Standard() (clocks.Standard, bool) {
	switch (h.Flags >> flagClockShift) & 0x03 {
	case 1:
		return clocks.PAL, true
	case 2:
		return clocks.NTSC, true
	}
	return clocks.PAL, false
}

func (h Header) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s v%d\n", h.Magic, h.Version))
	s.WriteString(fmt.Sprintf("name:     %s\n", h.Name))
	s.WriteString(fmt.Sprintf("author:   %s\n", h.Author))
	s.WriteString(fmt.Sprintf("released: %s\n", h.Released))
	s.WriteString(fmt.Sprintf("load:     %#04x\n", h.LoadAddress))
	s.WriteString(fmt.Sprintf("init:     %#04x\n", h.InitAddress))
	s.WriteString(fmt.Sprintf("play:     %#04x\n", h.PlayAddress))
	s.WriteString(fmt.Sprintf("songs:    %d (start %d)\n", h.Songs, h.StartSong))

	if m, ok := h.Model(); ok {
		s.WriteString(fmt.Sprintf("model:    %s\n", m))
	} else {
		s.WriteString("model:    any\n")
	}
	if c, ok := h.Standard(); ok {
		s.WriteString(fmt.Sprintf("clock:    %s\n", c))
	} else {
		s.WriteString("clock:    any\n")
	}

	return s.String()
}
