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

package sid

import (
	"strings"

	"github.com/jetsetilly/gophersid/environment"
	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/hardware/sid/extfilter"
	"github.com/jetsetilly/gophersid/hardware/sid/filter"
	"github.com/jetsetilly/gophersid/hardware/sid/voice"
	"github.com/jetsetilly/gophersid/hardware/sid/wave"
	"github.com/jetsetilly/gophersid/logger"
)

// OutputBits is the width of the value returned by Output().
const OutputBits = extfilter.OutputBits

// number of cycles a value stays on the data bus after a write. the bus
// capacitance of the 8580 holds the value for a lot longer
var busValueTTL = [chipmodel.NumModels]int{
	chipmodel.MOS6581: 0x2000,
	chipmodel.MOS8580: 0xa2000,
}

// Tracker implementations are notified of every write to a voice register.
type Tracker interface {
	SIDTick(voice int, reg VoiceRegisters)
}

// SID is the emulation of a single SID chip.
type SID struct {
	env *environment.Environment

	model chipmodel.Model

	voices    [wave.NumGenerators]voice.Voice
	filter    *filter.Filter
	extFilter *extfilter.Filter

	// register values as last written
	registers [NumRegisters]uint8

	// the last value written to or read from the chip stays on the data bus
	// for a while. reading a write-only register returns this value
	busValue    uint8
	busValueTTL int

	// the 8580 applies register writes one cycle late
	writePipeline uint8
	writeAddress  uint8

	voiceMask uint8
	digiBoost bool

	// values returned by reads of the pot registers
	potX uint8
	potY uint8

	tracker Tracker
}

// NewSID is the preferred method of initialisation for the SID type. The
// environment argument can be nil.
//
// Returns an error if the tables for the chip model cannot be built.
func NewSID(env *environment.Environment, model chipmodel.Model) (*SID, error) {
	sid := &SID{
		env:       env,
		voiceMask: 0x0f,
		potX:      0xff,
		potY:      0xff,
	}

	var err error

	sid.filter, err = filter.NewFilter(model)
	if err != nil {
		return nil, err
	}
	sid.extFilter = extfilter.NewFilter()

	sid.model = model
	for i := range sid.voices {
		sid.voices[i].SetChipModel(model)
	}

	sid.Reset()

	logger.Logf(sid.env, "sid", "created %s", model)

	return sid, nil
}

// Plumb a new environment into the SID.
func (sid *SID) Plumb(env *environment.Environment) {
	sid.env = env
}

// SetTracker adds a Tracker implementation to the SID. A nil value removes the
// tracker.
func (sid *SID) SetTracker(tracker Tracker) {
	sid.tracker = tracker
}

// Snapshot creates a copy of the SID in its current state. The copy can be
// clocked independently of the original.
func (sid *SID) Snapshot() *SID {
	n := *sid

	f := *sid.filter
	n.filter = &f

	e := *sid.extFilter
	n.extFilter = &e

	return &n
}

func (sid *SID) String() string {
	s := strings.Builder{}
	s.WriteString(sid.model.String())
	for i := range sid.voices {
		s.WriteString("\n")
		s.WriteString(sid.voices[i].String())
	}
	s.WriteString("\n")
	s.WriteString(sid.filter.String())
	return s.String()
}

// Model returns the current chip model.
func (sid *SID) Model() chipmodel.Model {
	return sid.model
}

// SetChipModel changes the chip model. Register values and internal state are
// kept. Returns an error if the tables for the model cannot be built, in which
// case the chip is unchanged.
func (sid *SID) SetChipModel(model chipmodel.Model) error {
	if err := sid.filter.SetChipModel(model); err != nil {
		return err
	}

	sid.model = model
	for i := range sid.voices {
		sid.voices[i].SetChipModel(model)
	}

	// the pipeline only exists on the 8580
	if sid.writePipeline != 0 && model != chipmodel.MOS8580 {
		sid.write()
	}

	sid.applyDigiBoost()

	logger.Logf(sid.env, "sid", "chip model changed to %s", model)

	return nil
}

// Reset the chip to its power-up state. The chip model and the configuration
// set with the Enable*(), SetVoiceMask(), SetDigiBoost(), AdjustFilterBias()
// and SetPot() functions are kept.
func (sid *SID) Reset() {
	for i := range sid.voices {
		sid.voices[i].Reset()
	}
	sid.filter.Reset()
	sid.extFilter.Reset()

	for i := range sid.registers {
		sid.registers[i] = 0
	}

	sid.busValue = 0
	sid.busValueTTL = 0
	sid.writePipeline = 0
	sid.writeAddress = 0

	sid.filter.Input(0)
	sid.applyDigiBoost()
}

// EnableFilter enables or disables the filter. When disabled all voices go
// straight to the mixer.
func (sid *SID) EnableFilter(enable bool) {
	sid.filter.Enable(enable)
}

// EnableExternalFilter enables or disables the external filter.
func (sid *SID) EnableExternalFilter(enable bool) {
	sid.extFilter.Enable(enable)
}

// SetVoiceMask mutes voices. Bits 0 to 2 are the three voices and bit 3 is
// the EXT IN signal.
func (sid *SID) SetVoiceMask(mask uint8) {
	sid.voiceMask = mask & 0x0f
	sid.applyDigiBoost()
}

// SetDigiBoost enables the digi boost modification of the 8580. Sample
// playback on the 8580 is very quiet because the DC level of the voices is
// close to zero. Real machines add a DC level to the EXT IN pin to make
// samples audible. Has no effect on the 6581.
func (sid *SID) SetDigiBoost(enable bool) {
	sid.digiBoost = enable
	sid.applyDigiBoost()
}

func (sid *SID) applyDigiBoost() {
	if sid.digiBoost && sid.model == chipmodel.MOS8580 {
		sid.filter.SetVoiceMask(0x0f)
		sid.filter.Input(-32768)
		return
	}
	sid.filter.SetVoiceMask(sid.voiceMask)
}

// Input sets the 16 bit signal on the EXT IN pin. The signal is ignored while
// the 8580 digi boost is active.
func (sid *SID) Input(sample int16) {
	if sid.digiBoost && sid.model == chipmodel.MOS8580 {
		return
	}
	sid.filter.Input(sample)
}

// AdjustFilterBias changes the bias of the 6581 filter cutoff, in millivolts.
// Positive values raise the cutoff frequency.
func (sid *SID) AdjustFilterBias(mV float64) {
	sid.filter.AdjustBias(mV)
}

// SetPot sets the values read from the POTX and POTY registers.
func (sid *SID) SetPot(x, y uint8) {
	sid.potX = x
	sid.potY = y
}

// Write a value to a register. Only the low five bits of the address are
// decoded. Writes to read-only registers only affect the data bus.
func (sid *SID) Write(addr uint8, value uint8) {
	// a previous pipelined write must not be lost
	if sid.writePipeline != 0 {
		sid.write()
	}

	sid.writeAddress = addr & AddressMask
	sid.busValue = value
	sid.busValueTTL = busValueTTL[sid.model]

	if sid.model == chipmodel.MOS8580 {
		sid.writePipeline = 1
		return
	}

	sid.write()
}

// apply the pending write
func (sid *SID) write() {
	sid.writePipeline = 0
	sid.writeRegister(sid.writeAddress, sid.busValue)
}

// Read a register. Only the low five bits of the address are decoded. All
// registers other than the pot, OSC3 and ENV3 registers return the value
// currently on the data bus.
func (sid *SID) Read(addr uint8) uint8 {
	switch addr & AddressMask {
	case RegPotX:
		sid.setBus(sid.potX)
	case RegPotY:
		sid.setBus(sid.potY)
	case RegOSC3:
		sid.setBus(sid.voices[2].Wave.ReadOSC())
	case RegENV3:
		sid.setBus(sid.voices[2].Envelope.ReadENV())
	}

	return sid.busValue
}

func (sid *SID) setBus(v uint8) {
	sid.busValue = v
	sid.busValueTTL = busValueTTL[sid.model]
}

// the value on the data bus fades away
func (sid *SID) ageBus(n int) {
	if sid.busValueTTL <= 0 {
		return
	}
	sid.busValueTTL -= n
	if sid.busValueTTL <= 0 {
		sid.busValueTTL = 0
		sid.busValue = 0
	}
}

// Clock the chip by one cycle.
func (sid *SID) Clock() {
	for i := range sid.voices {
		sid.voices[i].Envelope.Clock()
	}

	for i := range sid.voices {
		sid.voices[i].Wave.Clock()
	}

	// hard sync is applied after all accumulators have been clocked
	for i := range sid.voices {
		sid.voices[i].Wave.Synchronize(&sid.voices[wave.SyncDest(i)].Wave, &sid.voices[wave.SyncSource(i)].Wave)
	}

	for i := range sid.voices {
		sid.voices[i].Wave.SetOutput(&sid.voices[wave.SyncSource(i)].Wave)
	}

	sid.filter.Clock(sid.voices[0].Output(), sid.voices[1].Output(), sid.voices[2].Output())
	sid.extFilter.Clock(sid.filter.Output())

	if sid.writePipeline != 0 {
		sid.write()
	}

	sid.ageBus(1)
}

// ClockDelta clocks the chip by n cycles.
//
// The accumulators are advanced in as few steps as possible. A step never
// crosses a change of the MSB of an accumulator that is the source of hard
// sync so hard sync happens on the correct cycle.
func (sid *SID) ClockDelta(n int) {
	if n <= 0 {
		return
	}

	// pipelined writes are single cycle events
	if sid.writePipeline != 0 {
		sid.Clock()
		n--
		if n == 0 {
			return
		}
	}

	sid.ageBus(n)

	for i := range sid.voices {
		sid.voices[i].Envelope.ClockDelta(n)
	}

	for remaining := n; remaining > 0; {
		step := remaining

		for i := range sid.voices {
			g := &sid.voices[i].Wave

			// only the MSB of a generator that syncs another generator matters
			if !sid.voices[wave.SyncDest(i)].Wave.SyncEnabled() {
				continue
			}

			c := g.CyclesToMSBToggle()
			if c > 0 && c < step {
				step = c
			}
		}

		for i := range sid.voices {
			sid.voices[i].Wave.ClockDelta(step)
		}

		for i := range sid.voices {
			sid.voices[i].Wave.Synchronize(&sid.voices[wave.SyncDest(i)].Wave, &sid.voices[wave.SyncSource(i)].Wave)
		}

		remaining -= step
	}

	for i := range sid.voices {
		sid.voices[i].Wave.SetOutputDelta(n, &sid.voices[wave.SyncSource(i)].Wave)
	}

	sid.filter.ClockDelta(n, sid.voices[0].Output(), sid.voices[1].Output(), sid.voices[2].Output())
	sid.extFilter.ClockDelta(n, sid.filter.Output())
}

// Output returns the current output of the chip as a signed value of
// OutputBits width.
func (sid *SID) Output() int {
	return sid.extFilter.Output()
}

// OutputBits returns the current output of the chip scaled to a signed value
// of the requested width. The width is limited to between 1 and 32 bits and
// the value saturates at the limits of the width.
func (sid *SID) OutputBits(bits int) int {
	if bits < 1 {
		bits = 1
	} else if bits > 32 {
		bits = 32
	}

	o := sid.Output()
	if bits < OutputBits {
		o >>= OutputBits - bits
	} else {
		o <<= bits - OutputBits
	}

	half := 1 << (bits - 1)
	if o >= half {
		return half - 1
	}
	if o < -half {
		return -half
	}
	return o
}
