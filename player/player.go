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

package player

import (
	"github.com/beevik/go6502/cpu"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/environment"
	"github.com/jetsetilly/gophersid/hardware/clocks"
	"github.com/jetsetilly/gophersid/hardware/sid"
	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/logger"
	"github.com/jetsetilly/gophersid/psid"
)

// Sentinal errors returned by the Player type.
const (
	BadSong    = "player: song %d out of range (%d songs)"
	NotStarted = "player: no song has been started"
)

// the number of instructions a routine can execute before it is abandoned
const maxInstructions = 1000000

// default output sample rate used when there are no preferences
const defaultSampleRate = 44100

// CIA 1 timer A latch values set by the kernal on startup
var kernalCIALatch = map[clocks.Standard]int{
	clocks.PAL:  0x4025,
	clocks.NTSC: 0x4295,
}

// opcodes that end a routine
const (
	opBRK = 0x00
	opRTI = 0x40
	opRTS = 0x60
)

// ExtIn is a source of samples for the EXT IN pin of the SID. One sample is
// taken for every output sample.
type ExtIn interface {
	Sample() int16
}

// Tracker is notified of register writes by the SID and of the start of every
// frame by the player.
type Tracker interface {
	sid.Tracker
	NewFrame()
}

// Player runs a PSID tune on a SID.
type Player struct {
	env  *environment.Environment
	tune *psid.Tune

	sid *sid.SID
	cpu *cpu.CPU
	mem *memory

	standard   clocks.Standard
	sampleRate int

	// current song. numbered from one. zero means no song has been started
	song int

	playAddress uint16
	ciaTimed    bool

	// number of cycles in the current frame and the number of cycles
	// remaining until the next call to the play routine
	framePeriod    int
	frameRemaining int
	frame          int

	// 16.16 fixed point cycles per sample and the fractional cycle carried
	// over from the previous sample
	cyclesPerSample int
	cycleFraction   int

	// number of cycles used by the most recent call to a routine
	routineCycles uint64

	extIn   ExtIn
	tracker Tracker
}

// NewPlayer is the preferred method of initialisation for the Player type.
// The environment argument can be nil, in which case a 6581 on a PAL machine
// producing samples at 44100Hz is used.
//
// A chip model or clock standard specified by the tune overrides the
// preferences.
func NewPlayer(env *environment.Environment, tune *psid.Tune) (*Player, error) {
	p := &Player{
		env:        env,
		tune:       tune,
		standard:   clocks.PAL,
		sampleRate: defaultSampleRate,
	}

	model := chipmodel.MOS6581

	if env != nil && env.Prefs != nil {
		model = env.Prefs.SID.ChipModel()
		p.standard = env.Prefs.SID.Standard()
		p.sampleRate = env.Prefs.SID.SampleRate.Get().(int)
	}

	var err error

	p.sid, err = sid.NewSID(env, model)
	if err != nil {
		return nil, curated.Errorf("player: %v", err)
	}

	err = p.sid.ApplyPreferences()
	if err != nil {
		return nil, curated.Errorf("player: %v", err)
	}

	if m, ok := tune.Model(); ok && m != p.sid.Model() {
		err = p.sid.SetChipModel(m)
		if err != nil {
			return nil, curated.Errorf("player: %v", err)
		}
	}
	if s, ok := tune.Standard(); ok {
		p.standard = s
	}

	p.mem = &memory{sid: p.sid}
	p.cpu = cpu.NewCPU(cpu.NMOS, p.mem)

	p.SetSampleRate(p.sampleRate)

	logger.Logf(env, "player", "%s by %s", tune.Name, tune.Author)
	logger.Logf(env, "player", "%s %s at %dHz", p.sid.Model(), p.standard, p.sampleRate)

	return p, nil
}

// SID returns the SID being played.
func (p *Player) SID() *sid.SID {
	return p.sid
}

// Tune returns the tune being played.
func (p *Player) Tune() *psid.Tune {
	return p.tune
}

// Standard returns the clock standard of the player.
func (p *Player) Standard() clocks.Standard {
	return p.standard
}

// Song returns the current song, numbered from one.
func (p *Player) Song() int {
	return p.song
}

// Frame returns the number of frames since the song was started.
func (p *Player) Frame() int {
	return p.frame
}

// FramePeriod returns the number of cycles in a frame.
func (p *Player) FramePeriod() int {
	return p.framePeriod
}

// RoutineCycles returns the number of CPU cycles used by the most recent call
// to the init or play routine.
func (p *Player) RoutineCycles() uint64 {
	return p.routineCycles
}

// SampleRate returns the output sample rate.
func (p *Player) SampleRate() int {
	return p.sampleRate
}

// SetSampleRate changes the output sample rate.
func (p *Player) SetSampleRate(rate int) {
	if rate <= 0 {
		rate = defaultSampleRate
	}
	p.sampleRate = rate
	p.cyclesPerSample = (p.standard.Hz() << 16) / rate
	p.cycleFraction = 0
}

// SetStandard changes the clock standard. The frame period changes from the
// next call to Start().
func (p *Player) SetStandard(standard clocks.Standard) {
	p.standard = standard
	p.SetSampleRate(p.sampleRate)
}

// SetExtIn sets the source of the EXT IN signal. A nil value removes the
// source and silences the input.
func (p *Player) SetExtIn(src ExtIn) {
	p.extIn = src
	if src == nil {
		p.sid.Input(0)
	}
}

// SetTracker adds a Tracker implementation to the player. A nil value removes
// the tracker.
func (p *Player) SetTracker(tracker Tracker) {
	p.tracker = tracker
	p.sid.SetTracker(tracker)
}

// Peek returns the value in RAM at the address. The SID is never read.
func (p *Player) Peek(addr uint16) uint8 {
	return p.mem.ram[addr]
}

// the value of the processor port for a PSID tune depends on the address of
// the init routine
func bankFor(addr uint16) uint8 {
	switch {
	case addr < 0xa000:
		return 0x37
	case addr < 0xd000:
		return 0x36
	case addr >= 0xe000:
		return 0x35
	}
	return 0x34
}

// Start the song, numbered from one. The SID and memory are reset, the tune
// data is loaded and the init routine is run.
func (p *Player) Start(song int) error {
	if song < 1 || song > p.tune.Songs {
		return curated.Errorf(BadSong, song, p.tune.Songs)
	}

	p.song = song
	p.frame = 0
	p.cycleFraction = 0

	p.sid.Reset()
	p.mem.reset()

	copy(p.mem.ram[p.tune.LoadAddress:], p.tune.Data)

	latch := kernalCIALatch[p.standard]
	p.mem.ram[addrCIATimerALo] = uint8(latch)
	p.mem.ram[addrCIATimerAHi] = uint8(latch >> 8)

	if !p.tune.IsRSID() {
		p.mem.ram[addrProcessorPort] = bankFor(p.tune.InitAddress)
	}

	p.ciaTimed = p.tune.CIATimed(song)

	p.call(p.tune.InitAddress, uint8(song-1), false)

	p.playAddress = p.tune.PlayAddress
	if p.playAddress == 0 {
		if p.mem.kernalVisible() {
			p.playAddress = p.mem.LoadAddress(addrIRQVector)
		} else {
			p.playAddress = p.mem.LoadAddress(addrHardwareIRQ)
		}
		logger.Logf(p.env, "player", "play address from interrupt vector: %#04x", p.playAddress)
	}

	p.updateFramePeriod()

	// the play routine is called at the start of the first frame
	p.frameRemaining = 0

	logger.Logf(p.env, "player", "song %d of %d (frame period %d cycles)", song, p.tune.Songs, p.framePeriod)

	return nil
}

// call the routine at addr with the accumulator set to a. returns when the
// routine returns to the empty stack, on a BRK instruction or when the
// instruction limit is reached
func (p *Player) call(addr uint16, a uint8, play bool) {
	p.cpu.SetPC(addr)
	p.cpu.Reg.A = a
	p.cpu.Reg.X = 0
	p.cpu.Reg.Y = 0
	p.cpu.Reg.SP = 0xff

	start := p.cpu.Cycles
	defer func() {
		p.routineCycles = p.cpu.Cycles - start
	}()

	for i := 0; i < maxInstructions; i++ {
		pc := p.cpu.Reg.PC

		switch p.mem.LoadByte(pc) {
		case opBRK:
			return
		case opRTS, opRTI:
			if p.cpu.Reg.SP == 0xff {
				return
			}
		}

		// a play routine installed as an interrupt handler ends by jumping
		// to the kernal
		if play && p.mem.kernalVisible() && (pc == addrKernalIRQReturn || pc == addrKernalIRQExit) {
			return
		}

		p.cpu.Step()
		p.mem.stepRaster()
	}

	logger.Logf(p.env, "player", "routine at %#04x abandoned after %d instructions", addr, maxInstructions)
}

func (p *Player) updateFramePeriod() {
	p.framePeriod = p.standard.CyclesPerFrame()
	if p.ciaTimed && p.mem.ram[addrProcessorPort]&0x03 != 0 {
		if l := p.mem.ciaLatch(); l != 0 {
			p.framePeriod = l
		}
	}
}

// start a new frame by running the play routine
func (p *Player) newFrame() {
	if p.tracker != nil {
		p.tracker.NewFrame()
	}

	if p.playAddress != 0 {
		p.call(p.playAddress, 0, true)
	}

	p.updateFramePeriod()
	p.frameRemaining = p.framePeriod
	p.frame++
}

// ClockDelta advances the player by n cycles, running the play routine at
// every frame boundary.
func (p *Player) ClockDelta(n int) {
	for n > 0 {
		if p.frameRemaining <= 0 {
			p.newFrame()
		}

		c := n
		if c > p.frameRemaining {
			c = p.frameRemaining
		}

		p.sid.ClockDelta(c)
		p.frameRemaining -= c
		n -= c
	}
}

// RunFrame advances the player to the start of the next frame. The play
// routine is called if the player is at the start of a frame.
func (p *Player) RunFrame() {
	if p.frameRemaining <= 0 {
		p.newFrame()
	}
	p.sid.ClockDelta(p.frameRemaining)
	p.frameRemaining = 0
}

// Sample advances the player by one sample period and returns the output of
// the SID as a 16 bit sample.
func (p *Player) Sample() int16 {
	if p.extIn != nil {
		p.sid.Input(p.extIn.Sample())
	}

	p.cycleFraction += p.cyclesPerSample
	p.ClockDelta(p.cycleFraction >> 16)
	p.cycleFraction &= 0xffff

	return int16(p.sid.OutputBits(16))
}

// Render fills the buffer with samples. Returns an error if no song has been
// started.
func (p *Player) Render(buf []int16) error {
	if p.song == 0 {
		return curated.Errorf(NotStarted)
	}
	for i := range buf {
		buf[i] = p.Sample()
	}
	return nil
}
