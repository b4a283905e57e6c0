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

package filter

import (
	"math"
	"sync"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/hardware/sid/dac"
	"github.com/jetsetilly/gophersid/logger"
)

// TableConstruction is returned when the tables for a chip model could not be
// built. No Filter can be created for a model whose tables failed.
const TableConstruction = "filter: table construction: %v"

const (
	// number of entries in a table indexed by a 16 bit voltage
	tableLen = 1 << 16

	// resonance and volume are both 4 bit values. one gain table for each
	numGainTables = 16

	// the summer has 2 to 6 inputs. the mixer has 0 to 7 inputs
	numSummerTables = 5
	numMixerTables  = 8

	// the cutoff register is 11 bits
	fcBits = 11
	fcMask = 1<<fcBits - 1

	// the 8580 DAC current factor carries extra fractional bits
	nDACShift = 8
)

// start of the table for each number of summer and mixer inputs
var (
	summerOffset [numSummerTables + 1]int
	mixerOffset  [numMixerTables + 1]int
)

func init() {
	// summer tables for 2 to 6 inputs
	for k := 0; k < numSummerTables; k++ {
		summerOffset[k+1] = summerOffset[k] + (2+k)<<16
	}

	// the mixer table for zero inputs has a single entry
	mixerOffset[1] = 1
	for l := 1; l < numMixerTables; l++ {
		mixerOffset[l+1] = mixerOffset[l] + l<<16
	}
}

// op-amp input voltage and its derivative for a value of x, where x is half
// the difference between the output and input voltages
type opampEntry struct {
	vx  int // m*2^16
	dvx int // 2^11
}

// ModelTables are the precomputed tables for one chip model. The tables are
// read-only once built and are shared by every Filter using the model.
type ModelTables struct {
	Model chipmodel.Model

	// fixed point scale of a volt
	VoN16 int

	// k*(Vdd - Vth), scaled and translated
	KVddt int

	// scale and offset for converting voice output to filter input
	VoiceScaleS14 int
	VoiceDC       int

	// root bracket of the op-amp transfer function
	ak int
	bk int

	opamp []opampEntry

	// capacitor voltage to op-amp input voltage
	OpampRev []uint16

	// gain stages for resonance and volume. indexed by the 4 bit register
	// value and the input voltage
	Gain [numGainTables][]uint16

	// summer and mixer tables for each number of inputs. the index is the
	// table offset plus the sum of the input voltages
	Summer []uint16
	Mixer  []uint16

	// 6581 integrator
	NSnake      int
	F0DAC       []uint16
	VcrKVg      []uint16
	VcrNIdsTerm []uint16

	// 8580 integrator
	NVgt int
	NDAC []int
}

// Bracket returns the range of x values over which the op-amp transfer
// function is defined.
func (t *ModelTables) Bracket() (int, int) {
	return t.ak, t.bk
}

var shared [chipmodel.NumModels]struct {
	once   sync.Once
	tables *ModelTables
	err    error
}

// Tables returns the shared tables for the chip model, building them on first
// use. If construction fails the error is remembered and returned on every
// subsequent call for that model.
func Tables(model chipmodel.Model) (*ModelTables, error) {
	if !model.Valid() {
		return nil, curated.Errorf(TableConstruction, curated.Errorf(chipmodel.UnknownModel, model))
	}

	s := &shared[model]
	s.once.Do(func() {
		s.tables, s.err = BuildModelTables(model)
		if s.err != nil {
			logger.Logf(logger.Allow, "filter", "%v", s.err)
			return
		}
		logger.Logf(logger.Allow, "filter", "built %s tables", model)
	})

	return s.tables, s.err
}

// BuildModelTables creates a new set of tables for the chip model. Most
// callers should use Tables() which shares one set of tables for each model.
func BuildModelTables(model chipmodel.Model) (tables *ModelTables, err error) {
	if !model.Valid() {
		return nil, curated.Errorf(TableConstruction, curated.Errorf(chipmodel.UnknownModel, model))
	}

	// a bad curve can push the table construction out of range
	defer func() {
		if r := recover(); r != nil {
			tables = nil
			err = curated.Errorf(TableConstruction, r)
		}
	}()

	p := modelParams[model]
	t := &ModelTables{Model: model}

	if len(p.opampVoltage) < 4 {
		return nil, curated.Errorf(TableConstruction, "op-amp curve is too short")
	}

	vmin := p.opampVoltage[0].x
	opampMax := p.opampVoltage[0].y
	kVddt := p.k * (p.vdd - p.vth)
	vmax := math.Max(kVddt, opampMax)
	denorm := vmax - vmin
	norm := 1.0 / denorm

	// scaling and translation constants
	N14 := norm * float64(1<<14-1)
	N15 := norm * float64(1<<15-1)
	N16 := norm * float64(1<<16-1)
	N31 := norm * float64(1<<31-1)

	t.VoN16 = int(N16)
	t.KVddt = int(N16*(kVddt-vmin) + 0.5)
	t.VoiceScaleS14 = int(N14 * p.voiceVoltageRange)
	t.VoiceDC = int(N16 * (p.voiceDCVoltage - vmin))

	if err := t.buildOpamp(p, N16, N31, vmin); err != nil {
		return nil, err
	}

	t.buildGain()
	t.buildSummer()
	t.buildMixer()

	switch model {
	case chipmodel.MOS6581:
		t.build6581(p, denorm, N15, N16, vmin)
	case chipmodel.MOS8580:
		t.build8580(p, denorm, N16, vmin)
	}

	return t, nil
}

// the op-amp transfer function maps x, half the difference between the
// output and the input voltage, to the input voltage. the function is
// interpolated from the measured curve with the y axis temporarily scaled to
// 31 bits for accuracy in the derivative
func (t *ModelTables) buildOpamp(p params, N16, N31, vmin float64) error {
	n := len(p.opampVoltage)
	scaled := make([]point, n)

	// reversed so that x is ascending
	for i, v := range p.opampVoltage {
		scaled[n-1-i].x = float64(int((N16*(v.y-v.x)+float64(1<<16))/2 + 0.5))
		scaled[n-1-i].y = N31 * (v.x - vmin)
	}

	// rounding can push x past 16 bits. the last point is repeated
	if scaled[n-1].x >= 1<<16 {
		scaled[n-1].x = 1<<16 - 1
		scaled[n-2].x = 1<<16 - 1
	}

	t.ak = int(scaled[0].x)
	t.bk = int(scaled[n-1].x)
	if t.ak < 0 || t.bk >= tableLen || t.ak >= t.bk {
		return curated.Errorf(TableConstruction, "op-amp curve has no usable range")
	}

	f := make([]int, tableLen)
	interpolate(scaled, plotter(f), 1.0)

	// function value and derivative in the same table
	t.opamp = make([]opampEntry, tableLen)
	fn := f[t.ak]
	for j := t.ak; j <= t.bk; j++ {
		fp := fn
		fn = f[j]

		// m*2^31*dy/(m*2^16*dx) = 2^15*dy/dx
		df := fn - fp

		t.opamp[j].dvx = df >> (15 - 11)
		if fn > 0xffff<<15 {
			t.opamp[j].vx = 0xffff
		} else {
			t.opamp[j].vx = fn >> 15
		}
	}

	// the integrators can drive the capacitor voltage past the measured
	// range. the function is held at its end values
	t.OpampRev = make([]uint16, tableLen)
	for j := range t.OpampRev {
		switch {
		case j < t.ak:
			t.OpampRev[j] = uint16(t.opamp[t.ak].vx)
		case j > t.bk:
			t.OpampRev[j] = uint16(t.opamp[t.bk].vx)
		default:
			t.OpampRev[j] = uint16(t.opamp[j].vx)
		}
	}

	return nil
}

// gain ~ vol/8 and 1/Q ~ ~res/8. the 4 bit register values select one of 16
// tables
func (t *ModelTables) buildGain() {
	for n8 := 0; n8 < numGainTables; n8++ {
		n := n8 << 4
		x := t.ak
		t.Gain[n8] = make([]uint16, tableLen)
		for vi := 0; vi < tableLen; vi++ {
			t.Gain[n8][vi] = uint16(t.SolveGain(n, vi, &x))
		}
	}
}

// the filter summer operates at n ~ 1 and has between 2 and 6 input
// resistors. all inputs that are switched on are modelled as one
func (t *ModelTables) buildSummer() {
	t.Summer = make([]uint16, summerOffset[numSummerTables])
	for k := 0; k < numSummerTables; k++ {
		idiv := 2 + k
		n := idiv << 7
		size := idiv << 16
		x := t.ak
		for vi := 0; vi < size; vi++ {
			t.Summer[summerOffset[k]+vi] = uint16(t.SolveGain(n, vi/idiv, &x))
		}
	}
}

// the audio mixer operates at n ~ 8/6 and has between 0 and 7 input
// resistors
func (t *ModelTables) buildMixer() {
	t.Mixer = make([]uint16, mixerOffset[numMixerTables])
	for l := 0; l < numMixerTables; l++ {
		n := (l << 7) * 8 / 6
		size := mixerOffset[l+1] - mixerOffset[l]

		// n is zero when there are no inputs so the division has no effect
		idiv := l
		if idiv == 0 {
			idiv = 1
		}

		x := t.ak
		for vi := 0; vi < size; vi++ {
			t.Mixer[mixerOffset[l]+vi] = uint16(t.SolveGain(n, vi/idiv, &x))
		}
	}
}

func (t *ModelTables) build6581(p params, denorm, N15, N16, vmin float64) {
	// snake current factor for one cycle at 1MHz. fits in 5 bits
	t.NSnake = int(denorm*float64(1<<13)*(p.uCox/(2*p.k)*p.wlSnake*1.0e-6/p.c) + 0.5)

	// cutoff DAC output voltage for every value of the 11 bit register
	f0 := dac.Build(fcBits, p.dac2RDivR, p.dacTerm)
	t.F0DAC = make([]uint16, len(f0))
	for n := range f0 {
		t.F0DAC[n] = clampU16(N16*(p.dacZero+float64(f0[n])*p.dacScale/float64(1<<fcBits)-vmin) + 0.5)
	}

	// VCR gate voltage. the index is the argument to the square root shifted
	// right 16 times
	t.VcrKVg = make([]uint16, tableLen)
	for i := range t.VcrKVg {
		vg := float64(t.KVddt) - math.Sqrt(float64(i)*float64(1<<16))
		t.VcrKVg[i] = clampU16(p.k*vg + 0.5)
	}

	// EKV model of the VCR:
	//
	//   Ids = Is*(if - ir)
	//   Is = 2*u*Cox*Ut^2/k*W/L
	//   if = ln^2(1 + e^((k*(Vg - Vt) - Vs)/(2*Ut))
	//   ir = ln^2(1 + e^((k*(Vg - Vt) - Vd)/(2*Ut))
	kVt := p.k * p.vth
	is := 2 * p.uCox * p.ut * p.ut / p.k * p.wlVCR

	// current factor for one cycle at 1MHz
	nIs := N15 * 1.0e-6 / p.c * is

	t.VcrNIdsTerm = make([]uint16, tableLen)
	for kVgVx := range t.VcrNIdsTerm {
		logTerm := math.Log1p(math.Exp((float64(kVgVx)/N16 - kVt) / (2 * p.ut)))
		t.VcrNIdsTerm[kVgVx] = clampU16(nIs * logTerm * logTerm)
	}
}

func (t *ModelTables) build8580(p params, denorm, N16, vmin float64) {
	t.NVgt = int(N16*(p.k*(p.vref-p.vth)-vmin) + 0.5)

	// each bit of the cutoff register switches in a transistor twice as wide
	// as the previous one. with no bits set a single small transistor
	// remains
	t.NDAC = make([]int, 1<<fcBits)
	for fc := range t.NDAC {
		wl := 0.0
		unit := p.wlDACUnit
		for b := 0; b < fcBits; b++ {
			if fc&(1<<b) != 0 {
				wl += unit
			}
			unit *= 2
		}
		if fc == 0 {
			wl = p.wlDACUnit / 2
		}
		t.NDAC[fc] = int(denorm*float64(1<<(13+nDACShift))*(p.uCox/(2*p.k)*wl*1.0e-6/p.c) + 0.5)
	}
}

func clampU16(v float64) uint16 {
	if v < 0 {
		return 0
	}
	if v > 0xffff {
		return 0xffff
	}
	return uint16(v)
}
