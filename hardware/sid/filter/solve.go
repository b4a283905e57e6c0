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

// SolveGain finds the output voltage of an inverting op-amp stage with gain
// n/128 for the input voltage vi. The x argument is the starting estimate of
// the root and is updated with the solution, so that solving for a sequence of
// nearby input voltages converges quickly.
//
// The root is found with Newton-Raphson inside a root bracket. A step that
// would leave the bracket is replaced by a bisection step, which guarantees
// that the function returns.
//
// All voltages are translated and scaled to 16 bits. The translation cancels
// out because the voltages are only ever used in subtractions.
func (t *ModelTables) SolveGain(n, vi int, x *int) int {
	// f is increasing so f(ak) < 0 and f(bk) > 0
	ak := t.ak
	bk := t.bk

	if *x < ak || *x > bk {
		*x = ak
	}

	a := n + (1 << 7) // 2^7
	b := t.KVddt      // m*2^16
	bvi := b - vi     // m*2^16
	if bvi < 0 {
		bvi = 0
	}
	c := n * ((bvi * bvi) >> 12) // m^2*2^27

	for {
		xk := *x

		vx := t.opamp[xk].vx   // m*2^16
		dvx := t.opamp[xk].dvx // 2^11

		// f = a*(b - vx)^2 - c - (b - vo)^2
		// df = 2*((b - vo)*(dvx + 1) - a*(b - vx)*dvx)
		vo := vx + (xk << 1) - (1 << 16)
		if vo >= 1<<16 {
			vo = 1<<16 - 1
		} else if vo < 0 {
			vo = 0
		}

		bvx := b - vx
		if bvx < 0 {
			bvx = 0
		}
		bvo := b - vo
		if bvo < 0 {
			bvo = 0
		}

		// dividend is m^2*2^27 and divisor is m*2^11. the quotient is m*2^16
		f := a*((bvx*bvx)>>12) - c - ((bvo * bvo) >> 5)
		df := (bvo*(dvx+(1<<11)) - a*((bvx*dvx)>>7)) >> 15

		// newton-raphson step. a flat derivative falls through to bisection
		if df != 0 {
			*x = xk - f/df
		}
		if *x == xk && df != 0 {
			// no further improvement possible
			return vo
		}

		// narrow the root bracket
		if f < 0 {
			ak = xk
		} else {
			bk = xk
		}

		if *x <= ak || *x >= bk {
			*x = (ak + bk) >> 1
			if *x == ak {
				// no further bisection possible
				return vo
			}
		}
	}
}

// integrator output of the 6581. the input resistance is a VCR in parallel
// with the snake transistor. dt is the number of cycles to advance
//
// vx and vc are the op-amp input voltage and the capacitor charge of the
// integrator, both updated by the function. the return value is the op-amp
// output voltage
func (f *Filter) solveIntegrate6581(dt, vi int, vx, vc *int) int {
	t := f.tables
	kVddt := t.KVddt // m*2^16

	// snake voltages for the triode mode calculation
	vgst := kVddt - *vx
	vgdt := kVddt - vi
	vgdt2 := vgdt * vgdt

	// snake current, m*2^30
	nISnake := t.NSnake * ((vgst*vgst - vgdt2) >> 15)

	// VCR gate voltage, m*2^16
	//   Vg = Vddt - sqrt(((Vddt - Vw)^2 + Vgdt^2)/2)
	kVg := int(t.VcrKVg[clampIndex((f.vddtVw2+(vgdt2>>1))>>16)])

	// VCR voltages for the EKV model lookup
	vgs := kVg - *vx
	if vgs < 0 {
		vgs = 0
	}
	vgd := kVg - vi
	if vgd < 0 {
		vgd = 0
	}

	// VCR current, m*2^30
	nIVCR := (int(t.VcrNIdsTerm[clampIndex(vgs)]) - int(t.VcrNIdsTerm[clampIndex(vgd)])) << 15

	*vc -= (nISnake + nIVCR) * dt

	return f.integratorOutput(vx, vc)
}

// integrator output of the 8580. the input resistance is the array of
// transistors switched in by the cutoff register
func (f *Filter) solveIntegrate8580(dt, vi int, vx, vc *int) int {
	t := f.tables

	vgst := t.NVgt - *vx
	if vgst < 0 {
		vgst = 0
	}

	// saturation when the input is above the gate voltage
	vgdt := t.NVgt - vi
	if vgdt < 0 {
		vgdt = 0
	}

	// DAC current, m*2^30
	nIDAC := (f.nDAC * ((vgst*vgst - vgdt*vgdt) >> 15)) >> nDACShift

	*vc -= nIDAC * dt

	return f.integratorOutput(vx, vc)
}

// the capacitor charge is limited to the range of the op-amp table
const (
	vcMin = -(1 << 30)
	vcMax = 1<<30 - 1
)

// op-amp input voltage from the capacitor charge. returns the op-amp output
// voltage
func (f *Filter) integratorOutput(vx, vc *int) int {
	*vc = clampCharge(*vc)
	*vx = int(f.tables.OpampRev[(*vc>>15)+(1<<15)])

	return clampIndex(*vx + (*vc >> 14))
}

// clamp value to the range of a table indexed by a 16 bit voltage
func clampIndex(v int) int {
	if v < 0 {
		return 0
	}
	if v >= tableLen {
		return tableLen - 1
	}
	return v
}
