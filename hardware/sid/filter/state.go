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

// State is the internal state of the filter. Register values are restored by
// writing the registers.
type State struct {
	V1    int32
	V2    int32
	V3    int32
	V4    int32
	Vhp   int32
	Vbp   int32
	VbpX  int32
	VbpVc int32
	Vlp   int32
	VlpX  int32
	VlpVc int32
}

// State returns the node voltages and integrator state of the filter.
func (f *Filter) State() State {
	return State{
		V1:    int32(f.v1),
		V2:    int32(f.v2),
		V3:    int32(f.v3),
		V4:    int32(f.v4),
		Vhp:   int32(f.vhp),
		Vbp:   int32(f.vbp),
		VbpX:  int32(f.vbpX),
		VbpVc: int32(f.vbpVc),
		Vlp:   int32(f.vlp),
		VlpX:  int32(f.vlpX),
		VlpVc: int32(f.vlpVc),
	}
}

// SetState restores the filter state. Voltages are clamped to the range of
// the filter tables.
func (f *Filter) SetState(s State) {
	f.v1 = clampIndex(int(s.V1))
	f.v2 = clampIndex(int(s.V2))
	f.v3 = clampIndex(int(s.V3))
	f.v4 = clampIndex(int(s.V4))
	f.vhp = clampIndex(int(s.Vhp))
	f.vbp = clampIndex(int(s.Vbp))
	f.vbpX = clampIndex(int(s.VbpX))
	f.vlp = clampIndex(int(s.Vlp))
	f.vlpX = clampIndex(int(s.VlpX))
	f.vbpVc = clampCharge(int(s.VbpVc))
	f.vlpVc = clampCharge(int(s.VlpVc))
}

func clampCharge(vc int) int {
	if vc < vcMin {
		return vcMin
	}
	if vc > vcMax {
		return vcMax
	}
	return vc
}
