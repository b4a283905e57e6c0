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

package extfilter_test

import (
	"testing"

	"github.com/jetsetilly/gophersid/hardware/sid/extfilter"
	"github.com/jetsetilly/gophersid/test"
)

func TestStepResponse(t *testing.T) {
	f := extfilter.NewFilter()
	test.ExpectSuccess(t, f.Enabled())

	// the low-pass stage lets a step through within a few hundred cycles
	var peak int
	for i := 0; i < 200; i++ {
		f.Clock(10000)
		if f.Output() > peak {
			peak = f.Output()
		}
	}
	test.ExpectApproximate(t, peak, 10000<<4, 0.05)

	// the high-pass stage removes the DC level
	for i := 0; i < 200000; i++ {
		f.Clock(10000)
	}
	test.ExpectApproximate(t, f.Output(), 0, 1000)
}

func TestClockDelta(t *testing.T) {
	f := extfilter.NewFilter()
	f.ClockDelta(200000, 10000)
	test.ExpectApproximate(t, f.Output(), 0, 1000)

	f.Reset()
	test.ExpectEquality(t, f.Output(), 0)
}

func TestDisabled(t *testing.T) {
	f := extfilter.NewFilter()
	f.Enable(false)
	test.ExpectFailure(t, f.Enabled())

	f.Clock(1234)
	test.ExpectEquality(t, f.Output(), 1234<<4)
	f.ClockDelta(100, -1234)
	test.ExpectEquality(t, f.Output(), -1234<<4)
}

func TestSaturation(t *testing.T) {
	f := extfilter.NewFilter()
	f.Enable(false)

	// the input is wider than a 16 bit value
	f.Clock(1 << 17)
	test.ExpectEquality(t, f.Output(), 1<<(extfilter.OutputBits-1)-1)
	f.Clock(-(1 << 17))
	test.ExpectEquality(t, f.Output(), -(1 << (extfilter.OutputBits - 1)))
}

func TestState(t *testing.T) {
	a := extfilter.NewFilter()
	for i := 0; i < 1000; i++ {
		a.Clock(i)
	}

	b := extfilter.NewFilter()
	b.SetState(a.State())
	test.ExpectEquality(t, b.State(), a.State())
	test.ExpectEquality(t, b.Output(), a.Output())
}
