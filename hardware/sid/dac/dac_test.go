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

package dac_test

import (
	"testing"

	"github.com/jetsetilly/gophersid/hardware/sid/dac"
	"github.com/jetsetilly/gophersid/test"
)

func TestIdealLadder(t *testing.T) {
	tbl := dac.Build(12, dac.Ratio8580, dac.Term8580)
	test.DemandEquality(t, len(tbl), 4096)
	test.ExpectEquality(t, tbl[0], uint16(0))
	test.ExpectApproximate(t, int(tbl[4095]), 4094, 0.001)

	// a correctly proportioned ladder never goes backwards
	for i := 1; i < len(tbl); i++ {
		if tbl[i] < tbl[i-1] {
			t.Fatalf("8580 DAC is not monotonic at %03x", i)
		}
	}
}

func TestNonLinearLadder(t *testing.T) {
	tbl := dac.Build(8, dac.Ratio6581, dac.Term6581)
	test.DemandEquality(t, len(tbl), 256)
	test.ExpectEquality(t, tbl[0], uint16(0))

	// the MSB of the 6581 ladder contributes less than all of the other bits
	// together so the output drops when the MSB is set
	test.ExpectSuccess(t, tbl[0x80] < tbl[0x7f])
	test.ExpectEquality(t, tbl[0xff], uint16(0xff))
}

func TestInvalidBits(t *testing.T) {
	test.ExpectEquality(t, len(dac.Build(0, 2.0, true)), 0)
	test.ExpectEquality(t, len(dac.Build(dac.MaxBits+1, 2.0, true)), 0)
}
