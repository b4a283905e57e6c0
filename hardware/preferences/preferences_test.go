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

package preferences_test

import (
	"os"
	"testing"

	"github.com/jetsetilly/gophersid/hardware/clocks"
	"github.com/jetsetilly/gophersid/hardware/preferences"
	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/prefs"
	"github.com/jetsetilly/gophersid/test"
)

// the prefs file is created in the resource directory, which is relative to
// the working directory for development builds
func inTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() {
		os.Chdir(wd)
	})
}

func TestDefaults(t *testing.T) {
	inTempDir(t)

	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.SID.ChipModel(), chipmodel.MOS6581)
	test.ExpectEquality(t, p.SID.Standard(), clocks.PAL)
	test.ExpectEquality(t, p.SID.Filter.Get().(bool), true)
	test.ExpectEquality(t, p.SID.VoiceMask.Get().(int), 0x0f)
	test.ExpectEquality(t, p.SID.SampleRate.Get().(int), 44100)
}

func TestSetDefaults(t *testing.T) {
	inTempDir(t)

	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	test.DemandSuccess(t, p.SID.Model.Set("8580"))
	test.DemandSuccess(t, p.SID.Filter.Set(false))
	test.DemandSuccess(t, p.SID.ExtFilter.Set(false))
	test.DemandSuccess(t, p.SID.FilterBias.Set(-250.0))
	test.DemandSuccess(t, p.SID.VoiceMask.Set(0x03))
	test.DemandSuccess(t, p.SID.DigiBoost.Set(true))
	test.DemandSuccess(t, p.SID.SampleRate.Set(48000))
	test.DemandSuccess(t, p.SID.Clock.Set("NTSC"))

	// every default value passes the validation of its preference
	p.SID.SetDefaults()
	test.ExpectEquality(t, p.SID.ChipModel(), chipmodel.MOS6581)
	test.ExpectEquality(t, p.SID.Filter.Get().(bool), true)
	test.ExpectEquality(t, p.SID.ExtFilter.Get().(bool), true)
	test.ExpectEquality(t, p.SID.FilterBias.Get().(float64), 0.0)
	test.ExpectEquality(t, p.SID.VoiceMask.Get().(int), 0x0f)
	test.ExpectEquality(t, p.SID.DigiBoost.Get().(bool), false)
	test.ExpectEquality(t, p.SID.SampleRate.Get().(int), 44100)
	test.ExpectEquality(t, p.SID.Standard(), clocks.PAL)
}

func TestValidation(t *testing.T) {
	inTempDir(t)

	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, p.SID.Model.Set("MOS8580"))
	test.ExpectEquality(t, p.SID.ChipModel(), chipmodel.MOS8580)
	test.ExpectFailure(t, p.SID.Model.Set("6582"))
	test.ExpectEquality(t, p.SID.ChipModel(), chipmodel.MOS8580)

	test.ExpectSuccess(t, p.SID.Clock.Set("ntsc"))
	test.ExpectEquality(t, p.SID.Standard(), clocks.NTSC)
	test.ExpectFailure(t, p.SID.Clock.Set("SECAM"))

	test.ExpectFailure(t, p.SID.VoiceMask.Set(0x10))
	test.ExpectFailure(t, p.SID.SampleRate.Set(100))
	test.ExpectFailure(t, p.SID.FilterBias.Set(10000.0))
	test.ExpectSuccess(t, p.SID.FilterBias.Set(-250.0))
}

func TestSaveLoad(t *testing.T) {
	inTempDir(t)

	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, p.SID.Model.Set("8580"))
	test.ExpectSuccess(t, p.SID.DigiBoost.Set(true))
	test.DemandSuccess(t, p.Save())

	q, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.SID.ChipModel(), chipmodel.MOS8580)
	test.ExpectEquality(t, q.SID.DigiBoost.Get().(bool), true)

	// command line overrides the file
	prefs.PushCommandLineStack("sid.model::6581")
	test.ExpectSuccess(t, q.Load())
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
	test.ExpectEquality(t, q.SID.ChipModel(), chipmodel.MOS6581)

	test.DemandSuccess(t, q.Reset())
	test.ExpectEquality(t, q.SID.DigiBoost.Get().(bool), false)
}
