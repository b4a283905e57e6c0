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

package preferences

import (
	"fmt"
	"sync/atomic"

	"github.com/jetsetilly/gophersid/hardware/clocks"
	"github.com/jetsetilly/gophersid/hardware/sid/chipmodel"
	"github.com/jetsetilly/gophersid/prefs"
)

// Limits of the numeric SID preferences.
const (
	MaxFilterBias = 5000.0
	MinSampleRate = 8000
	MaxSampleRate = 192000
)

// SIDPreferences are the preference values of the SID and the clock that
// drives it.
type SIDPreferences struct {
	// chip model. either "6581" or "8580"
	Model prefs.String

	// filter and external filter enable
	Filter    prefs.Bool
	ExtFilter prefs.Bool

	// 6581 filter bias in millivolts
	FilterBias prefs.Float

	// voice 1-3 and EXT IN mute bits. a set bit is an audible voice
	VoiceMask prefs.Int

	// the "8580 + digi boost" model. has no effect on the 6581
	DigiBoost prefs.Bool

	// output sample rate in Hz
	SampleRate prefs.Int

	// clock standard. either "PAL" or "NTSC"
	Clock prefs.String

	// parsed copies of Model and Clock. updated by the post hooks
	model    atomic.Value // chipmodel.Model
	standard atomic.Value // clocks.Standard
}

func (p *SIDPreferences) setHooks() {
	p.Model.SetHookPre(func(v prefs.Value) error {
		_, err := chipmodel.FromString(v.(string))
		return err
	})
	p.Model.SetHookPost(func(v prefs.Value) error {
		m, _ := chipmodel.FromString(v.(string))
		p.model.Store(m)
		return nil
	})

	p.Clock.SetHookPre(func(v prefs.Value) error {
		_, err := clocks.FromString(v.(string))
		return err
	})
	p.Clock.SetHookPost(func(v prefs.Value) error {
		s, _ := clocks.FromString(v.(string))
		p.standard.Store(s)
		return nil
	})

	p.FilterBias.SetHookPre(func(v prefs.Value) error {
		if f := v.(float64); f < -MaxFilterBias || f > MaxFilterBias {
			return fmt.Errorf("filter bias out of range (%.3f)", f)
		}
		return nil
	})

	p.VoiceMask.SetHookPre(func(v prefs.Value) error {
		if m := v.(int); m < 0 || m > 0x0f {
			return fmt.Errorf("voice mask out of range (%#x)", m)
		}
		return nil
	})

	p.SampleRate.SetHookPre(func(v prefs.Value) error {
		if r := v.(int); r < MinSampleRate || r > MaxSampleRate {
			return fmt.Errorf("sample rate out of range (%d)", r)
		}
		return nil
	})
}

func (p *SIDPreferences) add(dsk *prefs.Disk) error {
	entries := []struct {
		key string
		p   interface {
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
			String() string
		}
	}{
		{"sid.model", &p.Model},
		{"sid.filter", &p.Filter},
		{"sid.extfilter", &p.ExtFilter},
		{"sid.filterbias", &p.FilterBias},
		{"sid.voicemask", &p.VoiceMask},
		{"sid.digiboost", &p.DigiBoost},
		{"sid.samplerate", &p.SampleRate},
		{"sid.clock", &p.Clock},
	}

	for _, e := range entries {
		if err := dsk.Add(e.key, e.p); err != nil {
			return err
		}
	}

	return nil
}

// SetDefaults reverts all SID settings to default values.
func (p *SIDPreferences) SetDefaults() {
	p.Model.Set(chipmodel.MOS6581.String())
	p.Filter.Set(true)
	p.ExtFilter.Set(true)
	p.FilterBias.Set(0.0)
	p.VoiceMask.Set(0x0f)
	p.DigiBoost.Set(false)
	p.SampleRate.Set(44100)
	p.Clock.Set(clocks.PAL.String())
}

// ChipModel returns the Model preference as a chipmodel.Model.
func (p *SIDPreferences) ChipModel() chipmodel.Model {
	if m, ok := p.model.Load().(chipmodel.Model); ok {
		return m
	}
	return chipmodel.MOS6581
}

// Standard returns the Clock preference as a clocks.Standard.
func (p *SIDPreferences) Standard() clocks.Standard {
	if s, ok := p.standard.Load().(clocks.Standard); ok {
		return s
	}
	return clocks.PAL
}
