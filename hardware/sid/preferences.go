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

// ApplyPreferences configures the SID from the preferences in the environment.
// Does nothing if the SID has no environment.
func (sid *SID) ApplyPreferences() error {
	if sid.env == nil || sid.env.Prefs == nil {
		return nil
	}

	p := &sid.env.Prefs.SID

	if m := p.ChipModel(); m != sid.model {
		if err := sid.SetChipModel(m); err != nil {
			return err
		}
	}

	sid.EnableFilter(p.Filter.Get().(bool))
	sid.EnableExternalFilter(p.ExtFilter.Get().(bool))
	sid.AdjustFilterBias(p.FilterBias.Get().(float64))
	sid.SetVoiceMask(uint8(p.VoiceMask.Get().(int)))
	sid.SetDigiBoost(p.DigiBoost.Get().(bool))

	return nil
}
