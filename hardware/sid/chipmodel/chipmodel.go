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

// Package chipmodel identifies the two revisions of the SID chip. All other
// SID packages key their lookup tables and model specific constants on the
// Model type.
package chipmodel

import (
	"strings"

	"github.com/jetsetilly/gophersid/curated"
)

// Model is the revision of the SID chip being emulated.
type Model int

// List of valid Model values.
const (
	MOS6581 Model = iota
	MOS8580
)

// NumModels is the number of valid Model values. Useful for sizing arrays of
// per-model tables.
const NumModels = 2

// Sentinal error returned by FromString().
const (
	UnknownModel = "chipmodel: unknown model (%s)"
)

func (m Model) String() string {
	switch m {
	case MOS6581:
		return "6581"
	case MOS8580:
		return "8580"
	}
	return "unknown"
}

// Valid returns false if the Model value is not one of the listed values.
func (m Model) Valid() bool {
	return m == MOS6581 || m == MOS8580
}

// FromString converts a string to a Model. The "MOS" prefix is optional and
// the comparison is not case sensitive.
func FromString(s string) (Model, error) {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "MOS")
	switch s {
	case "6581":
		return MOS6581, nil
	case "8580":
		return MOS8580, nil
	}
	return MOS6581, curated.Errorf(UnknownModel, s)
}
