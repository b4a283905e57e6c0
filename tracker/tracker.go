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

package tracker

import (
	"fmt"
	"io"
	"sync"

	"github.com/jetsetilly/gophersid/hardware/clocks"
	"github.com/jetsetilly/gophersid/hardware/sid"
)

// Entry is a single change of the registers of a voice.
type Entry struct {
	Frame     int
	Voice     int
	Registers sid.VoiceRegisters

	Waveform    string
	MusicalNote MusicalNote
}

func (e Entry) String() string {
	return fmt.Sprintf("%6d  %d  %-4s %-10s %s", e.Frame, e.Voice+1, e.MusicalNote, e.Waveform, e.Registers)
}

// Tracker implements the sid.Tracker interface and keeps a history of the
// voice registers over time.
type Tracker struct {
	standard clocks.Standard

	crit       sync.Mutex
	entries    []Entry
	maxEntries int

	// the frame number is advanced by the player
	frame int

	// previous register values so we can compare to see whether the registers
	// have changed and thus worth recording
	prev [3]sid.VoiceRegisters
}

// NewTracker is the preferred method of initialisation for the Tracker type.
// The clock standard is used to convert frequency register values to musical
// notes. The maxEntries argument is the size of the history.
func NewTracker(standard clocks.Standard, maxEntries int) *Tracker {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &Tracker{
		standard:   standard,
		entries:    make([]Entry, 0, maxEntries),
		maxEntries: maxEntries,
	}
}

// SIDTick implements the sid.Tracker interface.
func (tr *Tracker) SIDTick(voice int, reg sid.VoiceRegisters) {
	if voice < 0 || voice >= len(tr.prev) {
		return
	}

	tr.crit.Lock()
	defer tr.crit.Unlock()

	if reg == tr.prev[voice] {
		return
	}
	tr.prev[voice] = reg

	tr.entries = append(tr.entries, Entry{
		Frame:       tr.frame,
		Voice:       voice,
		Registers:   reg,
		Waveform:    LookupWaveform(reg),
		MusicalNote: LookupMusicalNote(tr.standard, reg),
	})
	if len(tr.entries) > tr.maxEntries {
		tr.entries = tr.entries[1:]
	}
}

// NewFrame advances the frame number of subsequent entries.
func (tr *Tracker) NewFrame() {
	tr.crit.Lock()
	defer tr.crit.Unlock()
	tr.frame++
}

// Copy makes a copy of the Tracker entries.
func (tr *Tracker) Copy() []Entry {
	tr.crit.Lock()
	defer tr.crit.Unlock()
	c := make([]Entry, len(tr.entries))
	copy(c, tr.entries)
	return c
}

// Write the history to the io.Writer, one entry per line.
func (tr *Tracker) Write(w io.Writer) error {
	for _, e := range tr.Copy() {
		if _, err := fmt.Fprintln(w, e.String()); err != nil {
			return err
		}
	}
	return nil
}
