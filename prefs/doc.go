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

// Package prefs facilitates the storage of preferential values in the
// Gophersid system. It is used by the hardware/preferences package to keep
// the SID settings on disk and by the command line to override them.
//
// The Bool, Int, Float and String types are safe to use from more than one
// goroutine. Each value can have a hook function that is called before and
// after a new value is stored. A pre hook that returns an error prevents the
// value from being stored:
//
//	var bias prefs.Float
//	bias.SetHookPre(func(v prefs.Value) error {
//		if v.(float64) < -500.0 || v.(float64) > 500.0 {
//			return fmt.Errorf("filter bias out of range")
//		}
//		return nil
//	})
//
// Values are saved to and loaded from disk with the Disk type. A Disk
// instance is created with NewDisk() and values are added to it with Add()
// and a key:
//
//	dsk, _ := prefs.NewDisk(path)
//	dsk.Add("sid.filterbias", &bias)
//	dsk.Load(true)
//
// The file format is a warning line followed by one "key :: value" line per
// entry, sorted by key. Entries in the file that have not been added to the
// Disk are preserved when the Disk is saved. This means that more than one
// Disk can share the same file.
//
// The command line stack allows values to be given on the command line. A
// group of values is pushed with PushCommandLineStack() and is consulted by
// Load() before the disk file is. Values taken from the command line group
// are removed from the group so that PopCommandLineStack() can report the
// values that were not used.
package prefs
