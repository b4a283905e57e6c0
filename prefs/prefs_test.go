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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophersid/curated"
	"github.com/jetsetilly/gophersid/prefs"
	"github.com/jetsetilly/gophersid/test"
)

func tmpPrefFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "gophersid_prefs_test")
}

func cmpTmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	if err != nil {
		t.Errorf("error reading tmp file: %v", err)
		return
	}

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))
	test.ExpectFailure(t, x.Set(10))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestString(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &v))
	test.ExpectSuccess(t, v.Set("bar"))

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "foo :: bar\n")
}

func TestMaxStringLength(t *testing.T) {
	var v prefs.String
	test.ExpectSuccess(t, v.Set("abcdefghij"))
	v.SetMaxLen(5)
	test.ExpectEquality(t, v.String(), "abcde")
	test.ExpectSuccess(t, v.Set("0123456789"))
	test.ExpectEquality(t, v.String(), "01234")
	v.SetMaxLen(0)
	test.ExpectSuccess(t, v.Set("0123456789"))
	test.ExpectEquality(t, v.String(), "0123456789")
}

func TestInt(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("mask", &w))

	test.ExpectSuccess(t, v.Set(44100))
	test.ExpectSuccess(t, w.Set("0x0f"))
	test.ExpectFailure(t, w.Set("foo"))
	test.ExpectEquality(t, w.Get().(int), 15)

	test.DemandSuccess(t, dsk.Save())
	cmpTmpFile(t, fn, "mask :: 15\nnumber :: 44100\n")
}

func TestFloat(t *testing.T) {
	var v prefs.Float
	test.ExpectSuccess(t, v.Set(-12.5))
	test.ExpectEquality(t, v.String(), "-12.500")
	test.ExpectSuccess(t, v.Set("100"))
	test.ExpectEquality(t, v.Get().(float64), 100.0)
	test.ExpectSuccess(t, v.Reset())
	test.ExpectEquality(t, v.Get().(float64), 0.0)
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var post int

	v.SetHookPre(func(nv prefs.Value) error {
		if nv.(int) < 0 {
			return fmt.Errorf("negative")
		}
		return nil
	})
	v.SetHookPost(func(nv prefs.Value) error {
		post = nv.(int)
		return nil
	})

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectEquality(t, post, 10)

	// the pre hook prevents the value from being stored
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.Get().(int), 10)
	test.ExpectEquality(t, post, 10)
}

func TestLoad(t *testing.T) {
	fn := tmpPrefFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("sid.filter", &v))
	test.ExpectSuccess(t, dsk.Add("sid.voicemask", &w))

	// no file and no save on fail
	err = dsk.Load(false)
	test.ExpectSuccess(t, curated.Is(err, prefs.NoPrefsFile))

	// create file on failure
	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set(7))
	test.ExpectSuccess(t, dsk.Load(true))
	cmpTmpFile(t, fn, "sid.filter :: true\nsid.voicemask :: 7\n")

	// values are restored from the file
	test.ExpectSuccess(t, dsk.Reset())
	test.ExpectEquality(t, v.Get().(bool), false)
	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, v.Get().(bool), true)
	test.ExpectEquality(t, w.Get().(int), 7)

	// the command line takes precedence over the file
	prefs.PushCommandLineStack("sid.voicemask::3; unused::1")
	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, w.Get().(int), 3)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "unused::1")
}

func TestPreserveUnknownKeys(t *testing.T) {
	fn := tmpPrefFile(t)

	a, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var v prefs.String
	test.ExpectSuccess(t, a.Add("a.value", &v))
	test.ExpectSuccess(t, v.Set("foo"))
	test.DemandSuccess(t, a.Save())

	b, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var w prefs.String
	test.ExpectSuccess(t, b.Add("b.value", &w))
	test.ExpectSuccess(t, w.Set("bar"))
	test.DemandSuccess(t, b.Save())

	cmpTmpFile(t, fn, "a.value :: foo\nb.value :: bar\n")
}

func TestBadKey(t *testing.T) {
	dsk, err := prefs.NewDisk(tmpPrefFile(t))
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, curated.Is(dsk.Add("", &v), prefs.BadKey))
	test.ExpectSuccess(t, curated.Is(dsk.Add("bad key", &v), prefs.BadKey))
	test.ExpectSuccess(t, dsk.Add("key", &v))
	test.ExpectSuccess(t, curated.Is(dsk.Add("key", &v), prefs.BadKey))
}
