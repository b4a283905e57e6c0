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

// Package test contains helper functions that remove common boilerplate from
// the tests in this module. The functions are intended to be used with the
// standard go test harness.
//
// The Expect functions report a test error and return false if the
// expectation is not met. The Demand functions are similar but stop the test
// immediately. Demand functions are useful when later parts of a test depend
// on the value being correct, for example checking the length of two slices
// before iterating over them in unison.
//
// Success and failure values depend on the type of the value being tested:
//
//	bool -> true is success
//	error -> nil is success
//	nil -> success
//
// The nil case is not obvious but it follows from how errors are normally
// returned in Go.
//
// The CompareWriter, RingWriter and CappedWriter types implement io.Writer and
// are used to capture output. For example, the output of the logger or the
// SID state dump.
package test
