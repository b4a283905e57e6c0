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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function. Errorf() takes a formatting pattern and placeholder
// values in the same way as fmt.Errorf() but the pattern is kept and used to
// identify the error later.
//
// Patterns are normally exported from the package that creates the error.
// For example, the filter package exports:
//
//	const TableConstruction = "filter: table construction: %v"
//
// and a caller can check for the error with Is():
//
//	if curated.Is(err, filter.TableConstruction) {
//		...
//	}
//
// Has() is similar to Is() but checks the entire chain of wrapped curated
// errors. This is useful because curated errors are often placed inside
// other curated errors:
//
//	err := curated.Errorf(sid.UnknownChipModel, chipmodel.Errorf(...))
//
// IsAny() answers whether the error was created by Errorf() at all. In
// practice, a curated error is an expected error and anything else is
// unexpected.
//
// The Error() implementation normalises the message so that adjacent
// duplicate parts are removed. For example, "sid: sid: unknown model" is
// reported as "sid: unknown model". This means that a function can wrap an
// error with its package prefix without checking whether the error already
// carries that prefix.
//
// Curated errors also implement Unwrap() so that the errors package in the
// standard library can see the first wrapped error value.
package curated
