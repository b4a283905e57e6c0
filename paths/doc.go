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

// Package paths contains functions to prepare paths to gophersid resources.
//
// The ResourcePath() function returns the supplied resource path prepended
// with the appropriate config directory. For example, the following returns
// the path to the preferences file:
//
//	pth, err := paths.ResourcePath("", "preferences")
//
// For development builds the base directory is ".gophersid" in the current
// directory. Release builds (built with the "release" tag) use the
// "gophersid" directory in the user's config directory, as returned by
// os.UserConfigDir().
//
// The directory part of the resource is created if it does not exist.
package paths
