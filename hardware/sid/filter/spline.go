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

package filter

// point on a transfer curve
type point struct {
	x float64
	y float64
}

// cubic polynomial coefficients for the curve between (x1, y1) and (x2, y2)
// with slopes k1 and k2 at the end points
func cubicCoefficients(x1, y1, x2, y2, k1, k2 float64) (a, b, c, d float64) {
	dx := x2 - x1
	dy := y2 - y1

	a = ((k1 + k2) - 2*dy/dx) / (dx * dx)
	b = ((k2-k1)/dx - 3*(x1+x2)*a) / 2
	c = k1 - (3*x1*a+2*b)*x1
	d = y1 - ((x1*a+b)*x1+c)*x1

	return a, b, c, d
}

func interpolateSegment(x1, y1, x2, y2, k1, k2 float64, plot func(x, y float64), res float64) {
	a, b, c, d := cubicCoefficients(x1, y1, x2, y2, k1, k2)
	for x := x1; x <= x2; x += res {
		plot(x, ((a*x+b)*x+c)*x+d)
	}
}

// interpolate plots a smooth curve through the points. The x values of the
// points must be ascending. The first and last points are control points and
// are not plotted; repeating an end point makes the curve a straight line at
// that end.
func interpolate(p []point, plot func(x, y float64), res float64) {
	for i := 0; i+3 < len(p); i++ {
		p0, p1, p2, p3 := p[i], p[i+1], p[i+2], p[i+3]

		// single point
		if p1.x == p2.x {
			continue
		}

		var k1, k2 float64

		switch {
		case p0.x == p1.x && p2.x == p3.x:
			// both end points repeated. straight line
			k1 = (p2.y - p1.y) / (p2.x - p1.x)
			k2 = k1
		case p0.x == p1.x:
			// f''(x1) = 0
			k2 = (p3.y - p1.y) / (p3.x - p1.x)
			k1 = (3*(p2.y-p1.y)/(p2.x-p1.x) - k2) / 2
		case p2.x == p3.x:
			// f''(x2) = 0
			k1 = (p2.y - p0.y) / (p2.x - p0.x)
			k2 = (3*(p2.y-p1.y)/(p2.x-p1.x) - k1) / 2
		default:
			k1 = (p2.y - p0.y) / (p2.x - p0.x)
			k2 = (p3.y - p1.y) / (p3.x - p1.x)
		}

		interpolateSegment(p1.x, p1.y, p2.x, p2.y, k1, k2, plot, res)
	}
}

// plotter returns a plot function for interpolate() that writes rounded
// values into the table. Negative values are clamped to zero and points
// outside the table are ignored.
func plotter(tbl []int) func(x, y float64) {
	return func(x, y float64) {
		i := int(x)
		if i < 0 || i >= len(tbl) {
			return
		}
		if y < 0 {
			y = 0
		}
		tbl[i] = int(y + 0.5)
	}
}
