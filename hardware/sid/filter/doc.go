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

// Package filter implements the SID multi-mode filter and the audio output
// stage.
//
// The filter is a two integrator loop state variable filter. The high-pass
// output is the sum of the routed voice inputs, the low-pass output and the
// band-pass output scaled by the resonance. The band-pass and low-pass
// outputs are the integrals of the high-pass and band-pass outputs
// respectively. The mixer then sums the unfiltered voices with the selected
// filter outputs and the master volume is applied.
//
// None of the analog components are linear. The op-amps are modelled by a
// transfer curve measured on real chips, and the summer, mixer and gain
// stages are solved for every possible input voltage when the tables for a
// chip model are built. The tables are large and slow to build so there is
// one shared copy for each chip model (see Tables()).
//
// The integrators are solved on every cycle. On the 6581 the integrator
// resistance is a voltage controlled resistor (VCR) in parallel with a long
// "snake" transistor. The VCR gate voltage depends on the cutoff frequency
// DAC output. On the 8580 the resistance is an array of transistors switched
// by the cutoff register, with the gates held at a fixed reference voltage.
//
// All voltages are translated and scaled to fit in 16 bits. The scale of a
// value is noted in the comments as m*2^N, where m is the normalisation factor
// of the chip model's voltage range.
package filter
