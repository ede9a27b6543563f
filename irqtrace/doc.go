// This file is part of Tivasim.
//
// Tivasim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tivasim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tivasim.  If not, see <https://www.gnu.org/licenses/>.

// Package irqtrace records interrupt lines as the channels of a WAV file. A
// line that is high is a high sample and a pulse is at least one sample wide.
// The result can be inspected with any audio editor or logic analyser
// software that reads WAV files.
//
// The sample rate sets the time resolution of the recording. At the default
// rate one sample is one microsecond of simulated time.
//
// Signals are held in memory and the file is written when Save() or Write()
// is called.
package irqtrace
