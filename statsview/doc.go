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

// Package statsview serves runtime statistics of the simulator process over
// HTTP. It is built only when the statsview build tag is present, otherwise
// Available() returns false and Launch() does nothing.
//
//	go build -tags statsview
//
// After launch, the statistics can be viewed at:
//
//	localhost:12600/debug/statsview
//
// The standard Go pprof pages are at:
//
//	localhost:12600/debug/pprof/
package statsview
