// This file is part of Beamrace.
//
// Beamrace is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Beamrace is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Beamrace.  If not, see <https://www.gnu.org/licenses/>.

package gui

// FeatureReq is used to request a change to a display.
type FeatureReq string

// FeatureReqData is the argument of a FeatureReq. The required type is given
// with each FeatureReq.
type FeatureReqData interface{}

// List of valid feature requests. Not every display supports every request.
const (
	// the size of each frame buffer pixel on the display
	ReqSetScale FeatureReq = "ReqSetScale" // float32

	// the title of the window
	ReqSetTitle FeatureReq = "ReqSetTitle" // string

	// a single line shown with the frame. in a window this is the title
	ReqSetStatus FeatureReq = "ReqSetStatus" // string
)
