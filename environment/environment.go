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

package environment

import (
	"github.com/beamrace/beamrace/hardware/preferences"
)

// Label is used to name the environment.
type Label string

// MainSimulation is the label of the environment driving the harness. Other
// environments, for example the second board of a comparison, should use a
// different label.
const MainSimulation = Label("")

// Environment is used to provide context for a simulation. Particularly useful
// when more than one board is running at the same time.
type Environment struct {
	Label Label

	// the simulation preferences
	Prefs *preferences.Preferences
}

// NewEnvironment is the preferred method of initialisation for the Environment
// type.
//
// The prefs argument can be nil in which case a new Preferences instance will
// be created. Providing a non-nil value allows the preferences of more than one
// board to be synchronised.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label: label,
	}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in a known default state. Tests and
// digest comparisons rely on every run starting from the same state.
func (env *Environment) Normalise() {
	env.Prefs.SetDefaults()
}

// IsMainSimulation returns true if the environment is the one driving the
// harness.
func (env *Environment) IsMainSimulation() bool {
	return env.Label == MainSimulation
}

// AllowLogging implements the logger.Permission interface. Only the main
// simulation is allowed to log.
func (env *Environment) AllowLogging() bool {
	return env.IsMainSimulation()
}
