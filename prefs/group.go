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

package prefs

import (
	"fmt"
	"io"
	"sort"

	"github.com/beamrace/beamrace/curated"
)

// Sentinel error returned by Group.Add() for a key that is already in use.
const DuplicateKey = "prefs: duplicate key (%s)"

// Group is a named collection of preferences. Values in the group can be
// changed with the command line stack.
type Group struct {
	entries map[string]Pref
}

// NewGroup is the preferred method of initialisation for the Group type.
func NewGroup() *Group {
	return &Group{
		entries: make(map[string]Pref),
	}
}

// Add a preference to the group under the key.
func (g *Group) Add(key string, p Pref) error {
	if _, ok := g.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	g.entries[key] = p
	return nil
}

// Get the preference for the key. Returns nil if there is no such key.
func (g *Group) Get(key string) Pref {
	return g.entries[key]
}

// ApplyCommandLine sets every preference in the group that has an entry on
// the top of the command line stack.
func (g *Group) ApplyCommandLine() error {
	for k, p := range g.entries {
		if ok, v := GetCommandLinePref(k); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}
	return nil
}

// Write every key and value in the group to io.Writer, sorted by key.
func (g *Group) Write(w io.Writer) {
	keys := make([]string, 0, len(g.entries))
	for k := range g.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s :: %s\n", k, g.entries[k])
	}
}
