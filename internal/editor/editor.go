// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package editor implements the canvas editor's layer state: an ordered
// layer sequence, the current selection, and a linear undo/redo history
// of layer-sequence snapshots.
//
// A Store belongs to exactly one editing session and is never shared
// across goroutines or requests, so its commands are plain synchronous
// state transitions with no locking.
package editor

import (
	"crypto/rand"
	"encoding/hex"

	"pixyo/internal/models"
)

const (
	// maxHistory bounds the undo stack. When exceeded the oldest
	// snapshot is dropped.
	maxHistory = 50

	// duplicateOffset nudges a duplicated layer so it doesn't sit
	// exactly on top of its source.
	duplicateOffset = 16
)

// Store holds one editing session's layer state.
type Store struct {
	layers   []models.Layer
	selected string // layer id, "" = nothing selected

	// history is an append-only sequence of snapshots; cursor indexes
	// the snapshot matching the current layers. Undo moves the cursor
	// back, redo forward; a new mutation truncates everything after
	// the cursor.
	history [][]models.Layer
	cursor  int
}

// New creates a Store seeded with the given layers. The initial state is
// recorded as the first history snapshot.
func New(layers []models.Layer) *Store {
	s := &Store{
		layers:  CloneLayers(layers),
		history: [][]models.Layer{CloneLayers(layers)},
		cursor:  0,
	}
	return s
}

// Layers returns a copy of the current layer sequence, bottom first.
func (s *Store) Layers() []models.Layer {
	return CloneLayers(s.layers)
}

// Selected returns the selected layer id, or "" when nothing is selected.
func (s *Store) Selected() string {
	return s.selected
}

// AddLayer appends a layer to the top of the paint order and selects it.
// If the layer has no id one is generated.
func (s *Store) AddLayer(l models.Layer) {
	if l.ID == "" {
		l.ID = NewLayerID()
	}
	s.layers = append(s.layers, l)
	s.selected = l.ID
	s.commit()
}

// UpdateLayer merges the non-nil fields of patch into the layer with the
// given id. A missing id is a silent no-op: the UI can race an update
// against a deletion and the late update must not blow up the session.
func (s *Store) UpdateLayer(id string, patch LayerPatch) {
	i := s.index(id)
	if i < 0 {
		return
	}
	patch.apply(&s.layers[i])
	s.commit()
}

// RemoveLayer deletes the layer with the given id. The background layer
// is protected here, at the command layer, not just hidden in the UI:
// no command sequence may leave a design without its background. Clears
// the selection if the removed layer was selected.
func (s *Store) RemoveLayer(id string) {
	i := s.index(id)
	if i < 0 || s.layers[i].IsBackground() {
		return
	}
	if s.selected == id {
		s.selected = ""
	}
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	s.commit()
}

// DuplicateLayer clones a non-background layer with a fresh id, inserts
// the clone immediately after the source, offsets it slightly, and
// selects it.
func (s *Store) DuplicateLayer(id string) {
	i := s.index(id)
	if i < 0 || s.layers[i].IsBackground() {
		return
	}
	clone := s.layers[i]
	clone.ID = NewLayerID()
	clone.X += duplicateOffset
	clone.Y += duplicateOffset

	s.layers = append(s.layers, models.Layer{})
	copy(s.layers[i+2:], s.layers[i+1:])
	s.layers[i+1] = clone
	s.selected = clone.ID
	s.commit()
}

// ReorderLayer moves a layer to newIndex, clamped to the valid range.
// The background layer cannot be moved, and no other layer may take
// index 0: the background is always the logical bottom of the stack.
func (s *Store) ReorderLayer(id string, newIndex int) {
	i := s.index(id)
	if i < 0 || s.layers[i].IsBackground() {
		return
	}

	lo, hi := 0, len(s.layers)-1
	if len(s.layers) > 0 && s.layers[0].IsBackground() {
		lo = 1
	}
	if newIndex < lo {
		newIndex = lo
	}
	if newIndex > hi {
		newIndex = hi
	}
	if newIndex == i {
		return
	}

	l := s.layers[i]
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	s.layers = append(s.layers[:newIndex], append([]models.Layer{l}, s.layers[newIndex:]...)...)
	s.commit()
}

// SelectLayer marks the layer with the given id as selected; pass "" to
// clear the selection. Selection changes are not recorded in history.
func (s *Store) SelectLayer(id string) {
	if id != "" && s.index(id) < 0 {
		return
	}
	s.selected = id
}

// Undo steps the layer sequence back to the previous snapshot. Selection
// is untouched. No-op at the start of history.
func (s *Store) Undo() {
	if s.cursor == 0 {
		return
	}
	s.cursor--
	s.layers = CloneLayers(s.history[s.cursor])
}

// Redo steps forward to the next snapshot if an undo has been performed.
// No-op at the end of history.
func (s *Store) Redo() {
	if s.cursor >= len(s.history)-1 {
		return
	}
	s.cursor++
	s.layers = CloneLayers(s.history[s.cursor])
}

// CanUndo reports whether an undo step is available.
func (s *Store) CanUndo() bool { return s.cursor > 0 }

// CanRedo reports whether a redo step is available.
func (s *Store) CanRedo() bool { return s.cursor < len(s.history)-1 }

// commit records the current layers as a new snapshot, discarding any
// redo tail (linear history, no branching) and dropping the oldest
// snapshot once the bound is hit.
func (s *Store) commit() {
	s.history = s.history[:s.cursor+1]
	s.history = append(s.history, CloneLayers(s.layers))
	if len(s.history) > maxHistory {
		s.history = s.history[1:]
	}
	s.cursor = len(s.history) - 1
}

// index returns the position of the layer with the given id, or -1.
func (s *Store) index(id string) int {
	for i := range s.layers {
		if s.layers[i].ID == id {
			return i
		}
	}
	return -1
}

// NewLayerID generates a short random layer identifier, unique within an
// editing session.
func NewLayerID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// CloneLayers deep-copies a layer slice, including the pointer-valued
// payload fields, so snapshots never alias live state.
func CloneLayers(in []models.Layer) []models.Layer {
	out := make([]models.Layer, len(in))
	copy(out, in)
	for i := range out {
		if out[i].MaxWidth != nil {
			v := *out[i].MaxWidth
			out[i].MaxWidth = &v
		}
		if out[i].Tint != nil {
			v := *out[i].Tint
			out[i].Tint = &v
		}
		if out[i].Background != nil {
			v := *out[i].Background
			out[i].Background = &v
		}
	}
	return out
}
