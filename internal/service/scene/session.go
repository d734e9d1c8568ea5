package scene

import (
	"fmt"
	"sync"
	"time"

	"github.com/elizabethszent/MASIVinternTest/internal/model"

	"github.com/dhconnelly/rtreego"
)

// Session holds the scene state for one viewer: the projected boxes, the
// current highlight set and the selected box. Boxes are written exactly once
// at creation and read-only thereafter; the highlight set is replaced
// wholesale after each successful query. Overlapping queries are not
// sequenced: the later-resolving response wins (last-write-wins), which
// matches the interactive behavior this state models.
type Session struct {
	ID        string
	CreatedAt time.Time

	boxes []model.BuildingBox
	index *rtreego.Rtree

	mu         sync.RWMutex
	highlights []int
	selectedID int
}

func newSession(id string, boxes []model.BuildingBox) *Session {
	index := rtreego.NewTree(2, 25, 50)
	for i := range boxes {
		index.Insert(&model.BoxSpatial{Box: &boxes[i]})
	}

	return &Session{
		ID:         id,
		CreatedAt:  time.Now(),
		boxes:      boxes,
		index:      index,
		highlights: []int{},
		selectedID: -1,
	}
}

// Boxes returns the projected boxes. The slice is owned by the session and
// must not be mutated.
func (s *Session) Boxes() []model.BuildingBox {
	return s.boxes
}

// Highlights returns the current highlight set
func (s *Session) Highlights() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highlights
}

// SetHighlights replaces the highlight set wholesale
func (s *Session) SetHighlights(ids []int) {
	if ids == nil {
		ids = []int{}
	}

	s.mu.Lock()
	s.highlights = ids
	s.mu.Unlock()
}

// SelectedID returns the currently selected box id, -1 when none
func (s *Session) SelectedID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedID
}

// Select marks a box as selected; -1 clears the selection
func (s *Session) Select(id int) error {
	if id != -1 && !s.hasBox(id) {
		return fmt.Errorf("no box with id %d", id)
	}

	s.mu.Lock()
	s.selectedID = id
	s.mu.Unlock()
	return nil
}

func (s *Session) hasBox(id int) bool {
	for i := range s.boxes {
		if s.boxes[i].ID == id {
			return true
		}
	}
	return false
}

// Nearest returns the box closest to a point on the scene ground plane,
// nil when the scene is empty
func (s *Session) Nearest(x, z float64) *model.BuildingBox {
	hit := s.index.NearestNeighbor(rtreego.Point{x, z})
	if hit == nil {
		return nil
	}
	return hit.(*model.BoxSpatial).Box
}
