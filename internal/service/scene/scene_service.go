package scene

import (
	"log"
	"sync"
	"time"

	"github.com/elizabethszent/MASIVinternTest/internal/model"
	"github.com/elizabethszent/MASIVinternTest/internal/service/projector"
	"github.com/elizabethszent/MASIVinternTest/internal/service/storage"
	"github.com/elizabethszent/MASIVinternTest/internal/util"
)

// SceneService manages per-viewer scene sessions
type SceneService struct {
	sessions storage.Storage[string, *Session]
}

var (
	sceneServiceInstance *SceneService
	sceneServiceOnce     sync.Once
)

// GetSceneService returns the singleton instance of the SceneService
func GetSceneService() *SceneService {
	sceneServiceOnce.Do(func() {
		sceneServiceInstance = NewSceneService()
	})
	return sceneServiceInstance
}

// NewSceneService creates an independent service instance
func NewSceneService() *SceneService {
	return &SceneService{
		sessions: storage.NewMemoryStorage[string, *Session](),
	}
}

// CreateSession projects the given records once and stores the resulting
// scene under a fresh session id. The records are never re-fetched or
// re-projected for the lifetime of the session.
func (s *SceneService) CreateSession(records []model.RawRecord) *Session {
	session := newSession(util.ShortUUID(), projector.Project(records))
	s.sessions.Set(session.ID, session)

	log.Printf("Created scene session %s with %d boxes", session.ID, len(session.Boxes()))
	return session
}

// GetSession returns a session by id and marks it as recently used
func (s *SceneService) GetSession(id string) (*Session, bool) {
	session, ok := s.sessions.Get(id)
	if ok {
		s.sessions.Touch(id)
	}
	return session, ok
}

// SweepExpired removes sessions idle for longer than ttl and returns how
// many were removed
func (s *SceneService) SweepExpired(ttl time.Duration) int {
	removed := s.sessions.SweepOlderThan(ttl)
	if len(removed) > 0 {
		log.Printf("Swept %d expired scene sessions", len(removed))
	}
	return len(removed)
}

// Count returns the number of live sessions
func (s *SceneService) Count() int {
	return s.sessions.Count()
}
