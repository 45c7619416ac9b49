package session

import (
	"time"

	"go.uber.org/zap"

	"serviceorders/services"
)

// Autosaver writes a draft of every dirty session. It runs from the cron
// scheduler and only ever reads snapshots.
type Autosaver struct {
	registry *Registry
	drafts   DraftRepository
	log      *zap.Logger
	now      func() time.Time
}

func NewAutosaver(registry *Registry, drafts DraftRepository) *Autosaver {
	return &Autosaver{
		registry: registry,
		drafts:   drafts,
		log:      zap.L().Named("autosave"),
		now:      time.Now,
	}
}

// Run saves all dirty sessions and returns how many drafts were written.
// Failures are recorded on the session and logged; they never stop the
// run.
func (a *Autosaver) Run() int {
	written := 0
	for _, s := range a.registry.All() {
		ok, err := a.write(s)
		if err != nil {
			a.log.Warn("autosave: draft not written", zap.String("order", s.ID()), zap.Error(err))
			continue
		}
		if ok {
			written++
		}
	}

	if written > 0 {
		a.log.Debug("autosave: drafts written", zap.Int("count", written))
	}
	return written
}

// write saves a draft of s if it is dirty and still open. It holds the
// session's persist lock so an explicit save cannot interleave with it.
func (a *Autosaver) write(s *Session) (bool, error) {
	s.persist.Lock()
	defer s.persist.Unlock()

	if s.Closed() {
		return false, nil
	}
	snapshot, version, dirty := s.Snapshot()
	if !dirty {
		return false, nil
	}

	payload, err := services.EncodeDraft(snapshot)
	if err == nil {
		err = a.drafts.SaveDraft(snapshot.ID, payload)
	}
	s.markAutosaved(version, a.now(), err)
	return err == nil, err
}
