package liveservice

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	livedomain "github.com/snake-playground/backend/app/modules/live/domain"
	sharedtypes "github.com/snake-playground/backend/app/shared"
	"github.com/snake-playground/backend/internal/metrics"
)

// ErrSessionNotFound is returned when a user has no live session.
var ErrSessionNotFound = errors.New("no live session for user")

type liveSession struct {
	gen      uint64
	info     livedomain.SessionInfo
	snapshot livedomain.Snapshot
	ending   bool
	ended    bool
}

// Registry tracks live game sessions in memory, keyed by the playing user.
// A session that has ended stays registered until its last watcher leaves,
// so every open stream can deliver the terminal frame. Each Start stamps the
// session with a fresh generation; stream watchers bind to the generation
// they joined so a replaced game never inherits their joins or leaves.
type Registry struct {
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu       sync.Mutex
	gens     uint64
	sessions map[sharedtypes.UserID]*liveSession
}

// NewRegistry creates an empty session registry.
func NewRegistry(logger *slog.Logger, m *metrics.Metrics) *Registry {
	return &Registry{
		logger:   logger,
		metrics:  m,
		sessions: make(map[sharedtypes.UserID]*liveSession),
	}
}

// Start registers a fresh session for the user. An existing session for the
// same user is replaced; its watchers are detached.
func (r *Registry) Start(userID sharedtypes.UserID, username string, mode sharedtypes.GameMode) (livedomain.SessionInfo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stale, replaced := r.sessions[userID]
	if replaced {
		r.metrics.LiveWatchers.Sub(float64(stale.info.Watchers))
		r.logger.Warn("replacing stale live session",
			slog.String("user_id", string(userID)),
			slog.Int("orphaned_watchers", stale.info.Watchers))
	}

	now := time.Now().UTC()
	snapshot := livedomain.NewSnapshot()
	r.gens++
	sess := &liveSession{
		gen: r.gens,
		info: livedomain.SessionInfo{
			UserID:     userID,
			Username:   username,
			Mode:       mode,
			Score:      snapshot.Score,
			IsAlive:    true,
			StartedAt:  now,
			LastUpdate: now,
		},
		snapshot: snapshot,
	}
	r.sessions[userID] = sess
	r.metrics.LiveSessions.Set(float64(len(r.sessions)))

	return sess.info, replaced
}

// UpdateState replaces the session's snapshot.
func (r *Registry) UpdateState(userID sharedtypes.UserID, snap livedomain.Snapshot) (livedomain.SessionInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[userID]
	if !ok || sess.ended {
		return livedomain.SessionInfo{}, ErrSessionNotFound
	}

	sess.snapshot = snap.Clone()
	sess.info.Score = snap.Score
	sess.info.IsAlive = snap.IsAlive
	sess.info.LastUpdate = time.Now().UTC()

	return sess.info, nil
}

// BeginEnd claims the session for ending so exactly one caller settles the
// final score. A session already claimed or ended reads as not found. The
// claim is released by End or AbortEnd.
func (r *Registry) BeginEnd(userID sharedtypes.UserID) (livedomain.SessionInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[userID]
	if !ok || sess.ended || sess.ending {
		return livedomain.SessionInfo{}, ErrSessionNotFound
	}

	sess.ending = true
	return sess.info, nil
}

// AbortEnd releases an end claim so the session can be ended again later.
func (r *Registry) AbortEnd(userID sharedtypes.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[userID]; ok && !sess.ended {
		sess.ending = false
	}
}

// End marks the session over. When nobody is watching it is retired
// immediately; otherwise the last leaving watcher retires it.
func (r *Registry) End(userID sharedtypes.UserID) (livedomain.SessionInfo, livedomain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[userID]
	if !ok || sess.ended {
		return livedomain.SessionInfo{}, livedomain.Snapshot{}, ErrSessionNotFound
	}

	sess.ended = true
	sess.snapshot.IsAlive = false
	sess.info.IsAlive = false

	if sess.info.Watchers == 0 {
		delete(r.sessions, userID)
		r.metrics.LiveSessions.Set(float64(len(r.sessions)))
	}

	return sess.info, sess.snapshot.Clone(), nil
}

// JoinWatcher attaches a spectator, returning the current snapshot and the
// new watcher count.
func (r *Registry) JoinWatcher(userID sharedtypes.UserID) (livedomain.Snapshot, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[userID]
	if !ok {
		return livedomain.Snapshot{}, 0, ErrSessionNotFound
	}

	sess.info.Watchers++
	r.metrics.LiveWatchers.Inc()

	return sess.snapshot.Clone(), sess.info.Watchers, nil
}

// LeaveWatcher detaches a spectator and returns the remaining watcher count.
// The count floors at zero; the last watcher off an ended session retires it.
func (r *Registry) LeaveWatcher(userID sharedtypes.UserID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[userID]
	if !ok {
		return 0, ErrSessionNotFound
	}
	if sess.info.Watchers == 0 {
		return 0, nil
	}

	sess.info.Watchers--
	r.metrics.LiveWatchers.Dec()

	if sess.ended && sess.info.Watchers == 0 {
		delete(r.sessions, userID)
		r.metrics.LiveSessions.Set(float64(len(r.sessions)))
	}

	return sess.info.Watchers, nil
}

// Watcher is one attached stream spectator, bound to the session generation
// it joined. When the session is replaced by a later Start, the handle reads
// as not found and its leave never touches the replacement's count.
type Watcher struct {
	registry *Registry
	userID   sharedtypes.UserID
	gen      uint64
	left     bool
}

// Attach binds a stream spectator to the user's current session and returns
// the handle together with the joining snapshot.
func (r *Registry) Attach(userID sharedtypes.UserID) (*Watcher, livedomain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[userID]
	if !ok {
		return nil, livedomain.Snapshot{}, ErrSessionNotFound
	}

	sess.info.Watchers++
	r.metrics.LiveWatchers.Inc()

	return &Watcher{registry: r, userID: userID, gen: sess.gen}, sess.snapshot.Clone(), nil
}

// Snapshot returns the watched session's current snapshot, or not found once
// the session has been replaced or retired.
func (w *Watcher) Snapshot() (livedomain.Snapshot, error) {
	r := w.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[w.userID]
	if !ok || sess.gen != w.gen {
		return livedomain.Snapshot{}, ErrSessionNotFound
	}

	return sess.snapshot.Clone(), nil
}

// Leave detaches the spectator. Leaving twice, or leaving a session that was
// replaced or retired in the meantime, is a no-op. The last watcher off an
// ended session retires it.
func (w *Watcher) Leave() {
	r := w.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	if w.left {
		return
	}
	w.left = true

	sess, ok := r.sessions[w.userID]
	if !ok || sess.gen != w.gen || sess.info.Watchers == 0 {
		return
	}

	sess.info.Watchers--
	r.metrics.LiveWatchers.Dec()

	if sess.ended && sess.info.Watchers == 0 {
		delete(r.sessions, w.userID)
		r.metrics.LiveSessions.Set(float64(len(r.sessions)))
	}
}

// Snapshot returns the session's current snapshot.
func (r *Registry) Snapshot(userID sharedtypes.UserID) (livedomain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[userID]
	if !ok {
		return livedomain.Snapshot{}, ErrSessionNotFound
	}

	return sess.snapshot.Clone(), nil
}

// Get returns the session's public info.
func (r *Registry) Get(userID sharedtypes.UserID) (livedomain.SessionInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[userID]
	if !ok {
		return livedomain.SessionInfo{}, ErrSessionNotFound
	}

	return sess.info, nil
}

// List returns info for every session still playing, newest first. Ended
// sessions waiting on watcher drain are excluded.
func (r *Registry) List() []livedomain.SessionInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]livedomain.SessionInfo, 0, len(r.sessions))
	for _, sess := range r.sessions {
		if sess.ended {
			continue
		}
		out = append(out, sess.info)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].StartedAt.After(out[j].StartedAt)
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
