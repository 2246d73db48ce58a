// Package store holds the shared projects/messages collections that every page and admin
// section reads from. One Store is built in main and passed to consumers; there is no global.
//
// Mutators never change a collection speculatively: the in-memory state is touched only
// after the content API confirms, and then only by replacing, prepending, patching or
// splicing the single record the response describes. Failures leave collections alone,
// set a fixed human-readable Error, and are logged with their cause.
package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/amirhosseinghanipour/folio/internal/application/ports"
	"github.com/amirhosseinghanipour/folio/internal/domain"
)

// User-facing error strings recorded on State.Error.
const (
	ErrFetchProjects = "Failed to fetch projects"
	ErrAddProject    = "Failed to add project"
	ErrDeleteProject = "Failed to delete project"
	ErrRateProject   = "Failed to rate project"
	ErrFetchMessages = "Failed to fetch messages"
	ErrDeleteMessage = "Failed to delete message"
)

// State is a point-in-time copy of the store. Mutating it does not affect the store.
type State struct {
	Projects []domain.Project `json:"projects"`
	Messages []domain.Message `json:"messages"`
	Loading  bool             `json:"loading"`
	Error    string           `json:"error,omitempty"`
}

// ProjectsError is Error unless it came from a messages operation. Visitors have no use for
// those; messages need an admin token.
func (st State) ProjectsError() string {
	switch st.Error {
	case ErrFetchMessages, ErrDeleteMessage:
		return ""
	}
	return st.Error
}

// Result reports the outcome of a store operation. Error is one of the Err* strings.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ok() Result { return Result{Success: true} }

func failed(msg string) Result { return Result{Error: msg} }

// Store is the Collection Store.
type Store struct {
	projects ports.ProjectGateway
	messages ports.MessageGateway
	log      zerolog.Logger

	mu      sync.RWMutex
	state   State
	subs    map[int]func(State)
	nextSub int

	initOnce  sync.Once
	rateLocks *keyedMutex
}

// New returns an empty store. Call Init once the consumers are wired to load both collections.
func New(projects ports.ProjectGateway, messages ports.MessageGateway, log zerolog.Logger) *Store {
	return &Store{
		projects:  projects,
		messages:  messages,
		log:       log.With().Str("component", "store").Logger(),
		state:     State{Projects: []domain.Project{}, Messages: []domain.Message{}},
		subs:      make(map[int]func(State)),
		rateLocks: newKeyedMutex(),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn to be called with a snapshot after every state change. fn runs on the
// goroutine that completed the change, outside the store lock. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Init loads projects and messages the first time it is called. Later calls do nothing; the
// collections are only refreshed by mutators or explicit Fetch calls after that.
func (s *Store) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		// Failures land in State.Error; the group never cancels a sibling fetch.
		var g errgroup.Group
		g.Go(func() error {
			s.FetchProjects(ctx)
			return nil
		})
		g.Go(func() error {
			s.FetchMessages(ctx)
			return nil
		})
		_ = g.Wait()
	})
}

// FetchProjects replaces the projects collection with the server's list, in server order.
// It is the only operation that drives Loading.
func (s *Store) FetchProjects(ctx context.Context) Result {
	s.update(func(st *State) {
		st.Loading = true
		st.Error = ""
	})
	list, err := s.projects.ListProjects(ctx)
	s.update(func(st *State) {
		if err == nil {
			st.Projects = list
		} else {
			st.Error = ErrFetchProjects
		}
		st.Loading = false
	})
	if err != nil {
		s.log.Error().Err(err).Msg("fetch projects failed")
		return failed(ErrFetchProjects)
	}
	return ok()
}

// AddProject submits the form and prepends the created project. No duplicate check is made;
// ids come from the server.
func (s *Store) AddProject(ctx context.Context, input domain.NewProject) Result {
	created, err := s.projects.CreateProject(ctx, input)
	if err != nil {
		return s.fail(err, ErrAddProject, "add project failed")
	}
	s.update(func(st *State) {
		st.Projects = append([]domain.Project{*created}, st.Projects...)
	})
	return ok()
}

// DeleteProject removes the project with id once the server confirms the delete.
func (s *Store) DeleteProject(ctx context.Context, id string) Result {
	if err := s.projects.DeleteProject(ctx, id); err != nil {
		return s.fail(err, ErrDeleteProject, "delete project failed", "project_id", id)
	}
	s.update(func(st *State) {
		for i := range st.Projects {
			if st.Projects[i].ID == id {
				st.Projects = append(st.Projects[:i:i], st.Projects[i+1:]...)
				return
			}
		}
	})
	return ok()
}

// RateProject forwards rating as one vote and swaps in the server-recomputed project at the
// same position. rating is not range-checked here; callers validate it.
//
// Ratings for the same id are serialized, so their responses apply in the order the calls
// were made. Ratings for different ids run concurrently.
func (s *Store) RateProject(ctx context.Context, id string, rating float64) Result {
	if err := s.rateLocks.Lock(ctx, id); err != nil {
		return s.fail(err, ErrRateProject, "rate project abandoned while waiting", "project_id", id)
	}
	defer s.rateLocks.Unlock(id)

	updated, err := s.projects.RateProject(ctx, id, rating)
	if err != nil {
		return s.fail(err, ErrRateProject, "rate project failed", "project_id", id)
	}
	s.update(func(st *State) {
		for i := range st.Projects {
			if st.Projects[i].ID == id {
				st.Projects[i] = *updated
			}
		}
	})
	return ok()
}

// FetchMessages replaces the messages collection. Requires a stored token.
func (s *Store) FetchMessages(ctx context.Context) Result {
	list, err := s.messages.ListMessages(ctx)
	if err != nil {
		return s.fail(err, ErrFetchMessages, "fetch messages failed")
	}
	s.update(func(st *State) {
		st.Messages = list
	})
	return ok()
}

// DeleteMessage removes the message with id once the server confirms the delete.
func (s *Store) DeleteMessage(ctx context.Context, id string) Result {
	if err := s.messages.DeleteMessage(ctx, id); err != nil {
		return s.fail(err, ErrDeleteMessage, "delete message failed", "message_id", id)
	}
	s.update(func(st *State) {
		for i := range st.Messages {
			if st.Messages[i].ID == id {
				st.Messages = append(st.Messages[:i:i], st.Messages[i+1:]...)
				return
			}
		}
	})
	return ok()
}

// ClearError dismisses the current error.
func (s *Store) ClearError() {
	s.update(func(st *State) {
		st.Error = ""
	})
}

// fail logs the cause, records msg on the state and returns a failed Result. fields are
// key/value pairs added to the log entry.
func (s *Store) fail(err error, msg, logMsg string, fields ...string) Result {
	ev := s.log.Error().Err(err)
	for i := 0; i+1 < len(fields); i += 2 {
		ev = ev.Str(fields[i], fields[i+1])
	}
	ev.Msg(logMsg)
	s.update(func(st *State) {
		st.Error = msg
	})
	return failed(msg)
}

// update applies fn under the lock, then notifies subscribers with the new snapshot.
func (s *Store) update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.clone()
	subs := make([]func(State), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()
	for _, sub := range subs {
		sub(snap)
	}
}

func (st State) clone() State {
	out := st
	out.Projects = make([]domain.Project, len(st.Projects))
	for i, p := range st.Projects {
		if p.Technologies != nil {
			p.Technologies = append(make([]string, 0, len(p.Technologies)), p.Technologies...)
		}
		out.Projects[i] = p
	}
	out.Messages = make([]domain.Message, len(st.Messages))
	copy(out.Messages, st.Messages)
	return out
}
