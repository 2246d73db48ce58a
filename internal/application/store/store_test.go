package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/amirhosseinghanipour/folio/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errDown = errors.New("connection refused")

// fakeAPI plays the content API: it owns the authoritative lists and assigns ids.
type fakeAPI struct {
	mu       sync.Mutex
	projects []domain.Project
	messages []domain.Message
	nextID   int
	fail     map[string]error
	calls    map[string]int
	// rateHook runs inside RateProject before the response is computed.
	rateHook func(id string, rating float64)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{fail: map[string]error{}, calls: map[string]int{}}
}

func (f *fakeAPI) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.fail[op]
}

func (f *fakeAPI) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if err := f.record("list_projects"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Project{}, f.projects...), nil
}

func (f *fakeAPI) CreateProject(ctx context.Context, in domain.NewProject) (*domain.Project, error) {
	if err := f.record("create_project"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p := domain.Project{ID: fmt.Sprint(f.nextID), Title: in.Title, Description: in.Description}
	f.projects = append([]domain.Project{p}, f.projects...)
	return &p, nil
}

func (f *fakeAPI) DeleteProject(ctx context.Context, id string) error {
	if err := f.record("delete_project"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return errors.New("404")
}

func (f *fakeAPI) RateProject(ctx context.Context, id string, rating float64) (*domain.Project, error) {
	if err := f.record("rate_project"); err != nil {
		return nil, err
	}
	if f.rateHook != nil {
		f.rateHook(id, rating)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.projects {
		if p.ID == id {
			total := p.Rating*float64(p.Votes) + rating
			p.Votes++
			p.Rating = total / float64(p.Votes)
			f.projects[i] = p
			return &p, nil
		}
	}
	return nil, errors.New("404")
}

func (f *fakeAPI) ListMessages(ctx context.Context) ([]domain.Message, error) {
	if err := f.record("list_messages"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Message{}, f.messages...), nil
}

func (f *fakeAPI) DeleteMessage(ctx context.Context, id string) error {
	if err := f.record("delete_message"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.messages {
		if m.ID == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return nil
		}
	}
	return errors.New("404")
}

func newTestStore(api *fakeAPI) *Store {
	return New(api, api, zerolog.Nop())
}

func TestAddProject_OnEmptyStorePrependsServerRecord(t *testing.T) {
	api := newFakeAPI()
	s := newTestStore(api)

	res := s.AddProject(context.Background(), domain.NewProject{Title: "X", Description: "Y"})

	require.True(t, res.Success)
	assert.Equal(t, []domain.Project{{ID: "1", Title: "X", Description: "Y"}}, s.Snapshot().Projects)
}

func TestAddProject_ThenFetchEqualsServerList(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "a", Title: "existing"}}
	api.nextID = 10
	s := newTestStore(api)
	ctx := context.Background()

	require.True(t, s.FetchProjects(ctx).Success)
	require.True(t, s.AddProject(ctx, domain.NewProject{Title: "new", Description: "d"}).Success)
	require.True(t, s.AddProject(ctx, domain.NewProject{Title: "newer", Description: "d"}).Success)
	require.True(t, s.FetchProjects(ctx).Success)

	got := s.Snapshot().Projects
	assert.Equal(t, api.projects, got)
	assert.Len(t, got, 3)
}

func TestAddProject_FailureLeavesProjects(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "a"}}
	s := newTestStore(api)
	ctx := context.Background()
	require.True(t, s.FetchProjects(ctx).Success)
	api.fail["create_project"] = errDown

	res := s.AddProject(ctx, domain.NewProject{Title: "x", Description: "y"})

	assert.Equal(t, Result{Error: ErrAddProject}, res)
	st := s.Snapshot()
	assert.Equal(t, []domain.Project{{ID: "a"}}, st.Projects)
	assert.Equal(t, ErrAddProject, st.Error)
}

func TestDeleteProject_RemovesOnlyThatID(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	s := newTestStore(api)
	ctx := context.Background()
	require.True(t, s.FetchProjects(ctx).Success)

	require.True(t, s.DeleteProject(ctx, "2").Success)

	for _, p := range s.Snapshot().Projects {
		assert.NotEqual(t, "2", p.ID)
	}
	assert.Equal(t, []domain.Project{{ID: "1"}, {ID: "3"}}, s.Snapshot().Projects)
}

func TestDeleteProject_ServerRejectsKeepsProject(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "1"}}
	s := newTestStore(api)
	ctx := context.Background()
	require.True(t, s.FetchProjects(ctx).Success)
	api.fail["delete_project"] = errors.New("404")

	res := s.DeleteProject(ctx, "1")

	assert.False(t, res.Success)
	assert.Equal(t, ErrDeleteProject, res.Error)
	assert.Len(t, s.Snapshot().Projects, 1)
}

func TestRateProject_ReplacesElementInPlace(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "0"}, {ID: "1", Rating: 4.0, Votes: 2}, {ID: "2"}}
	s := newTestStore(api)
	ctx := context.Background()
	require.True(t, s.FetchProjects(ctx).Success)

	require.True(t, s.RateProject(ctx, "1", 5).Success)

	got := s.Snapshot().Projects
	require.Len(t, got, 3)
	assert.Equal(t, "1", got[1].ID)
	assert.Equal(t, 3, got[1].Votes)
	assert.InDelta(t, 4.33, got[1].Rating, 0.01)
	assert.Equal(t, api.projects[1], got[1])
}

func TestRateProject_ForwardsRatingUnclamped(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "1"}}
	var seen float64
	api.rateHook = func(id string, rating float64) { seen = rating }
	s := newTestStore(api)
	ctx := context.Background()
	require.True(t, s.FetchProjects(ctx).Success)

	s.RateProject(ctx, "1", 9)

	assert.Equal(t, 9.0, seen)
}

func TestRateProject_SameIDAppliesInCallOrder(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "1"}}
	entered := make(chan float64, 2)
	release := make(chan struct{})
	api.rateHook = func(id string, rating float64) {
		entered <- rating
		if rating == 1 {
			<-release
		}
	}
	s := newTestStore(api)
	ctx := context.Background()
	require.True(t, s.FetchProjects(ctx).Success)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.RateProject(ctx, "1", 1)
	}()
	assert.Equal(t, 1.0, <-entered)
	go func() {
		defer wg.Done()
		s.RateProject(ctx, "1", 5)
	}()

	assert.Never(t, func() bool { return api.callCount("rate_project") > 1 }, 50*time.Millisecond, 5*time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, 5.0, <-entered)
	got := s.Snapshot().Projects[0]
	assert.Equal(t, 2, got.Votes)
	assert.InDelta(t, 3.0, got.Rating, 0.001)
	assert.Equal(t, 0, s.rateLocks.size())
}

func TestRateProject_WaiterGivesUpWhenContextEnds(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "1"}}
	started := make(chan struct{})
	release := make(chan struct{})
	api.rateHook = func(id string, rating float64) {
		close(started)
		<-release
	}
	s := newTestStore(api)
	require.True(t, s.FetchProjects(context.Background()).Success)

	done := make(chan Result)
	go func() { done <- s.RateProject(context.Background(), "1", 4) }()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	start := time.Now()
	res := s.RateProject(ctx, "1", 5)

	assert.False(t, res.Success)
	assert.Equal(t, ErrRateProject, res.Error)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, api.callCount("rate_project"), "abandoned rating never reaches the API")

	close(release)
	require.True(t, (<-done).Success)
	assert.Equal(t, 1, s.Snapshot().Projects[0].Votes)
	assert.Equal(t, 0, s.rateLocks.size())
}

func TestRateProject_DifferentIDsDoNotWait(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "1"}, {ID: "2"}}
	release := make(chan struct{})
	started := make(chan struct{})
	api.rateHook = func(id string, rating float64) {
		if id == "1" {
			close(started)
			<-release
		}
	}
	s := newTestStore(api)
	ctx := context.Background()
	require.True(t, s.FetchProjects(ctx).Success)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.RateProject(ctx, "1", 4)
	}()
	<-started

	require.True(t, s.RateProject(ctx, "2", 3).Success)
	assert.Equal(t, 1, s.Snapshot().Projects[1].Votes)
	assert.Equal(t, 0, s.Snapshot().Projects[0].Votes)

	close(release)
	<-done
	assert.Equal(t, 1, s.Snapshot().Projects[0].Votes)
}

func TestFetchProjects_TwiceYieldsSameContent(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "1", Technologies: []string{"go"}}, {ID: "2"}}
	s := newTestStore(api)
	ctx := context.Background()

	require.True(t, s.FetchProjects(ctx).Success)
	first := s.Snapshot().Projects
	require.True(t, s.FetchProjects(ctx).Success)

	assert.Equal(t, first, s.Snapshot().Projects)
}

func TestFetchProjects_FailureKeepsProjectsAndClearsLoading(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "1"}}
	s := newTestStore(api)
	ctx := context.Background()
	require.True(t, s.FetchProjects(ctx).Success)
	api.fail["list_projects"] = errDown

	res := s.FetchProjects(ctx)

	assert.Equal(t, ErrFetchProjects, res.Error)
	st := s.Snapshot()
	assert.False(t, st.Loading)
	assert.Equal(t, ErrFetchProjects, st.Error)
	assert.Equal(t, []domain.Project{{ID: "1"}}, st.Projects)
}

func TestFetchProjects_ResetsPreviousError(t *testing.T) {
	api := newFakeAPI()
	s := newTestStore(api)
	ctx := context.Background()
	api.fail["delete_message"] = errDown
	s.DeleteMessage(ctx, "x")
	require.Equal(t, ErrDeleteMessage, s.Snapshot().Error)

	require.True(t, s.FetchProjects(ctx).Success)

	assert.Empty(t, s.Snapshot().Error)
}

func TestFetchProjects_NotifiesLoadingTransitions(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "1"}}
	s := newTestStore(api)

	var seen []State
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st) })
	defer unsubscribe()

	s.FetchProjects(context.Background())

	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.Empty(t, seen[0].Projects)
	assert.False(t, seen[1].Loading)
	assert.Len(t, seen[1].Projects, 1)
}

func TestSubscribe_UnsubscribeStopsNotifications(t *testing.T) {
	api := newFakeAPI()
	s := newTestStore(api)
	calls := 0
	unsubscribe := s.Subscribe(func(State) { calls++ })

	s.ClearError()
	unsubscribe()
	s.ClearError()

	assert.Equal(t, 1, calls)
}

func TestFetchMessages_ReplacesWholesale(t *testing.T) {
	api := newFakeAPI()
	api.messages = []domain.Message{{ID: "m1", Name: "Ada"}}
	s := newTestStore(api)
	ctx := context.Background()
	require.True(t, s.FetchMessages(ctx).Success)

	api.messages = []domain.Message{{ID: "m2"}, {ID: "m3"}}
	require.True(t, s.FetchMessages(ctx).Success)

	assert.Equal(t, []domain.Message{{ID: "m2"}, {ID: "m3"}}, s.Snapshot().Messages)
}

func TestFetchMessages_FailureKeepsPriorMessages(t *testing.T) {
	api := newFakeAPI()
	api.messages = []domain.Message{{ID: "m1"}}
	s := newTestStore(api)
	ctx := context.Background()
	require.True(t, s.FetchMessages(ctx).Success)
	api.fail["list_messages"] = errDown

	res := s.FetchMessages(ctx)

	assert.Equal(t, ErrFetchMessages, res.Error)
	assert.Equal(t, []domain.Message{{ID: "m1"}}, s.Snapshot().Messages)
}

func TestDeleteMessage_SplicesOnSuccess(t *testing.T) {
	api := newFakeAPI()
	api.messages = []domain.Message{{ID: "m1"}, {ID: "m2"}}
	s := newTestStore(api)
	ctx := context.Background()
	require.True(t, s.FetchMessages(ctx).Success)

	require.True(t, s.DeleteMessage(ctx, "m1").Success)

	assert.Equal(t, []domain.Message{{ID: "m2"}}, s.Snapshot().Messages)
}

func TestDeleteMessage_NetworkFailureLeavesMessages(t *testing.T) {
	api := newFakeAPI()
	api.messages = []domain.Message{{ID: "m1"}, {ID: "m2"}}
	s := newTestStore(api)
	ctx := context.Background()
	require.True(t, s.FetchMessages(ctx).Success)
	api.fail["delete_message"] = errDown

	res := s.DeleteMessage(ctx, "m1")

	assert.False(t, res.Success)
	st := s.Snapshot()
	assert.Equal(t, []domain.Message{{ID: "m1"}, {ID: "m2"}}, st.Messages)
	assert.NotEmpty(t, st.Error)
}

func TestInit_FetchesBothCollectionsOnce(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "1"}}
	api.messages = []domain.Message{{ID: "m1"}}
	s := newTestStore(api)
	ctx := context.Background()

	s.Init(ctx)
	s.Init(ctx)

	assert.Equal(t, 1, api.callCount("list_projects"))
	assert.Equal(t, 1, api.callCount("list_messages"))
	st := s.Snapshot()
	assert.Len(t, st.Projects, 1)
	assert.Len(t, st.Messages, 1)
}

func TestSnapshot_IsDetachedCopy(t *testing.T) {
	api := newFakeAPI()
	api.projects = []domain.Project{{ID: "1", Technologies: []string{"go"}}}
	s := newTestStore(api)
	require.True(t, s.FetchProjects(context.Background()).Success)

	snap := s.Snapshot()
	snap.Projects[0].Title = "changed"
	snap.Projects[0].Technologies[0] = "rust"

	got := s.Snapshot().Projects[0]
	assert.Empty(t, got.Title)
	assert.Equal(t, []string{"go"}, got.Technologies)
}

func TestClearError(t *testing.T) {
	api := newFakeAPI()
	api.fail["list_messages"] = errDown
	s := newTestStore(api)
	s.FetchMessages(context.Background())
	require.NotEmpty(t, s.Snapshot().Error)

	s.ClearError()

	assert.Empty(t, s.Snapshot().Error)
}

func TestState_ProjectsErrorSkipsMessageFailures(t *testing.T) {
	assert.Empty(t, State{Error: ErrFetchMessages}.ProjectsError())
	assert.Empty(t, State{Error: ErrDeleteMessage}.ProjectsError())
	assert.Equal(t, ErrFetchProjects, State{Error: ErrFetchProjects}.ProjectsError())
	assert.Empty(t, State{}.ProjectsError())
}
