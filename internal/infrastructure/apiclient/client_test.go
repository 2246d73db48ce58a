package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/folio/internal/domain"
	domerrors "github.com/amirhosseinghanipour/folio/internal/domain/errors"
	"github.com/amirhosseinghanipour/folio/internal/infrastructure/tokenstore"
)

// captured is what the fake content API saw on its last request.
type captured struct {
	method string
	path   string
	auth   string
	reqID  string
	agent  string
	ctype  string
	body   []byte
	form   map[string]string
	files  map[string]string
}

func newFakeAPI(t *testing.T, status int, response interface{}) (*httptest.Server, *captured) {
	t.Helper()
	c := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.method = r.Method
		c.path = r.URL.Path
		c.auth = r.Header.Get("Authorization")
		c.reqID = r.Header.Get("X-Request-ID")
		c.agent = r.Header.Get("User-Agent")
		c.ctype = r.Header.Get("Content-Type")
		if strings.HasPrefix(c.ctype, "multipart/form-data") {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			c.form = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				c.form[k] = v[0]
			}
			c.files = map[string]string{}
			for k, fhs := range r.MultipartForm.File {
				f, err := fhs[0].Open()
				require.NoError(t, err)
				data, _ := io.ReadAll(f)
				f.Close()
				c.files[k] = fhs[0].Filename + ":" + string(data)
			}
		} else {
			c.body, _ = io.ReadAll(r.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if response != nil {
			_ = json.NewEncoder(w).Encode(response)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, c
}

func TestDo_AttachesStoredTokenReadFreshEachCall(t *testing.T) {
	srv, got := newFakeAPI(t, http.StatusOK, []domain.Project{})
	tokens := tokenstore.NewMemoryStore("")
	c := New(srv.URL, tokens)
	ctx := context.Background()

	_, err := c.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.auth, "no token stored, no header")

	require.NoError(t, tokens.SetToken(ctx, "abc"))
	_, err = c.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", got.auth)

	require.NoError(t, tokens.ClearToken(ctx))
	_, err = c.ListProjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.auth, "logout must take effect without restarting the client")
}

func TestAnonymous_NeverSendsToken(t *testing.T) {
	srv, got := newFakeAPI(t, http.StatusOK, domain.Home{Title: "Hi"})
	c := New(srv.URL, tokenstore.NewMemoryStore("abc"))

	home, err := c.Anonymous().GetHome(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Hi", home.Title)
	assert.Empty(t, got.auth)
}

func TestDo_PropagatesChiRequestID(t *testing.T) {
	srv, got := newFakeAPI(t, http.StatusOK, []domain.Message{})
	c := New(srv.URL, nil)

	router := chi.NewRouter()
	router.Use(chimid.RequestID)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, err := c.ListMessages(r.Context())
		assert.NoError(t, err)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimid.RequestIDHeader, "req-42")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "req-42", got.reqID)
}

func TestDo_GeneratesRequestIDOutsideRequests(t *testing.T) {
	srv, got := newFakeAPI(t, http.StatusOK, []domain.Message{})

	_, err := New(srv.URL, nil).ListMessages(context.Background())

	require.NoError(t, err)
	assert.Len(t, got.reqID, 36)
}

func TestDo_HTTPErrorCarriesStatusAndBody(t *testing.T) {
	srv, _ := newFakeAPI(t, http.StatusNotFound, map[string]string{"message": "Project not found"})
	c := New(srv.URL, nil)

	err := c.DeleteProject(context.Background(), "missing")

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Contains(t, string(httpErr.Body), "Project not found")
	assert.True(t, errors.Is(err, domerrors.ErrNotFound))
	assert.False(t, errors.Is(err, domerrors.ErrUnauthorized))
}

func TestDo_UnauthorizedMapsToSentinel(t *testing.T) {
	srv, _ := newFakeAPI(t, http.StatusUnauthorized, nil)

	_, err := New(srv.URL, nil).ListMessages(context.Background())

	assert.True(t, errors.Is(err, domerrors.ErrUnauthorized))
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, nil, WithHTTPClient(&http.Client{Timeout: time.Second})).ListProjects(context.Background())

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.MethodGet, netErr.Method)
	assert.Equal(t, "/projects", netErr.Path)
}

func TestDo_MalformedSuccessBodyIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	t.Cleanup(srv.Close)

	_, err := New(srv.URL, nil).ListProjects(context.Background())

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr), "got %T", err)
	assert.Equal(t, "/projects", netErr.Path)
	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestCreateProject_SendsMultipartWithoutEmptyFields(t *testing.T) {
	srv, got := newFakeAPI(t, http.StatusCreated, domain.Project{ID: "1", Title: "X", Description: "Y"})
	c := New(srv.URL, nil)

	p, err := c.CreateProject(context.Background(), domain.NewProject{
		Title:        "X",
		Description:  "Y",
		Technologies: "Go, React",
		Image:        &domain.Upload{Filename: "shot.png", Data: []byte("png")},
	})

	require.NoError(t, err)
	assert.Equal(t, &domain.Project{ID: "1", Title: "X", Description: "Y"}, p)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/projects", got.path)
	assert.Equal(t, map[string]string{"title": "X", "description": "Y", "technologies": "Go, React"}, got.form)
	assert.Equal(t, map[string]string{"image": "shot.png:png"}, got.files)
}

func TestRateProject_PostsRatingBody(t *testing.T) {
	srv, got := newFakeAPI(t, http.StatusOK, domain.Project{ID: "1", Rating: 4.33, Votes: 3})
	c := New(srv.URL, nil)

	p, err := c.RateProject(context.Background(), "1", 5)

	require.NoError(t, err)
	assert.Equal(t, "/projects/rate/1", got.path)
	assert.JSONEq(t, `{"rating":5}`, string(got.body))
	assert.Equal(t, 3, p.Votes)
}

func TestDeleteMessage_EscapesID(t *testing.T) {
	srv, got := newFakeAPI(t, http.StatusNoContent, nil)

	err := New(srv.URL+"/", nil).DeleteMessage(context.Background(), "a b")

	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/messages/a b", got.path)
}

func TestSaveAbout_PostThenPut(t *testing.T) {
	srv, got := newFakeAPI(t, http.StatusOK, domain.About{ID: "ab1", Title: "Me"})
	c := New(srv.URL, nil)
	ctx := context.Background()

	_, err := c.SaveAbout(ctx, domain.About{Title: "Me"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/about", got.path)

	_, err = c.SaveAbout(ctx, domain.About{ID: "ab1", Title: "Me"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/about/ab1", got.path)
}

func TestUploadCV_SendsCVPart(t *testing.T) {
	srv, got := newFakeAPI(t, http.StatusOK, nil)

	err := New(srv.URL, nil).UploadCV(context.Background(), domain.Upload{Filename: "cv.pdf", Data: []byte("%PDF")})

	require.NoError(t, err)
	assert.Equal(t, "/skills/upload-cv", got.path)
	assert.Equal(t, map[string]string{"cv": "cv.pdf:%PDF"}, got.files)
}

func TestRegister_ReturnsToken(t *testing.T) {
	srv, got := newFakeAPI(t, http.StatusCreated, map[string]string{"token": "jwt"})

	token, err := New(srv.URL, nil).Register(context.Background(), domain.Credentials{Username: "admin", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "jwt", token)
	assert.JSONEq(t, `{"username":"admin","password":"secret1"}`, string(got.body))
}

func TestLogin_MissingTokenIsError(t *testing.T) {
	srv, _ := newFakeAPI(t, http.StatusOK, map[string]string{})

	_, err := New(srv.URL, nil).Login(context.Background(), domain.Credentials{Username: "a", Password: "b"})

	assert.ErrorIs(t, err, errNoToken)
}

func TestWithHeader_SentOnEveryRequest(t *testing.T) {
	srv, got := newFakeAPI(t, http.StatusOK, []domain.Message{})
	c := New(srv.URL, nil, WithHeader("User-Agent", "folio"))

	_, err := c.ListMessages(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "folio", got.agent)

	require.NoError(t, c.Anonymous().DeleteMessage(context.Background(), "m1"))
	assert.Equal(t, "folio", got.agent)
}
