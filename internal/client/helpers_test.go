package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/codelabbj/icash-admin/internal/client"
	"github.com/codelabbj/icash-admin/internal/notify"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest is one request seen by a fakeAPI.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeAPI is an httptest backend answering per "METHOD path" route and
// recording every request.
type fakeAPI struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []recordedRequest
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{t: t, routes: make(map[string]http.HandlerFunc)}
	api.server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.server.Close)

	return api
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	a.mu.Lock()
	a.requests = append(a.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   string(body),
	})
	handler, ok := a.routes[r.Method+" "+r.URL.Path]
	a.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Pas trouvé."}`))

		return
	}

	handler(w, r)
}

// handle registers a handler for method and path.
func (a *fakeAPI) handle(method, path string, handler http.HandlerFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.routes[method+" "+path] = handler
}

// respond registers a fixed JSON answer.
func (a *fakeAPI) respond(method, path string, status int, body string) {
	a.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

// abort makes method and path fail at the transport level.
func (a *fakeAPI) abort(method, path string) {
	a.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})
}

// count returns how many requests hit method and path.
func (a *fakeAPI) count(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := 0

	for _, req := range a.requests {
		if req.Method == method && req.Path == path {
			n++
		}
	}

	return n
}

// last returns the last request to method and path.
func (a *fakeAPI) last(method, path string) recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := len(a.requests) - 1; i >= 0; i-- {
		if a.requests[i].Method == method && a.requests[i].Path == path {
			return a.requests[i]
		}
	}

	a.t.Fatalf("no %s %s request", method, path)

	return recordedRequest{}
}

// newTestClient creates a client against api. Fetched data stays fresh for
// an hour so that only invalidations trigger refetches.
func newTestClient(t *testing.T, api *fakeAPI) (*client.Client, *notify.Recorder) {
	t.Helper()

	rec := &notify.Recorder{}

	c, err := client.New(context.Background(), &mobcash.Config{
		BaseURL:      api.server.URL + "/",
		AccessToken:  "test-token",
		QueryRetries: -1,
		StaleTime:    time.Hour,
		Notifier:     rec,
	})
	require.NoError(t, err)

	return c, rec
}

// TestCreateOperation represents a generic create operation test case.
type TestCreateOperation[TRequest, TResponse any] struct {
	Name         string
	Request      *TRequest
	ExpectedPath string
	ExpectedBody string
	StatusCode   int
	Response     string
	WantErr      bool
	ErrMessage   string
}

// RunCreateTests runs a series of create operation tests.
func RunCreateTests[TRequest, TResponse any](
	t *testing.T,
	tests []TestCreateOperation[TRequest, TResponse],
	createFunc func(*client.Client) func(context.Context, *TRequest) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t)
			api.respond(http.MethodPost, testCase.ExpectedPath, testCase.StatusCode, testCase.Response)

			c, rec := newTestClient(t, api)

			result, err := createFunc(c)(context.Background(), testCase.Request)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)
				assert.Equal(t, 1, rec.Count(notify.LevelError))

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, 1, rec.Count(notify.LevelSuccess))

			if testCase.ExpectedBody != "" {
				assert.JSONEq(t, testCase.ExpectedBody, api.last(http.MethodPost, testCase.ExpectedPath).Body)
			}
		})
	}
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     string
	WantErr      bool
	ErrMessage   string
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*client.Client) func(context.Context, string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t)
			api.respond(http.MethodGet, testCase.ExpectedPath, testCase.StatusCode, testCase.Response)

			c, _ := newTestClient(t, api)

			result, err := getFunc(c)(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
		})
	}
}

// TestUpdateOperation represents a generic update operation test case.
type TestUpdateOperation[TRequest, TResponse any] struct {
	Name         string
	ID           string
	Request      *TRequest
	ExpectedPath string
	ExpectedBody string
	StatusCode   int
	Response     string
	WantErr      bool
}

// RunUpdateTests runs a series of update operation tests.
func RunUpdateTests[TRequest, TResponse any](
	t *testing.T,
	tests []TestUpdateOperation[TRequest, TResponse],
	updateFunc func(*client.Client) func(context.Context, string, *TRequest) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t)
			api.respond(http.MethodPatch, testCase.ExpectedPath, testCase.StatusCode, testCase.Response)

			c, _ := newTestClient(t, api)

			result, err := updateFunc(c)(context.Background(), testCase.ID, testCase.Request)

			assert.Equal(t, 1, api.count(http.MethodPatch, testCase.ExpectedPath))

			if testCase.WantErr {
				require.Error(t, err)
				assert.Nil(t, result)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)

			if testCase.ExpectedBody != "" {
				assert.JSONEq(t, testCase.ExpectedBody, api.last(http.MethodPatch, testCase.ExpectedPath).Body)
			}
		})
	}
}

// TestDeleteOperation represents a generic delete operation test case.
type TestDeleteOperation struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	WantErr      bool
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests(
	t *testing.T,
	tests []TestDeleteOperation,
	deleteFunc func(*client.Client) func(context.Context, string) error,
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t)
			api.respond(http.MethodDelete, testCase.ExpectedPath, testCase.StatusCode, "")

			c, _ := newTestClient(t, api)

			err := deleteFunc(c)(context.Background(), testCase.ID)

			assert.Equal(t, 1, api.count(http.MethodDelete, testCase.ExpectedPath))

			if testCase.WantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
		})
	}
}

// waitFor reads updates until one satisfies match.
func waitFor[T any](t *testing.T, updates <-chan mobcash.ListResult[T], match func(mobcash.ListResult[T]) bool) mobcash.ListResult[T] {
	t.Helper()

	timeout := time.After(5 * time.Second)

	for {
		select {
		case res, ok := <-updates:
			require.True(t, ok, "updates closed")

			if match(res) {
				return res
			}
		case <-timeout:
			t.Fatal("timed out waiting for update")

			return mobcash.ListResult[T]{}
		}
	}
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return string(data)
}
