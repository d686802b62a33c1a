package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/codelabbj/icash-admin/internal/http"
	"github.com/codelabbj/icash-admin/internal/query"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
)

// Messages are the notifications raised by successful mutations.
type Messages struct {
	Created string
	Updated string
	Deleted string
}

// Endpoint describes how a resource is reached and cached.
type Endpoint struct {
	// Path is the collection path, e.g. "/mobcash/network".
	Path string
	// Name is the cache resource name, e.g. "networks".
	Name string
	// Label names one record in error contexts.
	Label string
	// TrailingSlash appends "/" to item paths.
	TrailingSlash bool
	// Dependents are other cache resources invalidated by every mutation.
	Dependents []string
	Messages   Messages
}

// ItemPath returns the path of one record.
func (e Endpoint) ItemPath(id string) string {
	path := strings.TrimRight(e.Path, "/") + "/" + url.PathEscape(id)
	if e.TrailingSlash {
		path += "/"
	}

	return path
}

// Resource implements the cached list reads and the mutations of one
// backend collection. T is the record, C the create payload and U the
// partial update payload.
type Resource[T, C, U any] struct {
	httpClient *http.Client
	store      *query.Store
	notifier   mobcash.Notifier
	endpoint   Endpoint
}

// NewResource creates a resource client.
func NewResource[T, C, U any](httpClient *http.Client, store *query.Store, notifier mobcash.Notifier, endpoint Endpoint) *Resource[T, C, U] {
	return &Resource[T, C, U]{
		httpClient: httpClient,
		store:      store,
		notifier:   notifier,
		endpoint:   endpoint,
	}
}

// Endpoint returns the resource description.
func (r *Resource[T, C, U]) Endpoint() Endpoint {
	return r.endpoint
}

func (r *Resource[T, C, U]) key(filter mobcash.Filter) query.Key {
	return query.NewKey(r.endpoint.Name, filter.Clone())
}

// fetcher reads the collection with filter. The filter is copied so later
// changes by the caller do not leak into refetches.
func (r *Resource[T, C, U]) fetcher(filter mobcash.Filter) query.FetchFunc {
	values := filter.Values()

	return func(ctx context.Context) ([]byte, error) {
		resp, err := r.httpClient.Get(readContext(ctx, r.store), r.endpoint.Path, values)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", r.endpoint.Name, err)
		}

		if _, err := mobcash.DetectShape(resp.Body); err != nil {
			return nil, fmt.Errorf("listing %s: %w", r.endpoint.Name, err)
		}

		return resp.Body, nil
	}
}

// List blocks until fresh data is available and returns it as an envelope.
func (r *Resource[T, C, U]) List(ctx context.Context, filter mobcash.Filter) (*mobcash.Envelope[T], error) {
	body, err := r.store.Fetch(ctx, r.key(filter), r.fetcher(filter))
	if err != nil {
		return nil, err //nolint:wrapcheck // fetch errors already name the resource
	}

	env, err := mobcash.Normalize[T](body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", r.endpoint.Name, err)
	}

	return env, nil
}

// Read returns the cached state of the list immediately.
func (r *Resource[T, C, U]) Read(ctx context.Context, filter mobcash.Filter) mobcash.ListResult[T] {
	return decodeResult[T](r.store.Read(ctx, r.key(filter), r.fetcher(filter)))
}

// Observe mounts a consumer of the list.
func (r *Resource[T, C, U]) Observe(filter mobcash.Filter) mobcash.Observer[T] {
	return newListObserver[T](r.store.Observe(context.Background(), r.key(filter), r.fetcher(filter)))
}

// Get retrieves one record.
func (r *Resource[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	resp, err := r.httpClient.Get(ctx, r.endpoint.ItemPath(id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", r.endpoint.Label, err)
	}

	var item T

	err = json.Unmarshal(resp.Body, &item)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", r.endpoint.Label, err)
	}

	return &item, nil
}

// Create posts a new record.
func (r *Resource[T, C, U]) Create(ctx context.Context, payload *C) (*T, error) {
	return mutate[T](ctx, r.mutator(), "creating", r.endpoint.Messages.Created, func(ctx context.Context) (*http.Response, error) {
		return r.httpClient.Post(ctx, r.endpoint.Path, payload)
	})
}

// Update sends the set fields of patch.
func (r *Resource[T, C, U]) Update(ctx context.Context, id string, patch *U) (*T, error) {
	return mutate[T](ctx, r.mutator(), "updating", r.endpoint.Messages.Updated, func(ctx context.Context) (*http.Response, error) {
		return r.httpClient.Patch(ctx, r.endpoint.ItemPath(id), patch)
	})
}

// Delete removes a record.
func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	_, err := mutate[struct{}](ctx, r.mutator(), "deleting", r.endpoint.Messages.Deleted, func(ctx context.Context) (*http.Response, error) {
		return r.httpClient.Delete(ctx, r.endpoint.ItemPath(id))
	})

	return err
}

func (r *Resource[T, C, U]) mutator() mutator {
	return mutator{store: r.store, notifier: r.notifier, endpoint: r.endpoint}
}

// mutator runs one mutation and applies its outcome to the cache and the
// notifications.
type mutator struct {
	store    *query.Store
	notifier mobcash.Notifier
	endpoint Endpoint
}

// mutate sends exactly one request. On success every entry of the resource
// and of its dependents is invalidated and the success message raised; on
// failure the cache is left untouched and the error notified.
func mutate[T any](ctx context.Context, m mutator, verb, success string, send func(context.Context) (*http.Response, error)) (*T, error) {
	resp, err := send(ctx)
	if err != nil {
		m.notifier.Error(mobcash.UserMessage(err))

		return nil, fmt.Errorf("%s %s: %w", verb, m.endpoint.Label, err)
	}

	// The mutation happened: invalidate even when the caller went away.
	m.invalidate(context.WithoutCancel(ctx))

	if success != "" {
		m.notifier.Success(success)
	}

	var out T

	// Mutations without a result, such as deletes, ignore the body.
	if _, discard := any(out).(struct{}); discard || len(resp.Body) == 0 {
		return &out, nil
	}

	err = json.Unmarshal(resp.Body, &out)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", m.endpoint.Label, err)
	}

	return &out, nil
}

// readContext leaves the retries of a cached read to the store when it
// retries, so a failing read is not retried at both layers.
func readContext(ctx context.Context, store *query.Store) context.Context {
	if store.Retries() > 0 {
		return http.WithoutRetry(ctx)
	}

	return ctx
}

func (m mutator) invalidate(ctx context.Context) {
	m.store.Invalidate(ctx, m.endpoint.Name)

	for _, dependent := range m.endpoint.Dependents {
		m.store.Invalidate(ctx, dependent)
	}
}

// decodeResult converts a raw cache state into a typed one. A payload that
// does not decode is reported as an error state.
func decodeResult[T any](res query.Result) mobcash.ListResult[T] {
	out := mobcash.ListResult[T]{
		IsLoading: res.IsLoading,
		IsError:   res.IsError,
		Err:       res.Err,
		UpdatedAt: res.UpdatedAt,
	}

	if !res.HasData() {
		return out
	}

	env, err := mobcash.Normalize[T](res.Data)
	if err != nil {
		out.IsError = true
		out.Err = fmt.Errorf("parsing %s: %w", res.Key, err)

		return out
	}

	out.Data = env

	return out
}
