package client

import (
	"context"
	"net/url"

	"github.com/codelabbj/icash-admin/internal/http"
	"github.com/codelabbj/icash-admin/internal/query"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
)

// readOnly is the create and update payload of collections without
// mutations of their own.
type readOnly struct{}

// lister exposes only the list reads of a resource.
type lister[T any] struct {
	r *Resource[T, readOnly, readOnly]
}

func newLister[T any](httpClient *http.Client, store *query.Store, notifier mobcash.Notifier, endpoint Endpoint) lister[T] {
	return lister[T]{r: NewResource[T, readOnly, readOnly](httpClient, store, notifier, endpoint)}
}

// List blocks until fresh data is available.
func (l lister[T]) List(ctx context.Context, filter mobcash.Filter) (*mobcash.Envelope[T], error) {
	return l.r.List(ctx, filter)
}

// Read returns the cached state of the list immediately.
func (l lister[T]) Read(ctx context.Context, filter mobcash.Filter) mobcash.ListResult[T] {
	return l.r.Read(ctx, filter)
}

// Observe mounts a consumer of the list.
func (l lister[T]) Observe(filter mobcash.Filter) mobcash.Observer[T] {
	return l.r.Observe(filter)
}

// TransactionsClient lists transactions and creates deposits or withdrawals.
// The same client serves the web/mobile and the bot transaction collections.
type TransactionsClient struct {
	lister[mobcash.Transaction]
}

// NewTransactionsClient creates a transactions client for endpoint.
func NewTransactionsClient(httpClient *http.Client, store *query.Store, notifier mobcash.Notifier, endpoint Endpoint) *TransactionsClient {
	return &TransactionsClient{
		lister: newLister[mobcash.Transaction](httpClient, store, notifier, endpoint),
	}
}

// CreateDeposit records a deposit from a network to a betting account.
func (c *TransactionsClient) CreateDeposit(ctx context.Context, input *mobcash.DepositTransactionInput) (*mobcash.Transaction, error) {
	body := struct {
		TypeTrans string `json:"type_trans"`
		*mobcash.DepositTransactionInput
	}{mobcash.TransactionTypeDeposit, input}

	return mutate[mobcash.Transaction](ctx, c.r.mutator(), "creating deposit", c.r.endpoint.Messages.Created, func(ctx context.Context) (*http.Response, error) {
		return c.r.httpClient.Post(ctx, c.r.endpoint.Path, body)
	})
}

// CreateWithdrawal records a withdrawal from a betting account to a network.
func (c *TransactionsClient) CreateWithdrawal(ctx context.Context, input *mobcash.WithdrawalTransactionInput) (*mobcash.Transaction, error) {
	body := struct {
		TypeTrans string `json:"type_trans"`
		*mobcash.WithdrawalTransactionInput
	}{mobcash.TransactionTypeWithdrawal, input}

	return mutate[mobcash.Transaction](ctx, c.r.mutator(), "creating withdrawal", c.r.endpoint.Messages.Created, func(ctx context.Context) (*http.Response, error) {
		return c.r.httpClient.Post(ctx, c.r.endpoint.Path, body)
	})
}

// DepositsClient lists platform deposits and cash desk balances.
type DepositsClient struct {
	lister[mobcash.Deposit]

	caisses lister[mobcash.Caisse]
}

// NewDepositsClient creates the deposits client.
func NewDepositsClient(httpClient *http.Client, store *query.Store, notifier mobcash.Notifier) *DepositsClient {
	return &DepositsClient{
		lister:  newLister[mobcash.Deposit](httpClient, store, notifier, depositsEndpoint),
		caisses: newLister[mobcash.Caisse](httpClient, store, notifier, caissesEndpoint),
	}
}

// Create posts a deposit. Deposits are listed and created on different paths.
func (c *DepositsClient) Create(ctx context.Context, input *mobcash.CreateDepositInput) (*mobcash.Deposit, error) {
	return mutate[mobcash.Deposit](ctx, c.r.mutator(), "creating", c.r.endpoint.Messages.Created, func(ctx context.Context) (*http.Response, error) {
		return c.r.httpClient.Post(ctx, DepositCreatePath, input)
	})
}

// Caisses returns the cash desk balances. The endpoint answers a bare array.
func (c *DepositsClient) Caisses(ctx context.Context) (*mobcash.Envelope[mobcash.Caisse], error) {
	return c.caisses.List(ctx, nil)
}

// RechargesClient lists and submits recharge requests.
type RechargesClient struct {
	lister[mobcash.Recharge]
}

// NewRechargesClient creates the recharges client.
func NewRechargesClient(httpClient *http.Client, store *query.Store, notifier mobcash.Notifier) *RechargesClient {
	return &RechargesClient{
		lister: newLister[mobcash.Recharge](httpClient, store, notifier, rechargesEndpoint),
	}
}

// Create submits a recharge. PaymentProof must already hold an uploaded URL.
func (c *RechargesClient) Create(ctx context.Context, input *mobcash.CreateRechargeInput) (*mobcash.Recharge, error) {
	return mutate[mobcash.Recharge](ctx, c.r.mutator(), "creating", c.r.endpoint.Messages.Created, func(ctx context.Context) (*http.Response, error) {
		return c.r.httpClient.Post(ctx, c.r.endpoint.Path, input)
	})
}

// NotificationsClient lists and sends notifications.
type NotificationsClient struct {
	lister[mobcash.Notification]
}

// NewNotificationsClient creates the notifications client.
func NewNotificationsClient(httpClient *http.Client, store *query.Store, notifier mobcash.Notifier) *NotificationsClient {
	return &NotificationsClient{
		lister: newLister[mobcash.Notification](httpClient, store, notifier, notificationsEndpoint),
	}
}

// Send delivers a notification to input.UserID, or to everyone when it is empty.
func (c *NotificationsClient) Send(ctx context.Context, input *mobcash.SendNotificationInput) (*mobcash.Notification, error) {
	var params url.Values
	if input.UserID != "" {
		params = url.Values{"user_id": []string{input.UserID}}
	}

	return mutate[mobcash.Notification](ctx, c.r.mutator(), "sending", c.r.endpoint.Messages.Created, func(ctx context.Context) (*http.Response, error) {
		return c.r.httpClient.PostWithQuery(ctx, c.r.endpoint.Path, params, input)
	})
}
