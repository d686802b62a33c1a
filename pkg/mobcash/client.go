package mobcash

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ResourceClient is the read/write surface shared by every CRUD resource.
// T is the record type, C the create payload and U the partial update payload.
type ResourceClient[T, C, U any] interface {
	ListReader[T]

	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, payload *C) (*T, error)
	Update(ctx context.Context, id string, patch *U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ListReader exposes the cached list reads of a resource.
type ListReader[T any] interface {
	// List blocks until fresh (or still-fresh cached) data is available.
	List(ctx context.Context, filter Filter) (*Envelope[T], error)
	// Read returns the current cache state immediately and starts a fetch
	// or a background revalidation when needed.
	Read(ctx context.Context, filter Filter) ListResult[T]
	// Observe mounts a consumer that receives every state change of the entry.
	Observe(filter Filter) Observer[T]
}

// ListResult is a snapshot of one cache entry as seen by a consumer.
type ListResult[T any] struct {
	Data      *Envelope[T]
	IsLoading bool
	IsError   bool
	Err       error
	UpdatedAt time.Time
}

// Observer is a mounted consumer of a cache entry. Close unmounts it.
type Observer[T any] interface {
	Updates() <-chan ListResult[T]
	Current() ListResult[T]
	Close()
}

// CatalogClients groups the configuration resources of the platform.
type CatalogClients interface {
	Networks() ResourceClient[Network, NetworkInput, NetworkPatch]
	Platforms() ResourceClient[Platform, PlatformInput, PlatformPatch]
	Advertisements() ResourceClient[Advertisement, AdvertisementInput, AdvertisementPatch]
	Coupons() ResourceClient[Coupon, CouponInput, CouponPatch]
}

// AccountClients groups user-facing account resources.
type AccountClients interface {
	Users() ResourceClient[User, UserInput, UserPatch]
	BotUsers() ResourceClient[BotUser, BotUserInput, BotUserPatch]
	Telephones() ResourceClient[Telephone, TelephoneInput, TelephonePatch]
	UserAppIDs() ResourceClient[UserAppID, UserAppIDInput, UserAppIDPatch]
}

// LedgerClients groups money-moving resources.
type LedgerClients interface {
	Transactions() TransactionsClient
	BotTransactions() TransactionsClient
	Deposits() DepositsClient
	Recharges() RechargesClient
	Bonuses() ListReader[Bonus]
}

// TransactionsClient lists transactions and creates deposits or withdrawals.
type TransactionsClient interface {
	ListReader[Transaction]

	CreateDeposit(ctx context.Context, input *DepositTransactionInput) (*Transaction, error)
	CreateWithdrawal(ctx context.Context, input *WithdrawalTransactionInput) (*Transaction, error)
}

// DepositsClient lists platform deposits and cash desks.
type DepositsClient interface {
	ListReader[Deposit]

	Create(ctx context.Context, input *CreateDepositInput) (*Deposit, error)
	Caisses(ctx context.Context) (*Envelope[Caisse], error)
}

// RechargesClient lists and submits recharge requests.
type RechargesClient interface {
	ListReader[Recharge]

	Create(ctx context.Context, input *CreateRechargeInput) (*Recharge, error)
}

// NotificationsClient lists and sends notifications.
type NotificationsClient interface {
	ListReader[Notification]

	Send(ctx context.Context, input *SendNotificationInput) (*Notification, error)
}

// Uploader stores a binary and returns the URL it is reachable at.
type Uploader interface {
	Upload(ctx context.Context, filename string, body io.Reader) (string, error)
}

// Client is the mobcash administration API client.
type Client interface {
	CatalogClients
	AccountClients
	LedgerClients

	Notifications() NotificationsClient
	Dashboard(ctx context.Context) (*DashboardStats, error)
	Uploader

	// Focus revalidates every stale entry that still has observers.
	Focus(ctx context.Context)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Notifier surfaces transient, user-visible outcomes of mutations.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Config represents client configuration.
//
// # Authentication
//
// Only a static bearer token is supported. When AccessToken is empty the
// requests are sent without an Authorization header.
//
// # Retries
//
// RetryMax applies to GET requests at the transport level. Mutations are
// never retried since they are not idempotent in general. QueryRetries
// bounds the retries of a failed cached read in the query store. When the
// store retries, cached reads skip the transport retries so a failing list
// costs at most QueryRetries+1 requests.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.zefast.net/".
	BaseURL string
	// AccessToken is sent as "Authorization: Bearer <token>" when set.
	AccessToken string

	// HTTPTimeout bounds a single HTTP exchange. Zero uses the default.
	HTTPTimeout time.Duration
	// RetryMax is the maximum number of transport retries for GET requests.
	RetryMax int
	// RetryWaitMin is the minimum backoff between transport retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between transport retries.
	RetryWaitMax time.Duration
	// QueryRetries bounds the retries of a failed cached read. Negative disables them.
	QueryRetries int
	// StaleTime is how long fetched data counts as fresh.
	StaleTime time.Duration
	// GCTime is how long an unobserved entry is kept before collection.
	GCTime time.Duration

	// Cache stores the payload of cached reads. Nil uses an in-memory cache.
	Cache Cache
	// Notifier receives mutation outcomes. Nil discards them.
	Notifier Notifier
	// Logger is an optional structured logger.
	Logger Logger
	// MeterProvider receives the query cache counters. Nil uses the global provider.
	MeterProvider metric.MeterProvider
	// RequestMetrics aggregates latency and errors per endpoint when set.
	RequestMetrics *MetricsCollector
	// Debug enables request/response logging when a Logger is set.
	Debug bool
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
