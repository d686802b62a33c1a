package client

import (
	"context"
	"io"
	"time"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/internal/http"
	"github.com/codelabbj/icash-admin/internal/notify"
	"github.com/codelabbj/icash-admin/internal/query"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
)

// Client implements the mobcash.Client interface.
type Client struct {
	httpClient *http.Client
	store      *query.Store
	notifier   mobcash.Notifier

	// Resource clients
	networks        *Resource[mobcash.Network, mobcash.NetworkInput, mobcash.NetworkPatch]
	platforms       *Resource[mobcash.Platform, mobcash.PlatformInput, mobcash.PlatformPatch]
	advertisements  *Resource[mobcash.Advertisement, mobcash.AdvertisementInput, mobcash.AdvertisementPatch]
	coupons         *Resource[mobcash.Coupon, mobcash.CouponInput, mobcash.CouponPatch]
	users           *Resource[mobcash.User, mobcash.UserInput, mobcash.UserPatch]
	botUsers        *Resource[mobcash.BotUser, mobcash.BotUserInput, mobcash.BotUserPatch]
	telephones      *Resource[mobcash.Telephone, mobcash.TelephoneInput, mobcash.TelephonePatch]
	userAppIDs      *Resource[mobcash.UserAppID, mobcash.UserAppIDInput, mobcash.UserAppIDPatch]
	bonuses         lister[mobcash.Bonus]
	transactions    *TransactionsClient
	botTransactions *TransactionsClient
	deposits        *DepositsClient
	recharges       *RechargesClient
	notifications   *NotificationsClient
	dashboard       *DashboardClient
	uploader        *Uploader
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *mobcash.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	chain := mobcash.NewInterceptorChain()
	chain.AddRequestInterceptor(mobcash.RequestIDInterceptor())

	if config.Logger != nil {
		chain.AddResponseInterceptor(mobcash.LoggingResponseInterceptor(config.Logger))
	}

	if config.RequestMetrics != nil {
		chain.AddRequestInterceptor(mobcash.MetricsRequestInterceptor(config.RequestMetrics))
		chain.AddResponseInterceptor(mobcash.MetricsResponseInterceptor(config.RequestMetrics))
	}

	return append(httpOpts, http.WithInterceptors(chain))
}

// createStoreOptions builds query store options from config.
func createStoreOptions(config *mobcash.Config) []query.Option {
	storeOpts := []query.Option{query.WithStaleTime(config.StaleTime)}

	if config.GCTime > 0 {
		storeOpts = append(storeOpts, query.WithGCTime(config.GCTime))
	}

	switch {
	case config.QueryRetries < 0:
		storeOpts = append(storeOpts, query.WithRetries(0))
	case config.QueryRetries > 0:
		storeOpts = append(storeOpts, query.WithRetries(config.QueryRetries))
	}

	if config.RetryWaitMin > 0 {
		storeOpts = append(storeOpts, query.WithRetryBackoff(config.RetryWaitMin, constants.DefaultQueryRetryMaxInterval))
	}

	if config.Logger != nil {
		storeOpts = append(storeOpts, query.WithLogger(config.Logger))
	}

	if config.MeterProvider != nil {
		storeOpts = append(storeOpts, query.WithMeterProvider(config.MeterProvider))
	}

	return storeOpts
}

// New creates a mobcash API client with its own query store.
func New(ctx context.Context, config *mobcash.Config) (*Client, error) {
	if config == nil {
		return nil, mobcash.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, mobcash.ErrBaseURLRequired
	}

	cache := config.Cache
	if cache == nil {
		cache = mobcash.NewMemoryCache(mobcash.DefaultCacheSize)
	}

	store := query.New(cache, createStoreOptions(config)...)

	return NewWithStore(config, store), nil
}

// NewWithStore creates a client sharing an existing query store.
func NewWithStore(config *mobcash.Config, store *query.Store) *Client {
	var tokens http.TokenProvider
	if config.AccessToken != "" {
		tokens = http.StaticToken(config.AccessToken)
	}

	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(config.BaseURL, tokens, httpOpts...)
	uploadClient := http.NewClient(config.BaseURL, tokens, append(httpOpts, http.WithTimeout(constants.UploadHTTPTimeout))...)

	var notifier mobcash.Notifier = notify.Discard{}
	if config.Notifier != nil {
		notifier = config.Notifier
	}

	client := &Client{
		httpClient: httpClient,
		store:      store,
		notifier:   notifier,
		uploader:   NewUploader(uploadClient, notifier),
	}

	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	hc, st, nt := c.httpClient, c.store, c.notifier

	c.networks = NewResource[mobcash.Network, mobcash.NetworkInput, mobcash.NetworkPatch](hc, st, nt, networksEndpoint)
	c.platforms = NewResource[mobcash.Platform, mobcash.PlatformInput, mobcash.PlatformPatch](hc, st, nt, platformsEndpoint)
	c.advertisements = NewResource[mobcash.Advertisement, mobcash.AdvertisementInput, mobcash.AdvertisementPatch](hc, st, nt, advertisementsEndpoint)
	c.coupons = NewResource[mobcash.Coupon, mobcash.CouponInput, mobcash.CouponPatch](hc, st, nt, couponsEndpoint)
	c.users = NewResource[mobcash.User, mobcash.UserInput, mobcash.UserPatch](hc, st, nt, usersEndpoint)
	c.botUsers = NewResource[mobcash.BotUser, mobcash.BotUserInput, mobcash.BotUserPatch](hc, st, nt, botUsersEndpoint)
	c.telephones = NewResource[mobcash.Telephone, mobcash.TelephoneInput, mobcash.TelephonePatch](hc, st, nt, telephonesEndpoint)
	c.userAppIDs = NewResource[mobcash.UserAppID, mobcash.UserAppIDInput, mobcash.UserAppIDPatch](hc, st, nt, userAppIDsEndpoint)
	c.bonuses = newLister[mobcash.Bonus](hc, st, nt, bonusesEndpoint)
	c.transactions = NewTransactionsClient(hc, st, nt, transactionsEndpoint)
	c.botTransactions = NewTransactionsClient(hc, st, nt, botTransactionsEndpoint)
	c.deposits = NewDepositsClient(hc, st, nt)
	c.recharges = NewRechargesClient(hc, st, nt)
	c.notifications = NewNotificationsClient(hc, st, nt)
	c.dashboard = NewDashboardClient(hc, st)
}

// Networks returns the networks client.
func (c *Client) Networks() mobcash.ResourceClient[mobcash.Network, mobcash.NetworkInput, mobcash.NetworkPatch] {
	return c.networks
}

// Platforms returns the platforms client.
func (c *Client) Platforms() mobcash.ResourceClient[mobcash.Platform, mobcash.PlatformInput, mobcash.PlatformPatch] {
	return c.platforms
}

// Advertisements returns the advertisements client.
func (c *Client) Advertisements() mobcash.ResourceClient[mobcash.Advertisement, mobcash.AdvertisementInput, mobcash.AdvertisementPatch] {
	return c.advertisements
}

// Coupons returns the coupons client.
func (c *Client) Coupons() mobcash.ResourceClient[mobcash.Coupon, mobcash.CouponInput, mobcash.CouponPatch] {
	return c.coupons
}

// Users returns the users client.
func (c *Client) Users() mobcash.ResourceClient[mobcash.User, mobcash.UserInput, mobcash.UserPatch] {
	return c.users
}

// BotUsers returns the bot users client.
func (c *Client) BotUsers() mobcash.ResourceClient[mobcash.BotUser, mobcash.BotUserInput, mobcash.BotUserPatch] {
	return c.botUsers
}

// Telephones returns the telephones client.
func (c *Client) Telephones() mobcash.ResourceClient[mobcash.Telephone, mobcash.TelephoneInput, mobcash.TelephonePatch] {
	return c.telephones
}

// UserAppIDs returns the user app ids client.
func (c *Client) UserAppIDs() mobcash.ResourceClient[mobcash.UserAppID, mobcash.UserAppIDInput, mobcash.UserAppIDPatch] {
	return c.userAppIDs
}

// Bonuses returns the read-only bonuses client.
func (c *Client) Bonuses() mobcash.ListReader[mobcash.Bonus] {
	return c.bonuses
}

// Transactions returns the web and mobile transactions client.
func (c *Client) Transactions() mobcash.TransactionsClient {
	return c.transactions
}

// BotTransactions returns the bot transactions client.
func (c *Client) BotTransactions() mobcash.TransactionsClient {
	return c.botTransactions
}

// Deposits returns the deposits client.
func (c *Client) Deposits() mobcash.DepositsClient {
	return c.deposits
}

// Recharges returns the recharges client.
func (c *Client) Recharges() mobcash.RechargesClient {
	return c.recharges
}

// Notifications returns the notifications client.
func (c *Client) Notifications() mobcash.NotificationsClient {
	return c.notifications
}

// Dashboard returns the dashboard statistics.
func (c *Client) Dashboard(ctx context.Context) (*mobcash.DashboardStats, error) {
	return c.dashboard.Get(ctx)
}

// Upload stores a binary and returns its URL.
func (c *Client) Upload(ctx context.Context, filename string, body io.Reader) (string, error) {
	return c.uploader.Upload(ctx, filename, body)
}

// Focus revalidates every stale entry that still has observers.
func (c *Client) Focus(ctx context.Context) {
	c.store.Focus(ctx)
}

// Store returns the query store behind the client.
func (c *Client) Store() *query.Store {
	return c.store
}

// StartGC collects idle cache entries every interval until ctx is done.
func (c *Client) StartGC(ctx context.Context, interval time.Duration) {
	go c.store.RunGC(ctx, interval)
}
