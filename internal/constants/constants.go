package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// UploadHTTPTimeout is used for multipart uploads.
	UploadHTTPTimeout = 2 * time.Minute
)

// Retry limits.
const (
	// DefaultRetryMax is the number of transport retries of a GET request.
	DefaultRetryMax = 3

	// DefaultQueryRetries bounds the retries of a failed cached read.
	DefaultQueryRetries = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// DefaultQueryRetryMaxInterval caps the backoff between query retries.
	DefaultQueryRetryMaxInterval = 30 * time.Second
)

// Query cache timings.
const (
	// DefaultStaleTime is how long fetched data counts as fresh.
	DefaultStaleTime = 0

	// DefaultGCTime keeps unobserved entries this long before collection.
	DefaultGCTime = 5 * time.Minute

	// DefaultPayloadTTL is how long the payload backend keeps a list read.
	DefaultPayloadTTL = 30 * time.Minute

	// ObserverBufferSize is the buffer of an observer's update channel.
	ObserverBufferSize = 16
)

// User agent and version.
const (
	// Version is the version reported by the CLI and the User-Agent.
	Version = "0.1.0"

	// DefaultUserAgent is sent when no User-Agent is configured.
	DefaultUserAgent = "icash-admin/" + Version
)

// CLI configuration file.
const (
	ConfigDirName  = ".icash"
	ConfigFileName = "config.yml"
	EnvPrefix      = "ICASH"
	ServiceName    = "icash-admin"
)

// Shutdown bounds the final metrics flush of the CLI.
const ShutdownTimeout = 5 * time.Second

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)

// Upload endpoint.
const (
	// UploadPath receives multipart file uploads.
	UploadPath = "/mobcash/upload"

	// UploadField is the multipart field holding the file.
	UploadField = "file"
)

// Locale used to render numbers and month names.
const (
	DisplayLocale = "fr-FR"
	CurrencyLabel = "FCFA"
	MissingValue  = "-"
)
