package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/internal/notify"
	"github.com/codelabbj/icash-admin/internal/telemetry"
	"github.com/codelabbj/icash-admin/pkg/icash"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// Config is the persisted CLI configuration. Keys match the global flags.
type Config struct {
	API     string `json:"api,omitempty"      yaml:"api,omitempty"`
	Token   string `json:"token,omitempty"    yaml:"token,omitempty"`
	Output  string `json:"output,omitempty"   yaml:"output,omitempty"`
	Cache   string `json:"cache,omitempty"    yaml:"cache,omitempty"`
	NATSURL string `json:"nats-url,omitempty" yaml:"nats-url,omitempty"`
	Metrics bool   `json:"metrics,omitempty"  yaml:"metrics,omitempty"`
}

// configSetters validate and assign a value for each settable key.
//
//nolint:gochecknoglobals // static key table
var configSetters = map[string]func(*Config, string) error{
	"api": func(c *Config, v string) error {
		c.API = icash.NormalizeBaseURL(v)

		return nil
	},
	"token": func(c *Config, v string) error {
		c.Token = v

		return nil
	},
	"output": func(c *Config, v string) error {
		switch v {
		case constants.OutputFormatTable, constants.OutputFormatJSON, constants.OutputFormatYAML:
			c.Output = v

			return nil
		default:
			return fmt.Errorf("%w: %s", constants.ErrInvalidOutput, v)
		}
	},
	"cache": func(c *Config, v string) error {
		t, err := mobcash.ParseCacheType(v)
		if err != nil {
			return err //nolint:wrapcheck // already names the value
		}

		c.Cache = string(t)

		return nil
	},
	"nats-url": func(c *Config, v string) error {
		c.NATSURL = v

		return nil
	},
	"metrics": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}

		c.Metrics = b

		return nil
	},
}

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show the effective configuration and edit the settings stored in the config file",
	}

	cmd.AddCommand(newConfigShowCommand(a))
	cmd.AddCommand(newConfigSetCommand(a))
	cmd.AddCommand(newConfigUnsetCommand(a))

	return cmd
}

func newConfigShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective settings, the environment branding and the enabled command groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := a.effectiveConfig()
			if config.Token != "" {
				config.Token = Masked
			}

			type showResult struct {
				Config     Config          `json:"config"      yaml:"config"`
				ConfigFile string          `json:"config_file" yaml:"config_file"`
				AppName    string          `json:"app_name"    yaml:"app_name"`
				BaseURL    string          `json:"base_url"    yaml:"base_url"`
				Features   map[string]bool `json:"features"    yaml:"features"`
			}

			path, err := a.configPath()
			if err != nil {
				return err
			}

			result := showResult{
				Config:     config,
				ConfigFile: path,
				AppName:    a.env.AppName,
				BaseURL:    a.env.BaseURL,
				Features:   a.features(),
			}

			return a.render(cmd, result, func(t *tablewriter.Table) error {
				rows := []property{
					{"Config file", path},
					{"App name", a.env.AppName},
					{"API", dashIfEmpty(config.API)},
					{"Token", dashIfEmpty(config.Token)},
					{"Output", config.Output},
					{"Cache", config.Cache},
					{"NATS URL", dashIfEmpty(config.NATSURL)},
					{"Metrics", yesNo(config.Metrics)},
				}

				for _, name := range sortedKeys(result.Features) {
					rows = append(rows, property{"Feature " + name, yesNo(result.Features[name])})
				}

				return propertyTable(rows)(t)
			})
		},
	}
}

func newConfigSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Store a setting in the config file. Keys: " + strings.Join(sortedKeys(configSetters), ", "),
		Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			setter, ok := configSetters[key]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownSetting, key)
			}

			err := a.updateConfigFile(func(c *Config) error { return setter(c, value) })
			if err != nil {
				return err
			}

			if key == "token" {
				value = Masked
			}

			return a.outputConfigUpdateResult(cmd, "Set", key, value)
		},
	}
}

func newConfigUnsetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a setting from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, ok := configSetters[key]; !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownSetting, key)
			}

			err := a.updateConfigFile(func(c *Config) error {
				switch key {
				case "api":
					c.API = ""
				case "token":
					c.Token = ""
				case "output":
					c.Output = ""
				case "cache":
					c.Cache = ""
				case "nats-url":
					c.NATSURL = ""
				case "metrics":
					c.Metrics = false
				}

				return nil
			})
			if err != nil {
				return err
			}

			return a.outputConfigUpdateResult(cmd, "Unset", key, "")
		},
	}
}

func (a *app) outputConfigUpdateResult(cmd *cobra.Command, action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	return a.render(cmd, result, func(t *tablewriter.Table) error {
		rows := []property{{"Action", action}, {"Key", key}}
		if value != "" {
			rows = append(rows, property{"Value", value})
		}

		return propertyTable(rows)(t)
	})
}

// effectiveConfig merges flags, environment and config file.
func (a *app) effectiveConfig() Config {
	config := Config{
		API:     a.v.GetString("api"),
		Token:   a.v.GetString("token"),
		Output:  a.v.GetString("output"),
		Cache:   a.v.GetString("cache"),
		NATSURL: a.v.GetString("nats-url"),
		Metrics: a.v.GetBool("metrics"),
	}

	if config.API == "" {
		config.API = a.env.BaseURL
	}

	return config
}

func (a *app) features() map[string]bool {
	features := make(map[string]bool)

	for _, name := range []string{
		"networks", "platforms", "advertisements", "coupons", "users", "bot-users",
		"telephones", "user-app-ids", "bonuses", "transactions", "bot-transactions",
		"deposits", "recharges", "notifications", "config",
	} {
		features[name] = a.env.Features.Enabled(name)
	}

	return features
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName), nil
}

// configPath is the file read at startup, or the default location.
func (a *app) configPath() (string, error) {
	if used := a.v.ConfigFileUsed(); used != "" {
		return used, nil
	}

	dir, err := configDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, constants.ConfigFileName), nil
}

func (a *app) updateConfigFile(fn func(*Config) error) error {
	path, err := a.configPath()
	if err != nil {
		return err
	}

	return defaultPersister.Update(path, fn)
}

// connect builds an API client from the effective configuration. The
// returned function flushes metrics and closes the cache backend.
func (a *app) connect(cmd *cobra.Command) (mobcash.Client, func(), error) {
	config := a.effectiveConfig()
	if strings.TrimSpace(config.API) == "" {
		return nil, nil, constants.ErrNoAPIConfigured
	}

	cache, err := a.newCache(config)
	if err != nil {
		return nil, nil, err
	}

	provider, err := telemetry.Setup(telemetry.Options{
		Enabled:     config.Metrics,
		Writer:      cmd.ErrOrStderr(),
		ServiceName: constants.ServiceName,
		Version:     a.build.Version,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("setting up metrics: %w", err)
	}

	clientConfig := &mobcash.Config{
		BaseURL:       config.API,
		AccessToken:   config.Token,
		RetryMax:      constants.DefaultRetryMax,
		QueryRetries:  constants.DefaultQueryRetries,
		StaleTime:     constants.DefaultStaleTime,
		GCTime:        constants.DefaultGCTime,
		Cache:         cache,
		Notifier:      notify.NewToaster(cmd.ErrOrStderr()),
		MeterProvider: provider,
		UserAgent:     constants.DefaultUserAgent,
	}

	var (
		logger    *slogLogger
		collector *mobcash.MetricsCollector
	)

	if a.v.GetBool("verbose") {
		logger = newStderrLogger(cmd.ErrOrStderr())
		collector = mobcash.NewMetricsCollector()

		clientConfig.Logger = logger
		clientConfig.Debug = true
		clientConfig.RequestMetrics = collector
	}

	client, err := icash.New(cmd.Context(), clientConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	done := func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		_ = provider.Shutdown(ctx)

		if collector != nil {
			logEndpointSummary(logger, collector)
		}

		if closer, ok := cache.(interface{ Close() }); ok {
			closer.Close()
		}
	}

	return client, done, nil
}

func logEndpointSummary(logger mobcash.Logger, collector *mobcash.MetricsCollector) {
	for _, m := range collector.Snapshot() {
		logger.Debug("endpoint summary", map[string]interface{}{
			"endpoint": m.Endpoint,
			"requests": m.TotalRequests,
			"errors":   m.TotalErrors,
			"rejected": m.Rejected,
			"average":  m.AverageLatency.String(),
		})
	}
}

func (a *app) newCache(config Config) (mobcash.Cache, error) {
	cacheType, err := mobcash.ParseCacheType(config.Cache)
	if err != nil {
		return nil, err //nolint:wrapcheck // already names the value
	}

	cacheConfig := &mobcash.CacheConfig{Type: cacheType, LocalSize: mobcash.DefaultCacheSize}

	if cacheType == mobcash.CacheTypeNATS {
		cacheConfig.NATS = &mobcash.NATSKVConfig{
			URL:    config.NATSURL,
			Bucket: mobcash.DefaultNATSBucket,
			TTL:    constants.DefaultPayloadTTL,
			Name:   mobcash.DefaultNATSName,
		}
	}

	cache, err := mobcash.NewCacheFromConfig(cacheConfig)
	if err != nil {
		return nil, fmt.Errorf("creating %s cache: %w", cacheType, err)
	}

	return cache, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
