// Package config reads the branding and endpoint settings of the console
// from the environment, once at process start.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Features toggles the resource command groups, as the navigation flags of
// the console do.
type Features struct {
	Users           bool `env:"USERS"            envDefault:"true"`
	BotUsers        bool `env:"BOT_USERS"        envDefault:"true"`
	Networks        bool `env:"NETWORKS"         envDefault:"true"`
	Telephones      bool `env:"TELEPHONES"       envDefault:"true"`
	UserAppIDs      bool `env:"USER_APP_IDS"     envDefault:"true"`
	Notifications   bool `env:"NOTIFICATIONS"    envDefault:"true"`
	Bonuses         bool `env:"BONUSES"          envDefault:"true"`
	Coupons         bool `env:"COUPONS"          envDefault:"true"`
	Advertisements  bool `env:"ADVERTISEMENTS"   envDefault:"true"`
	Transactions    bool `env:"TRANSACTIONS"     envDefault:"true"`
	Recharges       bool `env:"RECHARGES"        envDefault:"true"`
	BotTransactions bool `env:"BOT_TRANSACTIONS" envDefault:"true"`
	Platforms       bool `env:"PLATFORMS"        envDefault:"true"`
	Deposits        bool `env:"DEPOSITS"         envDefault:"true"`
	Settings        bool `env:"SETTINGS"         envDefault:"true"`
}

// Config is the environment surface. Every field has a default, so an empty
// environment yields a working configuration.
type Config struct {
	AppName        string   `env:"APP_NAME"        envDefault:"Zefast Admin"`
	AppTitle       string   `env:"APP_TITLE"       envDefault:"Tableau de Bord Admin Zefast"`
	AppDescription string   `env:"APP_DESCRIPTION" envDefault:"Tableau de bord administrateur pour la plateforme Zefast"`
	PrimaryColor   string   `env:"PRIMARY_COLOR"   envDefault:"oklch(0.62 0.21 35)"`
	AccentColor    string   `env:"ACCENT_COLOR"    envDefault:"oklch(0.68 0.23 35)"`
	AppLogoURL     string   `env:"APP_LOGO_URL"    envDefault:""`
	BaseURL        string   `env:"BASE_URL"        envDefault:"https://api.zefast.net/"`
	Features       Features `envPrefix:"FEATURE_"`
}

// Prefix is prepended to every variable name.
const Prefix = "ICASH_"

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom parses vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// Enabled reports whether the command group of resource is registered.
// Resources without a toggle are always enabled.
func (f Features) Enabled(resource string) bool {
	switch resource {
	case "users":
		return f.Users
	case "bot-users":
		return f.BotUsers
	case "networks":
		return f.Networks
	case "telephones":
		return f.Telephones
	case "user-app-ids":
		return f.UserAppIDs
	case "notifications":
		return f.Notifications
	case "bonuses":
		return f.Bonuses
	case "coupons":
		return f.Coupons
	case "advertisements":
		return f.Advertisements
	case "transactions":
		return f.Transactions
	case "recharges":
		return f.Recharges
	case "bot-transactions":
		return f.BotTransactions
	case "platforms":
		return f.Platforms
	case "deposits":
		return f.Deposits
	case "config":
		return f.Settings
	default:
		return true
	}
}
