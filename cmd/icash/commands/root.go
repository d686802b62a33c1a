package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/codelabbj/icash-admin/internal/config"
	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Options configures the root command.
type Options struct {
	Env     config.Config
	Version string
	Commit  string
	Date    string
	// Terminal reports whether stdin is an interactive terminal. Nil checks os.Stdin.
	Terminal func() bool
}

// app carries the state shared by every command of one root.
type app struct {
	env      config.Config
	v        *viper.Viper
	build    Options
	terminal func() bool
}

// commandGroup is a resource command group behind a feature toggle.
type commandGroup struct {
	name  string
	build func(*app) *cobra.Command
}

// NewRootCommand builds the icash command tree. Resource groups disabled in
// opts.Env.Features are not registered.
func NewRootCommand(opts Options) *cobra.Command {
	a := &app{
		env:      opts.Env,
		v:        viper.New(),
		build:    opts,
		terminal: opts.Terminal,
	}

	if a.terminal == nil {
		a.terminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	}

	rootCmd := &cobra.Command{
		Use:   "icash",
		Short: opts.Env.AppTitle,
		Long: opts.Env.AppDescription + `.

This CLI manages the resources of the mobcash backend: networks, betting
platforms, users, transactions, recharges and more, and renders the
dashboard statistics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.icash/config.yml)")
	flags.StringP("api", "a", "", "API endpoint URL (default from ICASH_BASE_URL)")
	flags.StringP("token", "t", "", "bearer token")
	flags.StringP("output", "o", constants.OutputFormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log requests to stderr")
	flags.String("cache", "memory", "query cache backend (memory, nats, none)")
	flags.String("nats-url", "", "NATS server URL for --cache nats")
	flags.Bool("metrics", false, "print query cache metrics to stderr on exit")

	for _, name := range []string{"config", "api", "token", "output", "verbose", "cache", "nats-url", "metrics"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	groups := []commandGroup{
		{"networks", newNetworksCommand},
		{"platforms", newPlatformsCommand},
		{"advertisements", newAdvertisementsCommand},
		{"coupons", newCouponsCommand},
		{"users", newUsersCommand},
		{"bot-users", newBotUsersCommand},
		{"telephones", newTelephonesCommand},
		{"user-app-ids", newUserAppIDsCommand},
		{"bonuses", newBonusesCommand},
		{"transactions", newTransactionsCommand},
		{"bot-transactions", newBotTransactionsCommand},
		{"deposits", newDepositsCommand},
		{"recharges", newRechargesCommand},
		{"notifications", newNotificationsCommand},
		{"config", newConfigCommand},
	}

	for _, g := range groups {
		if a.env.Features.Enabled(g.name) {
			rootCmd.AddCommand(g.build(a))
		}
	}

	rootCmd.AddCommand(newDashboardCommand(a))
	rootCmd.AddCommand(newVersionCommand(a))

	return rootCmd
}

func (a *app) initConfig(cmd *cobra.Command) error {
	cfgFile := a.v.GetString("config")

	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}

		a.v.AddConfigPath(dir)
		a.v.SetConfigType("yml")
		a.v.SetConfigName(strings.TrimSuffix(constants.ConfigFileName, ".yml"))
	}

	a.v.SetEnvPrefix(constants.EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	// A missing config file is not an error.
	if err := a.v.ReadInConfig(); err == nil && a.v.GetBool("verbose") {
		fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", a.v.ConfigFileUsed())
	}

	_, err := a.outputFormat()

	return err
}
