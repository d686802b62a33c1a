package main

import (
	"fmt"
	"os"

	"github.com/codelabbj/icash-admin/cmd/icash/commands"
	"github.com/codelabbj/icash-admin/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := commands.NewRootCommand(commands.Options{
		Env:     env,
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
