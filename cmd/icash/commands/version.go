package commands

import (
	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the icash CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type VersionInfo struct {
				Version   string `json:"version"    yaml:"version"`
				Commit    string `json:"commit"     yaml:"commit"`
				Built     string `json:"built"      yaml:"built"`
				UserAgent string `json:"user_agent" yaml:"user_agent"`
			}

			info := VersionInfo{
				Version:   a.build.Version,
				Commit:    a.build.Commit,
				Built:     a.build.Date,
				UserAgent: constants.DefaultUserAgent,
			}

			return a.render(cmd, info, func(t *tablewriter.Table) error {
				return propertyTable([]property{
					{"Version", info.Version},
					{"Commit", info.Commit},
					{"Built", info.Built},
					{"User agent", info.UserAgent},
				})(t)
			})
		},
	}
}
