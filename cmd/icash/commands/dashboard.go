package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/internal/stats"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // style table
var sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

// dashboardReport is the dashboard reshaped for the selected periods.
type dashboardReport struct {
	Stats        *mobcash.DashboardStats `json:"stats"         yaml:"stats"`
	VolumePeriod stats.Period            `json:"volume_period" yaml:"volume_period"`
	Volume       []stats.VolumeRow       `json:"volume"        yaml:"volume"`
	UsersPeriod  stats.Period            `json:"users_period"  yaml:"users_period"`
	NewUsers     []stats.UserRow         `json:"new_users"     yaml:"new_users"`
	Apps         []stats.Share           `json:"apps"          yaml:"apps"`
	Sources      []stats.Share           `json:"sources"       yaml:"sources"`
}

func newDashboardCommand(a *app) *cobra.Command {
	var volumePeriod, usersPeriod string

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"stats"},
		Short:   "Show the dashboard statistics",
		Long: `Show the headline counters, the transaction volume and user growth series
and the breakdowns by platform and by registration source.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vp, err := stats.ParseVolumePeriod(volumePeriod)
			if err != nil {
				return err //nolint:wrapcheck // lists the accepted periods
			}

			up, err := stats.ParseUserPeriod(usersPeriod)
			if err != nil {
				return err //nolint:wrapcheck // lists the accepted periods
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			ds, err := client.Dashboard(cmd.Context())
			if err != nil {
				return err //nolint:wrapcheck // carries the backend message
			}

			report, err := buildDashboardReport(ds, vp, up)
			if err != nil {
				return err
			}

			format, err := a.outputFormat()
			if err != nil {
				return err
			}

			if format != constants.OutputFormatTable {
				return a.render(cmd, report, nil)
			}

			return a.renderDashboard(cmd, report)
		},
	}

	cmd.Flags().StringVar(&volumePeriod, "volume-period", string(stats.DefaultPeriod), "volume series period (daily, weekly, monthly, yearly)")
	cmd.Flags().StringVar(&usersPeriod, "users-period", string(stats.DefaultPeriod), "new users series period (daily, weekly, monthly)")

	return cmd
}

func buildDashboardReport(ds *mobcash.DashboardStats, vp, up stats.Period) (dashboardReport, error) {
	volume, err := stats.VolumeRows(ds.Volume.Evolution, vp)
	if err != nil {
		return dashboardReport{}, fmt.Errorf("volume series: %w", err)
	}

	users, err := stats.UserRows(ds.UserGrowth.NewUsers, up)
	if err != nil {
		return dashboardReport{}, fmt.Errorf("new users series: %w", err)
	}

	return dashboardReport{
		Stats:        ds,
		VolumePeriod: vp,
		Volume:       volume,
		UsersPeriod:  up,
		NewUsers:     users,
		Apps:         stats.AppShares(ds.Summary.TransactionsByApp),
		Sources:      stats.SourceShares(ds.UserGrowth),
	}, nil
}

func (a *app) renderDashboard(cmd *cobra.Command, r dashboardReport) error {
	out := cmd.OutOrStdout()
	s := r.Stats.Summary

	sections := []struct {
		title string
		table func(*tablewriter.Table) error
	}{
		{"Summary", propertyTable([]property{
			{"Total users", stats.FormatNumber(s.TotalUsers)},
			{"Active users", stats.FormatNumber(s.ActiveUsers)},
			{"Inactive users", stats.FormatNumber(s.InactiveUsers)},
			{"Transactions", stats.FormatNumber(s.TotalTransactions)},
			{"Bonuses", stats.FormatCurrency(s.TotalBonus)},
			{"Rewards", stats.FormatCurrency(s.Rewards.Total)},
			{"Disbursed", stats.FormatCurrency(s.Disbursements.Amount)},
			{"Disbursements", stats.FormatNumber(s.Disbursements.Count)},
			{"Advertisements", activeOf(s.Advertisements)},
			{"Coupons", activeOf(s.Coupons)},
			{"Bot transactions", stats.FormatInt(s.BotStats.TotalTransactions)},
			{"Bot deposits", stats.FormatInt(s.BotStats.TotalDeposits)},
			{"Bot withdrawals", stats.FormatInt(s.BotStats.TotalWithdrawals)},
		})},
		{"Volume", propertyTable([]property{
			{"Deposits", stats.FormatCurrency(r.Stats.Volume.Deposits.TotalAmount)},
			{"Withdrawals", stats.FormatCurrency(r.Stats.Volume.Withdrawals.TotalAmount)},
			{"Net volume", stats.FormatCurrency(r.Stats.Volume.NetVolume)},
		})},
		{"Volume evolution (" + string(r.VolumePeriod) + ")", volumeTable(r)},
		{"New users (" + string(r.UsersPeriod) + ")", usersTable(r)},
		{"Transactions by platform", shareTable("Platform", r.Apps, true)},
		{"Users by source", shareTable("Source", r.Sources, false)},
		{"Referrals", propertyTable([]property{
			{"Sponsorships", stats.FormatNumber(r.Stats.ReferralSystem.ParrainagesCount)},
			{"Referral bonuses", stats.FormatCurrency(r.Stats.ReferralSystem.TotalReferralBonus)},
			{"Activation rate", percentOrDash(r.Stats.ReferralSystem.ActivationRate)},
			{"Active users", stats.FormatNumber(r.Stats.UserGrowth.ActiveUsersCount)},
		})},
	}

	for _, section := range sections {
		writeSection(out, section.title)

		err := a.render(cmd, nil, section.table)
		if err != nil {
			return err
		}
	}

	return nil
}

func writeSection(out io.Writer, title string) {
	_, _ = fmt.Fprintln(out, sectionStyle.Render(title))
}

func activeOf(c mobcash.ActiveCount) string {
	return stats.FormatNumber(c.Active) + " / " + stats.FormatNumber(c.Total)
}

func percentOrDash(p *float64) string {
	if p == nil {
		return constants.MissingValue
	}

	return stats.FormatPercent(*p)
}

func volumeTable(r dashboardReport) func(*tablewriter.Table) error {
	return func(t *tablewriter.Table) error {
		t.Header("Period", "Type", "Amount", "Count")

		for _, row := range r.Volume {
			amount := row.TotalAmount

			err := t.Append(row.Date, row.TypeTrans, stats.FormatCurrency(&amount), stats.FormatInt(row.Count))
			if err != nil {
				return fmt.Errorf("failed to append volume row: %w", err)
			}
		}

		return nil
	}
}

func usersTable(r dashboardReport) func(*tablewriter.Table) error {
	return func(t *tablewriter.Table) error {
		t.Header("Period", "New users")

		for _, row := range r.NewUsers {
			err := t.Append(row.Date, stats.FormatInt(row.Count))
			if err != nil {
				return fmt.Errorf("failed to append users row: %w", err)
			}
		}

		return nil
	}
}

func shareTable(key string, shares []stats.Share, withAmount bool) func(*tablewriter.Table) error {
	return func(t *tablewriter.Table) error {
		if withAmount {
			t.Header(key, "Count", "Amount", "Share")
		} else {
			t.Header(key, "Count", "Share")
		}

		for _, share := range shares {
			row := []any{share.Key, stats.FormatInt(share.Count)}
			if withAmount {
				amount := share.Amount
				row = append(row, stats.FormatCurrency(&amount))
			}

			row = append(row, stats.FormatPercent(share.Percent))

			err := t.Append(row...)
			if err != nil {
				return fmt.Errorf("failed to append %s row: %w", share.Key, err)
			}
		}

		return nil
	}
}
