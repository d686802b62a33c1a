package commands

import (
	"context"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/internal/form"
	"github.com/codelabbj/icash-admin/internal/stats"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

//nolint:gochecknoglobals // flag table
var platformFlagNames = []string{
	"name", "image-url", "enable", "deposit-tuto-link", "withdrawal-tuto-link",
	"why-withdrawal-fail", "city", "street", "min-deposit", "max-deposit",
	"min-withdrawal", "max-win",
}

func newPlatformsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "platforms",
		Aliases: []string{"platform", "apps"},
		Short:   "Manage betting platforms",
		Long:    "List, create, update, enable and delete the betting applications integrated with the service",
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.Platform]{
		short:  "List platforms",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.Platform] { return c.Platforms() },
		cols: []column[mobcash.Platform]{
			{"ID", func(p mobcash.Platform) string { return p.ID }},
			{"Name", func(p mobcash.Platform) string { return p.Name }},
			{"Enabled", func(p mobcash.Platform) string { return yesNo(p.Enable) }},
			{"Min deposit", func(p mobcash.Platform) string { return stats.FormatCurrency(&p.MinimunDeposit) }},
			{"Max deposit", func(p mobcash.Platform) string { return stats.FormatCurrency(&p.MaxDeposit) }},
			{"Min withdrawal", func(p mobcash.Platform) string { return stats.FormatCurrency(&p.MinimunWith) }},
			{"Max win", func(p mobcash.Platform) string { return stats.FormatCurrency(&p.MaxWin) }},
		},
		flags: func(fs *pflag.FlagSet) {
			fs.String("search", "", "free-text search")
			fs.Bool("enable", false, "only enabled (true) or disabled (false) platforms")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.PlatformFilters{
				Search: stringFlag(fs, "search"),
				Enable: boolFlag(fs, "enable"),
			}.Filter()
		},
	}))
	cmd.AddCommand(newGetCommand(a, "platform", getPlatform, platformDetails))
	cmd.AddCommand(newPlatformsCreateCommand(a))
	cmd.AddCommand(newPlatformsUpdateCommand(a))
	cmd.AddCommand(newDeleteCommand(a, "platform", func(ctx context.Context, c mobcash.Client, id string) error {
		return c.Platforms().Delete(ctx, id) //nolint:wrapcheck // notified by the mutation layer
	}))
	cmd.AddCommand(newToggleCommands(a, "platform", func(ctx context.Context, c mobcash.Client, id string, enable bool) error {
		_, err := c.Platforms().Update(ctx, id, &mobcash.PlatformPatch{Enable: &enable})

		return err //nolint:wrapcheck // notified by the mutation layer
	})...)

	return cmd
}

func getPlatform(ctx context.Context, c mobcash.Client, id string) (*mobcash.Platform, error) {
	return c.Platforms().Get(ctx, id) //nolint:wrapcheck // carries the backend message
}

func platformDetails(p mobcash.Platform) []property {
	return []property{
		{"ID", p.ID},
		{"Name", p.Name},
		{"Image", dashIfEmpty(p.Image)},
		{"Enabled", yesNo(p.Enable)},
		{"Min deposit", stats.FormatCurrency(&p.MinimunDeposit)},
		{"Max deposit", stats.FormatCurrency(&p.MaxDeposit)},
		{"Min withdrawal", stats.FormatCurrency(&p.MinimunWith)},
		{"Max win", stats.FormatCurrency(&p.MaxWin)},
		{"Deposit tutorial", orDash(p.DepositTutoLink)},
		{"Withdrawal tutorial", orDash(p.WithdrawalTutoLink)},
		{"Why withdrawals fail", orDash(p.WhyWithdrawalFail)},
		{"City", orDash(p.City)},
		{"Street", orDash(p.Street)},
	}
}

func addPlatformFlags(fs *pflag.FlagSet) {
	fs.String("name", "", "platform name")
	fs.String("image-url", "", "logo URL")
	fs.Bool("enable", true, "enable the platform")
	fs.String("deposit-tuto-link", "", "deposit tutorial link")
	fs.String("withdrawal-tuto-link", "", "withdrawal tutorial link")
	fs.String("why-withdrawal-fail", "", "explanation shown when a withdrawal fails")
	fs.String("city", "", "cash desk city")
	fs.String("street", "", "cash desk street")
	fs.String("min-deposit", "", "minimum deposit amount")
	fs.String("max-deposit", "", "maximum deposit amount")
	fs.String("min-withdrawal", "", "minimum withdrawal amount")
	fs.String("max-win", "", "maximum win amount")
}

func applyPlatformFlags(fs *pflag.FlagSet, d *form.PlatformDraft) {
	setString(fs, "name", &d.Name)
	setString(fs, "image-url", &d.Image)
	setBool(fs, "enable", &d.Enable)
	setString(fs, "deposit-tuto-link", &d.DepositTutoLink)
	setString(fs, "withdrawal-tuto-link", &d.WithdrawalTutoLink)
	setString(fs, "why-withdrawal-fail", &d.WhyWithdrawalFail)
	setString(fs, "city", &d.City)
	setString(fs, "street", &d.Street)
	setString(fs, "min-deposit", &d.MinimunDeposit)
	setString(fs, "max-deposit", &d.MaxDeposit)
	setString(fs, "min-withdrawal", &d.MinimunWith)
	setString(fs, "max-win", &d.MaxWin)
}

func newPlatformsCreateCommand(a *app) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialog := form.NewDialog(form.NewPlatformDraft)

			err := dialog.OpenCreate()
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			applyPlatformFlags(cmd.Flags(), &draft)

			if interactive {
				err := a.runForm(platformForm(&draft))
				if err != nil {
					return err
				}
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			var created *mobcash.Platform

			err = dialogRun[form.PlatformDraft]{
				dialog: dialog,
				draft:  draft,
				send: func(ctx context.Context, d form.PlatformDraft) error {
					in, err := d.Input()
					if err != nil {
						return err
					}

					created, err = client.Platforms().Create(ctx, &in)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, created, propertyTable(platformDetails(*created)))
		},
	}

	addPlatformFlags(cmd.Flags())
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "fill the fields in a form")

	return cmd
}

func newPlatformsUpdateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a platform",
		Long:  "Update the fields given as flags. Only changed fields are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !anyChanged(fs, platformFlagNames...) {
				return constants.ErrNothingToUpdate
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			orig, err := getPlatform(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			dialog := form.NewDialog(form.NewPlatformDraft)

			err = dialog.OpenEdit(form.PlatformDraftFrom(*orig))
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			applyPlatformFlags(fs, &draft)

			updated := orig

			err = dialogRun[form.PlatformDraft]{
				dialog: dialog,
				draft:  draft,
				send: func(ctx context.Context, d form.PlatformDraft) error {
					patch, err := d.Patch(*orig)
					if err != nil {
						return err
					}

					if patch == (mobcash.PlatformPatch{}) {
						return constants.ErrNothingToUpdate
					}

					updated, err = client.Platforms().Update(ctx, args[0], &patch)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, updated, propertyTable(platformDetails(*updated)))
		},
	}

	addPlatformFlags(cmd.Flags())

	return cmd
}
