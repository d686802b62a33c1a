package commands

import (
	"context"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/internal/form"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newTelephonesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "telephones",
		Aliases: []string{"telephone", "phones"},
		Short:   "Manage saved phone numbers",
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.Telephone]{
		short:  "List phone numbers",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.Telephone] { return c.Telephones() },
		cols: []column[mobcash.Telephone]{
			{"ID", func(t mobcash.Telephone) string { return itoa(t.ID) }},
			{"Phone", func(t mobcash.Telephone) string { return t.Phone }},
			{"Network", func(t mobcash.Telephone) string { return itoa(t.Network) }},
			{"User", func(t mobcash.Telephone) string { return orDash(t.User) }},
			{"Created", func(t mobcash.Telephone) string { return formatTime(&t.CreatedAt) }},
		},
		flags: func(fs *pflag.FlagSet) {
			fs.String("search", "", "free-text search")
			fs.Int("network", 0, "network id")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.TelephoneFilters{
				Search:  stringFlag(fs, "search"),
				Network: intFlag(fs, "network"),
			}.Filter()
		},
	}))
	cmd.AddCommand(newGetCommand(a, "phone number", getTelephone, telephoneDetails))
	cmd.AddCommand(newTelephonesCreateCommand(a))
	cmd.AddCommand(newTelephonesUpdateCommand(a))
	cmd.AddCommand(newDeleteCommand(a, "phone number", func(ctx context.Context, c mobcash.Client, id string) error {
		return c.Telephones().Delete(ctx, id) //nolint:wrapcheck // notified by the mutation layer
	}))

	return cmd
}

func getTelephone(ctx context.Context, c mobcash.Client, id string) (*mobcash.Telephone, error) {
	return c.Telephones().Get(ctx, id) //nolint:wrapcheck // carries the backend message
}

func telephoneDetails(t mobcash.Telephone) []property {
	return []property{
		{"ID", itoa(t.ID)},
		{"Phone", t.Phone},
		{"Network", itoa(t.Network)},
		{"User", orDash(t.User)},
		{"Created", formatTime(&t.CreatedAt)},
	}
}

func addTelephoneFlags(fs *pflag.FlagSet) {
	fs.String("phone", "", "phone number")
	fs.String("network", "", "network id")
}

func applyTelephoneFlags(fs *pflag.FlagSet, d *form.TelephoneDraft) {
	setString(fs, "phone", &d.Phone)
	setString(fs, "network", &d.Network)
}

func newTelephonesCreateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Save a phone number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialog := form.NewDialog(func() form.TelephoneDraft { return form.TelephoneDraft{} })

			err := dialog.OpenCreate()
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			applyTelephoneFlags(cmd.Flags(), &draft)

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			var created *mobcash.Telephone

			err = dialogRun[form.TelephoneDraft]{
				dialog: dialog,
				draft:  draft,
				send: func(ctx context.Context, d form.TelephoneDraft) error {
					in, err := d.Input()
					if err != nil {
						return err
					}

					created, err = client.Telephones().Create(ctx, &in)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, created, propertyTable(telephoneDetails(*created)))
		},
	}

	addTelephoneFlags(cmd.Flags())

	return cmd
}

func newTelephonesUpdateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a phone number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !anyChanged(fs, "phone", "network") {
				return constants.ErrNothingToUpdate
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			orig, err := getTelephone(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			dialog := form.NewDialog(func() form.TelephoneDraft { return form.TelephoneDraft{} })

			err = dialog.OpenEdit(form.TelephoneDraftFrom(*orig))
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			applyTelephoneFlags(fs, &draft)

			updated := orig

			err = dialogRun[form.TelephoneDraft]{
				dialog: dialog,
				draft:  draft,
				send: func(ctx context.Context, d form.TelephoneDraft) error {
					patch, err := d.Patch(*orig)
					if err != nil {
						return err
					}

					if patch == (mobcash.TelephonePatch{}) {
						return constants.ErrNothingToUpdate
					}

					updated, err = client.Telephones().Update(ctx, args[0], &patch)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, updated, propertyTable(telephoneDetails(*updated)))
		},
	}

	addTelephoneFlags(cmd.Flags())

	return cmd
}

func newUserAppIDsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user-app-ids",
		Aliases: []string{"user-app-id", "app-ids"},
		Short:   "Manage player identifiers on betting platforms",
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.UserAppID]{
		short:  "List player identifiers",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.UserAppID] { return c.UserAppIDs() },
		cols: []column[mobcash.UserAppID]{
			{"ID", func(u mobcash.UserAppID) string { return itoa(u.ID) }},
			{"Player ID", func(u mobcash.UserAppID) string { return u.UserAppID }},
			{"Platform", func(u mobcash.UserAppID) string { return appName(u) }},
			{"User", func(u mobcash.UserAppID) string { return orDash(u.User) }},
			{"Created", func(u mobcash.UserAppID) string { return formatTime(&u.CreatedAt) }},
		},
		flags: func(fs *pflag.FlagSet) {
			fs.String("search", "", "free-text search")
			fs.String("app-name", "", "platform id")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.UserAppIDFilters{
				Search:  stringFlag(fs, "search"),
				AppName: stringFlag(fs, "app-name"),
			}.Filter()
		},
	}))
	cmd.AddCommand(newGetCommand(a, "player identifier", getUserAppID, userAppIDDetails))
	cmd.AddCommand(newUserAppIDsCreateCommand(a))
	cmd.AddCommand(newUserAppIDsUpdateCommand(a))
	cmd.AddCommand(newDeleteCommand(a, "player identifier", func(ctx context.Context, c mobcash.Client, id string) error {
		return c.UserAppIDs().Delete(ctx, id) //nolint:wrapcheck // notified by the mutation layer
	}))

	return cmd
}

func getUserAppID(ctx context.Context, c mobcash.Client, id string) (*mobcash.UserAppID, error) {
	return c.UserAppIDs().Get(ctx, id) //nolint:wrapcheck // carries the backend message
}

// appName prefers the embedded platform name over the raw id.
func appName(u mobcash.UserAppID) string {
	if u.AppDetails != nil && u.AppDetails.Name != "" {
		return u.AppDetails.Name
	}

	return u.AppName
}

func userAppIDDetails(u mobcash.UserAppID) []property {
	return []property{
		{"ID", itoa(u.ID)},
		{"Player ID", u.UserAppID},
		{"Platform", appName(u)},
		{"User", orDash(u.User)},
		{"Created", formatTime(&u.CreatedAt)},
	}
}

func addUserAppIDFlags(fs *pflag.FlagSet) {
	fs.String("user-app-id", "", "player identifier on the platform")
	fs.String("app-name", "", "platform id")
}

func applyUserAppIDFlags(fs *pflag.FlagSet, d *form.UserAppIDDraft) {
	setString(fs, "user-app-id", &d.UserAppID)
	setString(fs, "app-name", &d.AppName)
}

func newUserAppIDsCreateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a player identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialog := form.NewDialog(func() form.UserAppIDDraft { return form.UserAppIDDraft{} })

			err := dialog.OpenCreate()
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			applyUserAppIDFlags(cmd.Flags(), &draft)

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			var created *mobcash.UserAppID

			err = dialogRun[form.UserAppIDDraft]{
				dialog: dialog,
				draft:  draft,
				send: func(ctx context.Context, d form.UserAppIDDraft) (err error) {
					in := d.Input()

					created, err = client.UserAppIDs().Create(ctx, &in)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, created, propertyTable(userAppIDDetails(*created)))
		},
	}

	addUserAppIDFlags(cmd.Flags())

	return cmd
}

func newUserAppIDsUpdateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a player identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !anyChanged(fs, "user-app-id", "app-name") {
				return constants.ErrNothingToUpdate
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			orig, err := getUserAppID(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			dialog := form.NewDialog(func() form.UserAppIDDraft { return form.UserAppIDDraft{} })

			err = dialog.OpenEdit(form.UserAppIDDraftFrom(*orig))
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			applyUserAppIDFlags(fs, &draft)

			updated := orig

			err = dialogRun[form.UserAppIDDraft]{
				dialog: dialog,
				draft:  draft,
				send: func(ctx context.Context, d form.UserAppIDDraft) (err error) {
					patch := d.Patch(*orig)
					if patch == (mobcash.UserAppIDPatch{}) {
						return constants.ErrNothingToUpdate
					}

					updated, err = client.UserAppIDs().Update(ctx, args[0], &patch)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, updated, propertyTable(userAppIDDetails(*updated)))
		},
	}

	addUserAppIDFlags(cmd.Flags())

	return cmd
}
