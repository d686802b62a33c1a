package commands

import (
	"context"

	"github.com/codelabbj/icash-admin/internal/form"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newNotificationsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notification", "notif"},
		Short:   "Browse and send user notifications",
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.Notification]{
		short:  "List notifications",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.Notification] { return c.Notifications() },
		cols: []column[mobcash.Notification]{
			{"ID", func(n mobcash.Notification) string { return itoa(n.ID) }},
			{"Title", func(n mobcash.Notification) string { return n.Title }},
			{"User", func(n mobcash.Notification) string { return dashIfEmpty(n.User) }},
			{"Read", func(n mobcash.Notification) string { return yesNo(n.IsRead) }},
			{"Created", func(n mobcash.Notification) string { return formatTime(&n.CreatedAt) }},
		},
		flags: func(fs *pflag.FlagSet) {
			fs.String("search", "", "free-text search")
			fs.Bool("read", false, "only read (true) or unread (false) notifications")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.NotificationFilters{
				Search: stringFlag(fs, "search"),
				IsRead: boolFlag(fs, "read"),
			}.Filter()
		},
	}))
	cmd.AddCommand(newNotificationsSendCommand(a))

	return cmd
}

func newNotificationsSendCommand(a *app) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a notification to one user or to everyone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialog := form.NewDialog(func() form.NotificationDraft { return form.NotificationDraft{} })

			err := dialog.OpenCreate()
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			fs := cmd.Flags()
			draft := dialog.Draft()
			setString(fs, "title", &draft.Title)
			setString(fs, "content", &draft.Content)
			setString(fs, "user", &draft.UserID)

			if interactive {
				err := a.runForm(notificationForm(&draft))
				if err != nil {
					return err
				}
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			var sent *mobcash.Notification

			err = dialogRun[form.NotificationDraft]{
				dialog: dialog,
				draft:  draft,
				send: func(ctx context.Context, d form.NotificationDraft) (err error) {
					in := d.Input()

					sent, err = client.Notifications().Send(ctx, &in)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, sent, propertyTable([]property{
				{"ID", itoa(sent.ID)},
				{"Title", sent.Title},
				{"Content", sent.Content},
				{"User", dashIfEmpty(sent.User)},
				{"Reference", orDash(sent.Reference)},
				{"Created", formatTime(&sent.CreatedAt)},
			}))
		},
	}

	fs := cmd.Flags()
	fs.String("title", "", "notification title")
	fs.String("content", "", "notification body")
	fs.String("user", "", "recipient user id, empty to broadcast")
	fs.BoolVarP(&interactive, "interactive", "i", false, "fill the fields in a form")

	return cmd
}
