package commands

import (
	"context"
	"strconv"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newUsersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage application users",
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.User]{
		short:  "List users",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.User] { return c.Users() },
		cols: []column[mobcash.User]{
			{"ID", func(u mobcash.User) string { return u.ID }},
			{"Email", func(u mobcash.User) string { return u.Email }},
			{"Name", func(u mobcash.User) string { return u.FirstName + " " + u.LastName }},
			{"Phone", func(u mobcash.User) string { return orDash(u.Phone) }},
			{"Active", func(u mobcash.User) string { return yesNo(u.IsActive) }},
			{"Blocked", func(u mobcash.User) string { return yesNo(u.IsBlock) }},
			{"Joined", func(u mobcash.User) string { return formatTime(u.DateJoined) }},
		},
		flags: func(fs *pflag.FlagSet) {
			fs.String("search", "", "free-text search")
			fs.Bool("blocked", false, "only blocked (true) or unblocked (false) users")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.UserFilters{
				Search:  stringFlag(fs, "search"),
				IsBlock: boolFlag(fs, "blocked"),
			}.Filter()
		},
	}))
	cmd.AddCommand(newGetCommand(a, "user", getUser, userDetails))
	cmd.AddCommand(newUsersUpdateCommand(a))
	cmd.AddCommand(newDeleteCommand(a, "user", func(ctx context.Context, c mobcash.Client, id string) error {
		return c.Users().Delete(ctx, id) //nolint:wrapcheck // notified by the mutation layer
	}))
	cmd.AddCommand(newBlockCommands(a, "user", func(ctx context.Context, c mobcash.Client, id string, block bool) error {
		_, err := c.Users().Update(ctx, id, &mobcash.UserPatch{IsBlock: &block})

		return err //nolint:wrapcheck // notified by the mutation layer
	})...)

	return cmd
}

func getUser(ctx context.Context, c mobcash.Client, id string) (*mobcash.User, error) {
	return c.Users().Get(ctx, id) //nolint:wrapcheck // carries the backend message
}

func userDetails(u mobcash.User) []property {
	return []property{
		{"ID", u.ID},
		{"Email", u.Email},
		{"First name", u.FirstName},
		{"Last name", u.LastName},
		{"Phone", orDash(u.Phone)},
		{"Active", yesNo(u.IsActive)},
		{"Blocked", yesNo(u.IsBlock)},
		{"Joined", formatTime(u.DateJoined)},
	}
}

func newUsersUpdateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a user",
		Long:  "Update the fields given as flags. Values equal to the current ones are not sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !anyChanged(fs, "first-name", "last-name", "phone", "active", "blocked") {
				return constants.ErrNothingToUpdate
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			orig, err := getUser(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			patch := userPatch(fs, *orig)
			if patch == (mobcash.UserPatch{}) {
				return constants.ErrNothingToUpdate
			}

			updated, err := client.Users().Update(cmd.Context(), args[0], &patch)
			if err != nil {
				return err //nolint:wrapcheck // notified by the mutation layer
			}

			return a.render(cmd, updated, propertyTable(userDetails(*updated)))
		},
	}

	fs := cmd.Flags()
	fs.String("first-name", "", "first name")
	fs.String("last-name", "", "last name")
	fs.String("phone", "", "phone number")
	fs.Bool("active", true, "account active")
	fs.Bool("blocked", false, "account blocked")

	return cmd
}

// userPatch keeps the changed flags whose value differs from orig.
func userPatch(fs *pflag.FlagSet, orig mobcash.User) mobcash.UserPatch {
	var patch mobcash.UserPatch

	if v := stringFlag(fs, "first-name"); v != nil && *v != orig.FirstName {
		patch.FirstName = v
	}

	if v := stringFlag(fs, "last-name"); v != nil && *v != orig.LastName {
		patch.LastName = v
	}

	if v := stringFlag(fs, "phone"); v != nil && (orig.Phone == nil || *v != *orig.Phone) {
		patch.Phone = v
	}

	if v := boolFlag(fs, "active"); v != nil && *v != orig.IsActive {
		patch.IsActive = v
	}

	if v := boolFlag(fs, "blocked"); v != nil && *v != orig.IsBlock {
		patch.IsBlock = v
	}

	return patch
}

func newBotUsersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bot-users",
		Aliases: []string{"bot-user"},
		Short:   "Manage Telegram bot users",
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.BotUser]{
		short:  "List bot users",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.BotUser] { return c.BotUsers() },
		cols: []column[mobcash.BotUser]{
			{"ID", func(u mobcash.BotUser) string { return itoa(u.ID) }},
			{"Telegram ID", func(u mobcash.BotUser) string { return strconv.FormatInt(u.TelegramUserID, 10) }},
			{"First name", func(u mobcash.BotUser) string { return u.FirstName }},
			{"Username", func(u mobcash.BotUser) string { return orDash(u.Username) }},
			{"Blocked", func(u mobcash.BotUser) string { return yesNo(u.IsBlock) }},
			{"Created", func(u mobcash.BotUser) string { return formatTime(u.CreatedAt) }},
		},
		flags: func(fs *pflag.FlagSet) {
			fs.String("search", "", "free-text search")
			fs.Bool("blocked", false, "only blocked (true) or unblocked (false) users")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.UserFilters{
				Search:  stringFlag(fs, "search"),
				IsBlock: boolFlag(fs, "blocked"),
			}.Filter()
		},
	}))
	cmd.AddCommand(newGetCommand(a, "bot user", func(ctx context.Context, c mobcash.Client, id string) (*mobcash.BotUser, error) {
		return c.BotUsers().Get(ctx, id) //nolint:wrapcheck // carries the backend message
	}, botUserDetails))
	cmd.AddCommand(newDeleteCommand(a, "bot user", func(ctx context.Context, c mobcash.Client, id string) error {
		return c.BotUsers().Delete(ctx, id) //nolint:wrapcheck // notified by the mutation layer
	}))
	cmd.AddCommand(newBlockCommands(a, "bot user", func(ctx context.Context, c mobcash.Client, id string, block bool) error {
		_, err := c.BotUsers().Update(ctx, id, &mobcash.BotUserPatch{IsBlock: &block})

		return err //nolint:wrapcheck // notified by the mutation layer
	})...)

	return cmd
}

func botUserDetails(u mobcash.BotUser) []property {
	return []property{
		{"ID", itoa(u.ID)},
		{"Telegram ID", strconv.FormatInt(u.TelegramUserID, 10)},
		{"First name", u.FirstName},
		{"Username", orDash(u.Username)},
		{"Blocked", yesNo(u.IsBlock)},
		{"Created", formatTime(u.CreatedAt)},
	}
}

// newBlockCommands returns the block and unblock shortcuts of an account.
func newBlockCommands(a *app, noun string, set func(ctx context.Context, client mobcash.Client, id string, block bool) error) []*cobra.Command {
	build := func(use, verb string, block bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " ID",
			Short: verb + " a " + noun,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, done, err := a.connect(cmd)
				if err != nil {
					return err
				}
				defer done()

				return set(cmd.Context(), client, args[0], block)
			},
		}
	}

	return []*cobra.Command{build("block", "Block", true), build("unblock", "Unblock", false)}
}
