package commands

import (
	"context"

	"github.com/codelabbj/icash-admin/internal/form"
	"github.com/codelabbj/icash-admin/internal/stats"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newBonusesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bonuses",
		Aliases: []string{"bonus"},
		Short:   "Browse referral and reward bonuses",
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.Bonus]{
		short:  "List bonuses",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.Bonus] { return c.Bonuses() },
		cols: []column[mobcash.Bonus]{
			{"ID", func(b mobcash.Bonus) string { return itoa(b.ID) }},
			{"User", func(b mobcash.Bonus) string { return b.User }},
			{"Amount", func(b mobcash.Bonus) string { return b.Amount }},
			{"Reason", func(b mobcash.Bonus) string { return b.ReasonBonus }},
			{"Transaction", func(b mobcash.Bonus) string { return orDash(b.Transaction) }},
			{"Created", func(b mobcash.Bonus) string { return formatTime(&b.CreatedAt) }},
		},
		flags: func(fs *pflag.FlagSet) {
			fs.String("search", "", "free-text search")
			fs.String("user", "", "user id")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.BonusFilters{
				Search: stringFlag(fs, "search"),
				User:   stringFlag(fs, "user"),
			}.Filter()
		},
	}))

	return cmd
}

func newTransactionsCommand(a *app) *cobra.Command {
	return newTransactionsGroup(a, "transactions", "Browse and create transactions", mobcash.Client.Transactions, "")
}

func newBotTransactionsCommand(a *app) *cobra.Command {
	return newTransactionsGroup(a, "bot-transactions", "Browse and create Telegram bot transactions",
		mobcash.Client.BotTransactions, mobcash.SourceBot)
}

// newTransactionsGroup builds the list, deposit and withdraw commands over
// one transaction collection. A non-empty source overrides the draft
// default.
func newTransactionsGroup(
	a *app,
	use, short string,
	collection func(mobcash.Client) mobcash.TransactionsClient,
	source string,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.Transaction]{
		short:  "List transactions",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.Transaction] { return collection(c) },
		cols:   transactionColumns(),
		flags: func(fs *pflag.FlagSet) {
			fs.String("search", "", "free-text search")
			fs.String("status", "", "transaction status")
			fs.String("type", "", "deposit or withdrawal")
			fs.String("source", "", "web, mobile or bot")
			fs.Int("network", 0, "network id")
			fs.String("app", "", "platform id")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.TransactionFilters{
				Search:    stringFlag(fs, "search"),
				Status:    stringFlag(fs, "status"),
				TypeTrans: stringFlag(fs, "type"),
				Source:    stringFlag(fs, "source"),
				Network:   intFlag(fs, "network"),
				App:       stringFlag(fs, "app"),
			}.Filter()
		},
	}))
	cmd.AddCommand(newTransactionCreateCommand(a, collection, mobcash.TransactionTypeDeposit, source))
	cmd.AddCommand(newTransactionCreateCommand(a, collection, mobcash.TransactionTypeWithdrawal, source))

	return cmd
}

func transactionColumns() []column[mobcash.Transaction] {
	return []column[mobcash.Transaction]{
		{"Reference", func(t mobcash.Transaction) string { return t.Reference }},
		{"Type", func(t mobcash.Transaction) string { return t.TypeTrans }},
		{"Amount", func(t mobcash.Transaction) string { return stats.FormatCurrency(&t.Amount) }},
		{"Status", func(t mobcash.Transaction) string { return t.Status }},
		{"Phone", func(t mobcash.Transaction) string { return t.PhoneNumber }},
		{"Platform", func(t mobcash.Transaction) string { return t.App }},
		{"Network", func(t mobcash.Transaction) string { return itoa(t.Network) }},
		{"Source", func(t mobcash.Transaction) string { return t.Source }},
		{"Created", func(t mobcash.Transaction) string { return formatTime(t.CreatedAt) }},
	}
}

func transactionDetails(t mobcash.Transaction) []property {
	return []property{
		{"ID", itoa(t.ID)},
		{"Reference", t.Reference},
		{"Type", t.TypeTrans},
		{"Amount", stats.FormatCurrency(&t.Amount)},
		{"Status", t.Status},
		{"Phone", t.PhoneNumber},
		{"Platform", t.App},
		{"Player ID", t.UserAppID},
		{"Network", itoa(t.Network)},
		{"Source", t.Source},
		{"Withdrawal code", orDash(t.WithdrawalCode)},
		{"Created", formatTime(t.CreatedAt)},
	}
}

func newTransactionCreateCommand(
	a *app,
	collection func(mobcash.Client) mobcash.TransactionsClient,
	typeTrans, source string,
) *cobra.Command {
	var interactive bool

	defaults := form.NewDepositTransactionDraft
	use, short := "deposit", "Credit a player account on a platform"

	if typeTrans == mobcash.TransactionTypeWithdrawal {
		defaults = form.NewWithdrawalTransactionDraft
		use, short = "withdraw", "Withdraw from a player account on a platform"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialog := form.NewDialog(func() form.TransactionDraft {
				d := defaults()
				if source != "" {
					d.Source = source
				}

				return d
			})

			err := dialog.OpenCreate()
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			fs := cmd.Flags()
			draft := dialog.Draft()
			setString(fs, "amount", &draft.Amount)
			setString(fs, "phone", &draft.PhoneNumber)
			setString(fs, "app", &draft.App)
			setString(fs, "user-app-id", &draft.UserAppID)
			setString(fs, "network", &draft.Network)
			setString(fs, "source", &draft.Source)
			setString(fs, "code", &draft.WithdrawalCode)

			if interactive {
				err := a.runForm(transactionForm(&draft))
				if err != nil {
					return err
				}
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			var created *mobcash.Transaction

			err = dialogRun[form.TransactionDraft]{
				dialog: dialog,
				draft:  draft,
				send: func(ctx context.Context, d form.TransactionDraft) error {
					if d.Type == mobcash.TransactionTypeWithdrawal {
						in, err := d.WithdrawalInput()
						if err != nil {
							return err
						}

						created, err = collection(client).CreateWithdrawal(ctx, &in)

						return err //nolint:wrapcheck // notified by the mutation layer
					}

					in, err := d.DepositInput()
					if err != nil {
						return err
					}

					created, err = collection(client).CreateDeposit(ctx, &in)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, created, propertyTable(transactionDetails(*created)))
		},
	}

	fs := cmd.Flags()
	fs.String("amount", "", "amount")
	fs.String("phone", "", "mobile-money phone number")
	fs.String("app", "", "platform id")
	fs.String("user-app-id", "", "player identifier on the platform")
	fs.String("network", "", "network id")
	fs.String("source", "", "web, mobile or bot")

	if typeTrans == mobcash.TransactionTypeWithdrawal {
		fs.String("code", "", "withdrawal code issued by the platform")
	}

	fs.BoolVarP(&interactive, "interactive", "i", false, "fill the fields in a form")

	return cmd
}
