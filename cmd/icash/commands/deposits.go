package commands

import (
	"context"

	"github.com/codelabbj/icash-admin/internal/form"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newDepositsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deposits",
		Aliases: []string{"deposit"},
		Short:   "Manage platform cash desk deposits",
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.Deposit]{
		short:  "List platform deposits",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.Deposit] { return c.Deposits() },
		cols: []column[mobcash.Deposit]{
			{"ID", func(d mobcash.Deposit) string { return itoa(d.ID) }},
			{"Platform", func(d mobcash.Deposit) string { return d.BetApp.Name }},
			{"Amount", func(d mobcash.Deposit) string { return d.Amount }},
			{"Created", func(d mobcash.Deposit) string { return formatTime(&d.CreatedAt) }},
		},
		flags: func(fs *pflag.FlagSet) {
			fs.String("search", "", "free-text search")
			fs.String("bet-app", "", "platform id")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.DepositFilters{
				Search: stringFlag(fs, "search"),
				BetApp: stringFlag(fs, "bet-app"),
			}.Filter()
		},
	}))
	cmd.AddCommand(newDepositsCreateCommand(a))
	cmd.AddCommand(newCaissesCommand(a))

	return cmd
}

func newDepositsCreateCommand(a *app) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Fund a platform cash desk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialog := form.NewDialog(func() form.DepositDraft { return form.DepositDraft{} })

			err := dialog.OpenCreate()
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			setString(cmd.Flags(), "amount", &draft.Amount)
			setString(cmd.Flags(), "bet-app", &draft.BetApp)

			if interactive {
				err := a.runForm(depositForm(&draft))
				if err != nil {
					return err
				}
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			var created *mobcash.Deposit

			err = dialogRun[form.DepositDraft]{
				dialog: dialog,
				draft:  draft,
				send: func(ctx context.Context, d form.DepositDraft) error {
					in, err := d.Input()
					if err != nil {
						return err
					}

					created, err = client.Deposits().Create(ctx, &in)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, created, propertyTable([]property{
				{"ID", itoa(created.ID)},
				{"Platform", created.BetApp.Name},
				{"Amount", created.Amount},
				{"Created", formatTime(&created.CreatedAt)},
			}))
		},
	}

	cmd.Flags().String("amount", "", "amount to deposit")
	cmd.Flags().String("bet-app", "", "platform id")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "fill the fields in a form")

	return cmd
}

func newCaissesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "caisses",
		Aliases: []string{"balances"},
		Short:   "Show the cash desk balance of every platform",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			env, err := client.Deposits().Caisses(cmd.Context())
			if err != nil {
				return err //nolint:wrapcheck // carries the backend message
			}

			return renderList(a, cmd, env, mobcash.DefaultListFilter(), []column[mobcash.Caisse]{
				{"Platform", func(c mobcash.Caisse) string { return c.BetApp.Name }},
				{"Balance", func(c mobcash.Caisse) string { return c.Solde }},
				{"Updated", func(c mobcash.Caisse) string { return formatTime(c.UpdatedAt) }},
			})
		},
	}
}

func newRechargesCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recharges",
		Aliases: []string{"recharge"},
		Short:   "Browse and submit account recharges",
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.Recharge]{
		short:  "List recharges",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.Recharge] { return c.Recharges() },
		cols: []column[mobcash.Recharge]{
			{"ID", func(r mobcash.Recharge) string { return itoa(r.ID) }},
			{"Amount", func(r mobcash.Recharge) string { return r.Amount }},
			{"Method", func(r mobcash.Recharge) string { return r.PaymentMethod }},
			{"Reference", func(r mobcash.Recharge) string { return r.PaymentReference }},
			{"Status", func(r mobcash.Recharge) string { return r.Status }},
			{"Proof", func(r mobcash.Recharge) string { return orDash(r.PaymentProof) }},
			{"Created", func(r mobcash.Recharge) string { return formatTime(r.CreatedAt) }},
		},
		flags: func(fs *pflag.FlagSet) {
			fs.String("status", "", "recharge status")
			fs.String("method", "", "bank_transfer, mobile_money, card or cash")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.RechargeFilters{
				Status:        stringFlag(fs, "status"),
				PaymentMethod: stringFlag(fs, "method"),
			}.Filter()
		},
	}))
	cmd.AddCommand(newRechargesCreateCommand(a))

	return cmd
}

func newRechargesCreateCommand(a *app) *cobra.Command {
	var (
		interactive bool
		proof       string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a recharge request",
		Long:  "Submit a recharge request. --proof uploads the payment receipt before the request is sent.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialog := form.NewDialog(form.NewRechargeDraft)

			err := dialog.OpenCreate()
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			fs := cmd.Flags()
			draft := dialog.Draft()
			setString(fs, "amount", &draft.Amount)
			setString(fs, "method", &draft.PaymentMethod)
			setString(fs, "reference", &draft.PaymentReference)
			setString(fs, "notes", &draft.Notes)

			if interactive {
				err := a.runForm(rechargeForm(&draft))
				if err != nil {
					return err
				}
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			var created *mobcash.Recharge

			err = dialogRun[form.RechargeDraft]{
				dialog:   dialog,
				draft:    draft,
				attach:   proof,
				uploader: client,
				apply:    form.SetPaymentProof,
				send: func(ctx context.Context, d form.RechargeDraft) error {
					in, err := d.Input()
					if err != nil {
						return err
					}

					created, err = client.Recharges().Create(ctx, &in)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, created, propertyTable([]property{
				{"ID", itoa(created.ID)},
				{"Amount", created.Amount},
				{"Method", created.PaymentMethod},
				{"Reference", created.PaymentReference},
				{"Notes", dashIfEmpty(created.Notes)},
				{"Proof", orDash(created.PaymentProof)},
				{"Status", created.Status},
				{"Created", formatTime(created.CreatedAt)},
			}))
		},
	}

	fs := cmd.Flags()
	fs.String("amount", "", "amount to recharge")
	fs.String("method", mobcash.PaymentMethodMobileMoney, "bank_transfer, mobile_money, card or cash")
	fs.String("reference", "", "payment reference")
	fs.String("notes", "", "free notes")
	fs.StringVar(&proof, "proof", "", "payment receipt file to upload")
	fs.BoolVarP(&interactive, "interactive", "i", false, "fill the fields in a form")

	return cmd
}
