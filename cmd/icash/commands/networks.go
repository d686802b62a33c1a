package commands

import (
	"context"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/internal/form"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// networkFlagNames are the editable fields of a network.
//
//nolint:gochecknoglobals // flag table
var networkFlagNames = []string{
	"name", "placeholder", "public-name", "country-code", "indication",
	"withdrawal-message", "deposit-api", "withdrawal-api", "payment-by-link",
	"otp-required", "enable", "deposit-message", "active-for-deposit",
	"active-for-withdrawal",
}

func newNetworksCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "networks",
		Aliases: []string{"network", "net"},
		Short:   "Manage mobile-money networks",
		Long:    "List, create, update, enable and delete mobile-money operator configurations",
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.Network]{
		short:  "List networks",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.Network] { return c.Networks() },
		cols: []column[mobcash.Network]{
			{"ID", func(n mobcash.Network) string { return itoa(n.ID) }},
			{"Name", func(n mobcash.Network) string { return n.Name }},
			{"Public name", func(n mobcash.Network) string { return n.PublicName }},
			{"Country", func(n mobcash.Network) string { return n.CountryCode }},
			{"Enabled", func(n mobcash.Network) string { return yesNo(n.Enable) }},
			{"Deposit", func(n mobcash.Network) string { return yesNo(n.ActiveForDeposit) }},
			{"Withdrawal", func(n mobcash.Network) string { return yesNo(n.ActiveForWith) }},
		},
		flags: func(fs *pflag.FlagSet) {
			fs.String("search", "", "free-text search")
			fs.Bool("enable", false, "only enabled (true) or disabled (false) networks")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.NetworkFilters{
				Search: stringFlag(fs, "search"),
				Enable: boolFlag(fs, "enable"),
			}.Filter()
		},
	}))
	cmd.AddCommand(newGetCommand(a, "network", getNetwork, networkDetails))
	cmd.AddCommand(newNetworksCreateCommand(a))
	cmd.AddCommand(newNetworksUpdateCommand(a))
	cmd.AddCommand(newDeleteCommand(a, "network", func(ctx context.Context, c mobcash.Client, id string) error {
		return c.Networks().Delete(ctx, id) //nolint:wrapcheck // notified by the mutation layer
	}))
	cmd.AddCommand(newToggleCommands(a, "network", func(ctx context.Context, c mobcash.Client, id string, enable bool) error {
		_, err := c.Networks().Update(ctx, id, &mobcash.NetworkPatch{Enable: &enable})

		return err //nolint:wrapcheck // notified by the mutation layer
	})...)

	return cmd
}

func getNetwork(ctx context.Context, c mobcash.Client, id string) (*mobcash.Network, error) {
	return c.Networks().Get(ctx, id) //nolint:wrapcheck // carries the backend message
}

func networkDetails(n mobcash.Network) []property {
	return []property{
		{"ID", itoa(n.ID)},
		{"Name", n.Name},
		{"Public name", n.PublicName},
		{"Placeholder", dashIfEmpty(n.Placeholder)},
		{"Country code", n.CountryCode},
		{"Indication", dashIfEmpty(n.Indication)},
		{"Image", dashIfEmpty(n.Image)},
		{"Deposit API", n.DepositAPI},
		{"Withdrawal API", n.WithdrawalAPI},
		{"Deposit message", dashIfEmpty(n.DepositMessage)},
		{"Withdrawal message", orDash(n.WithdrawalMessage)},
		{"Payment by link", yesNo(n.PaymentByLink)},
		{"OTP required", yesNo(n.OTPRequired)},
		{"Enabled", yesNo(n.Enable)},
		{"Active for deposit", yesNo(n.ActiveForDeposit)},
		{"Active for withdrawal", yesNo(n.ActiveForWith)},
		{"Created", formatTime(&n.CreatedAt)},
	}
}

func addNetworkFlags(fs *pflag.FlagSet) {
	fs.String("name", "", "network name")
	fs.String("placeholder", "", "phone number placeholder")
	fs.String("public-name", "", "name shown to users")
	fs.String("country-code", "", "country code, e.g. BJ")
	fs.String("indication", "", "dialing prefix, e.g. 229")
	fs.String("withdrawal-message", "", "message shown on withdrawal")
	fs.String("deposit-api", "", "deposit API name")
	fs.String("withdrawal-api", "", "withdrawal API name")
	fs.Bool("payment-by-link", false, "pay through a payment link")
	fs.Bool("otp-required", false, "require an OTP")
	fs.Bool("enable", true, "enable the network")
	fs.String("deposit-message", "", "message shown on deposit")
	fs.Bool("active-for-deposit", true, "accept deposits")
	fs.Bool("active-for-withdrawal", true, "accept withdrawals")
	fs.String("image", "", "logo file to upload")
}

func applyNetworkFlags(fs *pflag.FlagSet, d *form.NetworkDraft) {
	setString(fs, "name", &d.Name)
	setString(fs, "placeholder", &d.Placeholder)
	setString(fs, "public-name", &d.PublicName)
	setString(fs, "country-code", &d.CountryCode)
	setString(fs, "indication", &d.Indication)
	setString(fs, "withdrawal-message", &d.WithdrawalMessage)
	setString(fs, "deposit-api", &d.DepositAPI)
	setString(fs, "withdrawal-api", &d.WithdrawalAPI)
	setBool(fs, "payment-by-link", &d.PaymentByLink)
	setBool(fs, "otp-required", &d.OTPRequired)
	setBool(fs, "enable", &d.Enable)
	setString(fs, "deposit-message", &d.DepositMessage)
	setBool(fs, "active-for-deposit", &d.ActiveForDeposit)
	setBool(fs, "active-for-withdrawal", &d.ActiveForWith)
}

func newNetworksCreateCommand(a *app) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a network",
		Long:  "Create a network from flags or an interactive form. --image uploads the logo first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialog := form.NewDialog(form.NewNetworkDraft)

			err := dialog.OpenCreate()
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			applyNetworkFlags(cmd.Flags(), &draft)

			if interactive {
				err := a.runForm(networkForm(&draft))
				if err != nil {
					return err
				}
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			var created *mobcash.Network

			image, _ := cmd.Flags().GetString("image")

			err = dialogRun[form.NetworkDraft]{
				dialog:   dialog,
				draft:    draft,
				attach:   image,
				uploader: client,
				apply:    form.SetNetworkImage,
				send: func(ctx context.Context, d form.NetworkDraft) (err error) {
					in := d.Input()

					created, err = client.Networks().Create(ctx, &in)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, created, propertyTable(networkDetails(*created)))
		},
	}

	addNetworkFlags(cmd.Flags())
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "fill the fields in a form")

	return cmd
}

func newNetworksUpdateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a network",
		Long:  "Update the fields given as flags. Only changed fields are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !anyChanged(fs, append(networkFlagNames, "image")...) {
				return constants.ErrNothingToUpdate
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			orig, err := getNetwork(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			dialog := form.NewDialog(form.NewNetworkDraft)

			err = dialog.OpenEdit(form.NetworkDraftFrom(*orig))
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			applyNetworkFlags(fs, &draft)

			updated := orig
			image, _ := fs.GetString("image")

			err = dialogRun[form.NetworkDraft]{
				dialog:   dialog,
				draft:    draft,
				attach:   image,
				uploader: client,
				apply:    form.SetNetworkImage,
				send: func(ctx context.Context, d form.NetworkDraft) (err error) {
					patch := d.Patch(*orig)
					if patch == (mobcash.NetworkPatch{}) {
						return constants.ErrNothingToUpdate
					}

					updated, err = client.Networks().Update(ctx, args[0], &patch)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, updated, propertyTable(networkDetails(*updated)))
		},
	}

	addNetworkFlags(cmd.Flags())

	return cmd
}
