package commands

import (
	"context"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/internal/form"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newCouponsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "coupons",
		Aliases: []string{"coupon"},
		Short:   "Manage promotional coupons",
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.Coupon]{
		short:  "List coupons",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.Coupon] { return c.Coupons() },
		cols: []column[mobcash.Coupon]{
			{"ID", func(c mobcash.Coupon) string { return itoa(c.ID) }},
			{"Code", func(c mobcash.Coupon) string { return c.Code }},
			{"Platform", func(c mobcash.Coupon) string { return c.BetApp }},
			{"Enabled", func(c mobcash.Coupon) string { return yesNo(c.Enable) }},
			{"Created", func(c mobcash.Coupon) string { return formatTime(c.CreatedAt) }},
		},
		flags: func(fs *pflag.FlagSet) {
			fs.String("search", "", "free-text search")
			fs.String("bet-app", "", "platform id")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.CouponFilters{
				Search: stringFlag(fs, "search"),
				BetApp: stringFlag(fs, "bet-app"),
			}.Filter()
		},
	}))
	cmd.AddCommand(newGetCommand(a, "coupon", getCoupon, couponDetails))
	cmd.AddCommand(newCouponsCreateCommand(a))
	cmd.AddCommand(newCouponsUpdateCommand(a))
	cmd.AddCommand(newDeleteCommand(a, "coupon", func(ctx context.Context, c mobcash.Client, id string) error {
		return c.Coupons().Delete(ctx, id) //nolint:wrapcheck // notified by the mutation layer
	}))

	return cmd
}

func getCoupon(ctx context.Context, c mobcash.Client, id string) (*mobcash.Coupon, error) {
	return c.Coupons().Get(ctx, id) //nolint:wrapcheck // carries the backend message
}

func couponDetails(c mobcash.Coupon) []property {
	return []property{
		{"ID", itoa(c.ID)},
		{"Code", c.Code},
		{"Platform", c.BetApp},
		{"Enabled", yesNo(c.Enable)},
		{"Created", formatTime(c.CreatedAt)},
	}
}

func addCouponFlags(fs *pflag.FlagSet) {
	fs.String("code", "", "coupon code")
	fs.String("bet-app", "", "platform id")
	fs.Bool("enable", true, "enable the coupon")
}

func applyCouponFlags(fs *pflag.FlagSet, d *form.CouponDraft) {
	setString(fs, "code", &d.Code)
	setString(fs, "bet-app", &d.BetApp)
	setBool(fs, "enable", &d.Enable)
}

func newCouponsCreateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a coupon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialog := form.NewDialog(form.NewCouponDraft)

			err := dialog.OpenCreate()
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			applyCouponFlags(cmd.Flags(), &draft)

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			var created *mobcash.Coupon

			err = dialogRun[form.CouponDraft]{
				dialog: dialog,
				draft:  draft,
				send: func(ctx context.Context, d form.CouponDraft) (err error) {
					in := d.Input()

					created, err = client.Coupons().Create(ctx, &in)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, created, propertyTable(couponDetails(*created)))
		},
	}

	addCouponFlags(cmd.Flags())

	return cmd
}

func newCouponsUpdateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a coupon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !anyChanged(fs, "code", "bet-app", "enable") {
				return constants.ErrNothingToUpdate
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			orig, err := getCoupon(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			dialog := form.NewDialog(form.NewCouponDraft)

			err = dialog.OpenEdit(form.CouponDraftFrom(*orig))
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			applyCouponFlags(fs, &draft)

			updated := orig

			err = dialogRun[form.CouponDraft]{
				dialog: dialog,
				draft:  draft,
				send: func(ctx context.Context, d form.CouponDraft) (err error) {
					patch := d.Patch(*orig)
					if patch == (mobcash.CouponPatch{}) {
						return constants.ErrNothingToUpdate
					}

					updated, err = client.Coupons().Update(ctx, args[0], &patch)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, updated, propertyTable(couponDetails(*updated)))
		},
	}

	addCouponFlags(cmd.Flags())

	return cmd
}
