package commands

import (
	"context"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/internal/form"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newAdvertisementsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "advertisements",
		Aliases: []string{"advertisement", "ads"},
		Short:   "Manage advertisement banners",
	}

	cmd.AddCommand(newListCommand(a, listDef[mobcash.Advertisement]{
		short:  "List advertisements",
		reader: func(c mobcash.Client) mobcash.ListReader[mobcash.Advertisement] { return c.Advertisements() },
		cols: []column[mobcash.Advertisement]{
			{"ID", func(ad mobcash.Advertisement) string { return itoa(ad.ID) }},
			{"Image", func(ad mobcash.Advertisement) string { return ad.Image }},
			{"Enabled", func(ad mobcash.Advertisement) string { return yesNo(ad.Enable) }},
			{"Created", func(ad mobcash.Advertisement) string { return formatTime(ad.CreatedAt) }},
		},
		flags: func(fs *pflag.FlagSet) {
			fs.Bool("enable", false, "only enabled (true) or disabled (false) banners")
		},
		filter: func(fs *pflag.FlagSet) mobcash.Filter {
			return mobcash.AdvertisementFilters{Enable: boolFlag(fs, "enable")}.Filter()
		},
	}))
	cmd.AddCommand(newGetCommand(a, "advertisement", getAdvertisement, advertisementDetails))
	cmd.AddCommand(newAdvertisementsCreateCommand(a))
	cmd.AddCommand(newAdvertisementsUpdateCommand(a))
	cmd.AddCommand(newDeleteCommand(a, "advertisement", func(ctx context.Context, c mobcash.Client, id string) error {
		return c.Advertisements().Delete(ctx, id) //nolint:wrapcheck // notified by the mutation layer
	}))
	cmd.AddCommand(newToggleCommands(a, "advertisement", func(ctx context.Context, c mobcash.Client, id string, enable bool) error {
		_, err := c.Advertisements().Update(ctx, id, &mobcash.AdvertisementPatch{Enable: &enable})

		return err //nolint:wrapcheck // notified by the mutation layer
	})...)

	return cmd
}

func getAdvertisement(ctx context.Context, c mobcash.Client, id string) (*mobcash.Advertisement, error) {
	return c.Advertisements().Get(ctx, id) //nolint:wrapcheck // carries the backend message
}

func advertisementDetails(ad mobcash.Advertisement) []property {
	return []property{
		{"ID", itoa(ad.ID)},
		{"Image", dashIfEmpty(ad.Image)},
		{"Enabled", yesNo(ad.Enable)},
		{"Created", formatTime(ad.CreatedAt)},
	}
}

func newAdvertisementsCreateCommand(a *app) *cobra.Command {
	var (
		image  string
		enable bool
	)

	cmd := &cobra.Command{
		Use:   "create --image FILE",
		Short: "Upload a banner and create an advertisement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dialog := form.NewDialog(form.NewAdvertisementDraft, form.WithRequiredAttachment())

			err := dialog.OpenCreate()
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			draft.Enable = enable

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			var created *mobcash.Advertisement

			err = dialogRun[form.AdvertisementDraft]{
				dialog:   dialog,
				draft:    draft,
				attach:   image,
				uploader: client,
				apply:    form.SetAdvertisementImage,
				send: func(ctx context.Context, d form.AdvertisementDraft) (err error) {
					in := d.Input()

					created, err = client.Advertisements().Create(ctx, &in)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, created, propertyTable(advertisementDetails(*created)))
		},
	}

	cmd.Flags().StringVar(&image, "image", "", "banner file to upload")
	cmd.Flags().BoolVar(&enable, "enable", true, "enable the banner")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func newAdvertisementsUpdateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace the banner or toggle an advertisement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := cmd.Flags()
			if !anyChanged(fs, "image", "enable") {
				return constants.ErrNothingToUpdate
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			orig, err := getAdvertisement(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			dialog := form.NewDialog(form.NewAdvertisementDraft, form.WithRequiredAttachment())

			err = dialog.OpenEdit(form.AdvertisementDraftFrom(*orig))
			if err != nil {
				return err //nolint:wrapcheck // fresh dialog
			}

			draft := dialog.Draft()
			setBool(fs, "enable", &draft.Enable)

			updated := orig
			image, _ := fs.GetString("image")

			err = dialogRun[form.AdvertisementDraft]{
				dialog:   dialog,
				draft:    draft,
				attach:   image,
				uploader: client,
				apply:    form.SetAdvertisementImage,
				send: func(ctx context.Context, d form.AdvertisementDraft) (err error) {
					patch := d.Patch(*orig)
					if patch == (mobcash.AdvertisementPatch{}) {
						return constants.ErrNothingToUpdate
					}

					updated, err = client.Advertisements().Update(ctx, args[0], &patch)

					return err //nolint:wrapcheck // notified by the mutation layer
				},
			}.run(cmd.Context())
			if err != nil {
				return err
			}

			return a.render(cmd, updated, propertyTable(advertisementDetails(*updated)))
		},
	}

	cmd.Flags().String("image", "", "new banner file to upload")
	cmd.Flags().Bool("enable", true, "enable the banner")

	return cmd
}
