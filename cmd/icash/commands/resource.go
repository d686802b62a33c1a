package commands

import (
	"context"
	"fmt"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/internal/form"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// column renders one table column of T.
type column[T any] struct {
	header string
	value  func(T) string
}

// listDef describes the list command of a resource.
type listDef[T any] struct {
	short  string
	reader func(mobcash.Client) mobcash.ListReader[T]
	cols   []column[T]
	flags  func(*pflag.FlagSet)
	filter func(*pflag.FlagSet) mobcash.Filter
}

func newListCommand[T any](a *app, def listDef[T]) *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   def.short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			filter := mobcash.NewFilter()
			if def.filter != nil {
				filter = def.filter(cmd.Flags())
			}

			filter = filter.Page(page).PageSize(pageSize)

			env, err := def.reader(client).List(cmd.Context(), filter)
			if err != nil {
				return err //nolint:wrapcheck // carries the backend message
			}

			return renderList(a, cmd, env, filter, def.cols)
		},
	}

	cmd.Flags().IntVar(&page, "page", mobcash.DefaultPage, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", mobcash.DefaultPageSize, "results per page")

	if def.flags != nil {
		def.flags(cmd.Flags())
	}

	return cmd
}

func renderList[T any](a *app, cmd *cobra.Command, env *mobcash.Envelope[T], filter mobcash.Filter, cols []column[T]) error {
	format, err := a.outputFormat()
	if err != nil {
		return err
	}

	if format != constants.OutputFormatTable {
		return a.render(cmd, env, nil)
	}

	out := cmd.OutOrStdout()

	if len(env.Results) == 0 {
		_, _ = fmt.Fprintln(out, "No results found")

		return nil
	}

	err = a.render(cmd, env, func(t *tablewriter.Table) error {
		headers := make([]any, len(cols))
		for i, c := range cols {
			headers[i] = c.header
		}

		t.Header(headers...)

		for _, item := range env.Results {
			row := make([]any, len(cols))
			for i, c := range cols {
				row[i] = c.value(item)
			}

			err := t.Append(row...)
			if err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	writePageFooter(out, mobcash.NewPageInfo(env, filter))

	return nil
}

func newGetCommand[T any](
	a *app,
	noun string,
	get func(ctx context.Context, client mobcash.Client, id string) (*T, error),
	details func(T) []property,
) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get " + noun + " details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			record, err := get(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			return a.render(cmd, record, propertyTable(details(*record)))
		},
	}
}

func newDeleteCommand(a *app, noun string, del func(ctx context.Context, client mobcash.Client, id string) error) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.confirm(force, fmt.Sprintf("Delete %s %s?", noun, args[0]))
			if err != nil {
				return err
			}

			client, done, err := a.connect(cmd)
			if err != nil {
				return err
			}
			defer done()

			return del(cmd.Context(), client, args[0])
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")

	return cmd
}

// newToggleCommands returns the enable and disable shortcuts of a resource.
func newToggleCommands(a *app, noun string, set func(ctx context.Context, client mobcash.Client, id string, enable bool) error) []*cobra.Command {
	build := func(use, verb string, enable bool) *cobra.Command {
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

				return set(cmd.Context(), client, args[0], enable)
			},
		}
	}

	return []*cobra.Command{build("enable", "Enable", true), build("disable", "Disable", false)}
}

// dialogRun drives an open dialog from command flags to submit.
type dialogRun[D form.Draft] struct {
	dialog   *form.Dialog[D]
	draft    D
	attach   string
	uploader mobcash.Uploader
	apply    func(*D, string)
	send     form.SubmitFunc[D]
}

// run copies the edited draft into the dialog, attaches the file if any and
// submits, uploading first when a file is attached.
func (r dialogRun[D]) run(ctx context.Context) error {
	err := r.dialog.Edit(func(d *D) { *d = r.draft })
	if err != nil {
		return fmt.Errorf("editing draft: %w", err)
	}

	if r.attach != "" {
		err := validateFilePath(r.attach)
		if err != nil {
			return err
		}

		att, err := form.OpenAttachment(r.attach)
		if err != nil {
			return err //nolint:wrapcheck // names the file
		}

		err = r.dialog.Attach(att)
		if err != nil {
			return fmt.Errorf("attaching %s: %w", att.Name, err)
		}
	}

	if r.dialog.Attachment() != nil {
		return r.dialog.UploadThenSubmit(ctx, r.uploader, r.apply, r.send) //nolint:wrapcheck // dialog errors are final
	}

	return r.dialog.Submit(ctx, r.send) //nolint:wrapcheck // dialog errors are final
}
