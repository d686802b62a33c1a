package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Common values.
const (
	Yes    = "yes"
	No     = "no"
	Masked = "***"

	defaultJSONIndent = 2
	dateTimeLayout    = "02/01/2006 15:04"
)

func (a *app) outputFormat() (string, error) {
	switch out := strings.ToLower(a.v.GetString("output")); out {
	case "", constants.OutputFormatTable:
		return constants.OutputFormatTable, nil
	case constants.OutputFormatJSON, constants.OutputFormatYAML:
		return out, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrInvalidOutput, out)
	}
}

// render writes value as JSON or YAML, or fills a table with table.
func (a *app) render(cmd *cobra.Command, value any, table func(*tablewriter.Table) error) error {
	format, err := a.outputFormat()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch format {
	case constants.OutputFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("failed to encode as JSON: %w", err)
		}

		return nil
	case constants.OutputFormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(defaultJSONIndent)

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("failed to encode as YAML: %w", err)
		}

		return encoder.Close()
	default:
		t := tablewriter.NewWriter(out)

		err := table(t)
		if err != nil {
			return err
		}

		err = t.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// property is one row of a detail table.
type property struct {
	name  string
	value string
}

func propertyTable(rows []property) func(*tablewriter.Table) error {
	return func(t *tablewriter.Table) error {
		t.Header("Property", "Value")

		for _, row := range rows {
			err := t.Append(row.name, row.value)
			if err != nil {
				return fmt.Errorf("failed to append %s to table: %w", row.name, err)
			}
		}

		return nil
	}
}

func writePageFooter(out io.Writer, info mobcash.PageInfo) {
	if !info.ShowControls {
		return
	}

	_, _ = fmt.Fprintf(out, "\nPage %d of %d (%d results).", info.Page, info.TotalPages, info.TotalCount)

	if info.HasPrevious {
		_, _ = fmt.Fprintf(out, " Use --page %d for the previous page.", info.Page-1)
	}

	if info.HasNext {
		_, _ = fmt.Fprintf(out, " Use --page %d for the next page.", info.Page+1)
	}

	_, _ = fmt.Fprintln(out)
}

func yesNo(b bool) string {
	if b {
		return Yes
	}

	return No
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return constants.MissingValue
	}

	return *s
}

func dashIfEmpty(s string) string {
	if s == "" {
		return constants.MissingValue
	}

	return s
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return constants.MissingValue
	}

	return t.Local().Format(dateTimeLayout)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// Flag readers. A flag the user did not set is left alone.

func stringFlag(fs *pflag.FlagSet, name string) *string {
	if !fs.Changed(name) {
		return nil
	}

	v, _ := fs.GetString(name)

	return &v
}

func boolFlag(fs *pflag.FlagSet, name string) *bool {
	if !fs.Changed(name) {
		return nil
	}

	v, _ := fs.GetBool(name)

	return &v
}

func intFlag(fs *pflag.FlagSet, name string) *int {
	if !fs.Changed(name) {
		return nil
	}

	v, _ := fs.GetInt(name)

	return &v
}

func setString(fs *pflag.FlagSet, name string, dst *string) {
	if v := stringFlag(fs, name); v != nil {
		*dst = *v
	}
}

func setBool(fs *pflag.FlagSet, name string, dst *bool) {
	if v := boolFlag(fs, name); v != nil {
		*dst = *v
	}
}

func anyChanged(fs *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if fs.Changed(name) {
			return true
		}
	}

	return false
}

// validateFilePath validates that a file path given on the command line is
// safe to read.
func validateFilePath(filePath string) error {
	cleanPath := filepath.Clean(filePath)

	if filepath.IsAbs(filePath) {
		if cleanPath != filePath {
			return constants.ErrDirectoryTraversalDetected
		}
	} else if strings.HasPrefix(cleanPath, "..") {
		return constants.ErrDirectoryTraversalDetected
	}

	_, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}

	return nil
}

// runForm runs an interactive form; stdin must be a terminal.
func (a *app) runForm(f *huh.Form) error {
	if !a.terminal() {
		return constants.ErrNotInteractive
	}

	err := f.Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return constants.ErrFormAborted
	}

	if err != nil {
		return fmt.Errorf("running form: %w", err)
	}

	return nil
}

// confirm asks before a destructive action unless force is set.
func (a *app) confirm(force bool, prompt string) error {
	if force {
		return nil
	}

	if !a.terminal() {
		return constants.ErrConfirmationRequired
	}

	var ok bool

	err := a.runForm(huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(prompt).Affirmative(Yes).Negative(No).Value(&ok),
	)))
	if err != nil {
		return err
	}

	if !ok {
		return constants.ErrFormAborted
	}

	return nil
}

// slogLogger backs mobcash.Logger with a slog text handler. It serves
// --verbose.
type slogLogger struct {
	logger *slog.Logger
}

func newStderrLogger(out io.Writer) *slogLogger {
	return &slogLogger{
		logger: slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
}

func (l *slogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *slogLogger) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *slogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *slogLogger) Error(msg string, fields map[string]interface{}) {
	l.log(slog.LevelError, msg, fields)
}

// log emits fields sorted by key.
func (l *slogLogger) log(level slog.Level, msg string, fields map[string]interface{}) {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		attrs = append(attrs, slog.Any(key, fields[key]))
	}

	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
