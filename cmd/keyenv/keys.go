package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"keyenv/internal/app"
	core "keyenv/internal/core"
	"keyenv/internal/providers"
	"keyenv/internal/util"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"list"},
	Short:   "Show which provider keys are configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := app.New(cfg)
		rows, err := svc.Status()
		out := cmd.OutOrStdout()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		}
		fmt.Fprintf(out, "File: %s\n", svc.Path)
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("PROVIDER", "KEY", "STATUS", "VALUE")
		for _, r := range rows {
			state := "missing"
			if r.Configured() {
				state = "set"
				if r.Source == core.SourceAlias {
					state = "set (legacy)"
				}
			}
			t.Row(string(r.Descriptor.ID), r.Key(), state, util.Mask(r.Value))
		}
		fmt.Fprintln(out, t.String())
		return nil
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported providers and their keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, d := range providers.All() {
			prefix := d.RequiredPrefix
			if prefix == "" {
				prefix = "-"
			}
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%s\n", d.ID, d.DisplayName, d.CanonicalKey, d.LegacyAliasKey, prefix)
		}
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <provider> <key>",
	Short: "Validate and save the API key of one provider",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := providers.Lookup(args[0])
		if err != nil {
			return fmt.Errorf("%w (known: %s)", err, strings.Join(providers.IDs(), ", "))
		}
		svc := app.New(cfg)
		form, lerr := svc.Form()
		warnRead(cmd.ErrOrStderr(), lerr)
		form.Set(d.ID, args[1])
		return commit(cmd, svc, form)
	},
}

var unsetCmd = &cobra.Command{
	Use:   "unset <provider>",
	Short: "Remove the API key of one provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := providers.Lookup(args[0])
		if err != nil {
			return err
		}
		svc := app.New(cfg)
		form, lerr := svc.Form()
		warnRead(cmd.ErrOrStderr(), lerr)
		form.Set(d.ID, "")
		return commit(cmd, svc, form)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <dotenv-file>",
	Short: "Copy provider keys from another dotenv file",
	Long: `import reads a dotenv file (quotes and "export" prefixes allowed), picks the
keys of known providers (canonical or legacy names) and saves them under the
canonical names. Other keys in that file are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := app.New(cfg)
		form, lerr := svc.Form()
		warnRead(cmd.ErrOrStderr(), lerr)
		form, picked, err := svc.ImportDotenv(args[0], form)
		if err != nil {
			return err
		}
		if len(picked) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no provider keys found")
			return nil
		}
		names := make([]string, len(picked))
		for i, id := range picked {
			names[i] = string(id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "found: %s\n", strings.Join(names, ", "))
		return commit(cmd, svc, form)
	},
}

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Start the startup script with the saved keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := app.New(cfg)
		m, err := svc.Load()
		warnRead(cmd.ErrOrStderr(), err)
		if err := svc.Launch(m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "launched %s\n", svc.Launcher.Script)
		return nil
	},
}

// commit previews or saves form and prints the diff.
func commit(cmd *cobra.Command, svc *app.Service, form core.FormState) error {
	out := cmd.OutOrStdout()
	dry, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")
	if dry {
		res, err := svc.Preview(form)
		if err != nil {
			return err
		}
		fmt.Fprint(out, core.Diff(res.Changes))
		if res.NeedsConfirmation() {
			fmt.Fprintln(out, "note: this would leave the file empty (needs --yes)")
		}
		return nil
	}
	res, err := svc.Save(form, yes)
	if errors.Is(err, core.ErrConfirmationRequired) {
		fmt.Fprint(out, core.Diff(res.Changes))
		return fmt.Errorf("saving would remove every key from %s; re-run with --yes", svc.Path)
	}
	if err != nil {
		return err
	}
	fmt.Fprint(out, core.Diff(res.Changes))
	fmt.Fprintf(out, "saved %s\n", svc.Path)
	return nil
}

func warnRead(w io.Writer, err error) {
	if err != nil {
		fmt.Fprintf(w, "warning: %v\n", err)
	}
}

func init() {
	for _, c := range []*cobra.Command{setCmd, unsetCmd, importCmd} {
		c.Flags().Bool("dry-run", false, "do not write, only show the diff")
		c.Flags().Bool("yes", false, "confirm saving even if the file ends up empty")
	}
	rootCmd.AddCommand(statusCmd, providersCmd, setCmd, unsetCmd, importCmd, launchCmd)
}
