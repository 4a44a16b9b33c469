package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/input/key"
)

// NewMatchCommand creates the match command.
func NewMatchCommand(root *rootOptions) *cobra.Command {
	var modeName string

	cmd := &cobra.Command{
		Use:   "match TOKEN...",
		Short: "Feed key tokens to a mode and show what they resolve to",
		Long: `Feed key tokens to a fresh session, one keystroke per token, and print
the match result and editor calls of each.

Examples:
  keychord match 3 d d
  keychord match "2 d 3 w"
  keychord match --mode visual i ( c`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := root.setup(cmd, modeName)
			if err != nil {
				return err
			}
			defer env.session.Close()

			var tokens []string
			for _, arg := range args {
				tokens = append(tokens, strings.Fields(arg)...)
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tRESULT\tMODE\tCALLS")

			var cmdErrs []error
			for _, tok := range tokens {
				kind, err := env.session.HandleToken(cmd.Context(), tok)
				if errors.Is(err, key.ErrInvalidToken) {
					w.Flush()
					return err
				}
				if err != nil {
					cmdErrs = append(cmdErrs, err)
				}
				calls := strings.Join(env.editor.Take(), "; ")
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tok, kind, env.session.Mode(), calls)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if pending := env.session.Pending(); len(pending) > 0 {
				fmt.Fprintf(out, "pending: %s\n", key.Join(pending))
			}
			return errors.Join(cmdErrs...)
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", "", "mode to start in (default from config)")
	return cmd
}
