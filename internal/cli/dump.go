package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/keychord/internal/input/keymap"
	"github.com/dshills/keychord/internal/input/mode"
	"github.com/dshills/keychord/internal/input/vim"
)

// modeDump is the YAML form of one mode's command table.
type modeDump struct {
	Name     string        `yaml:"name"`
	Display  string        `yaml:"display"`
	Cursor   string        `yaml:"cursor"`
	Bindings []bindingDump `yaml:"bindings"`
	Actions  []string      `yaml:"actions,omitempty"`
}

type bindingDump struct {
	Keys   string            `yaml:"keys"`
	Action string            `yaml:"action"`
	Args   map[string]string `yaml:"args,omitempty"`
}

// NewDumpCommand creates the dump command.
func NewDumpCommand(root *rootOptions) *cobra.Command {
	var (
		modeName    string
		withActions bool
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the command tables as YAML",
		Long: `Print the command table of every mode, or of one mode, as YAML.
Key remaps from the config file are included.

Examples:
  keychord dump
  keychord dump --mode normal --actions`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := root.setup(cmd, "")
			if err != nil {
				return err
			}
			defer env.session.Close()

			names := env.session.Modes()
			if modeName != "" {
				names = []string{modeName}
			}

			dumps := make([]modeDump, 0, len(names))
			for _, name := range names {
				m := env.session.ModeManager().Get(name)
				if m == nil {
					return fmt.Errorf("%w: %s", mode.ErrUnknownMode, name)
				}
				dumps = append(dumps, dumpMode(m, withActions))
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(dumps)
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", "", "dump only this mode")
	cmd.Flags().BoolVar(&withActions, "actions", false, "also list the actions keys can be remapped to")
	return cmd
}

func dumpMode(m mode.Mode, withActions bool) modeDump {
	d := modeDump{
		Name:    m.Name(),
		Display: m.DisplayName(),
		Cursor:  m.CursorStyle().String(),
	}
	for _, b := range m.Bindings() {
		d.Bindings = append(d.Bindings, bindingDump{
			Keys:   b.Keys,
			Action: b.Target.Name,
			Args:   formatArgs(b.Args),
		})
	}
	if lister, ok := m.(interface{ Actions() []string }); ok && withActions {
		d.Actions = lister.Actions()
	}
	return d
}

// formatArgs renders static arguments the way the config file spells them.
func formatArgs(args keymap.Args) map[string]string {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]string, len(args))
	for name, arg := range args {
		switch v := arg.(type) {
		case vim.Motion:
			out[name] = v.Name
		case rune:
			out[name] = string(v)
		default:
			out[name] = fmt.Sprint(v)
		}
	}
	return out
}
