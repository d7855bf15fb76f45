package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"enumcodec/internal/match"
)

// command is one node of the CLI tree.
type command struct {
	name    string
	summary string
	usage   string
	// flags returns a fresh flag set; nil means the command takes none.
	flags       func() *pflag.FlagSet
	subcommands []*command
	run         func(args []string) error

	env    *env
	parent *command
}

func (c *command) fullName() string {
	if c.parent == nil {
		return c.name
	}

	return c.parent.fullName() + " " + c.name
}

// Execute parses args and dispatches to a subcommand or run.
func (c *command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.printHelp(c.env.stderr)
		return nil
	}

	if len(c.subcommands) > 0 {
		if len(args) == 0 || strings.HasPrefix(args[0], "-") {
			c.printHelp(c.env.stderr)
			return errors.New("command required")
		}

		names := make([]string, len(c.subcommands))
		for i, sub := range c.subcommands {
			if sub.name == args[0] {
				sub.parent = c
				return sub.Execute(args[1:])
			}

			names[i] = sub.name
		}

		if hint := match.Closest(args[0], names, 2); hint != "" {
			return fmt.Errorf("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
				args[0], hint, c.fullName())
		}

		return fmt.Errorf("unknown command %q\n\nRun '%s --help' for usage.", args[0], c.fullName())
	}

	if c.flags != nil {
		fs := c.flags()
		fs.SetOutput(io.Discard)

		if err := fs.Parse(args); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				c.printHelp(c.env.stderr)
				return nil
			}

			return fmt.Errorf("%w\n\nRun '%s --help' for usage.", err, c.fullName())
		}

		args = fs.Args()
	}

	return c.run(args)
}

func (c *command) printHelp(w io.Writer) {
	if c.summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.summary)
	}

	switch {
	case c.usage != "":
		fmt.Fprintf(w, "Usage:\n  %s\n", c.usage)
	case len(c.subcommands) > 0:
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", c.fullName())
	default:
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", c.fullName())
	}

	if len(c.subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")

		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.name, sub.summary)
		}

		_ = tw.Flush()
	}

	if c.flags != nil {
		var help strings.Builder

		fs := c.flags()
		fs.SetOutput(&help)
		fs.PrintDefaults()

		if help.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", help.String())
		}
	}
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
