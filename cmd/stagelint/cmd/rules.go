package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/wharflab/stagelint/internal/rules"
)

func rulesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "List the available rules",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output rule metadata as JSON",
			},
			&cli.BoolFlag{
				Name:  "toml",
				Usage: "Output a config file listing every rule at its default severity",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			all := rules.DefaultRegistry().All()
			switch {
			case cmd.Bool("json"):
				return writeRulesJSON(os.Stdout, all)
			case cmd.Bool("toml"):
				return writeRulesTOML(os.Stdout, all)
			default:
				return writeRulesTable(os.Stdout, all)
			}
		},
	}
}

func writeRulesTable(w io.Writer, list []rules.Rule) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tSEVERITY\tDEFAULT\tNAME")
	for _, r := range list {
		meta := r.Metadata()
		enabled := "on"
		if !meta.EnabledByDefault {
			enabled = "off"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", meta.Code, meta.DefaultSeverity, enabled, meta.Name)
	}
	return tw.Flush()
}

func writeRulesJSON(w io.Writer, list []rules.Rule) error {
	metas := make([]rules.RuleMetadata, 0, len(list))
	for _, r := range list {
		metas = append(metas, r.Metadata())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(metas)
}

type tomlRule struct {
	Severity string `toml:"severity"`
}

// writeRulesTOML emits a [rules] table that pins every rule to its default
// severity, as a starting point for .stagelint.toml. Opt-in rules are listed
// under include.
func writeRulesTOML(w io.Writer, list []rules.Rule) error {
	table := map[string]any{}
	var include []string
	for _, r := range list {
		meta := r.Metadata()
		table[meta.Code] = tomlRule{Severity: meta.DefaultSeverity.String()}
		if !meta.EnabledByDefault {
			include = append(include, meta.Code)
		}
	}
	if len(include) > 0 {
		table["include"] = include
	}

	enc := toml.NewEncoder(w)
	enc.SetIndentTables(false)
	return enc.Encode(map[string]any{"rules": table})
}
