package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hash-d/jmes/internal/config"
	"github.com/hash-d/jmes/internal/format"
	"github.com/hash-d/jmes/internal/pager"
	"github.com/hash-d/jmes/internal/pipeline"
	"github.com/hash-d/jmes/internal/query"
)

var (
	csvIn  bool
	jsonIn bool
	ldifIn bool
	tomlIn bool
	yamlIn bool

	csvOut   bool
	jsonOut  bool
	tomlOut  bool
	yamlOut  bool
	rawOut   bool
	tableOut bool

	rawFormat string
	noPager   bool
)

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&csvIn, "csv-in", "c", false, "read input as CSV")
	f.BoolVarP(&jsonIn, "json-in", "j", false, "read input as JSON")
	f.BoolVarP(&ldifIn, "ldif-in", "l", false, "read input as LDIF")
	f.BoolVarP(&tomlIn, "toml-in", "t", false, "read input as TOML")
	f.BoolVarP(&yamlIn, "yaml-in", "y", false, "read input as YAML")

	f.BoolVarP(&csvOut, "csv-out", "C", false, "write output as CSV")
	f.BoolVarP(&jsonOut, "json-out", "J", false, "write output as JSON")
	f.BoolVarP(&tomlOut, "toml-out", "T", false, "write output as TOML")
	f.BoolVarP(&yamlOut, "yaml-out", "Y", false, "write output as YAML")
	f.BoolVarP(&rawOut, "raw", "R", false, "write raw text output")
	f.StringVar(&rawFormat, "raw-format", "", "raw output with a per-item fmt directive (implies --raw)")
	f.BoolVar(&tableOut, "table", false, "write output as a rendered table")

	f.BoolVarP(&noPager, "no-pager", "r", false, "never pipe output through a pager")

	rootCmd.MarkFlagsMutuallyExclusive("csv-in", "json-in", "ldif-in", "toml-in", "yaml-in")
	rootCmd.MarkFlagsMutuallyExclusive("csv-out", "json-out", "toml-out", "yaml-out", "raw", "raw-format", "table")
}

var rootCmd = &cobra.Command{
	Use:   "jmes [expression [path]]",
	Short: "Query and convert structured data between JSON, YAML, TOML, CSV, and LDIF",
	Long: `jmes decodes JSON, YAML, TOML, CSV, or LDIF, optionally evaluates a
JSONPath expression over the document, and re-encodes the result.
With no output flag the input format is preserved, so an expression
and/or an output flag is how you convert between formats.

The expression defaults to the identity query. The path defaults to
standard input; a literal "-" also reads standard input. On an
interactive terminal, JSON and YAML output is colorized and piped
through a pager.`,
	Example: `  cat config.yaml | jmes -J
  jmes '$.users[*].name' users.json
  jmes -c --table '' people.csv`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	req := pipeline.Request{
		In:      inputFormat(),
		Out:     outputFormat(),
		RawSpec: rawFormat,
	}
	if len(args) > 0 {
		req.Expression = args[0]
	}
	if len(args) > 1 {
		req.Path = args[1]
	}

	p := &pipeline.Pipeline{
		Eval: query.JSONPath{},
		Sink: &pager.Router{
			Pager:  cfg.Pager,
			Theme:  cfg.Theme,
			Paging: cfg.PagingEnabled() && !noPager,
			Stdout: os.Stdout,
		},
		Log:   newLogger(),
		Stdin: os.Stdin,
	}
	return p.Run(req)
}

func inputFormat() format.Format {
	switch {
	case csvIn:
		return format.CSV
	case jsonIn:
		return format.JSON
	case ldifIn:
		return format.LDIF
	case tomlIn:
		return format.TOML
	case yamlIn:
		return format.YAML
	default:
		return format.Unknown
	}
}

func outputFormat() format.Format {
	switch {
	case csvOut:
		return format.CSV
	case jsonOut:
		return format.JSON
	case tomlOut:
		return format.TOML
	case yamlOut:
		return format.YAML
	case rawOut, rawFormat != "":
		return format.Raw
	case tableOut:
		return format.Table
	default:
		return format.Unknown
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
