package cmd

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maxw3st/spotlight"
	"github.com/maxw3st/spotlight/api"
	"github.com/maxw3st/spotlight/internal/ingest"
	"github.com/maxw3st/spotlight/internal/query"
)

type searchSpec struct {
	op      query.Op
	use     string
	short   string
	example string
}

var searchSpecs = []searchSpec{
	{
		op:      query.ByName,
		use:     "name NAME",
		short:   "Find every property called NAME",
		example: "  spotlight name port -f config.yaml",
	},
	{
		op:    query.ByKind,
		use:   "kind KIND",
		short: "Find every value of a kind or type name",
		example: `  spotlight kind array -f data.json
  spotlight kind null -f data.json`,
	},
	{
		op:    query.ByValue,
		use:   "value LITERAL",
		short: "Find every slot strictly equal to a JSON literal",
		example: `  spotlight value 12 -f data.json      # the number 12
  spotlight value '"12"' -f data.json  # the string "12"`,
	},
	{
		op:      query.Custom,
		use:     "custom SCRIPT",
		short:   "Find every slot matching a JSONPath filter over @.key and @.value",
		example: `  spotlight custom "(@.key == 'id' && @.value > 100)" -f data.json`,
	},
}

func newSearchCommands(v *viper.Viper) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(searchSpecs))
	for _, spec := range searchSpecs {
		var (
			files []string
			path  string
		)
		cmd := &cobra.Command{
			Use:     spec.use,
			Short:   spec.short,
			Example: spec.example,
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var label *string
				if cmd.Flags().Changed("path") {
					label = api.Label(path)
				}
				return runSearch(cmd, v, spec.op, args[0], files, label)
			},
		}
		cmd.Flags().StringArrayVarP(&files, "file", "f", nil, "file to search (repeatable)")
		cmd.Flags().StringVarP(&path, "path", "p", "", "label prepended to every hit")
		_ = cmd.MarkFlagRequired("file") // flag exists
		cmds = append(cmds, cmd)
	}
	return cmds
}

func runSearch(cmd *cobra.Command, v *viper.Viper, op query.Op, criterion string, files []string, label *string) error {
	doc, err := newFileLoader().LoadAll(cmd.Context(), files)
	if err != nil {
		return err
	}

	finderOpts := []spotlight.Option{
		spotlight.WithDebug(v.GetBool("debug")),
		spotlight.WithSink(logrus.WithField("component", "spotlight")),
	}
	opts := api.SearchOptions{Path: label}
	if len(files) > 1 {
		// several files form the global root
		finderOpts = append(finderOpts, spotlight.WithGlobal(doc, v.GetString("label")))
	} else {
		opts.Object = doc
	}

	matches, err := query.Run(spotlight.New(finderOpts...), query.Request{
		Op:        op,
		Criterion: criterion,
		Options:   opts,
	})
	if err != nil {
		return err
	}
	logrus.Debugf("%d matches for %s %q", len(matches), op, criterion)
	return query.Render(cmd.OutOrStdout(), matches, v.GetString("output"))
}

// newFileLoader reads from the host filesystem. Names may be relative to
// the working directory or absolute.
func newFileLoader() *ingest.Loader {
	l := ingest.NewLoader(osfs.New(string(filepath.Separator)))
	l.Resolve = filepath.Abs
	return l
}
