package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maxw3st/spotlight"
	"github.com/maxw3st/spotlight/internal/ingest"
	"github.com/maxw3st/spotlight/internal/mcptools"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the searches as MCP tools over stdio",
		Long: `serve starts a Model Context Protocol server on stdin/stdout exposing the
tools by_name, by_kind, by_value and custom. Every tool takes the file to
search, relative to --dir, and its criterion.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working dir: %w", err)
				}
				dir = wd
			}
			h := &mcptools.Handler{
				Loader: newDirLoader(dir),
				Finder: spotlight.New(
					spotlight.WithDebug(v.GetBool("debug")),
					spotlight.WithSink(logrus.WithField("component", "spotlight")),
				),
			}
			logrus.Debugf("serving MCP tools for %s", dir)
			return server.ServeStdio(mcptools.NewServer(h, Version))
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory files are resolved against (default is the working directory)")
	return cmd
}

// newDirLoader reads files named relative to dir.
func newDirLoader(dir string) *ingest.Loader {
	l := newFileLoader()
	l.Resolve = func(name string) (string, error) {
		if filepath.IsAbs(name) {
			return name, nil
		}
		return filepath.Join(dir, name), nil
	}
	return l
}
