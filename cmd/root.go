package cmd

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "dev"

const longRootDescription = `spotlight searches a decoded document (JSON, YAML, TOML, HCL, a SQLite
record table or a source file's syntax tree) for properties by name, kind,
value or filter script, and prints the path of every hit:

  $ spotlight name port -f config.yaml
  <object>.server.port -> (number)

Settings can also come from $HOME/.spotlight.yaml or SPOTLIGHT_* variables.`

// NewRootCommand builds the command tree. Each call returns an independent
// tree with its own settings.
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	root := &cobra.Command{
		Use:           "spotlight",
		Short:         "Find anything in a nested data structure",
		Long:          longRootDescription,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := readConfig(v, cfgFile, cmd.Flags().Changed("config")); err != nil {
				return err
			}
			initLogger(cmd.ErrOrStderr(), v.GetBool("debug"))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.spotlight.yaml)")
	flags.BoolP("debug", "d", false, "log every match as it is found")
	flags.StringP("output", "o", "lines", "output format: lines, table or json")
	flags.String("label", "", "label of the global root when several files are searched (default \"window\")")
	for _, name := range []string{"debug", "output", "label"} {
		_ = v.BindPFlag(name, flags.Lookup(name)) // flags exist
	}
	v.SetEnvPrefix("spotlight")
	v.AutomaticEnv() // read in environment variables that match

	root.AddCommand(newSearchCommands(v)...)
	root.AddCommand(newServeCommand(v))
	return root
}

// readConfig loads the config file. A missing default file is not an error;
// a missing file named with --config is.
func readConfig(v *viper.Viper, cfgFile string, explicit bool) error {
	if cfgFile == "" {
		home, err := homedir.Dir()
		if err != nil {
			logrus.Warnf("failed to get home dir: %v", err)
			return nil
		}
		cfgFile = filepath.Join(home, ".spotlight.yaml")
	}
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return err
	}
	return nil
}

func initLogger(out io.Writer, debug bool) {
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		logrus.Errorf("spotlight-%s: %v", Version, err)
		os.Exit(1)
	}
}
