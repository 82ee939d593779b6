package cmd

import (
	"fmt"
	"os"

	"github.com/rustyeddy/cryptotax/config"
	"github.com/rustyeddy/cryptotax/internal/logging"
	"github.com/rustyeddy/cryptotax/market"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cryptotax",
	Short: "FIFO capital gains calculator for cryptocurrency trade logs",
	Long: `cryptotax replays a chronological trade log through per-currency FIFO
lot queues and reports realized sales, long- and short-term proceeds and the
holdings left over.

Running cryptotax without a subcommand prints the full report.

Examples:
  cryptotax -f trades.txt
  cryptotax proceeds -f trades.txt -l "2020-01-01 00:00:00+00:00" -r "2021-01-01 00:00:00+00:00"
  cryptotax export --type sqlite --db tax.sqlite`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runReport,
}

var (
	cfgFile   string
	inputFile string
	timeFrom  string
	timeTo    string
	logLevel  string
	tzName    string

	cfg *config.Config
	log *logrus.Logger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "path to config file (optional)")
	pf.StringVarP(&inputFile, "file", "f", "", "trade log to read (default input.txt)")
	pf.StringVarP(&timeFrom, "time-from", "l", "", `report window start, e.g. "2020-01-01 00:00:00+00:00"`)
	pf.StringVarP(&timeTo, "time-to", "r", "", "report window end (exclusive)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&tzName, "tz", "", "IANA time zone for day boundaries and holding periods (default UTC)")
}

// setup resolves the effective configuration: flags over environment over
// config file over defaults.
func setup(cmd *cobra.Command, args []string) error {
	c := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}
		c = loaded
	}
	if err := c.LoadEnv(); err != nil {
		return err
	}

	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"file":      &c.InputFile,
		"time-from": &c.TimeFrom,
		"time-to":   &c.TimeTo,
		"log-level": &c.LogLevel,
		"tz":        &c.Timezone,
	} {
		if flags.Changed(name) {
			v, err := flags.GetString(name)
			if err != nil {
				return err
			}
			*dst = v
		}
	}

	logger, err := logging.NewWithOutput(c.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	loc, err := c.Location()
	if err != nil {
		return err
	}
	market.SetLocation(loc)

	cfg, log = c, logger
	log.WithFields(logrus.Fields{
		"file":     c.InputFile,
		"timezone": loc.String(),
	}).Debug("configuration resolved")
	return nil
}
