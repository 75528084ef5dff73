package cmd

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mfbridge/mfbridge/config"
	"github.com/mfbridge/mfbridge/sim"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bridge against a loopback host.",
	Long: "`serve` builds a loopback host from a fixture, attaches the " +
		"bridge and emits frames until the frame limit or an interrupt.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(envFiles...)
		if err != nil {
			return err
		}

		applyServeFlags(cmd.Flags(), &cfg)

		logger := log.New(os.Stderr, "", log.LstdFlags)

		if cfg.Record {
			sim.UseGlobalIDGenerator()
		}

		s, err := newSession(cfg, logger)
		if err != nil {
			return err
		}

		if cfg.Monitor || cfg.OpenBrowser {
			if _, err := s.startMonitor(cfg.OpenBrowser); err != nil {
				logger.Printf("monitor: %v", err)
			}
		}

		stopOnInterrupt(s)

		return errors.Join(s.host.Run(), s.close())
	},
}

func stopOnInterrupt(s *session) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-signals
		s.host.Stop()
	}()
}

// applyServeFlags lets the flags set on the command line override the
// environment.
func applyServeFlags(flags *pflag.FlagSet, cfg *config.Config) {
	flags.Visit(func(f *pflag.Flag) {
		var err error

		switch f.Name {
		case "frame-rate":
			cfg.FrameRate, err = flags.GetFloat64(f.Name)
		case "frames":
			cfg.FrameLimit, err = flags.GetUint64(f.Name)
		case "no-realtime":
			var off bool
			off, err = flags.GetBool(f.Name)
			cfg.RealTime = !off
		case "budget":
			cfg.MaxVarsPerFrame, err = flags.GetInt(f.Name)
		case "grammar":
			cfg.Grammar, err = flags.GetString(f.Name)
		case "default-client":
			cfg.DefaultClient, err = flags.GetString(f.Name)
		case "events":
			cfg.EventFiles, err = flags.GetStringSlice(f.Name)
		case "fixture":
			cfg.Fixture, err = flags.GetString(f.Name)
		case "record":
			cfg.Record, err = flags.GetBool(f.Name)
		case "record-path":
			cfg.RecordPath, err = flags.GetString(f.Name)
			cfg.Record = true
		case "monitor":
			cfg.Monitor, err = flags.GetBool(f.Name)
		case "monitor-port":
			cfg.MonitorPort, err = flags.GetInt(f.Name)
		case "open":
			cfg.OpenBrowser, err = flags.GetBool(f.Name)
		case "verbose":
			cfg.Verbose, err = flags.GetBool(f.Name)
		case "trace-events":
			cfg.TraceEvents, err = flags.GetBool(f.Name)
		}

		if err != nil {
			panic(err)
		}
	})
}

// serveFlags returns the flags of the serve command.
func serveFlags() *pflag.FlagSet {
	f := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	f.Float64("frame-rate", 30, "Frames per second")
	f.Uint64("frames", 0, "Stop after this many frames, 0 runs forever")
	f.Bool("no-realtime", false, "Emit frames as fast as possible")
	f.Int("budget", 30, "Maximum variables evaluated per client per frame")
	f.String("grammar", "default", "Command grammar: default or legacy")
	f.String("default-client", "MobiFlight", "Name of the default client")
	f.StringSlice("events", nil, "Event files, in load order")
	f.String("fixture", "", "YAML file with the host variables")
	f.Bool("record", false, "Record bridge activity into a SQLite file")
	f.String("record-path", "", "Recording file name, implies --record")
	f.Bool("monitor", false, "Serve the HTTP monitor")
	f.Int("monitor-port", 0, "Monitor port, 0 for a random port")
	f.Bool("open", false, "Open the monitor in a browser, implies --monitor")
	f.BoolP("verbose", "v", false, "Log every command, response and write")
	f.Bool("trace-events", false, "Log every event the host runs")

	return f
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().AddFlagSet(serveFlags())
}
