package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rickbassham/fitsreport/config"
	"github.com/rickbassham/fitsreport/extract"
	"github.com/rickbassham/fitsreport/fits"
	"github.com/rickbassham/fitsreport/report"
	"github.com/rickbassham/fitsreport/walk"
)

type options struct {
	configPath string
	pattern    string
	exclude    []string
	imageType  string
	keywords   []string
	date       string
	strict     bool
	dryRun     bool
	verify     bool
	debug      bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "fitsreport [root]",
		Short: "Summarize the FITS headers of a night's light frames as CSV",
		Long: `fitsreport walks root (default: the current directory) for .fit files,
reads the primary header of each one and writes the selected keywords of every
LIGHT frame to root/fits_report_<YYYY-MM-DD>.csv.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logger != nil {
				return nil
			}

			cfg := zap.NewProductionConfig()
			if opts.debug {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}

			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd, args)
			if err != nil {
				return err
			}

			return opts.run(cmd.Context(), cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "YAML file with report settings.")
	f.StringVar(&opts.pattern, "pattern", walk.DefaultPattern, "Glob, relative to root, to match files.")
	f.StringArrayVar(&opts.exclude, "exclude", nil, "Glob, relative to root, of files to leave out. May be repeated.")
	f.StringVar(&opts.imageType, "image-type", extract.DefaultImageType, "IMAGETYP value a frame must have to be reported.")
	f.StringSliceVar(&opts.keywords, "keywords", nil, "Comma separated report columns. file_name is the file's base name.")
	f.StringVar(&opts.date, "date", string(report.Last), "Which frame's date names the report: last, earliest or latest.")
	f.BoolVar(&opts.strict, "strict", false, "Abort on the first unreadable file instead of skipping it.")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Print the report instead of writing it.")
	f.BoolVar(&opts.verify, "verify", false, "Read the written report back and check it.")
	f.BoolVar(&opts.debug, "debug", false, "Enable debug logging.")

	return cmd
}

// load layers the config file and then any flags set on the command line
// over the defaults.
func (o *options) load(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

	if o.configPath != "" {
		var err error
		cfg, err = config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
	}

	if len(args) == 1 {
		cfg.Root = args[0]
	}

	f := cmd.Flags()
	if f.Changed("pattern") {
		cfg.Pattern = o.pattern
	}
	if f.Changed("exclude") {
		cfg.Exclude = o.exclude
	}
	if f.Changed("image-type") {
		cfg.ImageType = o.imageType
	}
	if f.Changed("keywords") {
		cfg.Keywords = o.keywords
	}
	if f.Changed("date") {
		cfg.Date = o.date
	}
	if f.Changed("strict") {
		cfg.Strict = o.strict
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (o *options) run(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	log := o.logger
	defer log.Info("done")

	s, err := cfg.Schema()
	if err != nil {
		return err
	}

	policy, err := report.ParseDatePolicy(cfg.Date)
	if err != nil {
		return err
	}

	log.Info("searching for files", zap.String("root", cfg.Root), zap.String("pattern", cfg.Pattern))

	files, err := walk.Find(cfg.Root, cfg.Pattern, cfg.Exclude)
	if err != nil {
		return err
	}

	log.Info("found matching files", zap.Int("count", len(files)))

	ex := extract.New(s,
		extract.WithImageType(cfg.ImageTypeKey, cfg.ImageType),
		extract.WithStrict(cfg.Strict),
		extract.WithLogger(log),
	)

	res, err := ex.Run(ctx, files, fits.ReadFile)
	if err != nil {
		return err
	}

	if len(res.Rows) == 0 {
		log.Info(report.ErrNoFrames.Error(),
			zap.Int("scanned", res.Scanned),
			zap.Int("skipped", len(res.Skipped)),
			zap.String(cfg.ImageTypeKey, cfg.ImageType))
		return nil
	}

	if o.dryRun {
		path, err := report.Path(cfg.Root, res, policy)
		if err != nil {
			return err
		}

		log.Info("dry run; not writing report", zap.String("report", path), zap.Int("rows", len(res.Rows)))

		return report.Write(cmd.OutOrStdout(), s, res.Rows)
	}

	path, err := report.WriteFile(cfg.Root, s, res, policy)
	if err != nil {
		return err
	}

	if o.verify {
		if err := verify(path, len(s), len(res.Rows)); err != nil {
			return err
		}
	}

	log.Info("wrote report",
		zap.String("report", path),
		zap.Int("rows", len(res.Rows)),
		zap.Int("scanned", res.Scanned),
		zap.Int("skipped", len(res.Skipped)))

	return nil
}

func verify(path string, columns, rows int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header, got, err := report.Read(f)
	if err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}

	if len(header) != columns {
		return fmt.Errorf("verify %s: header has %d columns, want %d", path, len(header), columns)
	}

	if len(got) != rows {
		return fmt.Errorf("verify %s: %d rows, want %d", path, len(got), rows)
	}

	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "interrupted")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
