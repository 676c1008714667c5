package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"celeste-saves/internal/config"
	"celeste-saves/internal/discovery"
	"celeste-saves/internal/graph"
	"celeste-saves/internal/history"
	"celeste-saves/internal/report"
	"celeste-saves/internal/save"
	"celeste-saves/internal/textutil"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// extractFunc turns a save file into a summary.
type extractFunc func(path string) (*save.Summary, error)

// options holds the global flags shared by every command.
type options struct {
	dir     string
	verbose bool
}

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "celeste-saves",
		Short: "Summarise Celeste save files",
		Long:  "Finds Celeste save slots on this machine and prints a progress summary for each of them.",
		Args:  cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts.verbose)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "Read save slots from this directory instead of the game's default location")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging")

	show := showCmd(opts, in, out)
	rootCmd.Flags().AddFlagSet(show.Flags())
	rootCmd.RunE = show.RunE

	rootCmd.AddCommand(show)
	rootCmd.AddCommand(listCmd(opts, out))
	rootCmd.AddCommand(recordCmd(opts, out))
	rootCmd.AddCommand(historyCmd(out))
	rootCmd.AddCommand(graphCmd(opts))

	return rootCmd
}

func setupLogging(verbose bool) {
	level, err := zerolog.ParseLevel(config.Load().LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}

func showCmd(opts *options, in io.Reader, out io.Writer) *cobra.Command {
	var noPause bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a progress summary for every save slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, in, out, noPause, save.ExtractFile)
		},
	}

	cmd.Flags().BoolVar(&noPause, "no-pause", false, "Do not wait for enter between saves")

	return cmd
}

func listCmd(opts *options, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the save files that were found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			for _, c := range locator(cfg, opts).Candidates() {
				fmt.Fprintf(out, "%d\t%s\n", c.Slot, c.Path)
			}
			return nil
		},
	}
}

func recordCmd(opts *options, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "record",
		Short: "Store a snapshot of every save slot in PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(opts, out)
		},
	}
}

func historyCmd(out io.Writer) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(out, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of snapshots to show (default HISTORY_LIMIT)")

	return cmd
}

func graphCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Export player and chapter progress into Neo4j",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(opts)
		},
	}
}

// setupContext creates a context cancelled on SIGINT or SIGTERM.
func setupContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func locator(cfg *config.Config, opts *options) discovery.Locator {
	l := discovery.Locator{
		Home:     cfg.Home,
		DataHome: cfg.DataHome,
		SaveDir:  cfg.SaveDir,
	}
	if opts.dir != "" {
		l.SaveDir = opts.dir
	}
	return l
}

// runShow handles the default `show` command.
func runShow(opts *options, in io.Reader, out io.Writer, noPause bool, extract extractFunc) error {
	cfg := config.Load()
	pause := cfg.Pause && !noPause

	fmt.Fprintln(out, "Loading Save Files!")

	saves := locator(cfg, opts).Locate()

	fmt.Fprintf(out, "Loaded %d saves!\n\n", len(saves))

	printer := report.NewPrinter(out, cfg.NoColor)
	input := bufio.NewReader(in)

	for i, path := range saves {
		summary, err := extract(path)
		if err != nil {
			log.Debug().Err(err).Msg("Extraction failed")
			fmt.Fprintln(out, "Failed to read file!")
			return nil
		}

		if err := printer.Print(i+1, summary); err != nil {
			return fmt.Errorf("print summary: %w", err)
		}

		if pause {
			if err := report.WaitForEnter(input, out); err != nil {
				return fmt.Errorf("wait for input: %w", err)
			}
		}
	}

	return nil
}

// runRecord handles the `record` command.
func runRecord(opts *options, out io.Writer) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	pool, err := connectPostgres(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := history.NewStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	recorded := 0
	saves := locator(cfg, opts).Locate()
	for _, path := range saves {
		summary, err := save.ExtractFile(path)
		if err != nil {
			return fmt.Errorf("extract %s: %w", path, err)
		}

		inserted, err := store.Record(ctx, path, summary)
		if err != nil {
			return err
		}
		if inserted {
			recorded++
		}
	}

	fmt.Fprintf(out, "Recorded %d of %d saves\n", recorded, len(saves))
	return nil
}

// runHistory handles the `history` command.
func runHistory(out io.Writer, limit int) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if limit <= 0 {
		limit = cfg.HistoryLimit
	}

	pool, err := connectPostgres(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	snapshots, err := history.NewStore(pool).List(ctx, limit)
	if err != nil {
		return err
	}

	for _, snap := range snapshots {
		fmt.Fprintf(out, "%s\t%s\t%s\t%d+%d\t%d deaths\t%s\n",
			snap.RecordedAt.Local().Format("2006-01-02 15:04"),
			textutil.Truncate(snap.PlayerName, 20),
			snap.Version,
			max(snap.Strawberries-snap.GoldenStrawberries, 0),
			snap.GoldenStrawberries,
			snap.Deaths,
			snap.SavePath,
		)
	}
	return nil
}

// runGraph handles the `graph` command.
func runGraph(opts *options) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	driver, err := connectNeo4j(ctx, cfg)
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	pg := graph.NewProgressGraph(driver)
	if err := pg.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure graph schema: %w", err)
	}

	saves := locator(cfg, opts).Locate()
	for _, path := range saves {
		summary, err := save.ExtractFile(path)
		if err != nil {
			return fmt.Errorf("extract %s: %w", path, err)
		}
		if err := pg.Upsert(ctx, path, summary); err != nil {
			return err
		}
	}

	log.Info().Int("saves", len(saves)).Msg("Graph export complete")
	return nil
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Debug().Msg("Connected to PostgreSQL")

	return pool, nil
}

func connectNeo4j(ctx context.Context, cfg *config.Config) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Debug().Msg("Connected to Neo4j")

	return driver, nil
}
