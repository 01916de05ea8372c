package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_ytmoment/internal/engine"
	"github.com/anatolykoptev/go_ytmoment/internal/momentserver"
	"github.com/anatolykoptev/go_ytmoment/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

const (
	promptURL       = "\nEnter the youtube video url:"
	promptTimestamp = "\nEnter the timestamp in the video in the format mm:ss or m:ss : "
)

type analyzerFactory func(engine.Config) *engine.Analyzer

// cli holds flag state for one command tree.
type cli struct {
	cfg         engine.Config
	newAnalyzer analyzerFactory

	verbose   bool
	quiet     bool
	jsonOut   bool
	explain   bool
	tolerance float64
}

func newRootCmd(cfg engine.Config, newAnalyzer analyzerFactory) *cobra.Command {
	c := &cli{cfg: cfg, newAnalyzer: newAnalyzer}

	root := &cobra.Command{
		Use:          "go_ytmoment",
		Short:        "Show or explain what is said around a moment in a YouTube video",
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Long: `go_ytmoment fetches the captions of a YouTube video and returns the cues
spoken within a few seconds of a given mm:ss timestamp. With --explain, an
OpenAI-compatible model explains that excerpt in the context of the whole video.

Run without a subcommand to be prompted for the URL and timestamp.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.setupLogging(cmd.ErrOrStderr())
		},
		RunE: c.runInteractive,
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().BoolVarP(&c.quiet, "quiet", "q", false, "suppress non-error output")
	root.PersistentFlags().Float64Var(&c.tolerance, "tolerance", 0, "seconds before and after the timestamp, 0 for the exact second (default from WINDOW_TOLERANCE, else 3)")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "print the result as JSON")
	root.Flags().BoolVar(&c.explain, "explain", false, "explain the excerpt with the LLM")

	root.AddCommand(
		c.oneShotCmd("window", "Print the captions around a timestamp", false),
		c.oneShotCmd("explain", "Explain the captions around a timestamp in the context of the whole video", true),
		c.serveCmd(),
	)
	return root
}

// setupLogging sends slog output to w. Flags override LOG_LEVEL.
func (c *cli) setupLogging(w io.Writer) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(env.Str("LOG_LEVEL", "warn"))); err != nil {
		level = slog.LevelWarn
	}
	if c.verbose {
		level = slog.LevelDebug
	}
	if c.quiet {
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func (c *cli) oneShotCmd(name, short string, explain bool) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <url> <mm:ss>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.run(cmd, engine.Request{URL: args[0], Timestamp: args[1], Explain: explain})
			return nil
		},
	}
}

func (c *cli) runInteractive(cmd *cobra.Command, _ []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	fmt.Fprint(out, promptURL)
	url, err := readLine(in)
	if err != nil {
		return fmt.Errorf("read url: %w", err)
	}
	fmt.Fprint(out, promptTimestamp)
	ts, err := readLine(in)
	if err != nil {
		return fmt.Errorf("read timestamp: %w", err)
	}
	fmt.Fprintln(out)

	c.run(cmd, engine.Request{URL: url, Timestamp: ts, Explain: c.explain})
	return nil
}

// readLine returns one line without its terminator. A final line without a
// newline is accepted.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// run analyzes req and prints one block to stdout. Domain errors are printed,
// not returned, so the process exits 0.
func (c *cli) run(cmd *cobra.Command, req engine.Request) {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if c.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.RequestTimeout)
		defer cancel()
	}

	if cmd.Flags().Changed("tolerance") {
		tol := c.tolerance
		req.Tolerance = &tol
	}

	start := time.Now()
	res, err := c.newAnalyzer(c.cfg).Analyze(ctx, req)
	slog.Debug("analyze done",
		slog.Duration("elapsed", time.Since(start)),
		slog.Bool("explain", req.Explain),
		slog.Any("error", err),
	)
	defer engine.LogMetrics()

	out := cmd.OutOrStdout()
	if c.jsonOut {
		data, jerr := toolutil.RenderJSON(res, err)
		if jerr != nil {
			fmt.Fprintln(out, toolutil.RenderError(jerr))
			return
		}
		fmt.Fprintln(out, string(data))
		return
	}
	if err != nil {
		fmt.Fprintln(out, toolutil.RenderError(err))
		return
	}
	fmt.Fprintln(out, toolutil.RenderText(res, req.Explain))
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (HTTP on MCP_PORT, or stdio)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			port := env.Str("MCP_PORT", "8892")
			a := c.newAnalyzer(c.cfg)

			slog.Info("starting go_ytmoment", slog.String("port", port), slog.Bool("explain", a.CanExplain()))

			server := mcp.NewServer(&mcp.Implementation{
				Name:    "go_ytmoment",
				Version: version,
			}, nil)
			momentserver.RegisterTools(server, a)
			slog.Info("tools registered", slog.Int("count", momentserver.ToolCount))

			err := mcpserver.Run(server, mcpserver.Config{
				Name:         "go_ytmoment",
				Version:      version,
				Port:         port,
				WriteTimeout: c.cfg.RequestTimeout + 30*time.Second,
				Metrics:      engine.FormatMetrics,
			})
			if err != nil {
				slog.Error("server failed", slog.Any("error", err))
				return err
			}
			return nil
		},
	}
}
