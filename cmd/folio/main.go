// Command folio renders a personal profile page and builds its static copy.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seenimoa/folio/api"
	"github.com/seenimoa/folio/internal/config"
	"github.com/seenimoa/folio/internal/logging"
	"github.com/seenimoa/folio/internal/site"
	"github.com/seenimoa/folio/pkg/utils"
	"github.com/seenimoa/folio/web"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config and logger, set by the root command's pre-run.
var (
	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Personal profile site generator",
	Long: `folio renders a personal profile page from profile.json.

It serves the page dynamically during development and builds a static,
chart-library-free copy with pre-rendered SVG charts for hosting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Logging.Level = level
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./folio.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(prepareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
}

// signalContext is cancelled on SIGINT / SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("folio %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Build Command ---

var buildCmd = &cobra.Command{
	Use:   "build [dev|prod]",
	Short: "Build the static site",
	Long: `Build the static site into the build directory and write the root-hosted
index.html next to it.

Modes:
  (none)  default build
  dev     same output, unminified stylesheet
  prod    minified stylesheet`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(site.ModeDev), string(site.ModeProd)},
	RunE: func(cmd *cobra.Command, args []string) error {
		var arg string
		if len(args) == 1 {
			arg = args[0]
		}
		mode, err := site.ParseMode(arg)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		res, err := site.New(cfg, mode, logger).Build(ctx)
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}

		fmt.Printf("Build completed (%s mode) in %s\n", res.Mode, utils.FormatDuration(res.Elapsed))
		fmt.Printf("  Output:     %s (%d files)\n", res.BuildDir, len(res.Files))
		fmt.Printf("  Root page:  %s\n", res.RootHTML)
		if cfg.Build.SyncPublic {
			fmt.Printf("  Synced:     %s/%s\n", cfg.Site.Public, site.IndexFile)
		}
		for _, w := range res.Warnings {
			fmt.Printf("  warning: %v\n", w)
		}
		for _, ref := range res.MissingRefs {
			fmt.Printf("  warning: unresolved reference %s\n", ref)
		}
		return nil
	},
}

// --- Prepare Command ---

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Write views/static.html derived from views/index.html",
	Long: `Derive the chart-free static template from the dynamic one and save it,
so it can be edited by hand. Builds use views/static.html when it exists
and derive it in memory otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		path, written, err := site.PrepareTemplate(cfg.Site.Views, force)
		if err != nil {
			return err
		}
		if !written {
			fmt.Printf("%s already exists (use --force to overwrite)\n", path)
			return nil
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	prepareCmd.Flags().Bool("force", false, "overwrite an existing static template")
}

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dynamic site for development",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("live-reload") {
			cfg.Server.LiveReload, _ = cmd.Flags().GetBool("live-reload")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		fmt.Printf("Profile server running on http://localhost:%d\n", cfg.Server.Port)
		return api.NewServer(cfg, logger).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default: server.port, or $PORT)")
	serveCmd.Flags().Bool("live-reload", false, "reload the browser when inputs change")
}

// --- Init Command ---

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter site",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		written, skipped, err := web.WriteScaffold(dir)
		if err != nil {
			return err
		}
		for _, p := range written {
			fmt.Printf("  created  %s\n", p)
		}
		for _, p := range skipped {
			fmt.Printf("  exists   %s\n", p)
		}
		return nil
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and build status",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := site.Inspect(cfg)
		if err != nil {
			return err
		}

		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  folio — Site Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:         %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Inputs:")
		fmt.Printf("    Profile:       %s %s\n", cfg.Site.Profile, mark(st.ProfileFound))
		fmt.Printf("    Views:         %s\n", cfg.Site.Views)
		fmt.Printf("    Public:        %s\n", cfg.Site.Public)
		if st.StaticTemplate {
			fmt.Println("    Static page:   views/static.html (prepared)")
		} else {
			fmt.Println("    Static page:   derived from views/index.html")
		}
		fmt.Println()

		fmt.Println("  Build:")
		fmt.Printf("    Directory:     %s %s\n", cfg.Build.Dir, mark(st.BuildExists))
		if st.BuildExists {
			fmt.Printf("    Files:         %d\n", len(st.BuildFiles))
			fmt.Printf("    Built at:      %s\n", st.BuiltAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Printf("    Root page:     %s %s\n", cfg.Build.RootHTML, mark(st.RootHTMLExists))
		fmt.Println()

		fmt.Println("  Server:")
		fmt.Printf("    Address:       %s\n", cfg.Server.Addr())
		fmt.Printf("    Live reload:   %t\n", cfg.Server.LiveReload)
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

func mark(ok bool) string {
	if ok {
		return "✅"
	}
	return "❌ missing"
}
