package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/packlint/packlint/internal/config"
	"github.com/packlint/packlint/internal/domain"
	"github.com/packlint/packlint/internal/lint"
	"github.com/packlint/packlint/internal/report"
	"github.com/packlint/packlint/internal/utils"
	"github.com/packlint/packlint/internal/vfs"
	"github.com/packlint/packlint/pkg/version"
)

var (
	cfgFile  string
	verbose  bool
	jsonOut  bool
	log      *utils.Logger
	exitFunc = os.Exit
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "packlint [dir]",
	Short: "Lint package entry points for resolution and format mistakes",
	Long: `packlint inspects a package.json and the files it references, and
reports every way the declared entry points (main, module, exports,
imports, browser, bin, types) can resolve wrongly or inconsistently
across runtimes, bundlers and type-checkers.`,
	Version: version.Short(),
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.packlint/config.yaml)")
	rootCmd.PersistentFlags().String("level", "suggestion", "Minimum severity to report (error|warning|suggestion)")
	rootCmd.PersistentFlags().Bool("strict", false, "Escalate warnings to errors")
	rootCmd.PersistentFlags().IntP("concurrency", "j", 0, "Number of concurrent checks (0=auto)")
	rootCmd.PersistentFlags().String("pack-list", "", "File listing the paths that will actually be published")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Emit raw diagnostics as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("lint.level", rootCmd.PersistentFlags().Lookup("level"))
	_ = viper.BindPFlag("lint.strict", rootCmd.PersistentFlags().Lookup("strict"))
	_ = viper.BindPFlag("lint.pack_list_file", rootCmd.PersistentFlags().Lookup("pack-list"))
	_ = viper.BindPFlag("concurrency.workers", rootCmd.PersistentFlags().Lookup("concurrency"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}
	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  "pretty",
		Verbose: verbose,
	})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	var packList []string
	if cfg.Lint.PackListFile != "" {
		packList, err = utils.ReadLines(cfg.Lint.PackListFile)
		if err != nil {
			return fmt.Errorf("failed to read pack list: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Interrupted, abandoning pass")
		cancel()
	}()

	linter := lint.New(lint.Options{
		FS:       vfs.NewOSDir(dir),
		Level:    domain.ParseSeverity(cfg.Lint.Level),
		Strict:   cfg.Lint.Strict,
		PackList: packList,
		Workers:  cfg.Concurrency.Workers,
		Logger:   log,
	})

	result, err := linter.Run(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrManifestInvalid) {
			// A broken manifest is still a lint finding, not a tool failure
			result = &lint.Result{Diagnostics: []domain.Diagnostic{{
				Code:     domain.CodeManifestNotParsable,
				Severity: domain.SeverityError,
				Args:     map[string]any{"error": err.Error()},
			}}}
		} else {
			return err
		}
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Diagnostics); err != nil {
			return err
		}
	} else {
		report.Print(os.Stdout, result.Diagnostics)
	}

	for _, d := range result.Diagnostics {
		if d.Severity == domain.SeverityError {
			exitFunc(1)
			break
		}
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
