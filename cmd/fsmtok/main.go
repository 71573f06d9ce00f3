// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/mdhender/fsmtok"
	"github.com/mdhender/fsmtok/config"
	"github.com/mdhender/fsmtok/corpus"
	"github.com/mdhender/fsmtok/pipelines/stages"
	"github.com/mdhender/fsmtok/scanner"
	store "github.com/mdhender/fsmtok/stores/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().StringP("config-file", "c", "", "load configuration from file")
		cmd.PersistentFlags().Bool("debug", false, "log debugging information")
		cmd.PersistentFlags().Bool("log-with-default-flags", false, "log with default flags")
		cmd.PersistentFlags().Bool("log-with-shortfile", true, "log with short file name")
		cmd.PersistentFlags().Bool("log-with-timestamp", false, "log with timestamp")
		cmd.PersistentFlags().Bool("quiet", false, "log less information")
		cmd.PersistentFlags().Bool("show-version", false, "show version")
		cmd.PersistentFlags().Bool("verbose", false, "log more information")
		return nil
	}
	var cmdRoot = &cobra.Command{
		Use:   "fsmtok",
		Short: "table driven tokenizer",
		Long:  `Tokenize text with byte classes and a state transition table`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logWithDefaultFlags, _ := cmd.Flags().GetBool("log-with-default-flags")
			logWithShortFileName, _ := cmd.Flags().GetBool("log-with-shortfile")
			logWithTimestamp, _ := cmd.Flags().GetBool("log-with-timestamp")
			logFlags := 0
			if logWithShortFileName {
				logFlags |= log.Lshortfile
			}
			if logWithTimestamp {
				logFlags |= log.Ltime
			}
			if logWithDefaultFlags || logFlags == 0 {
				logFlags = log.LstdFlags
			}
			log.SetFlags(logFlags)

			if showVersion, _ := cmd.Flags().GetBool("show-version"); showVersion {
				fmt.Printf("fsmtok: version %q\n", fsmtok.Version().Core())
			}

			return nil
		},
	}
	cmdRoot.AddCommand(cmdCheck())
	cmdRoot.AddCommand(cmdTokenize())
	cmdRoot.AddCommand(cmdCorpus())
	cmdRoot.AddCommand(cmdVersion())
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger returns the logger handed to the tokenizer and the corpus.
// Warnings are shown by default.
func newLogger(cmd *cobra.Command) *slog.Logger {
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")
	debug, _ := cmd.Flags().GetBool("debug")
	level := slog.LevelWarn
	switch {
	case debug:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig(cmd *cobra.Command, fs afero.Fs) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config-file")
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(fs, configFile)
}

// loadTokenizer compiles the configured specifications, printing
// a diagnostic for specification errors.
func loadTokenizer(cfg *config.Config, fs afero.Fs, logger *slog.Logger) (*fsmtok.Tokenizer, error) {
	t, err := cfg.Tokenizer(fs, fsmtok.WithLogger(logger))
	if err != nil {
		fsmtok.PrintDiagnostic(os.Stderr, err)
		return nil, err
	}
	return t, nil
}

func cmdCheck() *cobra.Command {
	var classesFile, transitionsFile string
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&classesFile, "classes", classesFile, "class specification file")
		cmd.Flags().StringVar(&transitionsFile, "transitions", transitionsFile, "transition specification file")
		return nil
	}
	var cmd = &cobra.Command{
		Use:           "check",
		Short:         "compile the class and transition specifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			cfg, err := loadConfig(cmd, fs)
			if err != nil {
				return err
			}
			if classesFile != "" {
				cfg.Classes = classesFile
			}
			if transitionsFile != "" {
				cfg.Transitions = transitionsFile
			}

			t, err := loadTokenizer(cfg, fs, newLogger(cmd))
			if err != nil {
				return err
			}
			fmt.Printf("classes:     %d\n", len(t.Classes().Classes()))
			fmt.Printf("states:      %d\n", len(t.Transitions().States()))
			fmt.Printf("transitions: %d\n", t.Transitions().Len())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdTokenize() *cobra.Command {
	var classFilter []string
	showTiming := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringSliceVar(&classFilter, "class", classFilter, "only show tokens of the class")
		cmd.Flags().BoolVar(&showTiming, "show-timing", showTiming, "show time taken")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "tokenize <file>",
		Short:        "print the tokens in a file",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1), // require path to input file
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			cfg, err := loadConfig(cmd, fs)
			if err != nil {
				return err
			}
			t, err := loadTokenizer(cfg, fs, newLogger(cmd))
			if err != nil {
				return err
			}

			started := time.Now()
			s, err := scanner.Open(fs, args[0])
			if err != nil {
				return err
			}
			input, err := s.Scan()
			if err != nil {
				return err
			}

			filter := corpus.Any()
			if len(classFilter) != 0 {
				var classes []fsmtok.ClassId
				for _, name := range classFilter {
					classes = append(classes, fsmtok.ClassOf(name))
				}
				filter = corpus.ByClass(classes...)
			}

			tokenCounter := 0
			for tok := range t.Tokens(input) {
				tokenCounter++
				if !filter(tok) {
					continue
				}
				fmt.Printf("%-35s %5d %-12s %-12s %q\n",
					fmt.Sprintf("%s:%d:%d:", args[0], tok.Line, tok.Column),
					tokenCounter, t.ClassName(tok.Class), t.StateName(tok.State), tok.Value)
			}
			if showTiming {
				log.Printf("%s: %d tokens in %v\n", args[0], tokenCounter, time.Since(started))
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdCorpus() *cobra.Command {
	var dbPath string
	var excludeFiles, includeFiles []string
	var topWords int
	var workers int
	showDBStats := false
	showMetrics := false
	showTiming := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&dbPath, "db", dbPath, "save documents and tokens to database")
		cmd.Flags().StringSliceVarP(&excludeFiles, "exclude", "e", excludeFiles, "exclude files matching the pattern")
		cmd.Flags().StringSliceVarP(&includeFiles, "include", "i", includeFiles, "include files matching the pattern")
		cmd.Flags().IntVar(&topWords, "top", topWords, "show the most frequent words instead of every word")
		cmd.Flags().IntVar(&workers, "workers", workers, "number of documents to tokenize at once")
		cmd.Flags().BoolVar(&showDBStats, "show-db-stats", showDBStats, "dump row counts from each table")
		cmd.Flags().BoolVar(&showMetrics, "show-metrics", showMetrics, "dump corpus counters")
		cmd.Flags().BoolVar(&showTiming, "show-timing", showTiming, "show time taken")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "corpus [<dir>]",
		Short:        "list the words in every document under a directory",
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger := newLogger(cmd)

			fs := afero.NewOsFs()
			cfg, err := loadConfig(cmd, fs)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Corpus.Root = args[0]
			}
			cfg.Corpus.Include = append(cfg.Corpus.Include, includeFiles...)
			cfg.Corpus.Exclude = append(cfg.Corpus.Exclude, excludeFiles...)
			if workers != 0 {
				cfg.Corpus.Workers = workers
			}
			if dbPath != "" {
				cfg.Database = dbPath
			}
			if cfg.Corpus.Root == "" {
				return fmt.Errorf("missing corpus directory")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			t, err := loadTokenizer(cfg, fs, logger)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			options := append(cfg.CorpusOptions(),
				corpus.WithLogger(logger),
				corpus.WithMetrics(corpus.NewMetrics(reg)),
			)
			started := time.Now()
			c, err := corpus.Open(ctx, fs, cfg.Corpus.Root, t, options...)
			if err != nil {
				return err
			}

			if cfg.Database == "" && topWords == 0 {
				words, err := c.AllWords(ctx)
				if err != nil {
					return err
				}
				for _, word := range words {
					fmt.Printf("%s\n", word)
				}
			} else {
				// word counts come from the store; without --db it lives in memory
				db, err := store.NewStore(ctx, cfg.Database)
				if err != nil {
					return fmt.Errorf("create store: %w", err)
				}
				defer db.Close()
				svc := stages.NewIngestService(db, c)
				svc.SetLogger(logger)
				results, err := svc.IngestAll(ctx)
				if err != nil {
					return err
				}
				for _, result := range results {
					if result.ErrorCode != "" {
						log.Printf("%s: %s: %s\n", result.Name, result.ErrorCode, result.ErrorMessage)
					} else if result.Duplicate {
						log.Printf("%s: already stored\n", result.Name)
					}
				}

				if topWords != 0 {
					counts, err := db.WordCounts(ctx, topWords)
					if err != nil {
						return err
					}
					for _, wc := range counts {
						fmt.Printf("%8d %s\n", wc.Count, wc.Word)
					}
				}

				if showDBStats {
					stats, err := db.TableStats(ctx)
					if err != nil {
						return fmt.Errorf("get table stats: %w", err)
					}
					log.Println("database stats:")
					tables := make([]string, 0, len(stats))
					for table := range stats {
						tables = append(tables, table)
					}
					sort.Strings(tables)
					for _, table := range tables {
						log.Printf("  %-20s %d rows\n", table, stats[table])
					}
				}
			}

			if showMetrics {
				families, err := reg.Gather()
				if err != nil {
					return err
				}
				for _, mf := range families {
					if _, err := expfmt.MetricFamilyToText(os.Stderr, mf); err != nil {
						return err
					}
				}
			}
			if showTiming {
				log.Printf("%s: %d documents in %v\n", cfg.Corpus.Root, c.Len(), time.Since(started))
			}

			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Println(fsmtok.Version().String())
				return nil
			}
			fmt.Println(fsmtok.Version().Core())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}
