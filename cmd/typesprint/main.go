// Package main provides the CLI entrypoint for typesprint.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typesprint/internal/config"
	"github.com/verte-zerg/typesprint/internal/controller"
	"github.com/verte-zerg/typesprint/internal/generator"
	"github.com/verte-zerg/typesprint/internal/model"
	"github.com/verte-zerg/typesprint/internal/session"
	"github.com/verte-zerg/typesprint/internal/stats"
	"github.com/verte-zerg/typesprint/internal/store"
	"github.com/verte-zerg/typesprint/internal/tui"
	"github.com/verte-zerg/typesprint/internal/wordlist"
)

const (
	defaultParagraphLength = 5
	defaultDuration        = 30
	defaultCurveWindow     = 10
)

var (
	practiceParagraphLength int
	practiceDuration        int
	practiceVocabulary      string
	practiceHistory         bool

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsColor       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typesprint",
		Short:         "Timed typing-speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	addVocabularyFlag(rootCmd)
	rootCmd.Flags().IntVar(&practiceParagraphLength, "paragraph-length", defaultParagraphLength, "words per paragraph")
	rootCmd.Flags().IntVar(&practiceDuration, "duration", defaultDuration, "session length in seconds")
	rootCmd.Flags().BoolVar(&practiceHistory, "history", false, "save finished session results")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newVocabCmd())

	return rootCmd
}

func addVocabularyFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&practiceVocabulary, "vocabulary", "", "word list file, one word per line (default: built-in common words)")
}

func loadPracticeConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "paragraph-length", &practiceParagraphLength, fileCfg.Practice.ParagraphLength)
	applyIntConfig(cmd, "duration", &practiceDuration, fileCfg.Practice.Duration)
	applyStringConfig(cmd, "vocabulary", &practiceVocabulary, fileCfg.Practice.Vocabulary)
	applyBoolConfig(cmd, "history", &practiceHistory, fileCfg.Practice.History)

	cfg := model.Config{
		ParagraphLength: practiceParagraphLength,
		Duration:        time.Duration(practiceDuration) * time.Second,
		VocabularyPath:  practiceVocabulary,
		History:         practiceHistory,
	}
	words, err := wordlist.Load(cfg.VocabularyPath)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load vocabulary %s: %w", cfg.VocabularyPath, err)
	}
	cfg.Vocabulary = words
	return cfg, nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	ctrl, err := controller.New(session.Config{
		Vocabulary:      cfg.Vocabulary,
		ParagraphLength: cfg.ParagraphLength,
		Duration:        cfg.Duration,
	}, generator.New())
	if err != nil {
		return err
	}

	var recorder tui.Recorder
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		recorder = st
	}

	m := tui.NewModel(ctrl, recorder)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := m.Err(); err != nil {
		return fmt.Errorf("session aborted: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show saved session results",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsColor, "color", false, "force colored curves (NO_COLOR still wins)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	dbPath := config.DefaultDBPath()
	if _, err := os.Stat(dbPath); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat db: %w", err)
		}
		// Nothing recorded yet.
		return stats.RenderSummary(cmd.OutOrStdout(), nil)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, model.StatsConfig{
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Color:       statsColor,
	})
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	return report.Render(cmd.OutOrStdout(), 0)
}

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Print the active vocabulary",
		Args:  cobra.NoArgs,
		RunE:  runVocabCmd,
	}
	addVocabularyFlag(cmd)
	return cmd
}

func runVocabCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	for _, word := range cfg.Vocabulary {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), word); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

// flagChanged reports whether name was set on the command line. Commands that
// do not define the flag never override the config value.
func flagChanged(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typesprint configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# paragraph-length = %d   # Words per paragraph
# duration = %d           # Session length in seconds
# vocabulary = ""         # Word list file, one word per line (empty: built-in list)
# history = false         # Save finished session results for "typesprint stats"
`,
		defaultParagraphLength,
		defaultDuration,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.ParagraphLength <= 0 {
		return fmt.Errorf("%w: --paragraph-length must be > 0", session.ErrInvalidConfiguration)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: --duration must be > 0", session.ErrInvalidConfiguration)
	}
	if len(cfg.Vocabulary) == 0 {
		return fmt.Errorf("%w: vocabulary is empty", session.ErrInvalidConfiguration)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
