package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"reimport/internal/core/processors"
	"reimport/internal/host/starlark"
	"reimport/internal/report"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [files or globs...]",
	Short: "Rewrite the load statements of Starlark files",
	Long: `Rewrite the load statements of the given Starlark files with the
configured rules. Arguments may be doublestar globs such as "**/BUILD.bazel".
Without --write the files are left untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, log, err := loadSettings()
		if err != nil {
			return err
		}
		defer log.Sync()

		write, _ := cmd.Flags().GetBool("write")
		showDiff, _ := cmd.Flags().GetBool("diff")
		showReport, _ := cmd.Flags().GetBool("report")

		files, err := expandPatterns(args)
		if err != nil {
			return err
		}

		rules, err := loadRules(settings)
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		log = log.With(zap.String("run_id", runID))
		pipeline := processors.NewDefaultPipeline(rules, settings.Rewrite.MaxReplacements, log)
		rewriter := starlark.NewRewriter(pipeline, log)

		rep, err := report.New(runID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range files {
			res, err := rewriteOne(cmd, rewriter, runID, path, write)
			if err != nil {
				failed++
				log.Error("Rewrite Failed", zap.String("file", path), zap.Error(err))
				if err := rep.AddError(path, err); err != nil {
					return err
				}
				continue
			}
			if err := rep.Add(res); err != nil {
				return err
			}

			if !res.Changed() {
				continue
			}
			if showDiff {
				diff, err := res.Diff()
				if err != nil {
					return err
				}
				fmt.Fprint(out, diff)
			}
			if !showReport && !showDiff {
				printSummary(out, res, write)
			}
		}

		if showReport {
			data, err := rep.Bytes()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) failed", failed, len(files))
		}
		return nil
	},
}

// rewriteOne rewrites a single file, writing it back when write is set
func rewriteOne(cmd *cobra.Command, rewriter *starlark.Rewriter, runID, path string, write bool) (*starlark.Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	res, err := rewriter.RewriteSource(cmd.Context(), runID, path, src)
	if err != nil {
		return nil, err
	}

	if write && res.Changed() {
		if err := os.WriteFile(path, res.Output, info.Mode().Perm()); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return res, nil
}

func printSummary(out io.Writer, res *starlark.Result, write bool) {
	verb := "would rewrite"
	if write {
		verb = "rewrote"
	}
	fmt.Fprintf(out, "%s %s\n", verb, res.Path)
	for _, c := range res.Changes {
		fmt.Fprintf(out, "  %d: %s -> %v\n", c.Line, c.From, c.To)
	}
}

// expandPatterns 展开 glob，去重并保持稳定顺序
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}

		sort.Strings(matches)
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() || seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	return files, nil
}

func SetupRewriteCmd() {
	rootCmd.AddCommand(rewriteCmd)

	rewriteCmd.Flags().BoolP("write", "w", false, "write the result back to the files")
	rewriteCmd.Flags().Bool("diff", false, "print a unified diff of every changed file")
	rewriteCmd.Flags().Bool("report", false, "print a JSON report of the run")
	rewriteCmd.Flags().Int("max-replacements", 1000, "how often the loads grown from one import may be replaced")

	viper.BindPFlag("rewrite.max_replacements", rewriteCmd.Flags().Lookup("max-replacements"))
}
