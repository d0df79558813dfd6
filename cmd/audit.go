package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/pwcheck/internal/api"
	"github.com/khanhnv2901/pwcheck/internal/evaluator"
)

const defaultAuditConcurrency = 4

var auditCmd = &cobra.Command{
	Use:   "audit [file]",
	Short: "Check a list of passwords, one per line",
	Long: `Evaluates every non-blank line of file (or stdin when file is "-" or
omitted). Results are reported by line number; the passwords themselves are
never printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		format, _ := cmd.Flags().GetString("output")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		if err := validateOutputFormat(format); err != nil {
			return err
		}

		var in io.Reader = os.Stdin
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open password list: %w", err)
			}
			defer f.Close()
			in = f
		}

		eval, _, err := newEvaluator(appCtx, false)
		if err != nil {
			return err
		}
		runner := &evaluator.Runner{Evaluator: eval, Concurrency: concurrency}
		return runAudit(cmd.Context(), in, cmd.OutOrStdout(), runner, format)
	},
}

type auditEntry struct {
	Line   int                  `json:"line"`
	Result api.EvaluateResponse `json:"result"`
}

type auditOutput struct {
	Entries []auditEntry      `json:"entries"`
	Summary evaluator.Summary `json:"summary"`
}

func runAudit(ctx context.Context, in io.Reader, out io.Writer, runner *evaluator.Runner, format string) error {
	var (
		passwords []string
		lines     []int
	)
	scanner := bufio.NewScanner(in)
	for n := 1; scanner.Scan(); n++ {
		if scanner.Text() == "" {
			continue
		}
		passwords = append(passwords, scanner.Text())
		lines = append(lines, n)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read password list: %w", err)
	}

	reports := runner.EvaluateAll(ctx, passwords, nil)
	summary := evaluator.Summarize(reports)

	if format == outputJSON {
		result := auditOutput{Entries: make([]auditEntry, 0, len(reports)), Summary: summary}
		for i, rep := range reports {
			result.Entries = append(result.Entries, auditEntry{Line: lines[i], Result: api.NewEvaluateResponse(rep)})
		}
		return writeJSONOutput(out, result)
	}

	for i, rep := range reports {
		fmt.Fprintf(out, "line %-5d %-22s score %d/6  %s\n",
			lines[i],
			colorForTier(rep.Strength.Tier)(rep.Strength.Tier.String()),
			rep.Strength.Score,
			breachSummary(rep),
		)
	}
	fmt.Fprintf(out, "\n%s %d checked, %s, %s, %s, %s\n",
		colorInfo("Summary:"),
		summary.Total,
		colorError(fmt.Sprintf("%d breached", summary.Breached)),
		colorWarn(fmt.Sprintf("%d unverified", summary.Unverified)),
		colorWarn(fmt.Sprintf("%d weak", summary.Weak)),
		colorError(fmt.Sprintf("%d common", summary.Common)),
	)
	return nil
}

func breachSummary(rep evaluator.Report) string {
	switch {
	case rep.Breach.Err != nil:
		return colorWarn("breach: unverified")
	case rep.Breach.Found:
		return colorError(fmt.Sprintf("breach: seen %d times", rep.Breach.Count))
	default:
		return colorSuccess("breach: not found")
	}
}

func init() {
	auditCmd.Flags().StringP("output", "O", outputText, "output format: text or json")
	auditCmd.Flags().IntP("concurrency", "c", defaultAuditConcurrency, "passwords evaluated in parallel")
}
