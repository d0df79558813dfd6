package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/pwcheck/internal/breach"
	"github.com/khanhnv2901/pwcheck/internal/digest"
	"github.com/khanhnv2901/pwcheck/internal/evaluator"
	apperrors "github.com/khanhnv2901/pwcheck/internal/shared/errors"
	"github.com/khanhnv2901/pwcheck/internal/terminal"
)

type passwordEvaluator interface {
	Evaluate(ctx context.Context, password string) evaluator.Report
}

type rangeLookup interface {
	Lookup(ctx context.Context, d digest.Digest) breach.Result
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a single password",
	Long: `Reads one password without echoing it, then prints its strength verdict and
breach exposure. When stdin is not a terminal the first line is used.

Passwords are never accepted as arguments so they stay out of shell history.
Use --sha1 to look up a digest you computed elsewhere.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		format, _ := cmd.Flags().GetString("output")
		sha1Hex, _ := cmd.Flags().GetString("sha1")
		withEstimate, _ := cmd.Flags().GetBool("estimate")

		if err := validateOutputFormat(format); err != nil {
			return err
		}

		eval, client, err := newEvaluator(appCtx, withEstimate)
		if err != nil {
			return err
		}

		if sha1Hex != "" {
			// A typed nil *breach.Client must not reach the interface.
			var lookup rangeLookup
			if client != nil {
				lookup = client
			}
			return runDigestCheck(cmd.Context(), lookup, sha1Hex, cmd.OutOrStdout(), format)
		}

		reader := terminal.NewReader(os.Stdin, cmd.ErrOrStderr())
		return runCheck(cmd.Context(), reader, cmd.ErrOrStderr(), cmd.OutOrStdout(), eval, format)
	},
}

func runCheck(ctx context.Context, reader terminal.MaskedReader, prompt, out io.Writer, eval passwordEvaluator, format string) error {
	fmt.Fprint(prompt, colorInfo("Password: "))
	password, err := reader.ReadMaskedLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.ErrEmptyInput
		}
		return fmt.Errorf("read password: %w", err)
	}

	return renderReport(out, eval.Evaluate(ctx, password), format)
}

func runDigestCheck(ctx context.Context, lookup rangeLookup, sha1Hex string, out io.Writer, format string) error {
	if lookup == nil {
		return fmt.Errorf("--sha1 needs the range API: %w", apperrors.ErrBreachCheckDisabled)
	}
	d, err := digest.Parse(sha1Hex)
	if err != nil {
		return err
	}
	return renderBreachOnly(out, lookup.Lookup(ctx, d), format)
}

func init() {
	checkCmd.Flags().StringP("output", "O", outputText, "output format: text or json")
	checkCmd.Flags().String("sha1", "", "look up this SHA-1 digest instead of reading a password")
	checkCmd.Flags().Bool("estimate", false, "include a zxcvbn crack-time estimate")
}
