package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/khanhnv2901/pwcheck/internal/shared/errors"
	"github.com/khanhnv2901/pwcheck/internal/terminal"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"tui", "menu"},
	Short:   "Menu-driven loop for checking several passwords",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		eval, _, err := newEvaluator(appCtx, true)
		if err != nil {
			return err
		}

		// Menu choices and passwords share one buffer so neither reader
		// swallows the other's input.
		in := bufio.NewReader(os.Stdin)
		var masked terminal.MaskedReader = terminal.NewLineReader(in)
		if terminal.IsTerminal(os.Stdin) {
			masked = terminal.NewRawReaderFrom(os.Stdin, in, cmd.OutOrStdout())
		}
		return runInteractive(cmd.Context(), in, masked, cmd.OutOrStdout(), eval)
	},
}

func runInteractive(ctx context.Context, in *bufio.Reader, masked terminal.MaskedReader, out io.Writer, eval passwordEvaluator) error {
	for {
		printMenu(out)
		fmt.Fprint(out, colorWarn("Choose an option (1 or 2): "))

		choice, err := in.ReadString('\n')
		if err != nil && choice == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read menu choice: %w", err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			fmt.Fprintf(out, "\n%s\n", colorTitle("Enter your password (input is hidden):"))
			fmt.Fprint(out, colorInfo("Password: "))
			password, err := masked.ReadMaskedLine()
			if errors.Is(err, apperrors.ErrInterrupted) {
				fmt.Fprintln(out, colorWarn("Cancelled."))
				continue
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return fmt.Errorf("read password: %w", err)
			}

			if err := renderReport(out, eval.Evaluate(ctx, password), outputText); err != nil {
				return err
			}

			fmt.Fprintf(out, "\n%s", colorWarn("Press Enter to return to the main menu..."))
			if _, err := in.ReadString('\n'); err != nil {
				return nil
			}
		case "2":
			fmt.Fprintln(out, colorSuccess("Exiting... Thank you for using the Password Checker!"))
			return nil
		default:
			fmt.Fprintln(out, colorError("Invalid option! Please choose 1 or 2.")+"\n")
		}
	}
}

func printMenu(out io.Writer) {
	rule := colorInfo(strings.Repeat("-", 45))
	fmt.Fprintln(out, colorTitle("Welcome to the Password Strength and Security Checker!"))
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, colorSuccess("1. Check a Password"))
	fmt.Fprintln(out, colorError("2. Exit"))
	fmt.Fprintln(out, rule)
}
