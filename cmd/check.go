package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailsift/mailsift/pkg/risk"
	"github.com/mailsift/mailsift/pkg/validator"
)

// Exit codes for scripted use
const (
	exitOK       = 0
	exitBlocked  = 1
	exitBadInput = 2
	exitInternal = 3
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check <email> [email...]",
	Short: "Score one or more email addresses",
	Long: `Scores addresses against the full pipeline and prints the verdicts.
Exit code: 0 allow/warn, 1 block, 2 invalid input, 3 internal error.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print full result envelopes as JSON")
}

func runCheck(cmd *cobra.Command, args []string) {
	app, err := buildApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitInternal)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exit := exitOK
	for _, addr := range args {
		res, err := app.validator.Validate(ctx, validator.Request{Email: addr, Flow: "cli"})
		if err != nil {
			if validator.KindOf(err) == validator.KindInvalidRequest {
				fmt.Fprintf(os.Stderr, "%s: %v\n", addr, err)
				exit = worst(exit, exitBadInput)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %v\n", addr, err)
				exit = worst(exit, exitInternal)
			}
			continue
		}

		printResult(addr, res)
		if res.Decision == risk.DecisionBlock {
			exit = worst(exit, exitBlocked)
		}
	}
	os.Exit(exit)
}

func printResult(addr string, res *validator.ValidationResult) {
	if checkJSON {
		out, _ := json.MarshalIndent(res, "", "  ")
		fmt.Println(string(out))
		return
	}
	line := fmt.Sprintf("%-40s %-5s risk=%.3f", addr, res.Decision, res.RiskScore)
	if res.BlockReason != "" {
		line += " reason=" + res.BlockReason
	}
	if res.Signals.Family.Type != "" {
		line += " pattern=" + res.Signals.Family.Type
	}
	fmt.Println(line)
}

// worst keeps the most severe exit code across a batch
func worst(a, b int) int {
	if b > a {
		return b
	}
	return a
}
