package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"

	"checker/internal/checker"
	"checker/internal/config"
	"checker/internal/monitor"
	"checker/pkg/doh/dnsjson"
	"checker/pkg/domain"

	"github.com/spf13/cobra"
)

// checkCommand constructs the 'check' subcommand running a single availability
// batch and printing the results. Domains are taken from the arguments, or the
// configured list when none are given. The exit code is non-zero when any
// lookup failed.
func checkCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [domains...]",
		Short: "Runs one availability batch and prints the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			options := monitor.NewOptions(cfg)
			if len(args) > 0 {
				var names []string
				for _, arg := range args {
					names = append(names, domain.ParseList(arg)...)
				}
				options.Domains = names
			}

			resolver := dnsjson.New(&http.Client{}, cfg.Checker.DoHEndpoint)
			chk := checker.New(resolver, nil, checker.NewOptions(cfg))
			mon := monitor.New(chk, nil, nil, options)

			report, err := mon.Run(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				printReport(report)
			}

			if report.HasErrors() {
				return fmt.Errorf("%d lookup(s) failed", countFailed(report))
			}

			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the full report as JSON")

	return cmd
}

func printReport(report checker.Report) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		_ = w.Flush()
	}()

	fmt.Fprintln(w, "DOMAIN\tVERDICT\tDURATION\tERROR")
	for _, res := range report.Results {
		fmt.Fprintf(w, "%s\t%s\t%dms\t%s\n", res.Domain, res.Verdict, res.DurationMs, res.Err)
	}

	if msg := report.Message(); msg != "" {
		fmt.Fprintf(w, "\n%s\n", msg)
	}
}

func countFailed(report checker.Report) int {
	var n int
	for _, res := range report.Results {
		if res.Failed() {
			n++
		}
	}

	return n
}
