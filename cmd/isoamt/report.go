package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/isoamt/internal/report"
	"github.com/rgehrsitz/isoamt/internal/secure"
	"github.com/spf13/cobra"
)

func reportCmd(opts *globalOptions) *cobra.Command {
	var (
		asPDF   bool
		asHTML  bool
		outPath string
		encrypt bool
	)
	cmd := &cobra.Command{
		Use:   "report [plan-file]",
		Short: "Render the CPA pack as HTML or PDF",
		Long: `Render the complete optimization as a standalone HTML document or, with
--pdf, print it to PDF through headless Chrome. Set ` + report.ChromePathEnv + ` when
Chrome is not installed in a standard location.

Examples:
  isoamt report plan.yaml --html --output plan.html
  isoamt report plan.yaml --pdf --encrypt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asPDF && asHTML {
				return fmt.Errorf("choose one of --pdf or --html")
			}
			s, err := loadScenario(opts, args[0], 0)
			if err != nil {
				return err
			}
			result, err := s.planner.Plan(cmd.Context(), s.input)
			if err != nil {
				return err
			}
			plan := s.newPlan(result)

			var renderer report.Renderer = report.HTMLRenderer{}
			ext := "html"
			if asPDF {
				renderer = report.NewChromiumPDFRenderer()
				ext = "pdf"
			}
			data, err := renderer.Render(cmd.Context(), plan)
			if err != nil {
				return fmt.Errorf("render %s report: %w", ext, err)
			}

			if outPath == "" && (asPDF || encrypt) {
				outPath = fmt.Sprintf("isoamt_plan_%s.%s", plan.Reference[:8], ext)
			}
			if encrypt && !strings.HasSuffix(outPath, ".age") {
				outPath += ".age"
			}
			return writeResult(cmd, data, outPath, encrypt)
		},
	}
	cmd.Flags().BoolVar(&asPDF, "pdf", false, "Render a PDF (requires Chrome or Chromium)")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render HTML (default)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (HTML defaults to stdout)")
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "Seal the report with an age passphrase")
	return cmd
}

func encryptCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "encrypt [file]",
		Short: "Seal a plan file or report with an age passphrase",
		Long: `Encrypt a file with a passphrase read from ` + secure.PassphraseEnv + ` or the terminal.
Encrypted plan files are accepted by every command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			if secure.IsEncrypted(data) {
				return fmt.Errorf("%s is already encrypted", args[0])
			}
			if outPath == "" {
				outPath = args[0] + ".age"
			}
			return writeResult(cmd, data, outPath, true)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default: input + .age)")
	return cmd
}

func decryptCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "decrypt [file]",
		Short: "Decrypt an age-sealed plan file or report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			if !secure.IsEncrypted(data) {
				return fmt.Errorf("%s is not an age-encrypted file", args[0])
			}
			pass, err := secure.Passphrase(fmt.Sprintf("Passphrase for %s: ", args[0]))
			if err != nil {
				return err
			}
			plain, err := secure.Open(data, pass)
			if err != nil {
				return err
			}
			if outPath == "" && strings.HasSuffix(args[0], ".age") {
				outPath = strings.TrimSuffix(args[0], ".age")
			}
			return writeResult(cmd, plain, outPath, false)
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output file (default: input without .age, else stdout)")
	return cmd
}
