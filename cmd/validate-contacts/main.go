package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ignite/list-validator/internal/config"
	"github.com/ignite/list-validator/internal/contacts"
	"github.com/ignite/list-validator/internal/pkg/logger"
	"github.com/ignite/list-validator/internal/report"
	"github.com/ignite/list-validator/internal/validation"
)

const usage = `Usage: validate-contacts [flags] <input.csv>

Validates an email contact list for quality and deliverability.

Flags:
  -config string       Path to a YAML config file
  -output string       Output file for valid contacts (short: -o)
  -report              Generate and display the detailed report (short: -r)
  -mx-check            Perform MX record validation (slower)
  -no-invalid-export   Don't export invalid contacts to a separate file
  -quiet               Reduce output verbosity (short: -q)

Examples:
  validate-contacts contacts.csv
  validate-contacts contacts.csv --output clean_contacts.csv
  validate-contacts contacts.csv --mx-check --report
  validate-contacts contacts.csv --no-invalid-export
`

func main() {
	var (
		configPath      string
		outputFile      string
		showReport      bool
		mxCheck         bool
		noInvalidExport bool
		quiet           bool
	)

	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.StringVar(&outputFile, "output", "", "output file for valid contacts")
	flag.StringVar(&outputFile, "o", "", "output file for valid contacts (shorthand)")
	flag.BoolVar(&showReport, "report", false, "generate and display the detailed report")
	flag.BoolVar(&showReport, "r", false, "generate and display the detailed report (shorthand)")
	flag.BoolVar(&mxCheck, "mx-check", false, "perform MX record validation")
	flag.BoolVar(&noInvalidExport, "no-invalid-export", false, "don't export invalid contacts")
	flag.BoolVar(&quiet, "quiet", false, "reduce output verbosity")
	flag.BoolVar(&quiet, "q", false, "reduce output verbosity (shorthand)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	inputFile := flag.Arg(0)

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Flags win over config file and environment.
	if mxCheck {
		cfg.Validation.CheckMX = true
	}
	if noInvalidExport {
		cfg.Validation.NoInvalidExport = true
	}
	if showReport {
		cfg.Report.Enabled = true
	}

	logger.SetLevel(logger.ParseLevel(cfg.Logging.Level))
	if quiet {
		logger.SetLevel(logger.WARN)
	}
	logger.SetRedactPII(!cfg.Logging.DisableRedaction)

	if _, err := os.Stat(inputFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Input file '%s' not found\n", inputFile)
		os.Exit(1)
	}

	fmt.Printf("Validating contacts from %s...\n", inputFile)

	table, err := contacts.Load(inputFile)
	if err != nil {
		logger.Error("failed to load contacts", "path", inputFile, "error", err.Error())
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	validator := validation.New(validation.Options{
		CheckMX:           cfg.Validation.CheckMX,
		MXTimeout:         cfg.Validation.MXTimeout(),
		DomainTypos:       cfg.Validation.DomainTypos,
		DisposableDomains: cfg.Validation.DisposableDomains,
	})

	result := validator.Run(context.Background(), table.Records)

	if err := exportResults(table, result, outputFile, cfg); err != nil {
		logger.Error("failed to export results", "error", err.Error())
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Report.Enabled {
		renderer, err := report.NewRenderer()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		content, err := renderer.Render(result.Stats)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("\n" + content)
		if _, err := renderer.Save(cfg.Report.OutputDir, result.Stats); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("\nValidation complete!")
	fmt.Printf("Valid contacts: %s\n", report.Comma(result.Stats.ValidContacts))
	fmt.Printf("Invalid contacts: %s\n", report.Comma(result.Stats.InvalidContacts))
	fmt.Printf("Duplicates removed: %s\n", report.Comma(result.Stats.DuplicatesRemoved))
	if result.Stats.TotalContacts > 0 {
		fmt.Printf("Success rate: %.1f%%\n", result.Stats.ValidationRate())
	}
}

// exportResults writes the valid partition (and the invalid one unless
// disabled) next to the report directory. The valid file name is the
// -output flag when given, otherwise a timestamped default.
func exportResults(table *contacts.Table, result *validation.Result, outputFile string, cfg *config.Config) error {
	timestamp := time.Now().Format("20060102_150405")

	validFile := outputFile
	if validFile == "" {
		validFile = filepath.Join(cfg.Report.OutputDir, fmt.Sprintf("valid_contacts_%s.csv", timestamp))
	}

	if len(result.Valid) > 0 {
		if err := table.WriteValid(validFile, result.Valid); err != nil {
			return err
		}
		logger.Info("valid contacts exported", "path", validFile, "count", len(result.Valid))
	}

	if !cfg.Validation.NoInvalidExport && len(result.Invalid) > 0 {
		invalidFile := filepath.Join(cfg.Report.OutputDir, fmt.Sprintf("invalid_contacts_%s.csv", timestamp))
		if err := table.WriteInvalid(invalidFile, result.Invalid); err != nil {
			return err
		}
		logger.Info("invalid contacts exported", "path", invalidFile, "count", len(result.Invalid))
	}

	return nil
}
