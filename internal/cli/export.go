package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/palindromes/internal/config"
	"github.com/mrlokans/palindromes/internal/database"
	"github.com/mrlokans/palindromes/internal/database/detections"
	"github.com/mrlokans/palindromes/internal/exporters"
)

type ExportCommand struct {
	DatabasePath string
	OutputPath   string
	Format       string

	out io.Writer
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{out: os.Stdout}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the detections database")
	fs.StringVar(&cmd.OutputPath, "out", "", "Output file (default: stdout)")
	fs.StringVar(&cmd.Format, "format", string(exporters.FormatMarkdown), "Output format: markdown or json")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Dump every stored detection as Markdown or JSON.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export -db ./palindrome.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export -format json -out detections.json\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := exporters.ParseFormat(cmd.Format); err != nil {
		fs.Usage()
		return err
	}

	return nil
}

func (cmd *ExportCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database does not exist: %s", cmd.DatabasePath)
	}

	format, err := exporters.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}
	exporter, err := exporters.NewExporter(format, "")
	if err != nil {
		return err
	}

	db, err := database.NewDatabase(database.DefaultConfig(cmd.DatabasePath))
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := detections.NewRepository(db.DB).ListAll(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load detections: %w", err)
	}

	w := cmd.out
	if cmd.OutputPath != "" {
		file, err := os.Create(cmd.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if err := exporter.Write(w, records); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	if cmd.OutputPath != "" {
		fmt.Fprintf(os.Stderr, "Exported %d detections to %s\n", len(records), cmd.OutputPath)
	}
	return nil
}
