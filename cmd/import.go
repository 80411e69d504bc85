package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/string-analyzer/internal/importer"
	"github.com/ziadkadry99/string-analyzer/internal/progress"
)

var importCmd = &cobra.Command{
	Use:   "import [glob]...",
	Short: "Import strings from text files, one per line",
	Long: `Stores every line of every file matching the given glob patterns
(doublestar syntax, e.g. "data/**/*.txt"). Strings that are already stored
are counted as duplicates and skipped. Blank lines are skipped unless
--keep-blank is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("keep-blank", false, "import empty and whitespace-only lines")
	importCmd.Flags().StringSlice("exclude", nil, "additional exclude patterns")
	importCmd.Flags().Bool("json", false, "output the summary as JSON")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	keepBlank, _ := cmd.Flags().GetBool("keep-blank")
	extra, _ := cmd.Flags().GetStringSlice("exclude")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	files, err := importer.ExpandPatterns(args, append(cfg.Import.Exclude, extra...))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.WithHint(errors.New("no files matched"), "quote patterns containing ** so the shell does not expand them")
	}

	svc, database, err := openService(cfg, log, nil)
	if err != nil {
		return err
	}
	defer database.Close()

	im := importer.New(svc, importer.Options{
		KeepBlank: keepBlank,
		Reporter:  progress.NewReporter("Importing"),
		Logger:    log,
	})
	res, err := im.Import(cmd.Context(), files)
	if err != nil {
		return err
	}
	log.Debug("import finished", zap.Any("result", res))

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, res)
	}
	fmt.Fprintf(out, "Imported %d files: %d lines, %d created, %d duplicates, %d skipped\n",
		res.Files, res.Lines, res.Created, res.Duplicates, res.Skipped)
	return nil
}
