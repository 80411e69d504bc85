// Package importer bulk-loads strings from text files, one string per line.
package importer

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ziadkadry99/string-analyzer/internal/analyzer"
	"github.com/ziadkadry99/string-analyzer/internal/logger"
	"github.com/ziadkadry99/string-analyzer/internal/progress"
	"github.com/ziadkadry99/string-analyzer/internal/records"
)

// maxLineSize bounds a single imported string.
const maxLineSize = 1 << 20

// Creator stores one string.
type Creator interface {
	Create(ctx context.Context, value string) (*analyzer.Record, error)
}

// Options controls an import run.
type Options struct {
	// KeepBlank imports empty and whitespace-only lines instead of skipping them.
	KeepBlank bool
	Reporter  progress.Reporter
	Logger    *zap.Logger
}

// Result summarizes an import run.
type Result struct {
	Files      int `json:"files"`
	Lines      int `json:"lines"`
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
}

// Importer feeds file contents to a Creator.
type Importer struct {
	creator Creator
	opts    Options
}

// New creates an Importer.
func New(creator Creator, opts Options) *Importer {
	if opts.Reporter == nil {
		opts.Reporter = progress.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Importer{creator: creator, opts: opts}
}

// Import reads every file in order. Duplicate strings are counted and do
// not stop the run; any other error does.
func (im *Importer) Import(ctx context.Context, files []string) (Result, error) {
	var res Result
	im.opts.Reporter.Start(len(files))
	defer im.opts.Reporter.Finish()

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := im.importFile(ctx, path, &res); err != nil {
			return res, errors.Wrapf(err, "importing %s", path)
		}
		res.Files++
		im.opts.Reporter.Update(i+1, path)
	}
	return res, nil
}

func (im *Importer) importFile(ctx context.Context, path string, res *Result) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		res.Lines++
		if !im.opts.KeepBlank && strings.TrimSpace(line) == "" {
			res.Skipped++
			continue
		}

		_, err := im.creator.Create(ctx, line)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, records.ErrDuplicate):
			res.Duplicates++
		default:
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	im.opts.Logger.Debug("imported file", zap.String(logger.FieldFile, path), zap.Int(logger.FieldCount, res.Lines))
	return nil
}
