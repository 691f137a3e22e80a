package intake

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-screener/internal/document"
)

// Result is the outcome of analyzing one file in a batch.
type Result struct {
	Path  string
	Draft Draft
	Err   error
}

// ProcessDir analyzes every supported file in dir concurrently. A file that fails to
// decode is reported in its Result and does not stop the batch. Results are sorted by path.
func (s *Service) ProcessDir(ctx context.Context, dir string) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading résumé dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !document.Supported(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	vocab, err := s.vocab.Load()
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary: %w", err)
	}

	results := make([]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i].Path = path
			text, err := s.decoder.DecodeFile(path)
			if err != nil {
				results[i].Err = err
				s.logger.Warn("skipping résumé", zap.String("path", path), zap.Error(err))
				return nil
			}

			results[i].Draft = Draft{Filename: filepath.Base(path), Profile: s.analyze(text, vocab)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("résumé directory processed", zap.String("dir", dir), zap.Int("files", len(paths)))
	return results, nil
}
