package config

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"match-service/internal/match/model"
)

// LiveWeights holds the current point table and can follow its YAML file.
// Readers never block; a reload swaps the whole table at once.
type LiveWeights struct {
	path string
	cur  atomic.Pointer[model.Weights]
}

func NewLiveWeights(path string) (*LiveWeights, error) {
	w, err := LoadWeights(path)
	if err != nil {
		return nil, err
	}
	lw := &LiveWeights{path: path}
	lw.cur.Store(&w)
	return lw, nil
}

func (lw *LiveWeights) Current() model.Weights { return *lw.cur.Load() }

// Reload re-reads the file; on error the previous table stays in effect.
func (lw *LiveWeights) Reload() error {
	w, err := LoadWeights(lw.path)
	if err != nil {
		return err
	}
	lw.cur.Store(&w)
	return nil
}

// Watch reloads the table whenever its file changes, until ctx is done.
// The parent directory is watched so editors that replace the file on save
// are followed too. Without a file there is nothing to watch.
func (lw *LiveWeights) Watch(ctx context.Context, logger zerolog.Logger) error {
	if lw.path == "" {
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	target := filepath.Clean(lw.path)
	if err := fw.Add(filepath.Dir(target)); err != nil {
		_ = fw.Close()
		return err
	}

	go func() {
		defer fw.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				if err := lw.Reload(); err != nil {
					logger.Warn().Err(err).Str("file", lw.path).Msg("weights reload failed, keeping previous")
					continue
				}
				logger.Info().Str("file", lw.path).Interface("weights", lw.Current()).Msg("weights reloaded")
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				logger.Warn().Err(err).Msg("weights watcher")
			}
		}
	}()
	return nil
}
