package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lpec/internal/collector/interfaces"
	"lpec/internal/models"
	"lpec/internal/providers"
	"lpec/internal/structures"
)

// Archive keeps zstd-compressed copies of raw vendor responses for audit
// and replay. Disabled archives accept writes and do nothing.
type Archive struct {
	enabled    bool
	dir        string
	ttl        time.Duration
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewArchive(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *Archive {
	return &Archive{
		enabled:    conf.Archive.Enabled,
		dir:        conf.Archive.Dir,
		ttl:        conf.Archive.TTL,
		compressor: compressor,
		logger:     logger,
	}
}

// Write stores one response body, named after the query window it answers.
func (a *Archive) Write(w models.QueryWindow, body []byte) error {
	if !a.enabled {
		return nil
	}

	compressed, err := a.compressor.Compress(body)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return err
	}

	name := fmt.Sprintf("%s_%s.json.zst", w.From.Format("20060102T150405"), w.To.Format("20060102T150405"))
	path := filepath.Join(a.dir, name)

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, compressed, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}

// Prune removes archived responses older than the configured TTL.
func (a *Archive) Prune() error {
	if !a.enabled || a.ttl <= 0 {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(a.dir, "*.json.zst"))
	if err != nil {
		return err
	}

	now := time.Now()
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) > a.ttl {
			if err := os.Remove(file); err != nil {
				a.logger.Warnf(providers.TypeApp, "Failed to prune archive file %s: %s", file, err)
			}
		}
	}
	return nil
}
