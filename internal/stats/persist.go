package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/tranvk/selfheal/internal/core/domain"
)

// Flush writes the current statistics to the snapshot path. The write is
// atomic from the reader's perspective: either the full updated snapshot
// lands or the prior file is left intact.
func (a *Aggregator) Flush() error {
	a.mu.RLock()
	data, err := json.MarshalIndent(a.stats, "", "  ")
	a.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode statistics: %w", err)
	}

	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create statistics directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".stats-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, a.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Close stamps the end time and performs the final flush, retrying with
// backoff. A final inability to persist is returned to the caller but does
// not invalidate the run's verdict.
func (a *Aggregator) Close(ctx context.Context) error {
	end := a.now()
	a.mu.Lock()
	a.stats.EndTime = &end
	a.mu.Unlock()

	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(100*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := a.Flush(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// Load reads a persisted snapshot back into a Statistics value. Reloading a
// snapshot reproduces equivalent counts.
func Load(path string) (Statistics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Statistics{}, fmt.Errorf("failed to read statistics file: %w", err)
	}

	var s Statistics
	if err := json.Unmarshal(data, &s); err != nil {
		return Statistics{}, fmt.Errorf("failed to parse statistics file: %w", err)
	}
	if s.Modules == nil {
		s.Modules = make(map[domain.Module]*Bucket)
	}
	if s.General == nil {
		s.General = newBucket()
	}
	return s, nil
}
