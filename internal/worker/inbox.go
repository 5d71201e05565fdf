package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"financas/internal/ingest"
)

// InboxWatcher ingests statement files dropped into a directory. Processed
// files are renamed with a ".done" suffix so a restart never imports them
// twice; files that fail to ingest get ".err" and are left for inspection.
type InboxWatcher struct {
	dir    string
	ingest *ingest.Service
	settle time.Duration
}

func NewInboxWatcher(dir string, svc *ingest.Service) *InboxWatcher {
	return &InboxWatcher{
		dir:    dir,
		ingest: svc,
		// Writers often create the file and fill it in several writes;
		// wait for the last event before reading.
		settle: 500 * time.Millisecond,
	}
}

// Run scans the directory once, then watches it until the context is
// cancelled. It blocks.
func (w *InboxWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create inbox watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	// Pick up files that arrived while the worker was down.
	w.scanExisting(ctx)

	// One debounce timer per path, reset on every event for that path.
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			path := event.Name
			if !isStatementFile(path) {
				continue
			}
			if t, exists := timers[path]; exists {
				t.Stop()
			}
			timers[path] = time.AfterFunc(w.settle, func() {
				w.processFile(ctx, path)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.ErrorContext(ctx, "Inbox watcher error", "error", err)
		}
	}
}

func (w *InboxWatcher) scanExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to scan inbox directory", "dir", w.dir, "error", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if !isStatementFile(path) {
			continue
		}
		w.processFile(ctx, path)
	}
}

func (w *InboxWatcher) processFile(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		// The file may have been renamed or removed since the event fired.
		if os.IsNotExist(err) {
			return
		}
		slog.ErrorContext(ctx, "Failed to read inbox file", "path", path, "error", err)
		return
	}

	res, err := w.ingest.IngestFile(ctx, content, filepath.Base(path))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to ingest inbox file", "path", path, "error", err)
		w.markFile(ctx, path, ".err")
		return
	}

	slog.InfoContext(ctx, "Ingested inbox file",
		"path", path,
		"batch_id", res.BatchID,
		"imported", res.Imported,
		"skipped", res.Skipped)

	w.markFile(ctx, path, ".done")
}

func (w *InboxWatcher) markFile(ctx context.Context, path, suffix string) {
	if err := os.Rename(path, path+suffix); err != nil {
		slog.ErrorContext(ctx, "Failed to rename inbox file", "path", path, "error", err)
	}
}

func isStatementFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return true
	}
	return false
}
