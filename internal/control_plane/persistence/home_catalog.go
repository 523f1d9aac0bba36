package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"ecotronix-hub/internal/control_plane/domain"
	"ecotronix-hub/internal/control_plane/usecases"
	"ecotronix-hub/internal/infra/async"

	"github.com/fsnotify/fsnotify"
)

func NewHomeCatalog(path string) (*HomeCatalog, error) {
	c := &HomeCatalog{path: path, now: time.Now}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

var (
	_ usecases.CommandCatalog  = (*HomeCatalog)(nil)
	_ usecases.PermissionStore = (*HomeCatalog)(nil)
	_ usecases.DeviceDirectory = (*HomeCatalog)(nil)
	_ async.Worker             = (*HomeCatalog)(nil)
)

// HomeCatalog serves commands, permissions and devices from the home file.
// Reloads swap the whole snapshot, so a lookup never observes a partial file
// and commands already handed out keep their values.
type HomeCatalog struct {
	path     string
	now      func() time.Time
	mu       sync.RWMutex
	snapshot *homeSnapshot
}

// Reload parses the file again. On error the previous snapshot stays active.
func (c *HomeCatalog) Reload() error {
	file, err := readHomeFile(c.path)
	if err != nil {
		return err
	}
	snapshot, err := newHomeSnapshot(file, c.now())
	if err != nil {
		return fmt.Errorf("validating %s: %w", c.path, err)
	}

	for _, w := range snapshot.warnings {
		slog.Warn("home file", slog.String("path", c.path), slog.String("warning", w))
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	slog.Info("home file loaded",
		slog.String("path", c.path),
		slog.Int("phrases", len(snapshot.commands)),
		slog.Int("users", len(snapshot.users)),
		slog.Int("devices", len(snapshot.devices)),
	)
	return nil
}

func (c *HomeCatalog) current() *homeSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *HomeCatalog) Resolve(_ context.Context, phrase string, language domain.Language) (domain.Command, error) {
	return c.current().resolve(phrase, language)
}

func (c *HomeCatalog) GetPermissions(_ context.Context, user domain.UserName) (domain.PermissionSnapshot, error) {
	return c.current().permissions(user)
}

func (c *HomeCatalog) AllDevices(_ context.Context) ([]domain.Device, error) {
	return append([]domain.Device(nil), c.current().devices...), nil
}

func (c *HomeCatalog) DefaultLanguage() domain.Language {
	return c.current().defaultLanguage
}

func (c *HomeCatalog) Languages() []domain.Language {
	return append([]domain.Language(nil), c.current().languages...)
}

func (c *HomeCatalog) Warnings() []string {
	return append([]string(nil), c.current().warnings...)
}

// Run watches the directory holding the home file and reloads it whenever it
// is written or replaced.
func (c *HomeCatalog) Run(ctx context.Context, done func()) {
	defer done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("creating home file watcher", slog.Any("error", err))
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(c.path)); err != nil {
		slog.Error("watching home file", slog.String("path", c.path), slog.Any("error", err))
		return
	}

	target := filepath.Clean(c.path)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			if err := c.Reload(); err != nil {
				slog.Error("reloading home file, keeping previous version", slog.Any("error", err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("home file watcher", slog.Any("error", err))
		}
	}
}

func (c *HomeCatalog) Shutdown() {}
