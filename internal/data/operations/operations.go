// Package operations loads the shared tenant/channel list that maps an
// operation name to its Wolkvox server and token.
package operations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/fsnotify/fsnotify"

	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/core/model"
	"github.com/jorman-viafara/wolkvox-chat-viewer/internal/util"
)

// ErrUnknownOperation indicates the requested operation name is not in the
// loaded list.
var ErrUnknownOperation = errors.New("unknown operation")

// DefaultSourceURL is the published operations list the viewer ships with.
const DefaultSourceURL = "https://raw.githubusercontent.com/jorman-viafara/operaciones-informes/main/operaciones.json"

const fetchTimeout = 15 * time.Second

// Registry holds the loaded operations and answers name lookups. A local
// source file can be watched and hot-reloaded.
type Registry struct {
	mu         sync.RWMutex
	byName     map[string]model.Operation
	names      []string
	httpClient *http.Client
	watcher    *fsnotify.Watcher
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:     make(map[string]model.Operation),
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// LoadURL replaces the registry contents with the list fetched from url.
func (r *Registry) LoadURL(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create operations request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch operations: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch operations: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read operations response: %w", err)
	}

	return r.loadBytes(body, url)
}

// LoadFile replaces the registry contents with the list read from path.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read operations file: %w", err)
	}
	return r.loadBytes(data, path)
}

func (r *Registry) loadBytes(data []byte, source string) error {
	var ops []model.Operation
	if err := sonic.Unmarshal(data, &ops); err != nil {
		return fmt.Errorf("failed to parse operations from %s: %w", source, err)
	}

	byName := make(map[string]model.Operation, len(ops))
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		if op.Name == "" {
			continue
		}
		if _, dup := byName[op.Name]; !dup {
			names = append(names, op.Name)
		}
		byName[op.Name] = op
	}
	sort.Strings(names)

	r.mu.Lock()
	r.byName = byName
	r.names = names
	r.mu.Unlock()

	util.LogInfof("loaded %d operations from %s", len(names), source)
	return nil
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (model.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.byName[name]
	if !ok {
		return model.Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	return op, nil
}

// Names returns the sorted operation names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of loaded operations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Watch reloads the registry whenever the local source file changes.
// Watching the directory rather than the file survives editors that
// replace the file on save.
func (r *Registry) Watch(path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	r.watcher = watcher
	go r.processEvents(path)
	return nil
}

func (r *Registry) processEvents(path string) {
	target := filepath.Clean(path)
	for {
		select {
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := r.LoadFile(path); err != nil {
				util.LogWarnf("operations reload failed: %v", err)
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("operations watch error: " + err.Error())
		}
	}
}

// Close stops a running watcher.
func (r *Registry) Close() error {
	if r.watcher != nil {
		return r.watcher.Close()
	}
	return nil
}
