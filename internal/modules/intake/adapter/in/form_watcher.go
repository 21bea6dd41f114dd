package in

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	intakedto "heartrisk/internal/modules/intake/dto"
)

type FormEvent struct {
	Path string
	Form intakedto.FormInput
}

// WatchFormFile calls onChange with the freshly parsed form every time the
// file is written or replaced. The parent directory is watched so editors
// that save via rename are still seen. Parse failures go to onError.
func WatchFormFile(ctx context.Context, path string, onChange func(FormEvent), onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			form, err := LoadFormFile(target)
			if err != nil {
				onError(err)
				continue
			}
			onChange(FormEvent{Path: target, Form: form})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onError(fmt.Errorf("watch form file: %w", err))
		}
	}
}
