// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"cogentcore.org/simscene/config"
	"github.com/fsnotify/fsnotify"
)

// Watch prints the body trees of the model, and prints them again
// each time the model file changes, until interrupted.
func Watch(c *config.Config) error { //cli:cmd
	if err := Tree(c); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// editors often replace files, so the directory is watched
	if err := w.Add(filepath.Dir(c.Model)); err != nil {
		return err
	}
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	defer signal.Stop(stop)
	return watch(w.Events, w.Errors, stop, c.Model, func() {
		if err := Tree(c); err != nil {
			slog.Error("reloading model", "model", c.Model, "err", err)
		}
	})
}

// watch calls changed for each write or create event on the named file,
// until stop receives or events is closed.
func watch(events <-chan fsnotify.Event, errs <-chan error, stop <-chan os.Signal, name string, changed func()) error {
	name = filepath.Clean(name)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			slog.Debug("model changed", "event", ev.String())
			changed()
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			slog.Error("watching model", "err", err)
		case <-stop:
			return nil
		}
	}
}
