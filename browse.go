package main

import (
	"errors"
	"fmt"
	"io"

	"multi-image-viewer/internal/logging"
	"multi-image-viewer/internal/picker"
	"multi-image-viewer/internal/session"
	"multi-image-viewer/internal/tui"
	"multi-image-viewer/internal/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// noticeHolder keeps the last notice so the viewer can show it on its
// first frame.
type noticeHolder struct {
	last *session.Notice
}

func (n *noticeHolder) Notify(notice session.Notice) {
	n.last = &notice
}

func runBrowse(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	s, err := newSession(config)
	if err != nil {
		return err
	}

	interactive := isTerminal()
	if !interactive {
		return errors.New("browse needs an interactive terminal")
	}

	// The viewer owns the terminal from here on.
	logging.SetOutput(io.Discard)

	holder := &noticeHolder{}
	c := session.NewController(s, picker.NewFolders(stderrNotifier{}.Notify), picker.NewRule(), nil, holder)

	if flagPromptRule {
		// An invalid pattern keeps the configured rule; the notice says so.
		_ = c.EditRule()
	}

	if len(s.Folders()) == 0 {
		// Rebuild failures after a successful pick are shown on the first
		// frame like any other notice.
		if err := c.OpenFolders(); err != nil && len(s.Folders()) == 0 {
			return err
		}
		if len(s.Folders()) == 0 {
			return session.ErrNoFoldersSelected
		}
	} else {
		// Rebuild problems are shown on the first frame.
		_ = c.Show()
	}

	var w *watcher.Watcher
	onFolders := func(folders []string) {
		if w != nil {
			w.SetFolders(folders)
		}
	}

	model := tui.New(s, onFolders).WithNotice(holder.last)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if config.Watch {
		w, err = startWatcher(s, config.WatchDebounce, func(err error) {
			program.Send(tui.RefreshMsg{Err: err})
		})
		if err != nil {
			return fmt.Errorf("start folder watcher: %w", err)
		}
		defer w.Stop()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
