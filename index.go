package main

import (
	"errors"
	"fmt"

	"multi-image-viewer/internal/picker"
	"multi-image-viewer/internal/session"
	"multi-image-viewer/internal/tui"

	"github.com/spf13/cobra"
)

func runIndex(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	s, err := newSession(config)
	if err != nil {
		return err
	}

	if flagInteractive {
		if !isTerminal() {
			return errors.New("--interactive needs a terminal")
		}
		c := session.NewController(s, picker.NewFolders(stderrNotifier{}.Notify), nil, nil, nil)
		// OpenFolders rebuilds; the rebuild below reports the outcome.
		if err := c.OpenFolders(); err != nil && len(s.Folders()) == 0 {
			return err
		}
	}

	return printIndex(cmd, s)
}

// printIndex rebuilds s and writes the key table. A rebuild that finds no
// matching images still prints the empty table and succeeds.
func printIndex(cmd *cobra.Command, s *session.Session) error {
	err := s.Rebuild()
	switch {
	case errors.Is(err, session.ErrNoMatchingImages):
		stderrNotifier{}.Notify(*session.NoticeFor(err))
	case err != nil:
		return err
	}

	idx := s.Index()
	fmt.Fprintln(cmd.OutOrStdout(), tui.RenderIndex(idx))
	fmt.Fprintf(cmd.OutOrStdout(), "%d keys, %d files, %s\n", idx.Len(), idx.Files, s.Rule())
	return nil
}
