package picker

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"multi-image-viewer/internal/keyrule"
	"multi-image-viewer/internal/logging"
	"multi-image-viewer/internal/session"
)

// Folders is the interactive folder manager. It loops over an
// add / remove menu until the user finishes with Esc or Done, or until the
// list becomes empty.
type Folders struct {
	prompts Prompts
	notify  func(session.Notice)
}

// NewFolders creates a folder manager. notify receives informational
// notices such as duplicate folders and may be nil.
func NewFolders(notify func(session.Notice)) *Folders {
	return &Folders{prompts: huhPrompts{}, notify: notify}
}

// PickFolders implements session.FolderPicker.
func (p *Folders) PickFolders(current []string) ([]string, error) {
	var set session.FolderSet
	for _, f := range current {
		_, _ = set.Add(f)
	}

	for {
		choice, err := p.prompts.Menu(set.List())
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return set.List(), nil
			}
			return nil, err
		}

		switch {
		case choice == actionDone:
			return set.List(), nil

		case choice == actionAdd:
			path, err := p.prompts.Folder()
			if err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					continue
				}
				return nil, err
			}
			if path == "" {
				continue
			}
			if _, err := set.Add(path); err != nil {
				p.report(session.NoticeFor(err))
			}

		case strings.HasPrefix(choice, removePrefix):
			set.Remove(strings.TrimPrefix(choice, removePrefix))
		}

		logging.Debug("Current selected folders: %v", set.List())

		if set.Len() == 0 {
			// The caller reports ErrNoFoldersSelected for an empty result.
			return nil, nil
		}
	}
}

func (p *Folders) report(n *session.Notice) {
	if n != nil && p.notify != nil {
		p.notify(*n)
	}
}

// Rule prompts for a key extraction pattern.
type Rule struct {
	prompts Prompts
}

// NewRule creates a rule prompt.
func NewRule() *Rule {
	return &Rule{prompts: huhPrompts{}}
}

// PromptForRule implements session.RulePrompter. Esc cancels.
func (r *Rule) PromptForRule(current string) (string, bool, error) {
	input, err := r.prompts.Pattern(current)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, err
	}
	return strings.TrimSpace(input), true, nil
}

func validatePattern(input string) error {
	_, err := keyrule.Compile(input, keyrule.UseFullName)
	return err
}
