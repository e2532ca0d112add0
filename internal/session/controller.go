package session

import (
	"errors"
)

// FolderPicker lets the user edit the folder list. It returns the new list
// in order, or ErrCancelled.
type FolderPicker interface {
	PickFolders(current []string) ([]string, error)
}

// RulePrompter asks the user for a key pattern. ok is false when the user
// cancelled; an empty input clears the rule.
type RulePrompter interface {
	PromptForRule(current string) (input string, ok bool, err error)
}

// Renderer displays the session state.
type Renderer interface {
	Render(state State) error
}

// Notifier shows notices to the user.
type Notifier interface {
	Notify(notice Notice)
}

// Controller drives a Session through user-facing collaborators. Any of
// them may be nil when the surface does not need it.
type Controller struct {
	session  *Session
	picker   FolderPicker
	prompter RulePrompter
	renderer Renderer
	notifier Notifier
}

// NewController creates a Controller.
func NewController(s *Session, picker FolderPicker, prompter RulePrompter, renderer Renderer, notifier Notifier) *Controller {
	return &Controller{
		session:  s,
		picker:   picker,
		prompter: prompter,
		renderer: renderer,
		notifier: notifier,
	}
}

// Session returns the controlled session.
func (c *Controller) Session() *Session {
	return c.session
}

// OpenFolders runs the folder picker, applies the result, rebuilds and
// renders. Cancelling keeps the current folders.
func (c *Controller) OpenFolders() error {
	if c.picker == nil {
		return c.Show()
	}

	folders, err := c.picker.PickFolders(c.session.Folders())
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return nil
		}
		c.notify(NoticeFor(err))
		return err
	}
	if len(folders) == 0 {
		c.notify(NoticeFor(ErrNoFoldersSelected))
		return ErrNoFoldersSelected
	}

	c.session.SetFolders(folders)
	return c.Show()
}

// EditRule prompts for a new key pattern, pre-filled with the current one.
func (c *Controller) EditRule() error {
	if c.prompter == nil {
		return nil
	}

	input, ok, err := c.prompter.PromptForRule(c.session.Rule().Pattern())
	if err != nil {
		c.notify(NoticeFor(err))
		return err
	}
	if !ok {
		return nil
	}

	notice, err := c.session.SetRuleInput(input)
	c.notify(notice)
	if err != nil {
		c.notify(NoticeFor(err))
		return err
	}
	return c.render()
}

// Show rebuilds the index for the current folders and renders it.
func (c *Controller) Show() error {
	if err := c.session.Rebuild(); err != nil {
		c.notify(NoticeFor(err))
		return err
	}
	return c.render()
}

// Next advances and renders.
func (c *Controller) Next() error {
	c.session.Next()
	return c.render()
}

// Prev steps back and renders.
func (c *Controller) Prev() error {
	c.session.Prev()
	return c.render()
}

// Jump moves to a 1-based position typed by the user and renders.
// Invalid input is ignored.
func (c *Controller) Jump(input string) error {
	c.session.JumpToInput(input)
	return c.render()
}

func (c *Controller) render() error {
	if c.renderer == nil {
		return nil
	}
	return c.renderer.Render(c.session.Snapshot())
}

func (c *Controller) notify(n *Notice) {
	if n == nil || c.notifier == nil {
		return
	}
	c.notifier.Notify(*n)
}
