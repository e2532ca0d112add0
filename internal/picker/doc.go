// Package picker implements the interactive folder manager and key rule
// prompt as terminal forms built with huh.
//
// Folders satisfies session.FolderPicker and Rule satisfies
// session.RulePrompter, so the command line surfaces can drive a
// session.Controller without the session package knowing about terminals.
package picker
