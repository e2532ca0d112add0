package picker

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
)

const (
	actionAdd    = "add"
	actionDone   = "done"
	removePrefix = "remove:"
)

// Prompts asks the user single questions. The huh implementation is used
// unless a test substitutes its own.
type Prompts interface {
	// Menu shows the folder manager menu and returns the chosen action.
	Menu(folders []string) (string, error)
	// Folder asks for a folder path to add.
	Folder() (string, error)
	// Pattern asks for a key pattern, pre-filled with current.
	Pattern(current string) (string, error)
}

type huhPrompts struct{}

func (huhPrompts) Menu(folders []string) (string, error) {
	var choice string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Manage selected folders").
				Description(menuDescription(folders)).
				Options(menuOptions(folders)...).
				Value(&choice),
		),
	).Run()
	return choice, err
}

func (huhPrompts) Folder() (string, error) {
	var path string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Select folder").
				Placeholder("/path/to/images").
				Value(&path).
				Validate(validateFolder),
		),
	).Run()
	return strings.TrimSpace(path), err
}

func (huhPrompts) Pattern(current string) (string, error) {
	value := current
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Key extraction pattern").
				Description("First capture group is the key. Leave empty to use the full filename.").
				Value(&value).
				Validate(validatePattern),
		),
	).Run()
	return value, err
}

func menuOptions(folders []string) []huh.Option[string] {
	options := []huh.Option[string]{
		huh.NewOption("Add new folder", actionAdd),
	}
	for _, f := range folders {
		options = append(options, huh.NewOption("Remove "+f, removePrefix+f))
	}
	options = append(options, huh.NewOption("Done", actionDone))
	return options
}

func menuDescription(folders []string) string {
	if len(folders) == 0 {
		return "No folders selected yet"
	}
	return "Selected: " + strings.Join(folders, ", ")
}

func validateFolder(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("enter a folder path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot open %s", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a folder", path)
	}
	return nil
}
