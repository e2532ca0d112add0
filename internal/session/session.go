package session

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"multi-image-viewer/internal/indexer"
	"multi-image-viewer/internal/keyrule"
	"multi-image-viewer/internal/logging"
	"multi-image-viewer/internal/metrics"
)

// Slot is one folder's column for the current key.
type Slot struct {
	Folder     string `json:"folder"`
	FolderName string `json:"folderName"`
	Path       string `json:"path,omitempty"`
	Name       string `json:"name,omitempty"`
	Missing    bool   `json:"missing"`
}

// Entry is the key under the cursor together with its slots.
type Entry struct {
	Key      string `json:"key"`
	Position int    `json:"position"` // 1-based
	Total    int    `json:"total"`
	Slots    []Slot `json:"slots"`
}

// Counter renders the "position / total (key=K)" line.
func (e Entry) Counter() string {
	return fmt.Sprintf("%d / %d (key=%s)", e.Position, e.Total, e.Key)
}

// State is a consistent snapshot of a Session.
type State struct {
	Folders   []string  `json:"folders"`
	Rule      string    `json:"rule"`
	Pattern   string    `json:"pattern"`
	OnNoMatch string    `json:"onNoMatch"`
	Stale     bool      `json:"stale"`
	Total     int       `json:"total"`
	Position  int       `json:"position"`
	Current   *Entry    `json:"current,omitempty"`
	BuiltAt   time.Time `json:"builtAt,omitempty"`
}

// Session holds the folder list, key rule, index and cursor of one viewing
// session.
type Session struct {
	mu      sync.RWMutex
	indexer *indexer.Indexer
	folders FolderSet
	rule    keyrule.Rule
	index   *indexer.Index
	stale   bool
	nav     Navigator
}

// New creates an empty session that builds indexes with idx using rule.
func New(idx *indexer.Indexer, rule keyrule.Rule) *Session {
	return &Session{
		indexer: idx,
		rule:    rule,
	}
}

// AddFolder appends a folder. A folder that is already selected yields a
// DuplicateFolderError and no change.
func (s *Session) AddFolder(path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	canonical, err := s.folders.Add(path)
	if err != nil {
		metrics.FolderChangesTotal.WithLabelValues("duplicate").Inc()
		return canonical, err
	}
	metrics.FolderChangesTotal.WithLabelValues("add").Inc()
	s.stale = true
	logging.Debug("Folder added: %s", canonical)
	return canonical, nil
}

// RemoveFolder removes a folder. Removing a folder that is not selected is
// a no-op and returns false.
func (s *Session) RemoveFolder(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.folders.Remove(path) {
		return false
	}
	metrics.FolderChangesTotal.WithLabelValues("remove").Inc()
	s.stale = true
	logging.Debug("Folder removed: %s", Canonical(path))
	return true
}

// SetFolders replaces the folder list. Duplicates after the first
// occurrence are dropped.
func (s *Session) SetFolders(paths []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next FolderSet
	for _, p := range paths {
		if _, err := next.Add(p); err != nil {
			logging.Debug("Ignoring duplicate folder %s", p)
		}
	}
	s.folders = next
	s.stale = true
	return s.folders.List()
}

// Folders returns the selected folders in order.
func (s *Session) Folders() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.folders.List()
}

// Rule returns the active key rule.
func (s *Session) Rule() keyrule.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rule
}

// SetRule replaces the key rule. When folders are selected the index is
// rebuilt and the cursor returns to the first key.
func (s *Session) SetRule(rule keyrule.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setRuleLocked(rule)
}

func (s *Session) setRuleLocked(rule keyrule.Rule) error {
	s.rule = rule
	s.stale = true
	if s.folders.Len() == 0 {
		return nil
	}
	return s.rebuildLocked(true)
}

// SetRuleInput compiles user input with the current no-match policy and
// applies it. A blank input clears the rule. An invalid pattern leaves the
// active rule untouched and returns an error wrapping
// keyrule.ErrInvalidPattern. The returned notice describes the change.
func (s *Session) SetRuleInput(input string) (*Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setRuleInputLocked(input, s.rule.OnNoMatch())
}

// SetRuleInputWithPolicy is SetRuleInput with an explicit no-match policy.
func (s *Session) SetRuleInputWithPolicy(input string, onNoMatch keyrule.NoMatchPolicy) (*Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setRuleInputLocked(input, onNoMatch)
}

func (s *Session) setRuleInputLocked(input string, onNoMatch keyrule.NoMatchPolicy) (*Notice, error) {
	rule, err := keyrule.Compile(input, onNoMatch)
	if err != nil {
		metrics.RuleChangesTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	notice := Info("Rule updated")
	if !rule.IsPattern() {
		metrics.RuleChangesTotal.WithLabelValues("cleared").Inc()
		notice = Info("Rule cleared, using full filename")
	} else {
		metrics.RuleChangesTotal.WithLabelValues("updated").Inc()
	}

	if err := s.setRuleLocked(rule); err != nil {
		return notice, err
	}
	return notice, nil
}

// Rebuild recomputes the index from the current folders and rule and
// resets the cursor to the first key.
func (s *Session) Rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuildLocked(true)
}

// Refresh recomputes the index like Rebuild but keeps the cursor position
// when it is still in range.
func (s *Session) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuildLocked(false)
}

func (s *Session) rebuildLocked(reset bool) error {
	if s.folders.Len() == 0 {
		return ErrNoFoldersSelected
	}

	index, err := s.indexer.Rebuild(s.folders.List(), s.rule)
	if err != nil {
		// The previous index stays in place but no longer matches the folders.
		s.stale = true
		logging.Error("Rebuild failed: %v", err)
		return err
	}

	s.index = index
	s.stale = false
	if reset {
		s.nav.Reset(index.Len())
	} else {
		s.nav.Resize(index.Len())
	}

	if index.Len() == 0 {
		return ErrNoMatchingImages
	}
	return nil
}

// Next moves to the next key with wraparound.
func (s *Session) Next() bool {
	return s.move("next", s.nav.Next)
}

// Prev moves to the previous key with wraparound.
func (s *Session) Prev() bool {
	return s.move("prev", s.nav.Prev)
}

// JumpTo moves to the 1-based position k. Out-of-range positions are
// ignored.
func (s *Session) JumpTo(k int) bool {
	return s.move("jump", func() bool { return s.nav.JumpTo(k) })
}

// JumpToInput parses a 1-based position typed by the user. Input that is
// not an integer is ignored like an out-of-range position.
func (s *Session) JumpToInput(input string) bool {
	k, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		metrics.NavigationTotal.WithLabelValues("ignored").Inc()
		return false
	}
	return s.JumpTo(k)
}

func (s *Session) move(action string, fn func() bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fn() {
		metrics.NavigationTotal.WithLabelValues("ignored").Inc()
		return false
	}
	metrics.NavigationTotal.WithLabelValues(action).Inc()
	return true
}

// Current returns the entry under the cursor. ok is false when there is
// nothing to show.
func (s *Session) Current() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentLocked()
}

func (s *Session) currentLocked() (Entry, bool) {
	cursor := s.nav.Cursor()
	if s.index == nil || cursor < 0 || cursor >= s.index.Len() {
		return Entry{}, false
	}

	key := s.index.Keys[cursor]
	paths := s.index.Entries[key]
	entry := Entry{
		Key:      key,
		Position: cursor + 1,
		Total:    s.index.Len(),
		Slots:    make([]Slot, len(s.index.Folders)),
	}
	for i, folder := range s.index.Folders {
		slot := Slot{Folder: folder, FolderName: filepath.Base(folder)}
		if p := paths[i]; p != "" {
			slot.Path = p
			slot.Name = filepath.Base(p)
		} else {
			slot.Missing = true
		}
		entry.Slots[i] = slot
	}
	return entry, true
}

// Snapshot returns the full session state.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := State{
		Folders:   s.folders.List(),
		Rule:      s.rule.String(),
		Pattern:   s.rule.Pattern(),
		OnNoMatch: string(s.rule.OnNoMatch()),
		Stale:     s.stale,
		Total:     s.index.Len(),
	}
	if s.index != nil {
		state.BuiltAt = s.index.BuiltAt
	}
	if entry, ok := s.currentLocked(); ok {
		state.Position = entry.Position
		state.Current = &entry
	}
	return state
}

// Index returns the latest successfully built index, or nil.
func (s *Session) Index() *indexer.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// ImagePath returns the path indexed for key in the given folder slot.
func (s *Session) ImagePath(key string, slot int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Slot(key, slot)
}

// Contains reports whether path is one of the files in the current index.
func (s *Session) Contains(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index == nil {
		return false
	}
	for _, paths := range s.index.Entries {
		for _, p := range paths {
			if p != "" && p == path {
				return true
			}
		}
	}
	return false
}

// Stats implements metrics.StatsProvider.
func (s *Session) Stats() metrics.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return metrics.Stats{
		Folders:  s.folders.Len(),
		Keys:     s.index.Len(),
		Position: s.nav.Cursor() + 1,
		Stale:    s.stale,
	}
}
