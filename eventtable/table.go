package eventtable

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Prefix is prepended to every entry name when it is exposed to the host.
const Prefix = "MobiFlight."

// An Entry is one event definition.
type Entry struct {
	Name string
	Code string
}

// HostName returns the name under which the entry is mapped in the host.
func (e Entry) HostName() string {
	return Prefix + e.Name
}

// Source records how many entries one file contributed.
type Source struct {
	Path  string
	Count int
}

// A Table is the ordered list of loaded entries. The position of an entry in
// the table is its event id.
type Table struct {
	Entries []Entry
	Sources []Source
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.Entries)
}

// Lookup returns the entry mapped to the event id.
func (t *Table) Lookup(eventID uint32) (Entry, bool) {
	if t == nil || uint64(eventID) >= uint64(len(t.Entries)) {
		return Entry{}, false
	}

	return t.Entries[eventID], true
}

// Append adds the entries parsed from r and records them as one source.
func (t *Table) Append(path string, r io.Reader) error {
	entries, err := Parse(r)
	if err != nil {
		return fmt.Errorf("eventtable: read %s: %w", path, err)
	}

	t.Entries = append(t.Entries, entries...)
	t.Sources = append(t.Sources, Source{Path: path, Count: len(entries)})

	return nil
}

// Load reads the files in order. A file that does not exist contributes no
// entries and is not an error.
func Load(paths ...string) (*Table, error) {
	t := &Table{}

	for _, path := range paths {
		err := t.appendFile(path)
		if err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Table) appendFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Sources = append(t.Sources, Source{Path: path})
		return nil
	}

	if err != nil {
		return fmt.Errorf("eventtable: open %s: %w", path, err)
	}
	defer f.Close()

	return t.Append(path, f)
}

// Parse reads entries from r, skipping comments and blank lines.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		entry, ok := ParseLine(scanner.Text())
		if ok {
			entries = append(entries, entry)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ParseLine parses one line. It returns false for comment and blank lines.
func ParseLine(line string) (Entry, bool) {
	line = strings.TrimRight(line, "\r")
	if strings.Contains(line, "//") || strings.TrimSpace(line) == "" {
		return Entry{}, false
	}

	name, code, found := strings.Cut(line, "#")
	if !found {
		return Entry{Name: line, Code: "(>H:" + line + ")"}, true
	}

	return Entry{Name: name, Code: strings.TrimLeft(code, " ")}, true
}

// Dump writes a human readable listing of the table.
func (t *Table) Dump(w io.Writer) error {
	for _, s := range t.Sources {
		_, err := fmt.Fprintf(w, "# %s: %d\n", s.Path, s.Count)
		if err != nil {
			return err
		}
	}

	for i, e := range t.Entries {
		_, err := fmt.Fprintf(w, "%d\t%s\t%s\n", i, e.HostName(), e.Code)
		if err != nil {
			return err
		}
	}

	return nil
}
