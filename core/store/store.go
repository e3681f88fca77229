package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"

	"github.com/mathprose/mathprose/core/normalize"
)

const (
	jsonMarker    = "JSON Representation:"
	fileExtension = ".txt"
)

// Store reads and writes expression files under a single directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created lazily on the
// first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// fileRecord is the machine-readable JSON tail of a saved file. MathJS and
// LaTeX hold the literal text of the candidate structure: the bare primary
// when there are no alternatives, otherwise the JSON array text of all
// forms in order.
type fileRecord struct {
	MathJS       string  `json:"mathjs"`
	LaTeX        string  `json:"latex"`
	SympyRepr    *string `json:"sympy_repr"`
	ResponseTime float64 `json:"response_time,omitempty"`
	UserInput    string  `json:"user_input,omitempty"`
}

// Save writes rec to a file under the store directory and returns its path.
// When name is empty a timestamped filename derived from the primary MathJS
// form is generated. A .txt extension is appended when missing.
func (s *Store) Save(rec *normalize.Record, name string) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("no record to save")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating store directory: %w", err)
	}

	if name == "" {
		name = generatedName(rec, time.Now())
	}
	path := s.resolve(name)

	fr := fileRecord{
		MathJS:       encodeForms(rec.MathJS, rec.MathJSAlternatives),
		LaTeX:        encodeForms(rec.LaTeX, rec.LaTeXAlternatives),
		ResponseTime: rec.Elapsed.Seconds(),
		UserInput:    rec.Query,
	}
	if rec.Rendered != "" {
		rendered := rec.Rendered
		fr.SympyRepr = &rendered
	}

	tail, err := json.MarshalIndent(fr, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding record: %w", err)
	}

	var b strings.Builder
	b.WriteString(rec.Display())
	b.WriteString("\n\n")
	b.WriteString(jsonMarker)
	b.WriteString("\n")
	b.Write(tail)
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Load reads the file called name from the store directory and reconstructs
// its record. The extraction pipeline is not involved: the JSON tail after
// the last marker is authoritative.
func (s *Store) Load(name string) (*normalize.Record, error) {
	path := s.resolve(name)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	idx := strings.LastIndex(string(content), jsonMarker)
	if idx == -1 {
		return nil, fmt.Errorf("%s has no %q section", path, jsonMarker)
	}

	var fr fileRecord
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(content)[idx+len(jsonMarker):])), &fr); err != nil {
		return nil, fmt.Errorf("decoding record in %s: %w", path, err)
	}

	rec := &normalize.Record{
		Query:   fr.UserInput,
		Elapsed: time.Duration(fr.ResponseTime * float64(time.Second)),
	}
	rec.MathJS, rec.MathJSAlternatives = decodeForms(fr.MathJS)
	rec.LaTeX, rec.LaTeXAlternatives = decodeForms(fr.LaTeX)
	if fr.SympyRepr != nil {
		rec.Rendered = *fr.SympyRepr
	}

	if rec.MathJS == "" && rec.LaTeX == "" {
		return nil, fmt.Errorf("%s carries neither a mathjs nor a latex form", path)
	}
	return rec, nil
}

// List returns the saved expression filenames, newest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", s.dir, err)
	}

	type fileInfo struct {
		name    string
		modTime time.Time
	}
	var files []fileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExtension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{name: entry.Name(), modTime: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.After(files[j].modTime)
	})

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.name)
	}
	return names, nil
}

// resolve normalizes a user-supplied name into a path inside the store
// directory with the expected extension.
func (s *Store) resolve(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if !strings.HasSuffix(name, fileExtension) {
		name += fileExtension
	}
	return filepath.Join(s.dir, name)
}

// generatedName derives a filename from the primary MathJS form and a
// timestamp, mirroring expr_<slug>_<stamp>.txt.
func generatedName(rec *normalize.Record, now time.Time) string {
	slug := rec.MathJS
	if slug == "" {
		slug = rec.LaTeX
	}
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	if len(slug) > 20 {
		slug = slug[:20]
	}
	return fmt.Sprintf("expr_%s_%s%s", slug, now.Format("20060102_150405"), fileExtension)
}

// encodeForms serialises primary + alternatives into the embedded text
// shape: the bare primary when alone, the JSON array text otherwise.
func encodeForms(primary string, alternatives []string) string {
	if len(alternatives) == 0 {
		return primary
	}
	all := append([]string{primary}, alternatives...)
	encoded, err := json.Marshal(all)
	if err != nil {
		return primary
	}
	return string(encoded)
}

// decodeForms reverses encodeForms. Text that looks like a JSON array is
// parsed (repairing if needed) into ordered forms; anything else is a single
// primary.
func decodeForms(text string) (string, []string) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") {
		return text, nil
	}

	var forms []string
	if err := json.Unmarshal([]byte(trimmed), &forms); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(trimmed)
		if repairErr != nil || json.Unmarshal([]byte(repaired), &forms) != nil {
			return text, nil
		}
	}
	if len(forms) == 0 {
		return "", nil
	}
	return forms[0], forms[1:]
}
