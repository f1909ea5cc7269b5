package posting

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// ExcludedPostings is the content of the exclude file: postings already
// handled in an earlier run.
type ExcludedPostings struct {
	Items []*ExcludedPosting `json:"items"`
}

type ExcludedPosting struct {
	URL        string    `json:"url"`
	Title      string    `json:"title,omitempty"`
	Company    string    `json:"company,omitempty"`
	Tier       string    `json:"tier,omitempty"`
	ExcludedAt time.Time `json:"excluded_at"`
}

// LoadExcluded reads an exclude file. A missing or empty file is an empty
// list.
func LoadExcluded(path string) (*ExcludedPostings, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &ExcludedPostings{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedPostings{}, nil
	}

	var excluded ExcludedPostings
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

// Append adds entries whose URL is not already present.
func (e *ExcludedPostings) Append(s *ExcludedPostings) {
	seen := make(map[string]struct{}, len(e.Items))
	for _, item := range e.Items {
		seen[item.URL] = struct{}{}
	}
	for _, item := range s.Items {
		if _, ok := seen[item.URL]; ok {
			continue
		}
		seen[item.URL] = struct{}{}
		e.Items = append(e.Items, item)
	}
}

// URLs returns the excluded posting URLs.
func (e *ExcludedPostings) URLs() []string {
	urls := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		urls = append(urls, item.URL)
	}
	return urls
}

// ToFile overwrites path with the list.
func (e *ExcludedPostings) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
