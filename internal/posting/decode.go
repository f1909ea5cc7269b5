package posting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Column names used by scraper exports, mapped to Posting fields.
var aliases = map[string]string{
	"job_url":     "url",
	"link":        "url",
	"job_type":    "employment_type",
	"noc_code":    "occupation_code",
	"date_posted": "posted_at",
}

var salaryAliases = map[string]string{
	"salary_min":      "min",
	"salary_max":      "max",
	"salary_interval": "interval",
	"salary_currency": "currency",
	"currency":        "currency",
	"interval":        "interval",
}

// LoadFile reads postings from a JSON or YAML file holding either a list of
// records or an object with an "items" list.
func LoadFile(path string) (*Postings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading postings: %w", err)
	}

	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing postings %q: %w", path, err)
	}

	if obj, ok := raw.(map[string]any); ok {
		raw = obj["items"]
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("postings %q: expected a list of records", path)
	}

	records := make([]map[string]any, 0, len(list))
	for i, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("postings %q: record %d is not an object", path, i)
		}
		records = append(records, rec)
	}

	return Decode(records)
}

// Decode converts raw records into postings. Numbers given as strings are
// accepted, flat salary_* columns are folded into the salary object, and
// computed fields in the input are dropped. A record without a URL gets a
// stable content-derived key; a repeated URL replaces the earlier record.
func Decode(records []map[string]any) (*Postings, error) {
	ps := &Postings{Items: make([]*Posting, 0, len(records))}
	index := make(map[string]int, len(records))

	for i, rec := range records {
		var p Posting
		cfg := &mapstructure.DecoderConfig{
			Metadata:         nil,
			Result:           &p,
			TagName:          "json",
			WeaklyTypedInput: true,
		}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(normalize(rec)); err != nil {
			return nil, fmt.Errorf("decoding posting %d: %w", i, err)
		}

		p.URL = strings.TrimSpace(p.URL)
		if p.URL == "" {
			p.URL = contentKey(&p)
		}

		if j, dup := index[p.URL]; dup {
			ps.Items[j] = &p
			continue
		}
		index[p.URL] = len(ps.Items)
		ps.Items = append(ps.Items, &p)
	}

	return ps, nil
}

func normalize(rec map[string]any) map[string]any {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(rec))
	salary := map[string]any{}
	if nested, ok := rec["salary"].(map[string]any); ok {
		for k, v := range nested {
			salary[k] = v
		}
	}

	// canonical names win over aliases
	for _, k := range keys {
		key := strings.ToLower(k)
		_, isSalary := salaryAliases[key]
		_, isAlias := aliases[key]
		if key == "salary" || key == "computed" || isSalary || isAlias {
			continue
		}
		out[key] = rec[k]
	}
	for _, k := range keys {
		key := strings.ToLower(k)
		if alias, ok := salaryAliases[key]; ok {
			if _, set := salary[alias]; !set {
				salary[alias] = rec[k]
			}
			continue
		}
		if alias, ok := aliases[key]; ok {
			if _, set := out[alias]; !set {
				out[alias] = rec[k]
			}
		}
	}

	if len(salary) > 0 {
		out["salary"] = salary
	}
	return out
}

func contentKey(p *Posting) string {
	name := strings.Join([]string{p.Title, p.Company, p.Location, p.Description}, "\x00")
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
