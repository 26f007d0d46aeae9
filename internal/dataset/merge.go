package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/amishk599/skillradar/internal/model"
	"github.com/amishk599/skillradar/internal/stats"
)

// ErrNotEnoughParts is returned when fewer than two parts exist to merge.
var ErrNotEnoughParts = errors.New("at least two parts are required to merge")

var partNumber = regexp.MustCompile(`_pt(\d+)`)

// MergeResult describes one written merged file.
type MergeResult struct {
	Output  string
	Parts   []string
	Records int
}

// MergeCSV concatenates every base*_ptN.csv file in dir, N ascending, drops
// rows whose id was already seen and writes base_merged.csv.
func MergeCSV(dir, base string) (*MergeResult, error) {
	parts, err := findParts(dir, base, ".csv")
	if err != nil {
		return nil, err
	}
	if len(parts) < 2 {
		return nil, fmt.Errorf("merging %s: %w (found %d)", base, ErrNotEnoughParts, len(parts))
	}

	merged := &table{}
	seen := make(map[string]bool)
	for _, p := range parts {
		t, err := readTable(p)
		if err != nil {
			return nil, fmt.Errorf("merging %s: %w", base, err)
		}
		merged.addColumns(t.header)
		for _, row := range t.rows {
			id := row["id"]
			if seen[id] {
				continue
			}
			seen[id] = true
			merged.rows = append(merged.rows, row)
		}
	}

	out := filepath.Join(dir, base+mergedSuffix+".csv")
	if err := writeTable(out, merged); err != nil {
		return nil, fmt.Errorf("merging %s: %w", base, err)
	}
	return &MergeResult{Output: out, Parts: parts, Records: len(merged.rows)}, nil
}

// MergeSkills sums skill counts across every skills_data*.json file in dir
// except the merged output and writes skills_data_merged.json sorted by
// skill name.
func MergeSkills(dir string) (*MergeResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	mergedName := SkillsBase + mergedSuffix + ".json"

	var parts []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == mergedName {
			continue
		}
		if strings.HasPrefix(name, SkillsBase) && strings.HasSuffix(name, ".json") {
			parts = append(parts, filepath.Join(dir, name))
		}
	}
	sort.Strings(parts)
	if len(parts) < 2 {
		return nil, fmt.Errorf("merging skills: %w (found %d)", ErrNotEnoughParts, len(parts))
	}

	tables := make([][]model.SkillFrequency, 0, len(parts))
	for _, p := range parts {
		t, err := readSkillsFile(p)
		if err != nil {
			return nil, fmt.Errorf("merging skills: %w", err)
		}
		tables = append(tables, t)
	}
	merged := stats.Sum(tables...)

	out := filepath.Join(dir, mergedName)
	if err := writeSkillsFile(out, merged); err != nil {
		return nil, fmt.Errorf("merging skills: %w", err)
	}
	return &MergeResult{Output: out, Parts: parts, Records: len(merged)}, nil
}

// MergeAll merges the three CSV datasets and the skill tables in dir. A
// dataset without enough parts is logged and skipped; other failures are
// returned after every merge has been attempted.
func MergeAll(dir string, logger *slog.Logger) ([]*MergeResult, error) {
	var (
		results []*MergeResult
		errs    []error
	)
	record := func(res *MergeResult, err error, name string) {
		switch {
		case errors.Is(err, ErrNotEnoughParts):
			logger.Warn("nothing to merge", "dataset", name, "error", err)
		case err != nil:
			errs = append(errs, err)
		default:
			logger.Info("merged dataset",
				"dataset", name,
				"output", res.Output,
				"parts", len(res.Parts),
				"records", res.Records,
			)
			results = append(results, res)
		}
	}

	for _, base := range []string{WithSkillsBase, EmptyBase, ErrorsBase} {
		res, err := MergeCSV(dir, base)
		record(res, err, base)
	}
	res, err := MergeSkills(dir)
	record(res, err, SkillsBase)

	return results, errors.Join(errs...)
}

func findParts(dir, base, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	type part struct {
		path string
		n    int
	}
	var parts []part
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, base) || !strings.HasSuffix(name, ext) {
			continue
		}
		m := partNumber.FindStringSubmatch(strings.TrimPrefix(name, base))
		if m == nil {
			continue
		}
		n, _ := strconv.Atoi(m[1])
		parts = append(parts, part{path: filepath.Join(dir, name), n: n})
	}
	sort.SliceStable(parts, func(i, j int) bool { return parts[i].n < parts[j].n })

	paths := make([]string, len(parts))
	for i, p := range parts {
		paths[i] = p.path
	}
	return paths, nil
}
