// Package worksheet runs a batch of calculus operations described in a YAML or JSON file.
package worksheet

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Task is one operation of a worksheet. Params use the same names as the HTTP API.
type Task struct {
	Name   string         `yaml:"name" json:"name"`
	Op     string         `yaml:"op" json:"op"`
	Params map[string]any `yaml:"params" json:"params"`
}

// Sheet is a named list of tasks, run in order.
type Sheet struct {
	Name  string `yaml:"name" json:"name"`
	Tasks []Task `yaml:"tasks" json:"tasks"`
}

// Dispatcher serves a named operation. *service.Service satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, params map[string]any) (any, error)
}

// Result is the outcome of one task.
type Result struct {
	Task     string        `json:"task"`
	Op       string        `json:"op"`
	Value    any           `json:"value,omitempty"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Load reads a worksheet file. Files ending in .json are parsed as JSON, anything else as YAML.
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}

	var sheet Sheet
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &sheet); err != nil {
			return nil, fmt.Errorf("failed to parse worksheet %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &sheet); err != nil {
			return nil, fmt.Errorf("failed to parse worksheet %s: %w", path, err)
		}
	}

	if sheet.Name == "" {
		sheet.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := sheet.Validate(); err != nil {
		return nil, err
	}
	return &sheet, nil
}

// Validate checks that every task names an operation and that task names are unique.
func (s *Sheet) Validate() error {
	if len(s.Tasks) == 0 {
		return fmt.Errorf("worksheet %q has no tasks", s.Name)
	}
	seen := make(map[string]bool, len(s.Tasks))
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.Op == "" {
			return fmt.Errorf("task %d of worksheet %q has no op", i+1, s.Name)
		}
		if t.Name == "" {
			t.Name = fmt.Sprintf("%d-%s", i+1, t.Op)
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate task name %q in worksheet %q", t.Name, s.Name)
		}
		seen[t.Name] = true
	}
	return nil
}

// Run executes the tasks in order. A failed task is recorded and the run continues;
// the run stops early only when ctx is done.
func Run(ctx context.Context, d Dispatcher, sheet *Sheet) []Result {
	results := make([]Result, 0, len(sheet.Tasks))
	for _, t := range sheet.Tasks {
		if err := ctx.Err(); err != nil {
			results = append(results, Result{Task: t.Name, Op: t.Op, Err: err, Error: err.Error()})
			break
		}
		start := time.Now()
		value, err := d.Dispatch(ctx, t.Op, t.Params)
		r := Result{Task: t.Name, Op: t.Op, Value: value, Err: err, Duration: time.Since(start)}
		if err != nil {
			r.Value = nil
			r.Error = err.Error()
		}
		results = append(results, r)
	}
	return results
}

// Failed counts the results carrying an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
