package codegen

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/yourusername/zibox/internal/ir"
)

// The JSON output is a stable integration surface; it mirrors the IR but
// with sorted tag lists and RFC 3339 timestamps so downstream tools get
// deterministic documents.

type jsonProgram struct {
	Metadata jsonMetadata `json:"metadata"`
	Blocks   []jsonBlock  `json:"blocks"`
}

type jsonMetadata struct {
	WorkdayStart      string   `json:"workdayStart"`
	WorkdayEnd        string   `json:"workdayEnd"`
	MaxParallel       int      `json:"maxParallel"`
	FocusTags         []string `json:"focusTags,omitempty"`
	OptimizationLevel int      `json:"optimizationLevel"`
	DeepworkTag       string   `json:"deepworkTag"`
}

type jsonBlock struct {
	Name  string     `json:"name"`
	Tasks []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Params          []string `json:"params,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Priority        string   `json:"priority"`
	DependsOn       []string `json:"dependsOn,omitempty"`
	ScheduledStart  *string  `json:"scheduledStart,omitempty"`
	ScheduledEnd    *string  `json:"scheduledEnd,omitempty"`
	Completed       bool     `json:"completed"`
}

func generateJSON(p *ir.Program) (string, error) {
	doc := jsonProgram{
		Metadata: jsonMetadata{
			WorkdayStart:      p.Metadata.WorkdayStart.String(),
			WorkdayEnd:        p.Metadata.WorkdayEnd.String(),
			MaxParallel:       p.Metadata.MaxParallel,
			FocusTags:         p.Metadata.FocusTags,
			OptimizationLevel: p.Metadata.OptimizationLevel,
			DeepworkTag:       p.Metadata.DeepworkTag,
		},
	}
	for _, block := range p.Blocks {
		jb := jsonBlock{Name: block.Name, Tasks: []jsonTask{}}
		for _, t := range p.TasksIn(block) {
			jt := jsonTask{
				ID:             t.ID,
				Name:           t.Name,
				Params:         t.Params,
				Tags:           sortedTagList(t),
				Priority:       t.Priority.String(),
				DependsOn:      t.DependsOn,
				ScheduledStart: formatStamp(t.ScheduledStart),
				ScheduledEnd:   formatStamp(t.ScheduledEnd),
				Completed:      t.Completed,
			}
			if t.Duration != nil {
				minutes := t.Duration.Minutes
				jt.DurationMinutes = &minutes
			}
			jb.Tasks = append(jb.Tasks, jt)
		}
		doc.Blocks = append(doc.Blocks, jb)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal program: %w", err)
	}
	return string(data) + "\n", nil
}

func sortedTagList(t *ir.Task) []string {
	if len(t.Tags) == 0 {
		return nil
	}
	tags := make([]string, 0, len(t.Tags))
	for tag := range t.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func formatStamp(ts *time.Time) *string {
	if ts == nil {
		return nil
	}
	s := ts.Format(time.RFC3339)
	return &s
}
