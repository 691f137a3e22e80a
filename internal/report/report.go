// Package report renders screening output for the terminal or for other tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/spigell/resume-screener/internal/screening"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Row is one line of a ranking.
type Row struct {
	Rank          int      `json:"rank" yaml:"rank"`
	ApplicationID string   `json:"application_id" yaml:"application_id"`
	Name          string   `json:"name" yaml:"name"`
	Email         string   `json:"email" yaml:"email"`
	Education     string   `json:"education_level" yaml:"education_level"`
	Status        string   `json:"status" yaml:"status"`
	Score         float64  `json:"score" yaml:"score"`
	MatchedSkills []string `json:"matched_skills" yaml:"matched_skills"`
	Suspicion     string   `json:"suspicion" yaml:"suspicion"`
}

// Rows builds ranking rows from candidates already in the desired order.
func Rows(items []*screening.Candidate) []Row {
	rows := make([]Row, 0, len(items))
	for i, item := range items {
		p := item.Application.Profile
		row := Row{
			Rank:          i + 1,
			ApplicationID: item.ID(),
			Name:          p.Name,
			Email:         p.Email,
			Education:     p.EducationLevel,
			Status:        string(item.Application.Status),
			MatchedSkills: []string{},
		}
		if item.Score != nil {
			row.Score = item.Score.Total
			row.MatchedSkills = item.Score.MatchedSkills
		}
		if item.Suspicion != nil {
			row.Suspicion = item.Suspicion.Summary()
		}
		rows = append(rows, row)
	}
	return rows
}

// Write renders v in the requested format. Text output needs a []Row; other values
// are only supported as JSON or YAML.
func Write(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		rows, ok := v.([]Row)
		if !ok {
			return Write(w, FormatYAML, v)
		}
		return writeTable(w, rows)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSCORE\tNAME\tEMAIL\tEDUCATION\tSTATUS\tMATCHED\tSUSPICION")
	for _, r := range rows {
		suspicion := r.Suspicion
		if suspicion == "" {
			suspicion = "-"
		}
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Rank, r.Score, r.Name, r.Email, r.Education, r.Status, strings.Join(r.MatchedSkills, ","), suspicion)
	}
	return tw.Flush()
}
