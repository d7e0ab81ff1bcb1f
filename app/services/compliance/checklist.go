// Package compliance serves framework checklists. The requirement tables
// are illustrative configuration data, not a legal reference.
package compliance

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/governa-io/governa/app/services/audit"
)

// Requirement is one checklist entry of a compliance framework.
type Requirement struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Mandatory bool   `json:"mandatory"`
}

// Report summarizes an evaluation of satisfied requirements against a
// framework's checklist.
type Report struct {
	Framework string   `json:"framework"`
	Total     int      `json:"total"`
	Satisfied int      `json:"satisfied"`
	Missing   []string `json:"missing"`
	Compliant bool     `json:"compliant"`
}

// UnknownFrameworkError is returned when a framework has no checklist.
type UnknownFrameworkError struct {
	Framework string
}

func (e *UnknownFrameworkError) Error() string {
	return fmt.Sprintf("compliance: unknown framework %q", e.Framework)
}

// Checklist looks up requirements per framework and evaluates coverage.
type Checklist struct {
	logger     *zap.Logger
	trail      *audit.Trail
	frameworks map[string][]Requirement
}

// NewChecklist creates a checklist service seeded with the built-in
// framework tables.
func NewChecklist(logger *zap.Logger, trail *audit.Trail) *Checklist {
	return &Checklist{
		logger:     logger,
		trail:      trail,
		frameworks: defaultFrameworks(),
	}
}

// Frameworks returns the known framework identifiers, sorted.
func (c *Checklist) Frameworks() []string {
	out := make([]string, 0, len(c.frameworks))
	for name := range c.frameworks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Requirements returns the checklist of framework.
func (c *Checklist) Requirements(framework string) ([]Requirement, error) {
	reqs, ok := c.frameworks[framework]
	if !ok {
		return nil, &UnknownFrameworkError{Framework: framework}
	}
	c.trail.Record("system", "list-requirements", framework)
	out := make([]Requirement, len(reqs))
	copy(out, reqs)
	return out, nil
}

// Evaluate reports how many of framework's requirements appear in
// satisfied. Compliant means every mandatory requirement is covered.
func (c *Checklist) Evaluate(framework string, satisfied []string) (Report, error) {
	reqs, ok := c.frameworks[framework]
	if !ok {
		return Report{}, &UnknownFrameworkError{Framework: framework}
	}

	have := make(map[string]bool, len(satisfied))
	for _, id := range satisfied {
		have[id] = true
	}

	report := Report{Framework: framework, Total: len(reqs), Compliant: true}
	for _, req := range reqs {
		if have[req.ID] {
			report.Satisfied++
			continue
		}
		report.Missing = append(report.Missing, req.ID)
		if req.Mandatory {
			report.Compliant = false
		}
	}

	c.trail.Record("system", "evaluate", framework)
	c.logger.Debug("checklist evaluated",
		zap.String("framework", framework),
		zap.Int("satisfied", report.Satisfied),
		zap.Int("total", report.Total))
	return report, nil
}

func defaultFrameworks() map[string][]Requirement {
	return map[string][]Requirement{
		"gdpr": {
			{ID: "gdpr-dpia", Title: "Data protection impact assessment on file", Mandatory: true},
			{ID: "gdpr-lawful-basis", Title: "Lawful basis documented per processing activity", Mandatory: true},
			{ID: "gdpr-retention", Title: "Retention schedule defined and enforced", Mandatory: true},
			{ID: "gdpr-dpo", Title: "Data protection officer appointed", Mandatory: false},
		},
		"eu-ai-act": {
			{ID: "aia-risk-class", Title: "System risk classification recorded", Mandatory: true},
			{ID: "aia-human-oversight", Title: "Human oversight procedure in place", Mandatory: true},
			{ID: "aia-logging", Title: "Automatic event logging enabled", Mandatory: true},
			{ID: "aia-registry", Title: "Registered in the EU database", Mandatory: false},
		},
		"soc2": {
			{ID: "soc2-access", Title: "Access control reviews performed quarterly", Mandatory: true},
			{ID: "soc2-change", Title: "Change management workflow documented", Mandatory: true},
			{ID: "soc2-incident", Title: "Incident response plan tested annually", Mandatory: false},
		},
	}
}
