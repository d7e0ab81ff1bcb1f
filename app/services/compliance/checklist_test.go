package compliance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/governa-io/governa/app/services/audit"
	"github.com/governa-io/governa/app/services/compliance"
)

func newChecklist() (*compliance.Checklist, *audit.Trail) {
	trail := audit.NewTrail(zap.NewNop(), "test", 0)
	return compliance.NewChecklist(zap.NewNop(), trail), trail
}

func TestChecklist_Frameworks_Sorted(t *testing.T) {
	c, _ := newChecklist()

	got := c.Frameworks()

	assert.Equal(t, []string{"eu-ai-act", "gdpr", "soc2"}, got)
}

func TestChecklist_Requirements(t *testing.T) {
	c, trail := newChecklist()

	reqs, err := c.Requirements("gdpr")
	require.NoError(t, err)
	assert.NotEmpty(t, reqs)
	assert.Equal(t, 1, trail.Len(), "lookups are audited")
}

func TestChecklist_Requirements_UnknownFramework(t *testing.T) {
	c, trail := newChecklist()

	_, err := c.Requirements("iso-42001")

	var unknown *compliance.UnknownFrameworkError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "iso-42001", unknown.Framework)
	assert.Zero(t, trail.Len(), "failed lookups are not audited")
}

func TestChecklist_Evaluate_AllMandatorySatisfied(t *testing.T) {
	c, _ := newChecklist()

	report, err := c.Evaluate("soc2", []string{"soc2-access", "soc2-change"})
	require.NoError(t, err)

	assert.True(t, report.Compliant, "optional requirements must not block compliance")
	assert.Equal(t, 2, report.Satisfied)
	assert.Equal(t, []string{"soc2-incident"}, report.Missing)
}

func TestChecklist_Evaluate_MissingMandatory(t *testing.T) {
	c, _ := newChecklist()

	report, err := c.Evaluate("gdpr", []string{"gdpr-dpo"})
	require.NoError(t, err)

	assert.False(t, report.Compliant)
	assert.Equal(t, 1, report.Satisfied)
	assert.Len(t, report.Missing, 3)
}
