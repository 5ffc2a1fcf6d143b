package migrations

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestSubmissionTablesMatchAcceptedValues(t *testing.T) {
	data, err := fs.ReadFile(files, Dir+"/20250101000002_create_submissions.sql")
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS reports",
		"report_type IN ('incorrect_info', 'closed_business', 'spam', 'other')",
		"relationship IN ('owner', 'employee', 'legal_representative', 'other')",
		"status IN ('pending', 'approved', 'rejected', 'completed')",
		"DROP TABLE IF EXISTS removal_requests",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRun_RequiresDB(t *testing.T) {
	if err := Run(context.Background(), nil, "up"); err == nil {
		t.Fatalf("expected error for nil db")
	}
	if err := MigrateToVersion(context.Background(), nil, "abc"); err == nil {
		t.Fatalf("expected error for malformed version")
	}
}
