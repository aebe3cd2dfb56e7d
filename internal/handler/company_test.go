package handler

import (
	"strings"
	"testing"

	"github.com/iliyamo/placement-portal/internal/workflow"
)

func TestStatusMessage(t *testing.T) {
	msg := statusMessage("Backend Intern", workflow.ApplicationSelected)
	if !strings.Contains(msg, `"Backend Intern"`) {
		t.Errorf("message %q does not mention the job title", msg)
	}
	if !strings.Contains(msg, "SELECTED") {
		t.Errorf("message %q does not mention the new status", msg)
	}
}

func TestDriveReqValidate(t *testing.T) {
	base := driveReq{
		JobTitle:       "Backend Intern",
		JobDescription: "Go services",
		Deadline:       "2026-12-31",
	}

	if _, err := base.validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*driveReq)
	}{
		{"missing title", func(r *driveReq) { r.JobTitle = " " }},
		{"missing description", func(r *driveReq) { r.JobDescription = "" }},
		{"negative experience", func(r *driveReq) { r.ExperienceYears = -1 }},
		{"bad deadline", func(r *driveReq) { r.Deadline = "31-12-2026" }},
		{"empty deadline", func(r *driveReq) { r.Deadline = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := base
			tc.mutate(&r)
			if _, err := r.validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}

	deadline, err := base.validate()
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := deadline.Format("2006-01-02"); got != "2026-12-31" {
		t.Errorf("deadline parsed as %s, want 2026-12-31", got)
	}
}
