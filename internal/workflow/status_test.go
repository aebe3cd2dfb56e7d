package workflow_test

import (
	"testing"

	"github.com/iliyamo/placement-portal/internal/workflow"
)

// ── ParseApplicationStatus ─────────────────────────────────────────────────

func TestParseApplicationStatus_ValidValues(t *testing.T) {
	valid := []string{"APPLIED", "SHORTLISTED", "SELECTED", "REJECTED", "PLACED"}
	for _, s := range valid {
		got, err := workflow.ParseApplicationStatus(s)
		if err != nil {
			t.Errorf("ParseApplicationStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseApplicationStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseApplicationStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"", "HIRED", "applied", "SELECTED "} {
		if _, err := workflow.ParseApplicationStatus(s); err == nil {
			t.Errorf("ParseApplicationStatus(%q) expected error, got nil", s)
		}
	}
}

func TestParseDriveStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "APPROVED", "REJECTED", "CLOSED"} {
		if _, err := workflow.ParseDriveStatus(s); err != nil {
			t.Errorf("ParseDriveStatus(%q) returned unexpected error: %v", s, err)
		}
	}
	if _, err := workflow.ParseDriveStatus("OPEN"); err == nil {
		t.Error("ParseDriveStatus(\"OPEN\") expected error, got nil")
	}
}

func TestParseApprovalStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "APPROVED", "REJECTED"} {
		if _, err := workflow.ParseApprovalStatus(s); err != nil {
			t.Errorf("ParseApprovalStatus(%q) returned unexpected error: %v", s, err)
		}
	}
	if _, err := workflow.ParseApprovalStatus("CLOSED"); err == nil {
		t.Error("ParseApprovalStatus(\"CLOSED\") expected error, got nil")
	}
}

// ── Company approval transitions ───────────────────────────────────────────

func TestCanApprove(t *testing.T) {
	if !workflow.CanApprove(workflow.ApprovalPending, workflow.ApprovalApproved) {
		t.Error("CanApprove(PENDING → APPROVED) should be true")
	}
	if !workflow.CanApprove(workflow.ApprovalPending, workflow.ApprovalRejected) {
		t.Error("CanApprove(PENDING → REJECTED) should be true")
	}
	terminals := []workflow.ApprovalStatus{workflow.ApprovalApproved, workflow.ApprovalRejected}
	targets := []workflow.ApprovalStatus{
		workflow.ApprovalPending, workflow.ApprovalApproved, workflow.ApprovalRejected,
	}
	for _, from := range terminals {
		for _, to := range targets {
			if workflow.CanApprove(from, to) {
				t.Errorf("CanApprove(%s → %s) should be false (terminal state)", from, to)
			}
		}
	}
}

// ── Drive transitions ──────────────────────────────────────────────────────

func TestCanMoveDrive_Valid(t *testing.T) {
	cases := []struct {
		from workflow.DriveStatus
		to   workflow.DriveStatus
	}{
		{workflow.DrivePending, workflow.DriveApproved},
		{workflow.DrivePending, workflow.DriveRejected},
		{workflow.DriveApproved, workflow.DriveClosed},
	}
	for _, c := range cases {
		if !workflow.CanMoveDrive(c.from, c.to) {
			t.Errorf("CanMoveDrive(%s → %s) should be true", c.from, c.to)
		}
	}
}

func TestCanMoveDrive_CloseOnlyFromApproved(t *testing.T) {
	for _, from := range []workflow.DriveStatus{workflow.DrivePending, workflow.DriveRejected, workflow.DriveClosed} {
		if workflow.CanMoveDrive(from, workflow.DriveClosed) {
			t.Errorf("CanMoveDrive(%s → CLOSED) should be false", from)
		}
	}
}

func TestCanMoveDrive_FromTerminal(t *testing.T) {
	terminals := []workflow.DriveStatus{workflow.DriveRejected, workflow.DriveClosed}
	targets := []workflow.DriveStatus{
		workflow.DrivePending, workflow.DriveApproved, workflow.DriveRejected, workflow.DriveClosed,
	}
	for _, from := range terminals {
		for _, to := range targets {
			if workflow.CanMoveDrive(from, to) {
				t.Errorf("CanMoveDrive(%s → %s) should be false (terminal state)", from, to)
			}
		}
	}
}

// ── Application transitions ────────────────────────────────────────────────

func TestCanMoveApplication_ValidForward(t *testing.T) {
	cases := []struct {
		from workflow.ApplicationStatus
		to   workflow.ApplicationStatus
	}{
		{workflow.ApplicationApplied, workflow.ApplicationShortlisted},
		{workflow.ApplicationApplied, workflow.ApplicationSelected},
		{workflow.ApplicationShortlisted, workflow.ApplicationSelected},
		{workflow.ApplicationSelected, workflow.ApplicationPlaced},
	}
	for _, c := range cases {
		if !workflow.CanMoveApplication(c.from, c.to) {
			t.Errorf("CanMoveApplication(%s → %s) should be true", c.from, c.to)
		}
	}
}

func TestCanMoveApplication_ToRejected(t *testing.T) {
	nonTerminals := []workflow.ApplicationStatus{
		workflow.ApplicationApplied,
		workflow.ApplicationShortlisted,
		workflow.ApplicationSelected,
	}
	for _, from := range nonTerminals {
		if !workflow.CanMoveApplication(from, workflow.ApplicationRejected) {
			t.Errorf("CanMoveApplication(%s → REJECTED) should be true", from)
		}
	}
}

func TestCanMoveApplication_FromTerminal(t *testing.T) {
	terminals := []workflow.ApplicationStatus{workflow.ApplicationRejected, workflow.ApplicationPlaced}
	targets := []workflow.ApplicationStatus{
		workflow.ApplicationApplied, workflow.ApplicationShortlisted,
		workflow.ApplicationSelected, workflow.ApplicationRejected, workflow.ApplicationPlaced,
	}
	for _, from := range terminals {
		for _, to := range targets {
			if workflow.CanMoveApplication(from, to) {
				t.Errorf("CanMoveApplication(%s → %s) should be false (terminal state)", from, to)
			}
		}
	}
}

func TestCanMoveApplication_Backwards(t *testing.T) {
	cases := []struct {
		from workflow.ApplicationStatus
		to   workflow.ApplicationStatus
	}{
		{workflow.ApplicationShortlisted, workflow.ApplicationApplied},
		{workflow.ApplicationSelected, workflow.ApplicationShortlisted},
		{workflow.ApplicationPlaced, workflow.ApplicationSelected},
	}
	for _, c := range cases {
		if workflow.CanMoveApplication(c.from, c.to) {
			t.Errorf("CanMoveApplication(%s → %s) should be false (backwards)", c.from, c.to)
		}
	}
}

func TestCanMoveApplication_Self(t *testing.T) {
	all := []workflow.ApplicationStatus{
		workflow.ApplicationApplied, workflow.ApplicationShortlisted,
		workflow.ApplicationSelected, workflow.ApplicationRejected, workflow.ApplicationPlaced,
	}
	for _, s := range all {
		if workflow.CanMoveApplication(s, s) {
			t.Errorf("CanMoveApplication(%s → %s) should be false (self)", s, s)
		}
	}
}
