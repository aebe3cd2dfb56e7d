package workflow_test

import (
	"testing"
	"time"

	"github.com/iliyamo/placement-portal/internal/workflow"
)

func TestDriveOpen(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	today := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	yesterday := today.AddDate(0, 0, -1)

	cases := []struct {
		name        string
		drive       workflow.DriveStatus
		deadline    time.Time
		company     workflow.ApprovalStatus
		blacklisted bool
		want        bool
	}{
		{"approved drive, future deadline, approved company", workflow.DriveApproved, tomorrow, workflow.ApprovalApproved, false, true},
		{"deadline today still counts", workflow.DriveApproved, today, workflow.ApprovalApproved, false, true},
		{"deadline passed", workflow.DriveApproved, yesterday, workflow.ApprovalApproved, false, false},
		{"drive pending", workflow.DrivePending, tomorrow, workflow.ApprovalApproved, false, false},
		{"drive rejected", workflow.DriveRejected, tomorrow, workflow.ApprovalApproved, false, false},
		{"drive closed", workflow.DriveClosed, tomorrow, workflow.ApprovalApproved, false, false},
		{"company pending", workflow.DriveApproved, tomorrow, workflow.ApprovalPending, false, false},
		{"company rejected", workflow.DriveApproved, tomorrow, workflow.ApprovalRejected, false, false},
		{"company blacklisted", workflow.DriveApproved, tomorrow, workflow.ApprovalApproved, true, false},
	}
	for _, c := range cases {
		got := workflow.DriveOpen(c.drive, c.deadline, c.company, c.blacklisted, now)
		if got != c.want {
			t.Errorf("%s: DriveOpen = %v, want %v", c.name, got, c.want)
		}
	}
}
