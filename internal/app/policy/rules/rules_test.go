package rules_test

import (
	"testing"

	"github.com/shreshthUnderscore/agile-ai/internal/app/policy/rules"
)

func TestAllowed_Table(t *testing.T) {
	tests := []struct {
		role   string
		action rules.Action
		want   bool
	}{
		{"member", rules.CreateTask, true},
		{"member", rules.EditOwnTask, true},
		{"member", rules.MoveTask, true},
		{"member", rules.AssignTask, false},
		{"member", rules.ChangePriority, false},
		{"member", rules.DeleteTask, false},
		{"member", rules.ManageRoster, false},
		{"member", rules.Promote, false},
		{"member", rules.CreateTeam, true},

		{"lead", rules.CreateTask, true},
		{"lead", rules.EditOwnTask, true},
		{"lead", rules.MoveTask, true},
		{"lead", rules.AssignTask, true},
		{"lead", rules.ChangePriority, true},
		{"lead", rules.DeleteTask, true},
		{"lead", rules.ManageRoster, true},
		{"lead", rules.Promote, true},
		{"lead", rules.CreateTeam, true},
	}

	for _, tt := range tests {
		got := rules.Allowed(tt.role, tt.action)
		if got != tt.want {
			t.Errorf("Allowed(%q, %q) = %v, want %v", tt.role, tt.action, got, tt.want)
		}
	}
}

func TestAllowed_UnknownRoleDeniedEverything(t *testing.T) {
	for _, role := range []string{"", "visitor", "admin", "Lead"} {
		for _, action := range []rules.Action{
			rules.CreateTask, rules.MoveTask, rules.DeleteTask, rules.ManageRoster,
		} {
			if rules.Allowed(role, action) {
				t.Errorf("Allowed(%q, %q) = true, want deny", role, action)
			}
		}
	}
}
