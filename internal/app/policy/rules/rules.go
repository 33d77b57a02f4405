// Package rules is the single source of truth for who may do what.
//
// It is a pure decision table over (role, action): no database access,
// no request context, no side effects. The taskpolicy and teampolicy
// packages translate HTTP requests into lookups against this table.
// A denial is final for that call; nothing here retries or escalates.
package rules

// Action enumerates every mutating capability the application gates.
type Action string

const (
	// Task ledger actions.
	CreateTask     Action = "create_task"
	EditOwnTask    Action = "edit_own_task" // title/description on a task assigned to the actor
	MoveTask       Action = "move_task"     // status change, any column to any column
	AssignTask     Action = "assign_task"
	ChangePriority Action = "change_priority"
	DeleteTask     Action = "delete_task"

	// Team registry actions.
	ManageRoster Action = "manage_roster" // add/remove team members, set lead
	Promote      Action = "promote"       // change a user's role
	CreateTeam   Action = "create_team"   // allowed for members; creator becomes lead
)

// memberAllowed holds the actions a regular member may perform. Leads
// may perform every action, so they need no table.
var memberAllowed = map[Action]bool{
	CreateTask:  true,
	EditOwnTask: true,
	MoveTask:    true,
	CreateTeam:  true,
}

// Allowed reports whether an actor with the given role may perform the
// action. Unknown roles (including "visitor") are denied everything.
func Allowed(role string, action Action) bool {
	switch role {
	case "lead":
		return true
	case "member":
		return memberAllowed[action]
	default:
		return false
	}
}
