package ws

import "github.com/workloop/workloop-backend-go/internal/domain/user"

// Server-to-client event types.
const (
	EventTaskAssigned   = "taskAssigned"
	EventReportReviewed = "reportReviewed"
	EventReceiveMessage = "receive-message"
	EventTyping         = "typing"
)

// Event is a single frame pushed to a live session. Payloads embed the
// full object so the client never needs a follow-up fetch to render it.
type Event struct {
	Type string      `json:"event"`
	Data interface{} `json:"data"`
}

// EmployeeChannel names the live channel of an employee.
func EmployeeChannel(userID string) string {
	return "employee_" + userID
}

// TeamLeadChannel names the live channel of a team lead.
func TeamLeadChannel(userID string) string {
	return "teamLead_" + userID
}

// ChannelFor derives a user's channel from their role. Admins have no
// live channel; the second return value is false for them.
func ChannelFor(role user.Role, userID string) (string, bool) {
	switch role {
	case user.RoleEmployee:
		return EmployeeChannel(userID), true
	case user.RoleTeamLead:
		return TeamLeadChannel(userID), true
	}
	return "", false
}
