package domain

type ProjectStatus string

const (
	ProjectOnTrack   ProjectStatus = "On Track"
	ProjectAtRisk    ProjectStatus = "At Risk"
	ProjectOffTrack  ProjectStatus = "Off Track"
	ProjectOnHold    ProjectStatus = "On Hold"
	ProjectCompleted ProjectStatus = "Completed"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[ProjectStatus]bool{
	ProjectOnTrack:   true,
	ProjectAtRisk:    true,
	ProjectOffTrack:  true,
	ProjectOnHold:    true,
	ProjectCompleted: true,
}

type ReportStatus string

const (
	ReportOnTrack  ReportStatus = "On Track"
	ReportAtRisk   ReportStatus = "At Risk"
	ReportOffTrack ReportStatus = "Off Track"
)

// ValidReportStatuses is the canonical set of accepted weekly report status strings.
var ValidReportStatuses = map[ReportStatus]bool{
	ReportOnTrack:  true,
	ReportAtRisk:   true,
	ReportOffTrack: true,
}

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
)

// ValidRoles is the canonical set of accepted actor roles.
var ValidRoles = map[Role]bool{
	RoleAdmin:   true,
	RoleManager: true,
}

// GeneralReportWeek is the week number of the consolidated pseudo-report.
// It is never persisted.
const GeneralReportWeek = 0
