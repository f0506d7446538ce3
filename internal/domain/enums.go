package domain

import "fmt"

type Role string

const (
	RoleEngineer Role = "engineer"
	RoleAdmin    Role = "admin"
)

// ParseRole accepts "engineer" or "admin".
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleEngineer, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q (expected engineer or admin)", s)
}

// Toggle returns the other role.
func (r Role) Toggle() Role {
	if r == RoleAdmin {
		return RoleEngineer
	}
	return RoleAdmin
}

type ProjectType string

const (
	TypeMaintenance  ProjectType = "maintenance"
	TypeInstallation ProjectType = "installation"
	TypeSafety       ProjectType = "safety"
	TypeUpgrade      ProjectType = "upgrade"
	TypeTesting      ProjectType = "testing"
	TypeConstruction ProjectType = "construction"
)

// ProjectTypeInfo is the display metadata of a project type.
type ProjectTypeInfo struct {
	Type  ProjectType
	Label string
	Color string
}

// ProjectTypes is the canonical, ordered set of project types.
var ProjectTypes = []ProjectTypeInfo{
	{TypeMaintenance, "Maintenance", "#ef4444"},
	{TypeInstallation, "Equipment Installation", "#3b82f6"},
	{TypeSafety, "Safety Inspection", "#f59e0b"},
	{TypeUpgrade, "System Upgrade", "#10b981"},
	{TypeTesting, "Testing & QA", "#8b5cf6"},
	{TypeConstruction, "Construction", "#f97316"},
}

// LookupProjectType returns the display metadata for t.
func LookupProjectType(t ProjectType) (ProjectTypeInfo, bool) {
	for _, info := range ProjectTypes {
		if info.Type == t {
			return info, true
		}
	}
	return ProjectTypeInfo{}, false
}

// Valid reports whether t belongs to the fixed enumeration.
func (t ProjectType) Valid() bool {
	_, ok := LookupProjectType(t)
	return ok
}

// Label returns the human label, or the raw tag for unknown types.
func (t ProjectType) Label() string {
	if info, ok := LookupProjectType(t); ok {
		return info.Label
	}
	return string(t)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists the accepted priorities in ascending urgency.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
)

// DateBucket selects projects by how soon they start.
type DateBucket string

const (
	BucketAll   DateBucket = "all"
	BucketToday DateBucket = "today"
	BucketWeek  DateBucket = "week"
	BucketMonth DateBucket = "month"
)

// DateBuckets lists the buckets in the order the UI cycles through them.
var DateBuckets = []DateBucket{BucketAll, BucketToday, BucketWeek, BucketMonth}

// TypeAll is the type selector that matches every project type.
const TypeAll = "all"

// TypeSelector is either TypeAll or a ProjectType tag.
type TypeSelector string
