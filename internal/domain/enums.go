package domain

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type TaskCategory string

const (
	CategoryAcademic     TaskCategory = "academic"
	CategoryPersonal     TaskCategory = "personal"
	CategoryOrganization TaskCategory = "organization"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Categories lists every category in display order.
var Categories = []TaskCategory{CategoryAcademic, CategoryPersonal, CategoryOrganization}

// Statuses lists every status in display order.
var Statuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[TaskPriority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}

// ValidCategories is the canonical set of accepted category strings.
var ValidCategories = map[TaskCategory]bool{
	CategoryAcademic: true, CategoryPersonal: true, CategoryOrganization: true,
}

// ValidStatuses is the canonical set of accepted status strings.
var ValidStatuses = map[TaskStatus]bool{
	StatusPending: true, StatusInProgress: true, StatusCompleted: true,
}

// Toggle returns the opposite theme. Anything that is not dark flips to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
