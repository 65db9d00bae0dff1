package extract

import "strings"

// Role is the inferred semantic type of an element.
type Role int

const (
	RoleText Role = iota
	RoleButton
	RoleInput
	RoleList
)

// String returns the full role name used in the debug wire form.
func (r Role) String() string {
	switch r {
	case RoleButton:
		return "Button"
	case RoleInput:
		return "Input"
	case RoleList:
		return "List"
	default:
		return "Text"
	}
}

// Code returns the single-letter code used in the minimal wire form.
func (r Role) Code() string {
	switch r {
	case RoleButton:
		return "B"
	case RoleInput:
		return "I"
	case RoleList:
		return "L"
	default:
		return "T"
	}
}

// InferRole derives an element's role from its class name and flags.
// First matching rule wins. similarChildren is the largest group of
// direct children sharing a class; a scrollable node with a repeating
// child pattern reads as a list.
func InferRole(class string, clickable, password, scrollable bool, similarChildren int) Role {
	lower := strings.ToLower(class)
	switch {
	case clickable && strings.Contains(lower, "button"):
		return RoleButton
	case password || strings.Contains(lower, "edittext") || strings.Contains(lower, "textinput"):
		return RoleInput
	case scrollable && similarChildren >= 2:
		return RoleList
	default:
		return RoleText
	}
}

// InferLabel picks the best available label: text, then content
// description, then the trailing segment of the resource id with
// separators turned into spaces. Empty when none of those exist.
func InferLabel(text, contentDesc, resourceID string) string {
	if t := strings.TrimSpace(text); t != "" {
		return t
	}
	if d := strings.TrimSpace(contentDesc); d != "" {
		return d
	}
	if resourceID == "" {
		return ""
	}
	tail := resourceID
	if idx := strings.LastIndex(resourceID, "/"); idx >= 0 {
		tail = resourceID[idx+1:]
	}
	tail = strings.ReplaceAll(tail, "_", " ")
	tail = strings.ReplaceAll(tail, "-", " ")
	return strings.TrimSpace(tail)
}
