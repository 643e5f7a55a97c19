package markup

import "strings"

// ClassList is an ordered set of CSS class names. Removal is always by
// value, never by position.
type ClassList struct {
	names []string
}

// NewClassList builds a class list from the given names, dropping empty
// entries and duplicates while preserving first-occurrence order.
func NewClassList(names ...string) *ClassList {
	list := &ClassList{}
	for _, name := range names {
		list.Add(name)
	}
	return list
}

// ParseClassList splits a space-separated class attribute value.
func ParseClassList(value string) *ClassList {
	return NewClassList(strings.Fields(value)...)
}

// Add appends a class name if it is not already present.
func (l *ClassList) Add(name string) {
	name = strings.TrimSpace(name)
	if name == "" || l.Contains(name) {
		return
	}
	l.names = append(l.names, name)
}

// Remove deletes the named class wherever it appears.
func (l *ClassList) Remove(name string) {
	if l == nil {
		return
	}
	name = strings.TrimSpace(name)
	filtered := l.names[:0]
	for _, existing := range l.names {
		if existing != name {
			filtered = append(filtered, existing)
		}
	}
	l.names = filtered
}

// Toggle adds the class when absent and removes it when present.
func (l *ClassList) Toggle(name string, on bool) {
	if on {
		l.Add(name)
		return
	}
	l.Remove(name)
}

// Contains reports whether the class is present.
func (l *ClassList) Contains(name string) bool {
	if l == nil {
		return false
	}
	for _, existing := range l.names {
		if existing == name {
			return true
		}
	}
	return false
}

// Names returns a copy of the class names in order.
func (l *ClassList) Names() []string {
	if l == nil || len(l.names) == 0 {
		return nil
	}
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// String renders the list as a class attribute value.
func (l *ClassList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(l.names, " ")
}

// Len returns the number of classes in the list.
func (l *ClassList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.names)
}
