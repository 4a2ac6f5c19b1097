package model

import (
	"fmt"
	"sort"
)

// ViewSet partitions cabinet IDs into named views "A" through "Z".
// A cabinet belongs to at most one view.
type ViewSet struct {
	Views map[string][]string `json:"views" yaml:"views"`
}

func NewViewSet() ViewSet {
	return ViewSet{Views: map[string][]string{}}
}

// ValidViewName reports whether name is a single upper-case letter.
func ValidViewName(name string) bool {
	return len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z'
}

// Assign moves a cabinet into the named view, removing it from any other.
func (vs *ViewSet) Assign(view, cabinetID string) error {
	if !ValidViewName(view) {
		return fmt.Errorf("invalid view name %q: must be a letter A-Z", view)
	}
	if vs.Views == nil {
		vs.Views = map[string][]string{}
	}
	vs.Unassign(cabinetID)
	vs.Views[view] = append(vs.Views[view], cabinetID)
	return nil
}

// Unassign removes a cabinet from whichever view holds it.
// Views left empty are deleted.
func (vs *ViewSet) Unassign(cabinetID string) {
	for name, ids := range vs.Views {
		for i, id := range ids {
			if id == cabinetID {
				ids = append(ids[:i], ids[i+1:]...)
				break
			}
		}
		if len(ids) == 0 {
			delete(vs.Views, name)
		} else {
			vs.Views[name] = ids
		}
	}
}

// ViewOf returns the view holding the cabinet.
func (vs ViewSet) ViewOf(cabinetID string) (string, bool) {
	for name, ids := range vs.Views {
		for _, id := range ids {
			if id == cabinetID {
				return name, true
			}
		}
	}
	return "", false
}

// Names returns the view names in alphabetical order.
func (vs ViewSet) Names() []string {
	names := make([]string, 0, len(vs.Views))
	for name := range vs.Views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks view names and that no cabinet appears twice.
func (vs ViewSet) Validate() error {
	seen := make(map[string]string)
	for _, name := range vs.Names() {
		if !ValidViewName(name) {
			return fmt.Errorf("invalid view name %q", name)
		}
		for _, id := range vs.Views[name] {
			if prev, ok := seen[id]; ok {
				return fmt.Errorf("cabinet %s is in views %s and %s", id, prev, name)
			}
			seen[id] = name
		}
	}
	return nil
}
