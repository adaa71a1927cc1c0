package userstore

import "strings"

// Criteria holds the two orthogonal filter inputs. The filtered view is
// always their conjunction over the full collection; the zero value matches
// every user.
type Criteria struct {
	Name string
	Role Role
}

func (c Criteria) matches(user User) bool {
	if c.Name != "" && !strings.Contains(strings.ToLower(user.FullName()), strings.ToLower(c.Name)) {
		return false
	}
	if c.Role != "" && c.Role != RoleAll && user.Role != c.Role {
		return false
	}
	return true
}

// SetNameFilter narrows the filtered view to users whose full name contains
// substring, case-insensitively. The active role filter is kept and applied
// in conjunction. Returns the recomputed view.
func (s *Store) SetNameFilter(substring string) []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Name = substring
	s.recomputeLocked()
	return cloneUsers(s.filtered)
}

// SetRoleFilter narrows the filtered view to users holding role, or widens
// it back when role is RoleAll. The active name filter is kept and applied
// in conjunction. Returns the recomputed view.
func (s *Store) SetRoleFilter(role Role) []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if role == RoleAll {
		s.criteria.Role = ""
	} else {
		s.criteria.Role = role
	}
	s.recomputeLocked()
	return cloneUsers(s.filtered)
}

// ResetFilters clears both criteria so the filtered view mirrors the full
// collection again.
func (s *Store) ResetFilters() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetFiltersLocked()
	return cloneUsers(s.filtered)
}

func (s *Store) resetFiltersLocked() {
	s.criteria = Criteria{}
	s.recomputeLocked()
}

// recomputeLocked rebuilds the filtered view from the full collection. The
// view never holds a record absent from the collection.
func (s *Store) recomputeLocked() {
	matched := make([]User, 0, len(s.users))
	for _, user := range s.users {
		if s.criteria.matches(user) {
			matched = append(matched, user)
		}
	}
	s.filtered = matched
}
