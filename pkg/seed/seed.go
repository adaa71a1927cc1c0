// Package seed supplies the deterministic record set used to populate an
// empty user collection, plus small Source wrappers that model the
// asynchronous boundary the UI loads through.
package seed

import (
	"context"

	userstore "github.com/goliatone/go-userstore"
)

// Users returns the fixed ordered records the store is seeded from. The
// function is side-effect free and returns a fresh copy on every call.
func Users() []userstore.User {
	return []userstore.User{
		{ID: "1", Firstname: "Amelia", Lastname: "Stone", Email: "amelia.stone@example.com", Role: userstore.RoleAdmin, Comment: "Primary administrator"},
		{ID: "2", Firstname: "Bruno", Lastname: "Keller", Email: "bruno.keller@example.com", Role: userstore.RoleEditor},
		{ID: "3", Firstname: "Chiara", Lastname: "Moretti", Email: "chiara.moretti@example.com", Role: userstore.RoleViewer, Comment: "Read-only audit account"},
		{ID: "4", Firstname: "Derek", Lastname: "Olsen", Email: "derek.olsen@example.com", Role: userstore.RoleEditor},
		{ID: "5", Firstname: "Elif", Lastname: "Aydin", Email: "elif.aydin@example.com", Role: userstore.RoleViewer},
		{ID: "6", Firstname: "Farid", Lastname: "Haddad", Email: "farid.haddad@example.com", Role: userstore.RoleEditor, Comment: "Content team lead"},
		{ID: "7", Firstname: "Greta", Lastname: "Lindqvist", Email: "greta.lindqvist@example.com", Role: userstore.RoleViewer},
		{ID: "8", Firstname: "Hugo", Lastname: "Navarro", Email: "hugo.navarro@example.com", Role: userstore.RoleAdmin, Comment: "Backup administrator"},
	}
}

// Static is a deterministic Source serving a fixed user set.
type Static struct {
	users []userstore.User
}

// New constructs a Static source over the given records.
func New(users ...userstore.User) *Static {
	return &Static{users: append([]userstore.User(nil), users...)}
}

// Default constructs a Static source over the canonical seed set.
func Default() *Static {
	return New(Users()...)
}

// Users implements userstore.Source. The receiver's records are never
// mutated; callers get a fresh copy.
func (s *Static) Users(_ context.Context) ([]userstore.User, error) {
	return append([]userstore.User(nil), s.users...), nil
}
