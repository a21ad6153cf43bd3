package model

// User represents a person curating a movie list, as stored in the
// `users` table.  Names are unique across the store.
//
// Fields:
//
//	ID   – primary key identifier, assigned by the store.
//	Name – unique display name.
type User struct {
	ID   int64  // users.id
	Name string // users.name
}
