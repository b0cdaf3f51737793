package domain

// Entity is anything the dashboard lists, identified by a server-assigned id.
type Entity interface {
	EntityID() string
}
