package event

// Event is a dated calendar entry belonging to exactly one user.
type Event struct {
	// Id is assigned by the store on creation and is empty before first
	// persistence. Clients never generate it.
	Id string
	// DateKey is the canonical DD-MM-YYYY day the event belongs to.
	DateKey string
	Title   string
	// OwnerUid scopes the event to its owner. Every query and delete is
	// filtered by it store-side.
	OwnerUid string
}
