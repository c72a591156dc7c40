package user

// User is the authenticated identity as seen by the rest of the service.
// Uid is the stable owner key every stored record is scoped by; Email is
// carried only as reminder contact info.
type User struct {
	Uid         string
	Email       string
	DisplayName string
}
