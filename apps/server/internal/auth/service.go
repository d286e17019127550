package auth

// Service is the account/session contract consumed by the gateway and the
// HTTP handlers. Guests get a throwaway account so their day ledgers still
// have an owner.
type Service interface {
	Register(username, password string) (accountID uint64, sessionToken string, err error)
	Login(username, password string) (accountID uint64, sessionToken string, err error)
	GuestLogin() (accountID uint64, sessionToken string, err error)
	ResolveSession(token string) (accountID uint64, username string, ok bool)
	Logout(token string)
	Close() error
}
