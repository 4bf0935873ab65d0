package entity

// SyncStatus tracks the account synchronization for the current session.
type SyncStatus string

const (
	// SyncIdle means no synchronization has been requested for this session yet.
	SyncIdle SyncStatus = "idle"
	// SyncPending means a synchronization is queued or running.
	SyncPending SyncStatus = "pending"
	// SyncSettled means the last synchronization finished, successfully or not.
	SyncSettled SyncStatus = "settled"
)

// AuthState is an immutable snapshot of a session store.
type AuthState struct {
	Session   *Session
	User      *Identity
	IsLoading bool       // True until the provider's initial session check completes.
	Sync      SyncStatus // Progress of account synchronization for User.
	Account   *Account   // Nil until synchronization succeeds.
	Role      Role       // Resolved role; empty until synchronization settles.
}

// AnonymousState is the settled state of a request with no browser session.
func AnonymousState() AuthState {
	return AuthState{Sync: SyncIdle}
}

// IsAuthenticated reports whether a user is present.
func (s AuthState) IsAuthenticated() bool {
	return s.User != nil
}

// RoleKnown reports whether synchronization has settled and produced a role.
func (s AuthState) RoleKnown() bool {
	return s.Sync == SyncSettled && s.Role.IsValid()
}
