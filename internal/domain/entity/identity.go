package entity

// Identity is the read-only projection of the signed-in user as reported by
// the identity provider. It carries facts only; role decisions live elsewhere.
type Identity struct {
	SubjectID    string         // Provider subject ('sub').
	Email        string         // Email reported by the provider.
	AppMetadata  map[string]any // Provider-controlled metadata.
	UserMetadata map[string]any // Metadata supplied at sign-up (role hint lives here).
	Claims       map[string]any // Remaining token claims, including custom namespaced ones.
}
