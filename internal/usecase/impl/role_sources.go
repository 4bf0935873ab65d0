package impl

import "internhub/internal/domain/entity"

// RoleSourceKind tags where in the identity a role hint may live.
type RoleSourceKind string

const (
	// RoleSourceClaim is a top-level token claim, typically an app-namespaced custom claim.
	RoleSourceClaim RoleSourceKind = "claim"
	// RoleSourceAppMetadata is a key in provider-controlled app metadata.
	RoleSourceAppMetadata RoleSourceKind = "app_metadata"
	// RoleSourceUserMetadata is a key in user metadata written at sign-up.
	RoleSourceUserMetadata RoleSourceKind = "user_metadata"
)

// RoleClaimNamespace is the custom claim some provider hooks stamp on tokens.
const RoleClaimNamespace = "https://internhub.app/role"

// RoleSource is one place to look for a role hint.
type RoleSource struct {
	Kind RoleSourceKind
	Key  string
}

// DefaultRoleSources lists hint locations in priority order. The first valid role wins.
var DefaultRoleSources = []RoleSource{
	{Kind: RoleSourceClaim, Key: RoleClaimNamespace},
	{Kind: RoleSourceAppMetadata, Key: "role"},
	{Kind: RoleSourceUserMetadata, Key: "role"},
	{Kind: RoleSourceUserMetadata, Key: "account_type"},
}

// RoleExtractor pulls a role hint out of an identity.
type RoleExtractor func(identity *entity.Identity) (entity.Role, bool)

// Extractor builds the extractor for a single source.
func (s RoleSource) Extractor() RoleExtractor {
	return func(identity *entity.Identity) (entity.Role, bool) {
		if identity == nil {
			return "", false
		}

		var bag map[string]any
		switch s.Kind {
		case RoleSourceClaim:
			bag = identity.Claims
		case RoleSourceAppMetadata:
			bag = identity.AppMetadata
		case RoleSourceUserMetadata:
			bag = identity.UserMetadata
		default:
			return "", false
		}

		value, ok := bag[s.Key]
		if !ok {
			return "", false
		}

		return entity.ParseRole(value)
	}
}

// Extractors turns a source list into extractors, preserving order.
func Extractors(sources []RoleSource) []RoleExtractor {
	extractors := make([]RoleExtractor, 0, len(sources))
	for _, source := range sources {
		extractors = append(extractors, source.Extractor())
	}

	return extractors
}

// FirstRole evaluates extractors in order and returns the first match.
func FirstRole(identity *entity.Identity, extractors []RoleExtractor) (entity.Role, bool) {
	for _, extract := range extractors {
		if role, ok := extract(identity); ok {
			return role, true
		}
	}

	return "", false
}
