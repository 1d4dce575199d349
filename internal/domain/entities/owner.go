package entities

// OwnerKind tells a provider how to interpret an owner name.
type OwnerKind string

const (
	// OwnerAny means the kind is unknown: try organization, then user.
	OwnerAny OwnerKind = ""
	// OwnerUser forces the user-repositories endpoint.
	OwnerUser OwnerKind = "user"
	// OwnerOrg forces the organization-repositories endpoint.
	OwnerOrg OwnerKind = "org"
)

// Owner names an account whose repositories should be listed. Owners
// given as positional arguments carry OwnerAny; the --user and --org
// flags force the kind.
type Owner struct {
	Name string
	Kind OwnerKind
}
