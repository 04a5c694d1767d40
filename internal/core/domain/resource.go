package domain

// NormalizeOptions controls how a resource is projected into canonical form.
type NormalizeOptions struct {
	// StripConstraints clears every strategy constraint list.
	StripConstraints bool
}

// Resource is the unit of reconciliation. Implementations are value types:
// Normalize returns a new canonical copy and never mutates the receiver.
type Resource interface {
	Kind() ResourceKind
	Key() string
	Normalize(opts NormalizeOptions) Resource
	// IsExempt reports whether the resource must never take part in a diff.
	IsExempt() bool
}

// Snapshot maps resource keys to resources of a single kind.
type Snapshot map[string]Resource

// Keys returns the snapshot keys in lexical order.
func (s Snapshot) Keys() []string {
	return SortedKeys(s)
}

// RemoteRef addresses a remote resource. RemoteID is whatever the service
// uses in its URLs (toggle name, numeric account id).
type RemoteRef struct {
	Key      string `json:"key"`
	RemoteID string `json:"remote_id,omitempty"`
}

// RemoteResource is a fetched resource together with its address.
type RemoteResource struct {
	Resource Resource
	Ref      RemoteRef
}

// Declaration is one raw resource as read from a declaration file, before it
// is decoded into a typed Resource.
type Declaration struct {
	Kind   ResourceKind
	Key    string
	Team   string
	Source string
	Fields map[string]any
}

// DesiredState is the merged, ordered output of the declaration loader for one
// kind and organization.
type DesiredState struct {
	Kind         ResourceKind
	Organization string
	Declarations []Declaration
	Tags         map[string]Tag
}
