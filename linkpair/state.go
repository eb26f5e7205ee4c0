package linkpair

// State is a step of the link pair lifecycle.
//
//	Uninitialized → Creating → IndexResolving → Activating → AddressResolving → Ready → Deleting → Deleted
//
// A failure before Ready yields an error instead of a Pair, so callers only
// ever observe Ready, Deleting and Deleted.
type State int32

const (
	StateUninitialized State = iota
	StateCreating
	StateIndexResolving
	StateActivating
	StateAddressResolving
	StateReady
	StateDeleting
	StateDeleted
)

var stateNames = [...]string{
	StateUninitialized:    "uninitialized",
	StateCreating:         "creating",
	StateIndexResolving:   "index-resolving",
	StateActivating:       "activating",
	StateAddressResolving: "address-resolving",
	StateReady:            "ready",
	StateDeleting:         "deleting",
	StateDeleted:          "deleted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
