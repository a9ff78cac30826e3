package memdom

// OpKind is the kind of a recorded host mutation.
type OpKind uint8

const (
	OpCreateElement OpKind = iota + 1
	OpCreateText
	OpSetText
	OpSetAttr
	OpRemoveAttr
	OpBindListener
	OpUnbindListener
	OpInsert
	OpMove
	OpRemove
	OpSetElementText
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpBindListener:
		return "BindListener"
	case OpUnbindListener:
		return "UnbindListener"
	case OpInsert:
		return "Insert"
	case OpMove:
		return "Move"
	case OpRemove:
		return "Remove"
	case OpSetElementText:
		return "SetElementText"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the kind by name.
func (k OpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Op is one recorded host mutation. Node ids refer to Node.ID; zero means
// none.
type Op struct {
	Kind   OpKind `json:"kind"`
	Node   int    `json:"node"`
	Parent int    `json:"parent,omitempty"`
	Anchor int    `json:"anchor,omitempty"`
	Key    string `json:"key,omitempty"`
	Value  string `json:"value,omitempty"`
}
