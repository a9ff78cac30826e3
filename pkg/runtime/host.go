package runtime

// HostNode is an opaque handle to a node owned by a Host.
// Handles must be comparable.
type HostNode = any

// Host performs the mutations the renderer decides on.
type Host interface {
	// CreateElement creates a detached element.
	CreateElement(tag string) HostNode

	// CreateText creates a detached text node.
	CreateText(text string) HostNode

	// SetText replaces the content of a text node.
	SetText(node HostNode, text string)

	// PatchProp applies a prop change. Keys of the form onXxx bind or
	// rebind the xxx listener; a nil next value removes the prop.
	PatchProp(el HostNode, key string, prev, next any)

	// Insert places child into parent before anchor, or at the end when
	// anchor is nil. Inserting an attached node moves it.
	Insert(child, parent, anchor HostNode)

	// Remove detaches child from its parent.
	Remove(child HostNode)

	// SetElementText replaces all children of el with text.
	SetElementText(el HostNode, text string)

	// ParentNode returns node's parent, or nil.
	ParentNode(node HostNode) HostNode

	// NextSibling returns the node after node, or nil.
	NextSibling(node HostNode) HostNode
}
