package runtime

// Host calls go through these so every mutation is counted.

func (r *Renderer) hostCreateElement(tag string) HostNode {
	r.metrics.HostOp("create_element")
	return r.host.CreateElement(tag)
}

func (r *Renderer) hostCreateText(text string) HostNode {
	r.metrics.HostOp("create_text")
	return r.host.CreateText(text)
}

func (r *Renderer) hostSetText(node HostNode, text string) {
	r.metrics.HostOp("set_text")
	r.host.SetText(node, text)
}

func (r *Renderer) hostPatchProp(el HostNode, key string, prev, next any) {
	r.metrics.HostOp("patch_prop")
	r.host.PatchProp(el, key, prev, next)
}

func (r *Renderer) hostInsert(child, parent, anchor HostNode) {
	r.metrics.HostOp("insert")
	r.host.Insert(child, parent, anchor)
}

func (r *Renderer) hostMove(child, parent, anchor HostNode) {
	r.metrics.HostOp("move")
	r.host.Insert(child, parent, anchor)
}

func (r *Renderer) hostRemove(child HostNode) {
	r.metrics.HostOp("remove")
	r.host.Remove(child)
}

func (r *Renderer) hostSetElementText(el HostNode, text string) {
	r.metrics.HostOp("set_element_text")
	r.host.SetElementText(el, text)
}
