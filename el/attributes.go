package el

import "strings"

func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Key sets the vnode's sibling identity for keyed diffing.
func Key(k any) Attr { return attr("key", k) }

// AttrOf sets an arbitrary prop.
func AttrOf(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class joins classes into the class attribute.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

func Href(url string) Attr         { return attr("href", url) }
func Type(t string) Attr           { return attr("type", t) }
func Name(name string) Attr        { return attr("name", name) }
func Value(value any) Attr         { return attr("value", value) }
func Placeholder(text string) Attr { return attr("placeholder", text) }
func TitleAttr(title string) Attr  { return attr("title", title) }
func Role(role string) Attr        { return attr("role", role) }
func AriaLabel(label string) Attr  { return attr("aria-label", label) }
func Src(url string) Attr          { return attr("src", url) }
func Alt(text string) Attr         { return attr("alt", text) }
func Disabled(disabled bool) Attr  { return attr("disabled", disabled) }
func Checked(checked bool) Attr    { return attr("checked", checked) }
