package el

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// On binds handler to event. The prop key is "on" plus the capitalized
// event name, which the host treats as a listener.
func On(event string, handler any) Attr {
	r, size := utf8.DecodeRuneInString(event)
	return attr("on"+string(unicode.ToUpper(r))+strings.ToLower(event[size:]), handler)
}

func OnClick(handler any) Attr   { return On("click", handler) }
func OnInput(handler any) Attr   { return On("input", handler) }
func OnChange(handler any) Attr  { return On("change", handler) }
func OnSubmit(handler any) Attr  { return On("submit", handler) }
func OnKeyDown(handler any) Attr { return On("keydown", handler) }
func OnFocus(handler any) Attr   { return On("focus", handler) }
func OnBlur(handler any) Attr    { return On("blur", handler) }
