package devtools

// SetUpgradeHook installs fn to run after the websocket upgrade and before
// the client is registered.
func SetUpgradeHook(s *Server, fn func()) {
	s.upgraded = fn
}
