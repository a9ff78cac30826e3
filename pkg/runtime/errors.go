package runtime

import "github.com/vango-dev/minivue/internal/errors"

// Sentinels for errors.Is against renderer panics and App.Mount errors.
var (
	ErrUnsupportedVNode    error = errors.New("V001")
	ErrUnsupportedChildren error = errors.New("V002")
	ErrNoCompiler          error = errors.New("V003")
	ErrNoRender            error = errors.New("V004")
	ErrTemplate            error = errors.New("V005")
)
