package cmd

import (
	"errors"
	"fmt"

	wabbiterrors "github.com/povilasb/wabbit-go/internal/errors"
)

// withSourceContext attaches source/filename to a *wabbiterrors.Error so its
// Format method can render a caret-annotated source line, then returns a
// plain error carrying that rendering. Color follows cfg.Color, set from
// .wabbitrc.json or its built-in default.
func withSourceContext(err error, source, filename string) error {
	var werr *wabbiterrors.Error
	if errors.As(err, &werr) {
		werr.WithSource(source, filename)
		return fmt.Errorf("%s", werr.Format(cfg.Color))
	}
	return err
}
