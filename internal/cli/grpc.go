package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/aegis-privacy/aegis-desktop/internal/config"
	"github.com/aegis-privacy/aegis-desktop/internal/desktop/control"
)

// requestTimeout bounds CLI requests. The shell itself applies no timeout to
// companion queries.
const requestTimeout = 5 * time.Second

// connectDesktop returns a control client for the running desktop shell. The
// caller closes it.
func connectDesktop() (*control.Client, error) {
	running, info, err := config.IsDesktopRunning()
	if err != nil {
		return nil, fmt.Errorf("failed to check desktop status: %w", err)
	}
	if !running || info == nil {
		return nil, fmt.Errorf("AEGIS desktop is not running. Start aegis-desktop first")
	}
	return control.Dial(info.Host, info.Port)
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}
