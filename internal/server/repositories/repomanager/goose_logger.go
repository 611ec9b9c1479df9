package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/worktime/internal/logging"
)

// gooseLogger routes goose's printf-style output into a Logger.
type gooseLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (g *gooseLogger) Printf(format string, v ...any) {
	g.l.Info(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

// Fatalf only logs; migration failures also surface as errors from
// RunMigrations.
func (g *gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}
