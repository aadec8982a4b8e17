package viewer

import (
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/glbview/internal/logger"
)

// dialogAlerter shows a native message box and blocks until it closes.
type dialogAlerter struct {
	title string
}

func (a dialogAlerter) Alert(message string) {
	dialog.Message("%s", message).Title(a.title).Info()
}

// logAlerter only logs, for setups with picking alerts turned off.
type logAlerter struct{}

func (logAlerter) Alert(message string) {
	logger.Info("picked", zap.String("name", message))
}
