package report

import (
	"strings"
	"time"

	"github.com/afancontrol/afancontrol/internal/ui"
	"github.com/afancontrol/afancontrol/internal/util"
)

const reportTimeout = 10 * time.Second

// Reporter delivers daemon notifications by running a shell command with the
// %REASON% and %MESSAGE% placeholders substituted. A failing report command is
// logged but never interrupts the control loop.
type Reporter struct {
	reportCmd string
	execCmd   func(command string) (string, error)
}

func NewReporter(reportCmd string) *Reporter {
	return &Reporter{
		reportCmd: reportCmd,
		execCmd: func(command string) (string, error) {
			return util.ExecShellCommand(command, reportTimeout)
		},
	}
}

func (r *Reporter) Report(reason string, message string) {
	command := renderReportCmd(r.reportCmd, reason, message)
	ui.Info("Reporting: %s: %s", reason, message)
	if _, err := r.execCmd(command); err != nil {
		ui.Warning("Report command failed: %v", err)
	}
}

func renderReportCmd(reportCmd string, reason string, message string) string {
	command := strings.ReplaceAll(reportCmd, "%REASON%", reason)
	return strings.ReplaceAll(command, "%MESSAGE%", message)
}
