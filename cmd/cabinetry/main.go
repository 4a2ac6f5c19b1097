// Cabinetry resolves parametric cabinet rooms into panel geometry, keeps
// drawer heights consistent, merges benchtop and kicker runs, and exports
// cut lists.
//
// Build:
//
//	go build -o cabinetry ./cmd/cabinetry
package main

import (
	"fmt"
	"os"

	"github.com/piwi3910/cabinetry/internal/observability"
	"go.uber.org/zap"
)

func main() {
	root, _ := newRootCmd()
	err := root.Execute()
	if err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}
