package entities

import (
	"github.com/spf13/cobra"
)

// ControllerBind carries the Cobra metadata a controller exposes for
// its (sub)command.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is implemented by every CLI controller. Execute returns
// an error so the binary can exit non-zero on failure.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string) error
}
