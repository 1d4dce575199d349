package internal

import (
	"github.com/sparkyb/github-report/internal/domain/entities"
)

// AppInternal is the assembled application: every controller the CLI
// can dispatch to.
type AppInternal struct {
	controllers *[]entities.Controller
}

// NewAppInternal creates the AppInternal from the aggregated controllers.
func NewAppInternal(controllers *[]entities.Controller) *AppInternal {
	return &AppInternal{controllers: controllers}
}

// GetControllers returns all registered controllers.
func (it *AppInternal) GetControllers() []entities.Controller {
	return *it.controllers
}
