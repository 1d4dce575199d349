package main

import (
	"go.uber.org/dig"

	"github.com/sparkyb/github-report/internal"
	"github.com/sparkyb/github-report/internal/infrastructure/controllers"
)

func injectAppContext() *internal.AppInternal {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectReportController() *controllers.ReportController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var reportController *controllers.ReportController
	if err := container.Invoke(func(rc *controllers.ReportController) {
		reportController = rc
	}); err != nil {
		panic(err)
	}

	return reportController
}
