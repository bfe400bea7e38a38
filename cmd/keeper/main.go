package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cast"

	"github.com/MKhiriev/keeper-commander/internal/client"
	"github.com/MKhiriev/keeper-commander/internal/commands"
	"github.com/MKhiriev/keeper-commander/internal/logger"
	"github.com/MKhiriev/keeper-commander/internal/workers"
	"github.com/MKhiriev/keeper-commander/models"
)

// Set with -ldflags "-X main.buildVersion=...". Installers set packaged to
// "true" so that crashes are reported in the console window.
var (
	buildVersion string
	buildDate    string
	buildCommit  string
	packaged     string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	log := logger.NewClientLogger("keeper")

	registry := commands.NewRegistry()
	loop := commands.NewLoop(registry, os.Stdin, os.Stdout)
	runner := workers.NewScheduler(loop, log)

	app := client.NewApp(loop, registry, runner, client.Options{
		Packaged:  cast.ToBool(packaged),
		BuildInfo: models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		Log:       log,
	})

	code := app.Run(ctx, os.Args[1:], nil)
	stop()
	os.Exit(code)
}
