// Command mplemon scaffolds Maven and Jakarta EE projects without ever
// duplicating what is already there.
package main

import (
	"os"

	"github.com/google/uuid"

	"github.com/custodia-labs/mplemon/internal/adapters/driven/config/file"
	"github.com/custodia-labs/mplemon/internal/adapters/driven/config/jwt"
	"github.com/custodia-labs/mplemon/internal/adapters/driven/diff"
	"github.com/custodia-labs/mplemon/internal/adapters/driven/keys"
	"github.com/custodia-labs/mplemon/internal/adapters/driven/storage/vfs"
	"github.com/custodia-labs/mplemon/internal/adapters/driven/xmldoc"
	"github.com/custodia-labs/mplemon/internal/adapters/driving/cli"
	"github.com/custodia-labs/mplemon/internal/core/services"
	"github.com/custodia-labs/mplemon/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	log := logger.WithRun(uuid.NewString())

	configStore, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("settings unavailable: %v", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("load settings: %v", err)
		return err
	}

	templates, err := file.NewTemplateStore("")
	if err != nil {
		logger.Warn("templates unavailable: %v", err)
		return err
	}

	files := vfs.NewFileStore(nil)
	mergeService := services.NewMergeService(
		xmldoc.NewStore(files, xmldoc.WithIndent(settings.Format.Indent)),
		xmldoc.NewImporter(),
		diff.NewDiffer(diff.DefaultContext),
		log,
	)
	scaffoldService := services.NewScaffoldService(
		mergeService,
		files,
		templates,
		keys.NewRSAGenerator(keys.DefaultBits),
		jwt.NewStore(files),
		log,
	)

	cli.SetVersion(version)
	cli.SetServices(mergeService, scaffoldService, settingsService)
	cli.SetLogger(log)
	return cli.Execute()
}
