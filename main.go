package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/go-errors/errors"
	"github.com/integrii/flaggy"
	yaml "github.com/jesseduffield/yaml"
	"github.com/samber/lo"

	"simcore/pkg/app"
	"simcore/pkg/config"
)

const defaultVersion = "unversioned"

var (
	commit  string
	version = defaultVersion
	date    string

	configFlag    = false
	demoFlag      = false
	debuggingFlag = false
)

func main() {
	updateBuildInfo()

	info := fmt.Sprintf(
		"%s\nDate: %s\nCommit: %s\nOS: %s\nArch: %s",
		version, date, commit, runtime.GOOS, runtime.GOARCH,
	)

	flaggy.SetName("simcore")
	flaggy.SetDescription("A discrete-event network simulation core")
	flaggy.DefaultParser.AdditionalHelpPrepend = "library-first; this binary only runs the bundled demo scenario"

	flaggy.Bool(&configFlag, "c", "config", "Print the current default config")
	flaggy.Bool(&demoFlag, "r", "demo", "Run the bundled demo scenario and print its event trace")
	flaggy.Bool(&debuggingFlag, "d", "debug", "Enable development logging")
	flaggy.SetVersion(info)

	flaggy.Parse()

	if configFlag {
		var buf bytes.Buffer
		if err := yaml.NewEncoder(&buf).Encode(config.GetDefaultConfig()); err != nil {
			log.Fatal(err.Error())
		}
		fmt.Println(buf.String())
		os.Exit(0)
	}

	appConfig, err := config.NewAppConfig("simcore", version, commit, date, debuggingFlag)
	if err != nil {
		log.Fatal(err.Error())
	}

	a, err := app.NewApp(appConfig)
	if err != nil {
		reportAndExit(a, err)
	}
	defer a.Close()

	if demoFlag {
		table, summary := a.DemoScenario()
		fmt.Println(table)
		fmt.Println()
		fmt.Println(summary)
	}
}

func reportAndExit(a *app.App, err error) {
	if a != nil {
		if message, known := a.KnownError(err); known {
			log.Println(message)
			os.Exit(1)
		}
	}
	wrapped := errors.Wrap(err, 0)
	stackTrace := wrapped.ErrorStack()
	if a != nil && a.Log != nil {
		a.Log.Error(stackTrace)
	}
	log.Fatalf("an error occurred\n\n%s", stackTrace)
}

func updateBuildInfo() {
	if version != defaultVersion {
		return
	}
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if revision, found := lo.Find(buildInfo.Settings, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	}); found {
		commit = revision.Value
		if len(revision.Value) > 7 {
			version = revision.Value[:7]
		} else {
			version = revision.Value
		}
	}
	if t, found := lo.Find(buildInfo.Settings, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.time"
	}); found {
		date = t.Value
	}
}
