package run

import (
	"os"
	"strings"

	"github.com/gagarinchain/claimnet/common"
	"github.com/op/go-logging"
)

var stdoutLogFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} [%{shortfile}] [%{level}] %{message}`,
)

var log = logging.MustGetLogger("main")

const WelcomeArt = `
  ___ _      _   ___ __  __ _  _ ___ _____
 / __| |    /_\ |_ _|  \/  | \| | __|_   _|
| (__| |__ / _ \ | || |\/| | .` + "`" + ` | _|  | |
 \___|____/_/ \_\___|_|  |_|_|\_|___| |_|
`

func Start(s *common.Settings) {
	initLogger(s.Log.Level)

	log.Info(WelcomeArt)

	ctx, err := CreateContext(s)
	if err != nil {
		log.Fatal("Can't create node", err)
	}

	ctx.Bootstrap()
}

func initLogger(logLevel string) {
	level, err := logging.LogLevel(strings.ToUpper(logLevel))
	if err != nil {
		level = logging.INFO
	}

	backend := logging.NewLogBackend(os.Stdout, "", 0)
	errBackend := logging.NewLogBackend(os.Stderr, "", 0)
	backendFormatter := logging.NewBackendFormatter(backend, stdoutLogFormat)
	errBackendFormatter := logging.NewBackendFormatter(errBackend, stdoutLogFormat)
	backendLeveled := logging.AddModuleLevel(backendFormatter)
	errBackendLeveled := logging.AddModuleLevel(errBackendFormatter)
	backendLeveled.SetLevel(level, "")
	errBackendLeveled.SetLevel(logging.ERROR, "")

	logging.SetBackend(backendLeveled, errBackendLeveled)
}
