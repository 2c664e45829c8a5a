package logs

import (
	"github.com/sirupsen/logrus"
	"io"
	"os"
	"path/filepath"
)

// Logger is usable before Init, it writes to stderr until then
var Logger = logrus.New()

// Init sets the level and tees output to file when file is not empty
func Init(file string, level string) error {
	Logger = logrus.New()
	Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return err
		}
		Logger.SetLevel(lvl)
	}
	if file == "" {
		Logger.SetOutput(os.Stdout)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	Logger.SetOutput(io.MultiWriter(f, os.Stdout))
	return nil
}
