// Package xviper serializes access to one viper instance that backs the
// sakdash configuration file, environment and command line flags.
package xviper

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joshyorko/sakdash/common"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = `SAKDASH`
)

type config struct {
	sync.Mutex
	*viper.Viper
	filename string
}

var (
	guarded = &config{Viper: viper.New()}
)

func init() {
	guarded.SetEnvPrefix(EnvPrefix)
	guarded.AutomaticEnv()
}

// Reset throws away everything configured so far. Tests use it to start
// from a clean slate.
func Reset() {
	guarded.Lock()
	defer guarded.Unlock()

	guarded.Viper = viper.New()
	guarded.SetEnvPrefix(EnvPrefix)
	guarded.AutomaticEnv()
	guarded.filename = ""
}

// SetConfigFile loads the named yaml file if it exists. A missing file is
// not an error, it is created on the first Save.
func SetConfigFile(filename string) error {
	guarded.Lock()
	defer guarded.Unlock()

	guarded.filename = filename
	guarded.Viper.SetConfigFile(filename)
	guarded.SetConfigType("yaml")
	_, err := os.Stat(filename)
	if os.IsNotExist(err) {
		common.Trace("Config file %q does not exist yet.", filename)
		return nil
	}
	err = guarded.ReadInConfig()
	if err != nil {
		return err
	}
	common.Trace("Using config file %q.", filename)
	return nil
}

func ConfigFile() string {
	guarded.Lock()
	defer guarded.Unlock()

	return guarded.filename
}

func Save() error {
	guarded.Lock()
	defer guarded.Unlock()

	if len(guarded.filename) == 0 {
		return nil
	}
	err := os.MkdirAll(filepath.Dir(guarded.filename), 0o750)
	if err != nil {
		return err
	}
	return guarded.WriteConfigAs(guarded.filename)
}

func BindFlag(key string, flag *pflag.Flag) error {
	guarded.Lock()
	defer guarded.Unlock()

	return guarded.BindPFlag(key, flag)
}

func SetDefault(key string, value interface{}) {
	guarded.Lock()
	defer guarded.Unlock()

	guarded.Viper.SetDefault(key, value)
}

func Set(key string, value interface{}) {
	guarded.Lock()
	defer guarded.Unlock()

	guarded.Viper.Set(key, value)
}

func Get(key string) interface{} {
	guarded.Lock()
	defer guarded.Unlock()

	return guarded.Viper.Get(key)
}

func GetString(key string) string {
	guarded.Lock()
	defer guarded.Unlock()

	return guarded.Viper.GetString(key)
}

func GetBool(key string) bool {
	guarded.Lock()
	defer guarded.Unlock()

	return guarded.Viper.GetBool(key)
}

func GetDuration(key string) time.Duration {
	guarded.Lock()
	defer guarded.Unlock()

	return guarded.Viper.GetDuration(key)
}
