package common

import (
	"os"
	"path/filepath"
)

const (
	SAKDASH_HOME_VARIABLE  = `SAKDASH_HOME`
	SAKDASH_PRODUCT_NAME   = `SAKDASH_PRODUCT_NAME`
	SAKDASH_NAME           = `sakdash`
	SAK_GLOBAL_VARIABLE    = `SAK_GLOBAL`
	defaultSakdashLocation = "$HOME/.sakdash"
)

type (
	ProductStrategy interface {
		Name() string
		ForceHome(string)
		HomeVariable() string
		Home() string
		ConfigFile() string
	}

	sakdashStrategy struct {
		forcedHome string
	}
)

func SakdashMode() ProductStrategy {
	return &sakdashStrategy{}
}

func (it *sakdashStrategy) Name() string {
	if value := os.Getenv(SAKDASH_PRODUCT_NAME); len(value) > 0 {
		return value
	}
	return SAKDASH_NAME
}

func (it *sakdashStrategy) ForceHome(value string) {
	it.forcedHome = value
}

func (it *sakdashStrategy) HomeVariable() string {
	return SAKDASH_HOME_VARIABLE
}

func (it *sakdashStrategy) Home() string {
	if len(it.forcedHome) > 0 {
		return ExpandPath(it.forcedHome)
	}
	home := os.Getenv(SAKDASH_HOME_VARIABLE)
	if len(home) > 0 {
		return ExpandPath(home)
	}
	// sak keeps its own global folder; share it when present
	home = os.Getenv(SAK_GLOBAL_VARIABLE)
	if len(home) > 0 {
		return ExpandPath(filepath.Join(home, "sakdash"))
	}
	return ExpandPath(defaultSakdashLocation)
}

func (it *sakdashStrategy) ConfigFile() string {
	return filepath.Join(it.Home(), "sakdash.yaml")
}

func ExpandPath(entry string) string {
	intermediate := os.ExpandEnv(entry)
	result, err := filepath.Abs(intermediate)
	if err != nil {
		return intermediate
	}
	return result
}
