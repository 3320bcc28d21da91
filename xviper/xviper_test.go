package xviper_test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/joshyorko/sakdash/hamlet"
	"github.com/joshyorko/sakdash/xviper"
)

func TestIdentityIsStableOnceGenerated(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)
	xviper.Reset()

	first := xviper.ClientIdentity()
	_, err := uuid.Parse(first)
	must_be.Nil(err)
	must_be.Equal(first, xviper.ClientIdentity())

	renewed := xviper.RenewIdentity()
	wont_be.Equal(first, renewed)
	must_be.Equal(renewed, xviper.ClientIdentity())
}

func TestGarbageIdentityIsReplaced(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)
	xviper.Reset()

	xviper.Set("client.identity", "not-a-uuid")
	identity := xviper.ClientIdentity()
	wont_be.Equal("not-a-uuid", identity)
	_, err := uuid.Parse(identity)
	must_be.Nil(err)
}

func TestSettingsSurviveSaveAndReload(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)
	xviper.Reset()

	filename := filepath.Join(t.TempDir(), "nested", "sakdash.yaml")
	must_be.Nil(xviper.SetConfigFile(filename))
	xviper.Set("endpoint", "http://example.test:8080")
	must_be.Nil(xviper.Save())

	xviper.Reset()
	must_be.Equal("", xviper.GetString("endpoint"))
	must_be.Nil(xviper.SetConfigFile(filename))
	must_be.Equal("http://example.test:8080", xviper.GetString("endpoint"))
	must_be.Equal(filename, xviper.ConfigFile())
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)
	xviper.Reset()

	xviper.SetDefault("timeout", "0s")
	t.Setenv("SAKDASH_TIMEOUT", "2s")
	must_be.Equal("2s", xviper.GetDuration("timeout").String())
}
