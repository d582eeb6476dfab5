// pkg/config/config.go

package config

import (
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/StrataNetworks/fabricsync/pkg/netdb"
)

// Keys understood in fabricsync.yaml / FABRICSYNC_* env vars.
const (
	KeyStoreDSN              = "store.dsn"
	KeyManagedPhysnets       = "sync.managed_physnets"
	KeySupportedNetworkTypes = "sync.supported_network_types"
	KeySupportedOwners       = "sync.supported_device_owners"
	KeyUnsupportedOwners     = "sync.unsupported_device_owners"
	KeyUnsupportedDeviceIDs  = "sync.unsupported_device_ids"
	KeyTelemetryEnabled      = "telemetry.enabled"
)

// Policy is the relevance lookup table set, materialised fresh on every
// accessor call so config reloads take effect without restarts.
type Policy struct {
	SupportedNetworkTypes   []string
	SupportedDeviceOwners   []string
	UnsupportedDeviceOwners []string
	UnsupportedDeviceIDs    []string
	ManagedPhysnets         []string
}

// Provider yields the current policy snapshot. The relevance engine takes
// one of these rather than reading viper directly, so tests can inject
// fixed policies.
type Provider func() Policy

// Init wires viper: defaults, optional config file, env overrides.
func Init() error {
	viper.SetDefault(KeyStoreDSN,
		"host=localhost user=fabricsync dbname=networks port=5432 sslmode=disable")
	viper.SetDefault(KeyManagedPhysnets, []string{})
	viper.SetDefault(KeySupportedNetworkTypes, []string{
		netdb.NetworkTypeVLAN,
		netdb.NetworkTypeVXLAN,
	})
	viper.SetDefault(KeySupportedOwners, []string{
		netdb.DeviceOwnerComputePrefix,
		netdb.DeviceOwnerBaremetalPrefix,
		netdb.DeviceOwnerDHCP,
		netdb.DeviceOwnerDVRInterface,
	})
	viper.SetDefault(KeyUnsupportedOwners, []string{
		netdb.DeviceOwnerComputePrefix + "probe",
	})
	viper.SetDefault(KeyUnsupportedDeviceIDs, []string{
		netdb.DeviceIDReservedDHCPPort,
	})
	viper.SetDefault(KeyTelemetryEnabled, false)

	viper.SetConfigName("fabricsync")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/fabricsync")
	viper.AddConfigPath("$HOME/.fabricsync")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("FABRICSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !cerr.As(err, &notFound) {
			return cerr.Wrap(err, "reading fabricsync config file")
		}
	}
	return nil
}

// CurrentPolicy snapshots the relevance lookup tables.
func CurrentPolicy() Policy {
	return Policy{
		SupportedNetworkTypes:   viper.GetStringSlice(KeySupportedNetworkTypes),
		SupportedDeviceOwners:   viper.GetStringSlice(KeySupportedOwners),
		UnsupportedDeviceOwners: viper.GetStringSlice(KeyUnsupportedOwners),
		UnsupportedDeviceIDs:    viper.GetStringSlice(KeyUnsupportedDeviceIDs),
		ManagedPhysnets:         viper.GetStringSlice(KeyManagedPhysnets),
	}
}

// StoreDSN returns the network store connection string.
func StoreDSN() string {
	return viper.GetString(KeyStoreDSN)
}

// TelemetryEnabled reports whether span export is on.
func TelemetryEnabled() bool {
	return viper.GetBool(KeyTelemetryEnabled)
}
