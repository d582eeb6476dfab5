// pkg/relevance/fixture_test.go

package relevance

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/StrataNetworks/fabricsync/pkg/config"
	"github.com/StrataNetworks/fabricsync/pkg/netdb"
)

func openTestStore(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, netdb.AutoMigrate(gdb))
	return gdb
}

func testPolicy() config.Policy {
	return config.Policy{
		SupportedNetworkTypes: []string{netdb.NetworkTypeVLAN, netdb.NetworkTypeVXLAN},
		SupportedDeviceOwners: []string{
			netdb.DeviceOwnerComputePrefix,
			netdb.DeviceOwnerBaremetalPrefix,
			netdb.DeviceOwnerDHCP,
			netdb.DeviceOwnerDVRInterface,
		},
		UnsupportedDeviceOwners: []string{netdb.DeviceOwnerComputePrefix + "probe"},
		UnsupportedDeviceIDs:    []string{netdb.DeviceIDReservedDHCPPort},
	}
}

func newTestDB(t *testing.T, gdb *gorm.DB, policy config.Policy) *DB {
	t.Helper()
	return New(gdb, func() config.Policy { return policy }, nil)
}

func seedNetwork(t *testing.T, gdb *gorm.DB, id, projectID string) {
	t.Helper()
	require.NoError(t, gdb.Create(&netdb.Network{
		ID:           id,
		ProjectID:    projectID,
		AdminStateUp: true,
	}).Error)
}

func seedSegment(t *testing.T, gdb *gorm.DB, networkID, networkType, physnet string) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, gdb.Create(&netdb.Segment{
		ID:              id,
		NetworkID:       networkID,
		NetworkType:     networkType,
		PhysicalNetwork: physnet,
		SegmentationID:  100,
	}).Error)
	return id
}

type portSpec struct {
	id          string
	networkID   string
	projectID   string
	deviceID    string
	deviceOwner string
	status      string
	vnicType    string
	host        string
	profile     string
	distributed bool
	unbound     bool
	levels      int
}

// seedPort creates a port and, unless unbound, its binding plus binding
// levels for the host.
func seedPort(t *testing.T, gdb *gorm.DB, spec portSpec) {
	t.Helper()
	if spec.status == "" {
		spec.status = netdb.PortStatusActive
	}
	if spec.vnicType == "" {
		spec.vnicType = netdb.VnicTypeNormal
	}
	if spec.host == "" {
		spec.host = "host1"
	}
	if spec.levels == 0 {
		spec.levels = 1
	}

	require.NoError(t, gdb.Create(&netdb.Port{
		ID:           spec.id,
		NetworkID:    spec.networkID,
		ProjectID:    spec.projectID,
		MACAddress:   "00:00:00:00:00:01",
		DeviceID:     spec.deviceID,
		DeviceOwner:  spec.deviceOwner,
		Status:       spec.status,
		AdminStateUp: true,
	}).Error)

	if spec.unbound {
		return
	}

	if spec.distributed {
		require.NoError(t, gdb.Create(&netdb.DistributedPortBinding{
			PortID:   spec.id,
			Host:     spec.host,
			VnicType: spec.vnicType,
			Profile:  spec.profile,
			Status:   netdb.PortStatusActive,
		}).Error)
	} else {
		require.NoError(t, gdb.Create(&netdb.PortBinding{
			PortID:   spec.id,
			Host:     spec.host,
			VnicType: spec.vnicType,
			Profile:  spec.profile,
			Status:   netdb.PortStatusActive,
		}).Error)
	}

	for level := 0; level < spec.levels; level++ {
		require.NoError(t, gdb.Create(&netdb.PortBindingLevel{
			PortID:    spec.id,
			Host:      spec.host,
			Level:     level,
			Driver:    "fabric",
			SegmentID: uuid.NewString(),
		}).Error)
	}
}
