// pkg/relevance/accessors_test.go

package relevance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StrataNetworks/fabricsync/pkg/netdb"
)

func TestGetTenantsEmpty(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	tenants, err := db.GetTenants(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, tenants)
}

func TestGetTenantsUnionOfNetworksAndPorts(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	seedNetwork(t, gdb, "n1", "t1")
	seedNetwork(t, gdb, "n2", "t2")
	seedPort(t, gdb, portSpec{
		id: "p1", networkID: "n1", projectID: "t3",
		deviceID: "vm1", deviceOwner: "compute:None",
	})
	seedPort(t, gdb, portSpec{
		id: "p2", networkID: "n2", projectID: "t4",
		deviceID: "vm2", deviceOwner: "compute:None",
	})

	tenants, err := db.GetTenants(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []Tenant{
		{ProjectID: "t1"}, {ProjectID: "t2"}, {ProjectID: "t3"}, {ProjectID: "t4"},
	}, tenants)
}

func TestGetTenantsUniqueness(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	seedNetwork(t, gdb, "n1", "t1")
	seedPort(t, gdb, portSpec{
		id: "p1", networkID: "n1", projectID: "t1",
		deviceID: "vm1", deviceOwner: "compute:None",
	})
	seedPort(t, gdb, portSpec{
		id: "p2", networkID: "n1", projectID: "t1",
		deviceID: "vm2", deviceOwner: "compute:None",
	})

	tenants, err := db.GetTenants(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []Tenant{{ProjectID: "t1"}}, tenants)
}

func TestGetTenantsSharedNetworkPorts(t *testing.T) {
	// Tenant t2 only has a port on t1's shared network; both must show up.
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	seedNetwork(t, gdb, "n1", "t1")
	seedPort(t, gdb, portSpec{
		id: "p1", networkID: "n1", projectID: "t2",
		deviceID: "vm1", deviceOwner: "compute:None",
	})

	tenants, err := db.GetTenants(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []Tenant{{ProjectID: "t1"}, {ProjectID: "t2"}}, tenants)
}

func TestGetTenantsExistenceCheck(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	seedNetwork(t, gdb, "n1", "t1")

	tenants, err := db.GetTenants(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, []Tenant{{ProjectID: "t1"}}, tenants)

	tenants, err = db.GetTenants(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, tenants)
}

func TestTenantProvisionedLifecycle(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())
	ctx := context.Background()

	provisioned, err := db.TenantProvisioned(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, provisioned)

	seedNetwork(t, gdb, "n1", "t1")
	seedPort(t, gdb, portSpec{
		id: "p1", networkID: "n1", projectID: "t2",
		deviceID: "vm1", deviceOwner: "compute:None",
	})

	provisioned, err = db.TenantProvisioned(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, provisioned)
	provisioned, err = db.TenantProvisioned(ctx, "t2")
	require.NoError(t, err)
	assert.True(t, provisioned)

	require.NoError(t, gdb.Delete(&netdb.Port{ID: "p1"}).Error)
	require.NoError(t, gdb.Delete(&netdb.Network{ID: "n1"}).Error)

	provisioned, err = db.TenantProvisioned(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, provisioned)
	provisioned, err = db.TenantProvisioned(ctx, "t2")
	require.NoError(t, err)
	assert.False(t, provisioned)
}

func TestInstanceAndPortProvisioned(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())
	ctx := context.Background()

	seedNetwork(t, gdb, "n1", "t1")
	// Existence checks are raw: even an inactive, unbound port counts.
	seedPort(t, gdb, portSpec{
		id: "p1", networkID: "n1", projectID: "t1",
		deviceID: "vm1", deviceOwner: "compute:None",
		status: netdb.PortStatusDown, unbound: true,
	})

	provisioned, err := db.InstanceProvisioned(ctx, "vm1")
	require.NoError(t, err)
	assert.True(t, provisioned)
	provisioned, err = db.InstanceProvisioned(ctx, "vm2")
	require.NoError(t, err)
	assert.False(t, provisioned)

	provisioned, err = db.PortProvisioned(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, provisioned)
	provisioned, err = db.PortProvisioned(ctx, "p2")
	require.NoError(t, err)
	assert.False(t, provisioned)
}

func TestGetNetworks(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	seedNetwork(t, gdb, "n1", "t1")
	seedNetwork(t, gdb, "n2", "t2")

	networks, err := db.GetNetworks(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, networks, 2)

	networks, err = db.GetNetworks(context.Background(), "n2")
	require.NoError(t, err)
	require.Len(t, networks, 1)
	assert.Equal(t, "n2", networks[0].ID)

	networks, err = db.GetNetworks(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, networks)
}

func TestGetSegmentsFiltersNetworkType(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	seedNetwork(t, gdb, "n1", "t1")
	vlanID := seedSegment(t, gdb, "n1", netdb.NetworkTypeVLAN, "physnet1")
	seedSegment(t, gdb, "n1", netdb.NetworkTypeVXLAN, "")
	seedSegment(t, gdb, "n1", "flat", "physnet1")
	seedSegment(t, gdb, "n1", "gre", "")

	segments, err := db.GetSegments(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, segments, 2)
	for _, segment := range segments {
		assert.Contains(t,
			[]string{netdb.NetworkTypeVLAN, netdb.NetworkTypeVXLAN},
			segment.NetworkType)
	}

	segments, err = db.GetSegments(context.Background(), vlanID)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, vlanID, segments[0].ID)
}

func TestGetVMPorts(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	seedNetwork(t, gdb, "n1", "t1")
	seedPort(t, gdb, portSpec{ // qualifies
		id: "vm-port", networkID: "n1", projectID: "t1",
		deviceID: "vm1", deviceOwner: "compute:None",
	})
	seedPort(t, gdb, portSpec{ // wrong owner category
		id: "dhcp-port", networkID: "n1", projectID: "t1",
		deviceID: "dhcp1", deviceOwner: netdb.DeviceOwnerDHCP,
	})
	seedPort(t, gdb, portSpec{ // globally unsupported owner prefix
		id: "probe-port", networkID: "n1", projectID: "t1",
		deviceID: "probe1", deviceOwner: "compute:probe",
	})
	seedPort(t, gdb, portSpec{ // not ACTIVE
		id: "down-port", networkID: "n1", projectID: "t1",
		deviceID: "vm2", deviceOwner: "compute:None",
		status: netdb.PortStatusDown,
	})
	seedPort(t, gdb, portSpec{ // no host binding
		id: "unbound-port", networkID: "n1", projectID: "t1",
		deviceID: "vm3", deviceOwner: "compute:None", unbound: true,
	})
	seedPort(t, gdb, portSpec{ // wrong vnic type
		id: "bm-port", networkID: "n1", projectID: "t1",
		deviceID: "bm1", deviceOwner: "compute:None",
		vnicType: netdb.VnicTypeBaremetal,
	})

	ports, err := db.GetVMPorts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, ports, 1)
	assert.Equal(t, "vm-port", ports[0].ID)
}

func TestGetVMPortsVnicTypeViaDistributedBinding(t *testing.T) {
	// The vnic-type predicate must match through either binding table.
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	seedNetwork(t, gdb, "n1", "t1")
	seedPort(t, gdb, portSpec{
		id: "dvr-port", networkID: "n1", projectID: "t1",
		deviceID: "vm1", deviceOwner: "compute:None",
		distributed: true,
	})

	ports, err := db.GetVMPorts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, ports, 1)
	assert.Equal(t, "dvr-port", ports[0].ID)
}

func TestGetPortsExcludesReservedDHCPDeviceID(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	seedNetwork(t, gdb, "n1", "t1")
	seedPort(t, gdb, portSpec{
		id: "scheduled", networkID: "n1", projectID: "t1",
		deviceID: "agent1", deviceOwner: netdb.DeviceOwnerDHCP,
	})
	seedPort(t, gdb, portSpec{
		id: "reserved", networkID: "n1", projectID: "t1",
		deviceID: netdb.DeviceIDReservedDHCPPort, deviceOwner: netdb.DeviceOwnerDHCP,
	})

	ports, err := db.GetDhcpPorts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, ports, 1)
	assert.Equal(t, "scheduled", ports[0].ID)
}

func TestGetPortsRoleWrappers(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())
	ctx := context.Background()

	seedNetwork(t, gdb, "n1", "t1")
	seedPort(t, gdb, portSpec{
		id: "vm-port", networkID: "n1", projectID: "t1",
		deviceID: "vm1", deviceOwner: "compute:None",
	})
	seedPort(t, gdb, portSpec{
		id: "dhcp-port", networkID: "n1", projectID: "t1",
		deviceID: "agent1", deviceOwner: netdb.DeviceOwnerDHCP,
	})
	seedPort(t, gdb, portSpec{
		id: "router-port", networkID: "n1", projectID: "t1",
		deviceID: "router1", deviceOwner: netdb.DeviceOwnerDVRInterface,
	})
	seedPort(t, gdb, portSpec{
		id: "bm-port", networkID: "n1", projectID: "t1",
		deviceID: "bm1", deviceOwner: "baremetal:None",
		vnicType: netdb.VnicTypeBaremetal,
	})

	dhcp, err := db.GetDhcpPorts(ctx, "")
	require.NoError(t, err)
	require.Len(t, dhcp, 1)
	assert.Equal(t, "dhcp-port", dhcp[0].ID)

	router, err := db.GetRouterPorts(ctx, "")
	require.NoError(t, err)
	require.Len(t, router, 1)
	assert.Equal(t, "router-port", router[0].ID)

	baremetal, err := db.GetBaremetalPorts(ctx, "")
	require.NoError(t, err)
	require.Len(t, baremetal, 1)
	assert.Equal(t, "bm-port", baremetal[0].ID)
}

func TestGetPortsIncludeInactive(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	seedNetwork(t, gdb, "n1", "t1")
	seedPort(t, gdb, portSpec{
		id: "active", networkID: "n1", projectID: "t1",
		deviceID: "vm1", deviceOwner: "compute:None",
	})
	seedPort(t, gdb, portSpec{
		id: "down", networkID: "n1", projectID: "t1",
		deviceID: "vm2", deviceOwner: "compute:None",
		status: netdb.PortStatusDown,
	})

	ports, err := db.GetPorts(context.Background(), nil, "", "", true)
	require.NoError(t, err)
	require.Len(t, ports, 1)
	assert.Equal(t, "active", ports[0].ID)

	ports, err = db.GetPorts(context.Background(), nil, "", "", false)
	require.NoError(t, err)
	assert.Len(t, ports, 2)
}

func TestGetInstancesGroupsByDevice(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	seedNetwork(t, gdb, "n1", "t1")
	seedPort(t, gdb, portSpec{
		id: "p1", networkID: "n1", projectID: "t1",
		deviceID: "vm1", deviceOwner: "compute:None", host: "host1",
	})
	seedPort(t, gdb, portSpec{
		id: "p2", networkID: "n1", projectID: "t1",
		deviceID: "vm1", deviceOwner: "compute:None", host: "host1",
	})
	seedPort(t, gdb, portSpec{
		id: "p3", networkID: "n1", projectID: "t1",
		deviceID: "vm2", deviceOwner: "compute:None", host: "host2",
	})

	instances, err := db.GetVMInstances(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, instances, 2)

	byDevice := map[string]Instance{}
	for _, instance := range instances {
		byDevice[instance.DeviceID] = instance
	}
	require.Contains(t, byDevice, "vm1")
	require.Contains(t, byDevice, "vm2")
	assert.Equal(t, "host1", byDevice["vm1"].Host)
	assert.Equal(t, "host2", byDevice["vm2"].Host)

	instances, err = db.GetVMInstances(context.Background(), "vm2")
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, "vm2", instances[0].DeviceID)
}

func TestGetInstancesRoleWrappers(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())
	ctx := context.Background()

	seedNetwork(t, gdb, "n1", "t1")
	seedPort(t, gdb, portSpec{
		id: "dhcp-port", networkID: "n1", projectID: "t1",
		deviceID: "agent1", deviceOwner: netdb.DeviceOwnerDHCP,
	})
	seedPort(t, gdb, portSpec{
		id: "router-port", networkID: "n1", projectID: "t1",
		deviceID: "router1", deviceOwner: netdb.DeviceOwnerDVRInterface,
	})
	seedPort(t, gdb, portSpec{
		id: "bm-port", networkID: "n1", projectID: "t1",
		deviceID: "bm1", deviceOwner: "baremetal:None",
		vnicType: netdb.VnicTypeBaremetal,
	})

	dhcp, err := db.GetDhcpInstances(ctx, "")
	require.NoError(t, err)
	require.Len(t, dhcp, 1)
	assert.Equal(t, "agent1", dhcp[0].DeviceID)

	routers, err := db.GetRouterInstances(ctx, "")
	require.NoError(t, err)
	require.Len(t, routers, 1)
	assert.Equal(t, "router1", routers[0].DeviceID)

	baremetal, err := db.GetBaremetalInstances(ctx, "")
	require.NoError(t, err)
	require.Len(t, baremetal, 1)
	assert.Equal(t, "bm1", baremetal[0].DeviceID)
}

func TestGetPortBindingLevelsOrdering(t *testing.T) {
	gdb := openTestStore(t)
	db := newTestDB(t, gdb, testPolicy())

	seedNetwork(t, gdb, "n1", "t1")
	seedPort(t, gdb, portSpec{
		id: "p1", networkID: "n1", projectID: "t1",
		deviceID: "vm1", deviceOwner: "compute:None",
		host: "host1", levels: 3,
	})
	seedPort(t, gdb, portSpec{
		id: "p2", networkID: "n1", projectID: "t1",
		deviceID: "vm2", deviceOwner: "compute:None",
		host: "host2",
	})

	levels, err := db.GetPortBindingLevels(context.Background(), BindingLevelFilter{PortID: "p1"})
	require.NoError(t, err)
	require.Len(t, levels, 3)
	for i, level := range levels {
		assert.Equal(t, i, level.Level)
		assert.Equal(t, "host1", level.Host)
	}

	levels, err = db.GetPortBindingLevels(context.Background(), BindingLevelFilter{Host: "host2"})
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, "p2", levels[0].PortID)

	level := 2
	levels, err = db.GetPortBindingLevels(context.Background(), BindingLevelFilter{PortID: "p1", Level: &level})
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, 2, levels[0].Level)
}
