// pkg/netdb/consts.go

package netdb

// Well-known values used by the relevance policy. Device owner
// classification is prefix based and not mutually exclusive by
// construction; an owner string may match more than one prefix.
const (
	PortStatusActive = "ACTIVE"
	PortStatusDown   = "DOWN"

	DeviceOwnerDHCP            = "network:dhcp"
	DeviceOwnerDVRInterface    = "network:router_interface_distributed"
	DeviceOwnerComputePrefix   = "compute:"
	DeviceOwnerBaremetalPrefix = "baremetal:"

	// Placeholder device id assigned to DHCP ports that are reserved but
	// not yet scheduled to an agent. Never exported.
	DeviceIDReservedDHCPPort = "reserved_dhcp_port"

	VnicTypeNormal    = "normal"
	VnicTypeBaremetal = "baremetal"

	NetworkTypeVLAN  = "vlan"
	NetworkTypeVXLAN = "vxlan"
)
