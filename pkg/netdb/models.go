// pkg/netdb/models.go

package netdb

// Entity mapping for the shared virtual-network database. fabricsync only
// reads these tables; they are created and mutated by the network plugin
// that owns the store.

// Network is a virtual network owned by a project.
type Network struct {
	ID           string `gorm:"column:id;primaryKey" json:"id"`
	ProjectID    string `gorm:"column:project_id;index" json:"project_id"`
	Name         string `gorm:"column:name" json:"name"`
	Shared       bool   `gorm:"column:shared" json:"shared"`
	AdminStateUp bool   `gorm:"column:admin_state_up" json:"admin_state_up"`
}

func (Network) TableName() string { return "networks" }

// Segment is one encapsulation binding of a network onto the physical
// fabric (network type + physical network + segmentation id).
type Segment struct {
	ID              string `gorm:"column:id;primaryKey" json:"id"`
	NetworkID       string `gorm:"column:network_id;index" json:"network_id"`
	NetworkType     string `gorm:"column:network_type" json:"network_type"`
	PhysicalNetwork string `gorm:"column:physical_network" json:"physical_network"`
	SegmentationID  int    `gorm:"column:segmentation_id" json:"segmentation_id"`
	IsDynamic       bool   `gorm:"column:is_dynamic" json:"is_dynamic"`
}

func (Segment) TableName() string { return "network_segments" }

// Port is an attachment point on a network. DeviceOwner is a free-form
// string with recognised prefixes (see consts.go).
type Port struct {
	ID           string `gorm:"column:id;primaryKey" json:"id"`
	NetworkID    string `gorm:"column:network_id;index" json:"network_id"`
	ProjectID    string `gorm:"column:project_id;index" json:"project_id"`
	Name         string `gorm:"column:name" json:"name"`
	MACAddress   string `gorm:"column:mac_address" json:"mac_address"`
	DeviceID     string `gorm:"column:device_id" json:"device_id"`
	DeviceOwner  string `gorm:"column:device_owner" json:"device_owner"`
	Status       string `gorm:"column:status" json:"status"`
	AdminStateUp bool   `gorm:"column:admin_state_up" json:"admin_state_up"`
}

func (Port) TableName() string { return "ports" }

// PortBinding binds a port to a host. Profile is an opaque blob that may
// encode the switch id and switch port for baremetal attachments.
type PortBinding struct {
	PortID   string `gorm:"column:port_id;primaryKey" json:"port_id"`
	Host     string `gorm:"column:host;primaryKey" json:"host"`
	VnicType string `gorm:"column:vnic_type" json:"vnic_type"`
	VifType  string `gorm:"column:vif_type" json:"vif_type"`
	Profile  string `gorm:"column:profile" json:"profile"`
	Status   string `gorm:"column:status" json:"status"`
}

func (PortBinding) TableName() string { return "ml2_port_bindings" }

// DistributedPortBinding is the per-host binding used for distributed
// router ports; a single port may be bound on many hosts.
type DistributedPortBinding struct {
	PortID   string `gorm:"column:port_id;primaryKey" json:"port_id"`
	Host     string `gorm:"column:host;primaryKey" json:"host"`
	VnicType string `gorm:"column:vnic_type" json:"vnic_type"`
	VifType  string `gorm:"column:vif_type" json:"vif_type"`
	Profile  string `gorm:"column:profile" json:"profile"`
	Status   string `gorm:"column:status" json:"status"`
}

func (DistributedPortBinding) TableName() string { return "ml2_distributed_port_bindings" }

// PortBindingLevel is one hop in a multi-level binding hierarchy. Levels
// for a (port, host) pair are totally ordered; level 0 is outermost.
type PortBindingLevel struct {
	PortID    string `gorm:"column:port_id;primaryKey" json:"port_id"`
	Host      string `gorm:"column:host;primaryKey" json:"host"`
	Level     int    `gorm:"column:level;primaryKey" json:"level"`
	Driver    string `gorm:"column:driver" json:"driver"`
	SegmentID string `gorm:"column:segment_id" json:"segment_id"`
}

func (PortBindingLevel) TableName() string { return "ml2_port_binding_levels" }

// Subnet is read by the facade only; the relevance engine never touches it.
type Subnet struct {
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	NetworkID string `gorm:"column:network_id;index" json:"network_id"`
	ProjectID string `gorm:"column:project_id" json:"project_id"`
	CIDR      string `gorm:"column:cidr" json:"cidr"`
	GatewayIP string `gorm:"column:gateway_ip" json:"gateway_ip"`
	IPVersion int    `gorm:"column:ip_version" json:"ip_version"`
}

func (Subnet) TableName() string { return "subnets" }

type SecurityGroup struct {
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	ProjectID string `gorm:"column:project_id;index" json:"project_id"`
	Name      string `gorm:"column:name" json:"name"`
}

func (SecurityGroup) TableName() string { return "securitygroups" }

type SecurityGroupRule struct {
	ID              string `gorm:"column:id;primaryKey" json:"id"`
	SecurityGroupID string `gorm:"column:security_group_id;index" json:"security_group_id"`
	ProjectID       string `gorm:"column:project_id" json:"project_id"`
	Direction       string `gorm:"column:direction" json:"direction"`
	Ethertype       string `gorm:"column:ethertype" json:"ethertype"`
	Protocol        string `gorm:"column:protocol" json:"protocol"`
	PortRangeMin    int    `gorm:"column:port_range_min" json:"port_range_min"`
	PortRangeMax    int    `gorm:"column:port_range_max" json:"port_range_max"`
	RemoteIPPrefix  string `gorm:"column:remote_ip_prefix" json:"remote_ip_prefix"`
}

func (SecurityGroupRule) TableName() string { return "securitygrouprules" }

type SecurityGroupPortBinding struct {
	PortID          string `gorm:"column:port_id;primaryKey" json:"port_id"`
	SecurityGroupID string `gorm:"column:security_group_id;primaryKey" json:"security_group_id"`
}

func (SecurityGroupPortBinding) TableName() string { return "securitygroupportbindings" }

// AllModels lists every mapped entity, in dependency order. Used by
// AutoMigrate in tests and dev bootstrap.
func AllModels() []any {
	return []any{
		&Network{},
		&Segment{},
		&Subnet{},
		&Port{},
		&PortBinding{},
		&DistributedPortBinding{},
		&PortBindingLevel{},
		&SecurityGroup{},
		&SecurityGroupRule{},
		&SecurityGroupPortBinding{},
	}
}
