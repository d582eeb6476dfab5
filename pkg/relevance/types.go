// pkg/relevance/types.go

package relevance

import (
	"github.com/StrataNetworks/fabricsync/pkg/netdb"
	"github.com/StrataNetworks/fabricsync/pkg/syncerr"
)

// Tenant wraps a single project id; the controller wants one record per
// tenant it has to know about.
type Tenant struct {
	ProjectID string `gorm:"column:project_id" json:"project_id"`
}

// Instance is one row per distinct device with a relevant port.
type Instance struct {
	DeviceID    string `gorm:"column:device_id" json:"device_id"`
	DeviceOwner string `gorm:"column:device_owner" json:"device_owner"`
	ProjectID   string `gorm:"column:project_id" json:"project_id"`
	Host        string `gorm:"column:host" json:"host"`
}

// Binding is a port binding from either binding table, with its ordered
// binding levels attached.
type Binding struct {
	PortID      string                   `gorm:"column:port_id" json:"port_id"`
	Host        string                   `gorm:"column:host" json:"host"`
	VnicType    string                   `gorm:"column:vnic_type" json:"vnic_type"`
	Profile     string                   `gorm:"column:profile" json:"profile"`
	Distributed bool                     `gorm:"-" json:"distributed"`
	Levels      []netdb.PortBindingLevel `gorm:"-" json:"levels,omitempty"`
}

// BindingKey narrows GetPortBindings to one binding: a port plus either a
// host id or a (switch id, switch port) pair matched against the opaque
// binding profile. Exactly one of the two legs must be set.
type BindingKey struct {
	PortID     string
	Host       string
	SwitchID   string
	SwitchPort string
}

// HostKey builds a host-addressed binding key.
func HostKey(portID, host string) BindingKey {
	return BindingKey{PortID: portID, Host: host}
}

// SwitchKey builds a switch-addressed binding key.
func SwitchKey(portID, switchID, switchPort string) BindingKey {
	return BindingKey{PortID: portID, SwitchID: switchID, SwitchPort: switchPort}
}

func (k BindingKey) validate() error {
	if k.PortID == "" {
		return syncerr.Expectedf("binding key: port id is required")
	}
	hostSet := k.Host != ""
	switchSet := k.SwitchID != "" && k.SwitchPort != ""
	if (k.SwitchID != "") != (k.SwitchPort != "") {
		return syncerr.Expectedf("binding key: switch id and switch port must be set together")
	}
	if hostSet == switchSet {
		return syncerr.Expectedf("binding key: exactly one of host or switch pair must be set")
	}
	return nil
}

func (k BindingKey) apply(q *Query, table string) {
	q.Where(table+".port_id = ?", k.PortID)
	if k.Host != "" {
		q.Where(table+".host = ?", k.Host)
		return
	}
	q.Where("lower("+table+".profile) LIKE ?", containsPattern(k.SwitchID))
	q.Where("lower("+table+".profile) LIKE ?", containsPattern(k.SwitchPort))
}

// BindingLevelFilter selects binding levels by exact match on its set
// fields; nil/empty fields are unconstrained.
type BindingLevelFilter struct {
	PortID string
	Host   string
	Level  *int
}
