// pkg/relevance/accessors.go

package relevance

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/StrataNetworks/fabricsync/pkg/config"
	"github.com/StrataNetworks/fabricsync/pkg/netdb"
	"github.com/StrataNetworks/fabricsync/pkg/syncerr"
)

// DB composes the predicate library into the role accessors the sync
// layer consumes. Every accessor runs one read transaction, propagates
// store errors, and reports absence as an empty result, never an error.
type DB struct {
	store  *gorm.DB
	policy config.Provider
	log    *zap.Logger
}

// New builds the accessor layer. policy defaults to the live viper
// snapshot; tests inject fixed policies instead.
func New(store *gorm.DB, policy config.Provider, log *zap.Logger) *DB {
	if policy == nil {
		policy = config.CurrentPolicy
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DB{store: store, policy: policy, log: log}
}

func (d *DB) read(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if err := d.store.WithContext(ctx).Transaction(fn); err != nil {
		return syncerr.WrapStore(err, op)
	}
	return nil
}

// GetTenants returns the union of project ids referenced by any network
// or any port, one record per tenant. A non-empty tenantID narrows the
// set to that id (existence check).
func (d *DB) GetTenants(ctx context.Context, tenantID string) ([]Tenant, error) {
	var tenants []Tenant
	err := d.read(ctx, "listing tenants", func(tx *gorm.DB) error {
		var fromNetworks, fromPorts []string
		if err := tx.Model(&netdb.Network{}).Distinct().Pluck("project_id", &fromNetworks).Error; err != nil {
			return err
		}
		if err := tx.Model(&netdb.Port{}).Distinct().Pluck("project_id", &fromPorts).Error; err != nil {
			return err
		}
		seen := make(map[string]struct{}, len(fromNetworks)+len(fromPorts))
		for _, id := range fromNetworks {
			seen[id] = struct{}{}
		}
		for _, id := range fromPorts {
			seen[id] = struct{}{}
		}
		if tenantID != "" {
			tenants = []Tenant{}
			if _, ok := seen[tenantID]; ok {
				tenants = append(tenants, Tenant{ProjectID: tenantID})
			}
			return nil
		}
		tenants = make([]Tenant, 0, len(seen))
		for id := range seen {
			tenants = append(tenants, Tenant{ProjectID: id})
		}
		sort.Slice(tenants, func(i, j int) bool {
			return tenants[i].ProjectID < tenants[j].ProjectID
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

// GetNetworks returns all networks, or one when networkID is given.
func (d *DB) GetNetworks(ctx context.Context, networkID string) ([]netdb.Network, error) {
	var networks []netdb.Network
	err := d.read(ctx, "listing networks", func(tx *gorm.DB) error {
		q := tx.Model(&netdb.Network{})
		if networkID != "" {
			q = q.Where("id = ?", networkID)
		}
		return q.Find(&networks).Error
	})
	if err != nil {
		return nil, err
	}
	return networks, nil
}

// GetSegments returns segments of supported network types, optionally
// narrowed to one segment id.
func (d *DB) GetSegments(ctx context.Context, segmentID string) ([]netdb.Segment, error) {
	var segments []netdb.Segment
	err := d.read(ctx, "listing segments", func(tx *gorm.DB) error {
		q := NewSegmentQuery(tx, d.policy()).FilterNetworkType()
		if segmentID != "" {
			q.Where("network_segments.id = ?", segmentID)
		}
		return q.Statement().Find(&segments).Error
	})
	if err != nil {
		return nil, err
	}
	return segments, nil
}

// GetInstances returns one row per distinct device with a relevant port.
func (d *DB) GetInstances(ctx context.Context, deviceOwners []string, vnicType, instanceID string) ([]Instance, error) {
	var instances []Instance
	err := d.read(ctx, "listing instances", func(tx *gorm.DB) error {
		q := NewPortQuery(tx, d.policy())
		q.outerJoinBindings()
		q.FilterUnnecessaryPorts(deviceOwners, vnicType, true)
		if instanceID != "" {
			q.Where("ports.device_id = ?", instanceID)
		}
		return q.Statement().
			Select("ports.device_id AS device_id, " +
				"max(ports.device_owner) AS device_owner, " +
				"max(ports.project_id) AS project_id, " +
				"max(" + tableBindings + ".host) AS host").
			Group("ports.device_id").
			Scan(&instances).Error
	})
	if err != nil {
		return nil, err
	}
	return instances, nil
}

// GetDhcpInstances returns DHCP agents with relevant ports.
func (d *DB) GetDhcpInstances(ctx context.Context, instanceID string) ([]Instance, error) {
	return d.GetInstances(ctx, []string{netdb.DeviceOwnerDHCP}, "", instanceID)
}

// GetRouterInstances returns distributed routers with relevant ports.
func (d *DB) GetRouterInstances(ctx context.Context, instanceID string) ([]Instance, error) {
	return d.GetInstances(ctx, []string{netdb.DeviceOwnerDVRInterface}, "", instanceID)
}

// GetVMInstances returns VMs with relevant normal-vnic ports.
func (d *DB) GetVMInstances(ctx context.Context, instanceID string) ([]Instance, error) {
	return d.GetInstances(ctx, []string{netdb.DeviceOwnerComputePrefix}, netdb.VnicTypeNormal, instanceID)
}

// GetBaremetalInstances returns devices with baremetal-vnic ports.
func (d *DB) GetBaremetalInstances(ctx context.Context, instanceID string) ([]Instance, error) {
	return d.GetInstances(ctx, nil, netdb.VnicTypeBaremetal, instanceID)
}

// GetPorts returns relevant ports, one row per port. activeOnly mirrors
// the canonical gate's activity conjunct.
func (d *DB) GetPorts(ctx context.Context, deviceOwners []string, vnicType, portID string, activeOnly bool) ([]netdb.Port, error) {
	var ports []netdb.Port
	err := d.read(ctx, "listing ports", func(tx *gorm.DB) error {
		q := NewPortQuery(tx, d.policy()).
			FilterUnnecessaryPorts(deviceOwners, vnicType, activeOnly)
		if portID != "" {
			q.Where("ports.id = ?", portID)
		}
		// Binding-level joins can fan out; collapse back to one row per port.
		return q.Statement().Group("ports.id").Find(&ports).Error
	})
	if err != nil {
		return nil, err
	}
	return ports, nil
}

func (d *DB) GetDhcpPorts(ctx context.Context, portID string) ([]netdb.Port, error) {
	return d.GetPorts(ctx, []string{netdb.DeviceOwnerDHCP}, "", portID, true)
}

func (d *DB) GetRouterPorts(ctx context.Context, portID string) ([]netdb.Port, error) {
	return d.GetPorts(ctx, []string{netdb.DeviceOwnerDVRInterface}, "", portID, true)
}

func (d *DB) GetVMPorts(ctx context.Context, portID string) ([]netdb.Port, error) {
	return d.GetPorts(ctx, []string{netdb.DeviceOwnerComputePrefix}, netdb.VnicTypeNormal, portID, true)
}

func (d *DB) GetBaremetalPorts(ctx context.Context, portID string) ([]netdb.Port, error) {
	return d.GetPorts(ctx, nil, netdb.VnicTypeBaremetal, portID, true)
}

// TenantProvisioned reports whether any network or port references the
// tenant. Raw existence: no relevance filtering.
func (d *DB) TenantProvisioned(ctx context.Context, tenantID string) (bool, error) {
	var provisioned bool
	err := d.read(ctx, "checking tenant", func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&netdb.Network{}).Where("project_id = ?", tenantID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			provisioned = true
			return nil
		}
		if err := tx.Model(&netdb.Port{}).Where("project_id = ?", tenantID).Count(&count).Error; err != nil {
			return err
		}
		provisioned = count > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return provisioned, nil
}

// InstanceProvisioned reports whether any port references the device.
func (d *DB) InstanceProvisioned(ctx context.Context, deviceID string) (bool, error) {
	var provisioned bool
	err := d.read(ctx, "checking instance", func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&netdb.Port{}).Where("device_id = ?", deviceID).Count(&count).Error; err != nil {
			return err
		}
		provisioned = count > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return provisioned, nil
}

// PortProvisioned reports whether the port still exists.
func (d *DB) PortProvisioned(ctx context.Context, portID string) (bool, error) {
	var provisioned bool
	err := d.read(ctx, "checking port", func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&netdb.Port{}).Where("id = ?", portID).Count(&count).Error; err != nil {
			return err
		}
		provisioned = count > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return provisioned, nil
}

// GetPortBindingLevels returns binding levels matching the filter,
// ordered by level ascending (level 0 outermost).
func (d *DB) GetPortBindingLevels(ctx context.Context, filter BindingLevelFilter) ([]netdb.PortBindingLevel, error) {
	var levels []netdb.PortBindingLevel
	err := d.read(ctx, "listing binding levels", func(tx *gorm.DB) error {
		q := tx.Model(&netdb.PortBindingLevel{})
		if filter.PortID != "" {
			q = q.Where("port_id = ?", filter.PortID)
		}
		if filter.Host != "" {
			q = q.Where("host = ?", filter.Host)
		}
		if filter.Level != nil {
			q = q.Where("level = ?", *filter.Level)
		}
		return q.Order("level ASC").Find(&levels).Error
	})
	if err != nil {
		return nil, err
	}
	return levels, nil
}
