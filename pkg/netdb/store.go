// pkg/netdb/store.go

package netdb

import (
	"context"

	cerr "github.com/cockroachdb/errors"
	"gorm.io/gorm"
)

// Store is the narrow read facade higher-level sync code consumes for
// plain (unfiltered) lookups: networks, subnets, ports and security
// groups. The handle is injected, not global, so tests can point it at
// an in-memory store. Store never writes.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open gorm handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AllNetworks(ctx context.Context) ([]Network, error) {
	var nets []Network
	if err := s.db.WithContext(ctx).Find(&nets).Error; err != nil {
		return nil, cerr.Wrap(err, "listing networks")
	}
	return nets, nil
}

func (s *Store) NetworksForTenant(ctx context.Context, tenantID string) ([]Network, error) {
	var nets []Network
	err := s.db.WithContext(ctx).
		Where("project_id = ?", tenantID).
		Find(&nets).Error
	if err != nil {
		return nil, cerr.Wrapf(err, "listing networks for tenant %s", tenantID)
	}
	return nets, nil
}

func (s *Store) PortsForTenant(ctx context.Context, tenantID string) ([]Port, error) {
	var ports []Port
	err := s.db.WithContext(ctx).
		Where("project_id = ?", tenantID).
		Find(&ports).Error
	if err != nil {
		return nil, cerr.Wrapf(err, "listing ports for tenant %s", tenantID)
	}
	return ports, nil
}

// NetworkByID returns the network or a zero Network if it doesn't exist.
func (s *Store) NetworkByID(ctx context.Context, networkID string) (Network, error) {
	var nets []Network
	err := s.db.WithContext(ctx).
		Where("id = ?", networkID).
		Limit(1).
		Find(&nets).Error
	if err != nil {
		return Network{}, cerr.Wrapf(err, "looking up network %s", networkID)
	}
	if len(nets) == 0 {
		return Network{}, nil
	}
	return nets[0], nil
}

// NetworkSegments returns the static or dynamic segments of a network.
func (s *Store) NetworkSegments(ctx context.Context, networkID string, dynamic bool) ([]Segment, error) {
	var segments []Segment
	err := s.db.WithContext(ctx).
		Where("network_id = ? AND is_dynamic = ?", networkID, dynamic).
		Find(&segments).Error
	if err != nil {
		return nil, cerr.Wrapf(err, "listing segments for network %s", networkID)
	}
	return segments, nil
}

// AllNetworkSegments returns static segments followed by dynamic ones.
func (s *Store) AllNetworkSegments(ctx context.Context, networkID string) ([]Segment, error) {
	static, err := s.NetworkSegments(ctx, networkID, false)
	if err != nil {
		return nil, err
	}
	dynamic, err := s.NetworkSegments(ctx, networkID, true)
	if err != nil {
		return nil, err
	}
	return append(static, dynamic...), nil
}

func (s *Store) SegmentByID(ctx context.Context, segmentID string) (Segment, error) {
	var segments []Segment
	err := s.db.WithContext(ctx).
		Where("id = ?", segmentID).
		Limit(1).
		Find(&segments).Error
	if err != nil {
		return Segment{}, cerr.Wrapf(err, "looking up segment %s", segmentID)
	}
	if len(segments) == 0 {
		return Segment{}, nil
	}
	return segments[0], nil
}

// SharedNetworkOwnerID returns the owning tenant of a shared VLAN network,
// or "" when the network is missing, unshared or not VLAN backed. Ports on
// such networks are provisioned under the owner's tenant on the fabric.
func (s *Store) SharedNetworkOwnerID(ctx context.Context, networkID string) (string, error) {
	net, err := s.NetworkByID(ctx, networkID)
	if err != nil {
		return "", err
	}
	if net.ID == "" || !net.Shared {
		return "", nil
	}
	segments, err := s.NetworkSegments(ctx, networkID, false)
	if err != nil {
		return "", err
	}
	if len(segments) == 0 || segments[0].NetworkType != NetworkTypeVLAN {
		return "", nil
	}
	return net.ProjectID, nil
}

func (s *Store) SubnetByID(ctx context.Context, subnetID string) (Subnet, error) {
	var subnets []Subnet
	err := s.db.WithContext(ctx).
		Where("id = ?", subnetID).
		Limit(1).
		Find(&subnets).Error
	if err != nil {
		return Subnet{}, cerr.Wrapf(err, "looking up subnet %s", subnetID)
	}
	if len(subnets) == 0 {
		return Subnet{}, nil
	}
	return subnets[0], nil
}

func (s *Store) SubnetCIDR(ctx context.Context, subnetID string) (string, error) {
	subnet, err := s.SubnetByID(ctx, subnetID)
	return subnet.CIDR, err
}

func (s *Store) SubnetGatewayIP(ctx context.Context, subnetID string) (string, error) {
	subnet, err := s.SubnetByID(ctx, subnetID)
	return subnet.GatewayIP, err
}

func (s *Store) SubnetIPVersion(ctx context.Context, subnetID string) (int, error) {
	subnet, err := s.SubnetByID(ctx, subnetID)
	return subnet.IPVersion, err
}

func (s *Store) NetworkIDFromSubnet(ctx context.Context, subnetID string) (string, error) {
	subnet, err := s.SubnetByID(ctx, subnetID)
	return subnet.NetworkID, err
}

func (s *Store) PortByID(ctx context.Context, portID string) (Port, error) {
	var ports []Port
	err := s.db.WithContext(ctx).
		Where("id = ?", portID).
		Limit(1).
		Find(&ports).Error
	if err != nil {
		return Port{}, cerr.Wrapf(err, "looking up port %s", portID)
	}
	if len(ports) == 0 {
		return Port{}, nil
	}
	return ports[0], nil
}

func (s *Store) NetworkIDFromPort(ctx context.Context, portID string) (string, error) {
	port, err := s.PortByID(ctx, portID)
	return port.NetworkID, err
}

// SecurityGroups returns all security groups keyed by id.
func (s *Store) SecurityGroups(ctx context.Context) (map[string]SecurityGroup, error) {
	var groups []SecurityGroup
	if err := s.db.WithContext(ctx).Find(&groups).Error; err != nil {
		return nil, cerr.Wrap(err, "listing security groups")
	}
	out := make(map[string]SecurityGroup, len(groups))
	for _, sg := range groups {
		out[sg.ID] = sg
	}
	return out, nil
}

func (s *Store) SecurityGroupByID(ctx context.Context, sgID string) (SecurityGroup, error) {
	var groups []SecurityGroup
	err := s.db.WithContext(ctx).
		Where("id = ?", sgID).
		Limit(1).
		Find(&groups).Error
	if err != nil {
		return SecurityGroup{}, cerr.Wrapf(err, "looking up security group %s", sgID)
	}
	if len(groups) == 0 {
		return SecurityGroup{}, nil
	}
	return groups[0], nil
}

func (s *Store) SecurityGroupRuleByID(ctx context.Context, ruleID string) (SecurityGroupRule, error) {
	var rules []SecurityGroupRule
	err := s.db.WithContext(ctx).
		Where("id = ?", ruleID).
		Limit(1).
		Find(&rules).Error
	if err != nil {
		return SecurityGroupRule{}, cerr.Wrapf(err, "looking up security group rule %s", ruleID)
	}
	if len(rules) == 0 {
		return SecurityGroupRule{}, nil
	}
	return rules[0], nil
}

// SecurityGroupPortBindings returns port/security-group associations,
// optionally narrowed to one security group.
func (s *Store) SecurityGroupPortBindings(ctx context.Context, sgID string) ([]SecurityGroupPortBinding, error) {
	q := s.db.WithContext(ctx)
	if sgID != "" {
		q = q.Where("security_group_id = ?", sgID)
	}
	var bindings []SecurityGroupPortBinding
	if err := q.Find(&bindings).Error; err != nil {
		return nil, cerr.Wrap(err, "listing security group port bindings")
	}
	return bindings, nil
}
