// pkg/relevance/query.go

package relevance

import (
	"strings"

	"gorm.io/gorm"

	"github.com/StrataNetworks/fabricsync/pkg/config"
	"github.com/StrataNetworks/fabricsync/pkg/netdb"
)

const (
	tablePorts         = "ports"
	tableSegments      = "network_segments"
	tableBindings      = "ml2_port_bindings"
	tableDistBindings  = "ml2_distributed_port_bindings"
	tableBindingLevels = "ml2_port_binding_levels"
)

// Query is the builder every predicate takes and returns. It wraps a gorm
// statement plus the set of tables already joined, so joining the same
// entity twice is a no-op and predicates stay freely composable.
type Query struct {
	tx      *gorm.DB
	policy  config.Policy
	portRef string
	joined  map[string]bool
}

// NewPortQuery starts a query with ports as the base entity.
func NewPortQuery(tx *gorm.DB, policy config.Policy) *Query {
	return &Query{
		tx:      tx.Model(&netdb.Port{}).Select("ports.*"),
		policy:  policy,
		portRef: "ports.id",
		joined:  map[string]bool{tablePorts: true},
	}
}

// NewSegmentQuery starts a query with segments as the base entity. Only
// FilterNetworkType applies here; the port predicates need a port base.
func NewSegmentQuery(tx *gorm.DB, policy config.Policy) *Query {
	return &Query{
		tx:     tx.Model(&netdb.Segment{}),
		policy: policy,
		joined: map[string]bool{tableSegments: true},
	}
}

// NewBindingQuery starts a query based on one of the two binding tables;
// portRef lets the port predicates join ports from either.
func NewBindingQuery(tx *gorm.DB, model any, table string, policy config.Policy) *Query {
	return &Query{
		tx:      tx.Model(model),
		policy:  policy,
		portRef: table + ".port_id",
		joined:  map[string]bool{table: true},
	}
}

// JoinIfNecessary inner-joins table on the given condition unless it is
// already part of the query (including being its base entity).
func (q *Query) JoinIfNecessary(table, on string) *Query {
	if q.joined[table] {
		return q
	}
	q.tx = q.tx.Joins("JOIN " + table + " ON " + on)
	q.joined[table] = true
	return q
}

// OuterJoinIfNecessary is JoinIfNecessary with a LEFT JOIN.
func (q *Query) OuterJoinIfNecessary(table, on string) *Query {
	if q.joined[table] {
		return q
	}
	q.tx = q.tx.Joins("LEFT JOIN " + table + " ON " + on)
	q.joined[table] = true
	return q
}

// Where narrows the statement; exposed so accessors can add id filters
// after predicate composition.
func (q *Query) Where(cond string, args ...any) *Query {
	q.tx = q.tx.Where(cond, args...)
	return q
}

// Statement hands the composed gorm statement back for materialisation.
func (q *Query) Statement() *gorm.DB { return q.tx }

func (q *Query) joinPorts() *Query {
	return q.JoinIfNecessary(tablePorts, "ports.id = "+q.portRef)
}

func (q *Query) joinBindingLevels() *Query {
	return q.JoinIfNecessary(tableBindingLevels,
		tableBindingLevels+".port_id = "+q.portRef)
}

func (q *Query) joinSegments() *Query {
	q.joinPorts()
	return q.JoinIfNecessary(tableSegments,
		tableSegments+".network_id = ports.network_id")
}

func (q *Query) outerJoinBindings() *Query {
	return q.OuterJoinIfNecessary(tableBindings,
		tableBindings+".port_id = "+q.portRef)
}

func (q *Query) outerJoinDistBindings() *Query {
	return q.OuterJoinIfNecessary(tableDistBindings,
		tableDistBindings+".port_id = "+q.portRef)
}

// FilterNetworkType keeps segments whose network type is in the supported
// set.
func (q *Query) FilterNetworkType() *Query {
	return q.Where("network_segments.network_type IN ?",
		q.policy.SupportedNetworkTypes)
}

// FilterUnboundPorts keeps ports bound to a host and associated with a
// device and a network.
func (q *Query) FilterUnboundPorts() *Query {
	q.joinPorts()
	q.joinBindingLevels()
	return q.
		Where(tableBindingLevels + ".host <> ''").
		Where("ports.device_id IS NOT NULL").
		Where("ports.network_id IS NOT NULL")
}

// FilterByDeviceOwner keeps ports whose device owner starts with one of
// the given prefixes (default: the supported-owner policy list). Globally
// unsupported prefixes are excluded no matter what was asked for.
func (q *Query) FilterByDeviceOwner(owners ...string) *Query {
	q.joinPorts()
	for _, owner := range q.policy.UnsupportedDeviceOwners {
		q.Where("lower(ports.device_owner) NOT LIKE ?", prefixPattern(owner))
	}
	if len(owners) == 0 {
		owners = q.policy.SupportedDeviceOwners
	}
	if len(owners) == 0 {
		return q
	}
	conds := make([]string, len(owners))
	args := make([]any, len(owners))
	for i, owner := range owners {
		conds[i] = "lower(ports.device_owner) LIKE ?"
		args[i] = prefixPattern(owner)
	}
	return q.Where("("+strings.Join(conds, " OR ")+")", args...)
}

// FilterByDeviceID excludes ports attached to reserved device ids, e.g.
// the unscheduled-DHCP placeholder.
func (q *Query) FilterByDeviceID() *Query {
	q.joinPorts()
	for _, id := range q.policy.UnsupportedDeviceIDs {
		q.Where("lower(ports.device_id) NOT LIKE ?", prefixPattern(id))
	}
	return q
}

// FilterByVnicType keeps ports whose vnic type matches via either the
// regular or the distributed binding.
func (q *Query) FilterByVnicType(vnicType string) *Query {
	q.outerJoinBindings()
	q.outerJoinDistBindings()
	return q.Where(
		"("+tableBindings+".vnic_type = ? OR "+tableDistBindings+".vnic_type = ?)",
		vnicType, vnicType)
}

// FilterUnmanagedPhysnets keeps ports bound to segments on managed
// physical networks. With no managed-physnets allowlist configured it is
// an identity.
func (q *Query) FilterUnmanagedPhysnets() *Query {
	if len(q.policy.ManagedPhysnets) == 0 {
		return q
	}
	q.joinSegments()
	return q.Where("network_segments.physical_network IN ?",
		q.policy.ManagedPhysnets)
}

// FilterInactivePorts keeps ports in ACTIVE status.
func (q *Query) FilterInactivePorts() *Query {
	q.joinPorts()
	return q.Where("ports.status = ?", netdb.PortStatusActive)
}

// FilterUnnecessaryPorts is the canonical relevance gate: everything not
// needed on the fabric controller is filtered out. All predicates are
// independent conjunctions, so ordering only affects join reuse.
func (q *Query) FilterUnnecessaryPorts(owners []string, vnicType string, activeOnly bool) *Query {
	q.FilterUnboundPorts().
		FilterByDeviceOwner(owners...).
		FilterByDeviceID().
		FilterUnmanagedPhysnets()
	if activeOnly {
		q.FilterInactivePorts()
	}
	if vnicType != "" {
		q.FilterByVnicType(vnicType)
	}
	return q
}

func prefixPattern(prefix string) string {
	return strings.ToLower(prefix) + "%"
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}
