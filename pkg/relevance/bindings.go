// pkg/relevance/bindings.go

package relevance

import (
	"context"

	"gorm.io/gorm"

	"github.com/StrataNetworks/fabricsync/pkg/netdb"
)

type bindingHostKey struct {
	portID string
	host   string
}

// GetPortBindings returns relevant bindings from both the regular and the
// distributed binding tables, concatenated in that order with no ordering
// guarantee beyond it. A non-nil key narrows to one binding; a malformed
// key fails fast.
func (d *DB) GetPortBindings(ctx context.Context, key *BindingKey) ([]Binding, error) {
	if key != nil {
		if err := key.validate(); err != nil {
			return nil, err
		}
	}

	var bindings []Binding
	err := d.read(ctx, "listing port bindings", func(tx *gorm.DB) error {
		regular, err := d.queryBindings(tx, &netdb.PortBinding{}, tableBindings, key, false)
		if err != nil {
			return err
		}
		distributed, err := d.queryBindings(tx, &netdb.DistributedPortBinding{}, tableDistBindings, key, true)
		if err != nil {
			return err
		}
		bindings = append(regular, distributed...)
		return d.attachLevels(tx, bindings)
	})
	if err != nil {
		return nil, err
	}
	return bindings, nil
}

func (d *DB) queryBindings(tx *gorm.DB, model any, table string, key *BindingKey, distributed bool) ([]Binding, error) {
	q := NewBindingQuery(tx, model, table, d.policy())
	q.OuterJoinIfNecessary(tableBindingLevels,
		tableBindingLevels+".port_id = "+table+".port_id AND "+
			tableBindingLevels+".host = "+table+".host")
	q.FilterUnnecessaryPorts(nil, "", true)
	if key != nil {
		key.apply(q, table)
	}

	var rows []Binding
	err := q.Statement().
		Distinct(table+".port_id", table+".host", table+".vnic_type", table+".profile").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Distributed = distributed
	}
	return rows, nil
}

// attachLevels loads the ordered binding-level chain for each binding in
// one pass.
func (d *DB) attachLevels(tx *gorm.DB, bindings []Binding) error {
	if len(bindings) == 0 {
		return nil
	}
	portIDs := make([]string, 0, len(bindings))
	for _, b := range bindings {
		portIDs = append(portIDs, b.PortID)
	}
	var levels []netdb.PortBindingLevel
	err := tx.Model(&netdb.PortBindingLevel{}).
		Where("port_id IN ?", portIDs).
		Order("level ASC").
		Find(&levels).Error
	if err != nil {
		return err
	}
	byBinding := make(map[bindingHostKey][]netdb.PortBindingLevel, len(bindings))
	for _, level := range levels {
		k := bindingHostKey{portID: level.PortID, host: level.Host}
		byBinding[k] = append(byBinding[k], level)
	}
	for i := range bindings {
		bindings[i].Levels = byBinding[bindingHostKey{
			portID: bindings[i].PortID,
			host:   bindings[i].Host,
		}]
	}
	return nil
}
