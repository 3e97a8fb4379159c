package repositories

import (
	"fmt"

	"securities/src/models"
	"securities/src/utils"

	"gorm.io/gorm"
)

// integrity applies the relationship rules declared by the schema: parent
// existence checks before a child row is written, and recursive cascade
// removal when a parent row is deleted. All work happens inside the caller's
// transaction, so one delete request's closure is all-or-nothing.
type integrity struct {
	schema *models.Schema
}

func newIntegrity(schema *models.Schema) *integrity {
	return &integrity{schema: schema}
}

// deleteCascade removes every row of table matching the where clause together
// with the full closure of child rows beneath them. Children are removed
// before their parents, grandchildren are reached through nested subselects
// so each level is a single set-based statement.
func (i *integrity) deleteCascade(tx *gorm.DB, table string, where string, args ...interface{}) error {
	for _, edge := range i.schema.ChildrenOf(table) {
		childWhere := fmt.Sprintf("%s IN (SELECT id FROM %s WHERE %s)", edge.ForeignKey, table, where)
		if err := i.deleteCascade(tx, edge.ChildTable, childWhere, args...); err != nil {
			return err
		}
	}
	if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s", table, where), args...).Error; err != nil {
		return utils.NewStorageError("cascade delete from "+table, err)
	}
	return nil
}

// requireParent verifies that the parent row referenced by a child write
// exists. A missing parent is the caller's error, not a storage failure.
func (i *integrity) requireParent(tx *gorm.DB, childTable string, parentID uint) error {
	edge, ok := i.schema.ParentOf(childTable)
	if !ok {
		return nil
	}

	var count int64
	if err := tx.Table(edge.ParentTable).Where("id = ?", parentID).Count(&count).Error; err != nil {
		return utils.NewStorageError("parent lookup in "+edge.ParentTable, err)
	}
	if count == 0 {
		return utils.NewReferentialError(edge.Parent, edge.ForeignKey, parentID)
	}
	return nil
}
