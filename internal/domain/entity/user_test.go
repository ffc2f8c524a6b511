package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func TestCan(t *testing.T) {
	cases := []struct {
		role   string
		action entity.Action
		want   bool
	}{
		{entity.RoleAdmin, entity.ActionCreateItem, true},
		{entity.RoleInventoryManager, entity.ActionCreateItem, false},
		{entity.RoleInventoryManager, entity.ActionUpdateStock, true},
		{entity.RoleAuditor, entity.ActionUpdateStock, false},
		{entity.RoleAuditor, entity.ActionVerifyChain, true},
		{entity.RoleViewer, entity.ActionViewLedger, false},
		{entity.RoleViewer, entity.ActionViewDashboard, true},
		{entity.RoleAuditor, entity.ActionClearLedger, false},
		{"root", entity.ActionViewDashboard, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, entity.Can(c.role, c.action), "%s / %s", c.role, c.action)
	}
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, entity.ActionCreateItem, entity.ActionFor(entity.TxCreateItem))
	assert.Equal(t, entity.ActionUpdateStock, entity.ActionFor(entity.TxMove))
	assert.Equal(t, entity.ActionUpdateStock, entity.ActionFor(entity.TxStockOut))
}
