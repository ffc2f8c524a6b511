package entity

// Roles válidos (claim "role" del token).
const (
	RoleAdmin            = "admin"
	RoleInventoryManager = "inventory_manager"
	RoleAuditor          = "auditor"
	RoleViewer           = "viewer"
)

// Action acción protegida por permisos.
type Action string

const (
	ActionViewDashboard   Action = "VIEW_DASHBOARD"
	ActionViewProducts    Action = "VIEW_PRODUCTS"
	ActionViewItemHistory Action = "VIEW_ITEM_HISTORY"
	ActionCreateItem      Action = "CREATE_ITEM"
	ActionUpdateStock     Action = "UPDATE_STOCK" // entrada, salida y traslado
	ActionViewLedger      Action = "VIEW_LEDGER"
	ActionVerifyChain     Action = "VERIFY_CHAIN"
	ActionClearLedger     Action = "CLEAR_LEDGER"
)

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleInventoryManager, RoleAuditor, RoleViewer:
		return true
	}
	return false
}

// Can indica si role puede ejecutar action. Roles desconocidos no pueden nada.
func Can(role string, action Action) bool {
	if !IsValidRole(role) {
		return false
	}
	switch action {
	case ActionViewDashboard, ActionViewProducts, ActionViewItemHistory:
		return true
	case ActionCreateItem, ActionClearLedger:
		return role == RoleAdmin
	case ActionUpdateStock:
		return role == RoleAdmin || role == RoleInventoryManager
	case ActionViewLedger, ActionVerifyChain:
		return role == RoleAdmin || role == RoleAuditor
	}
	return false
}

// ActionFor acción requerida para proponer una transacción del tipo kind.
func ActionFor(kind TxType) Action {
	if kind == TxCreateItem {
		return ActionCreateItem
	}
	return ActionUpdateStock
}
