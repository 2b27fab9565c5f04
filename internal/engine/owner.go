package engine

import (
	"jnovak/budget-categorizer/internal/accounts"
	"jnovak/budget-categorizer/internal/models"
)

// ResolveOwner maps a transaction to its owner. Precedence: exact account
// match in the owner map, then a match with routing suffixes stripped, then
// the owner already on the transaction, then the configured default.
func ResolveOwner(owners map[string]string, txn *models.Transaction, defaultOwner string) string {
	account := accounts.Normalize(txn.Account)
	if account != "" {
		if owner, ok := owners[account]; ok && owner != "" {
			return owner
		}
		for mapped, owner := range owners {
			if owner != "" && accounts.Same(account, mapped) {
				return owner
			}
		}
	}

	if txn.Owner != "" {
		return txn.Owner
	}
	if defaultOwner != "" {
		return defaultOwner
	}
	return "Unknown"
}
