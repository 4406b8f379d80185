package engagement

import (
	"fmt"

	"github.com/moneyquest/moneyquest/internal/domain"
)

// Shop owns the shop items. Each item can be bought once, and only when the
// balance covers its price.
type Shop struct {
	items     []domain.ShopItem
	index     map[int]int
	ledger    *Ledger
	purchases int64
}

// NewShop copies seed and wires the shop to ledger.
func NewShop(seed []domain.ShopItem, ledger *Ledger) *Shop {
	s := &Shop{
		items:  make([]domain.ShopItem, len(seed)),
		index:  make(map[int]int, len(seed)),
		ledger: ledger,
	}
	copy(s.items, seed)
	for i, it := range s.items {
		s.index[it.ID] = i
		if it.Purchased {
			s.purchases++
		}
	}
	return s
}

// Purchase buys an item. Unknown, already purchased or unaffordable items are a no-op.
func (s *Shop) Purchase(id int) (Outcome, *domain.Notification) {
	i, ok := s.index[id]
	if !ok {
		return noop(ReasonNotFound, s.ledger.Balance()), nil
	}
	it := s.items[i]
	if it.Purchased {
		return noop(ReasonAlreadyPurchased, s.ledger.Balance()), nil
	}
	// Debit re-checks the balance under the ledger lock, so a lost race
	// still cannot take the balance below zero.
	if !s.ledger.Debit(it.Price, domain.TxPurchase, fmt.Sprintf("item:%d", it.ID)) {
		return noop(ReasonInsufficientFunds, s.ledger.Balance()), nil
	}

	it.Purchased = true
	s.items[i] = it
	s.purchases++

	n := purchaseMade(it)
	return Outcome{Applied: true, Reason: ReasonPurchased, Delta: -it.Price, Balance: s.ledger.Balance()}, &n
}

// PurchaseCount returns how many items have been bought.
func (s *Shop) PurchaseCount() int64 { return s.purchases }

// Get returns the item with the given id.
func (s *Shop) Get(id int) (domain.ShopItem, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.ShopItem{}, false
	}
	return s.items[i], true
}

// List returns a copy of all items in seed order.
func (s *Shop) List() []domain.ShopItem {
	out := make([]domain.ShopItem, len(s.items))
	copy(out, s.items)
	return out
}
