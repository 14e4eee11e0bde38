package domain

// Entity is the closed set of domain values the storage layer knows how to
// persist. The unexported marker keeps the set sealed; the storage context
// dispatches on the concrete kind instead of open-ended runtime typing.
type Entity interface {
	EntityKind() EntityKind
	sealedEntity()
}

// EntityKind identifies a persistable entity type. The numeric order is the
// insert order: parents carry lower ranks so foreign keys resolve before the
// rows that reference them.
type EntityKind int

const (
	KindStoreUser EntityKind = iota
	KindProduct
	KindOrder
	KindOrderItem
)

func (k EntityKind) String() string {
	switch k {
	case KindStoreUser:
		return "store_user"
	case KindProduct:
		return "product"
	case KindOrder:
		return "order"
	case KindOrderItem:
		return "order_item"
	default:
		return "unknown"
	}
}

func (*StoreUser) EntityKind() EntityKind { return KindStoreUser }
func (*Product) EntityKind() EntityKind   { return KindProduct }
func (*Order) EntityKind() EntityKind     { return KindOrder }
func (*OrderItem) EntityKind() EntityKind { return KindOrderItem }

func (*StoreUser) sealedEntity() {}
func (*Product) sealedEntity()   {}
func (*Order) sealedEntity()     {}
func (*OrderItem) sealedEntity() {}
