package keystone

import (
	"time"

	"github.com/jhoicas/rentas-dashboard/internal/domain/entity"
)

// Row una fila del LEFT JOIN Mall → Store → Payment.
// Los punteros nulos indican que el mall no tiene stores o el store no tiene pagos.
type Row struct {
	MallID      string
	MallName    string
	StoreID     *string
	StoreName   *string
	RentAmount  float64
	PaymentID   *string
	Amount      float64
	PaymentDate time.Time
}

// Builder arma el árbol de malls preservando el orden de aparición de las filas.
type Builder struct {
	malls  []entity.Mall
	malIdx map[string]int
	stIdx  map[string]int // clave mallID + "/" + storeID
}

// NewBuilder construye un Builder vacío.
func NewBuilder() *Builder {
	return &Builder{malIdx: map[string]int{}, stIdx: map[string]int{}}
}

// Add incorpora una fila.
func (b *Builder) Add(r Row) {
	mi, ok := b.malIdx[r.MallID]
	if !ok {
		mi = len(b.malls)
		b.malIdx[r.MallID] = mi
		b.malls = append(b.malls, entity.Mall{ID: r.MallID, Name: r.MallName, Stores: []entity.Store{}})
	}
	if r.StoreID == nil {
		return
	}

	key := r.MallID + "/" + *r.StoreID
	si, ok := b.stIdx[key]
	if !ok {
		st := entity.Store{ID: *r.StoreID, RentAmount: r.RentAmount, Payments: []entity.Payment{}}
		if r.StoreName != nil {
			st.Name = *r.StoreName
		}
		si = len(b.malls[mi].Stores)
		b.stIdx[key] = si
		b.malls[mi].Stores = append(b.malls[mi].Stores, st)
	}
	if r.PaymentID == nil {
		return
	}

	store := &b.malls[mi].Stores[si]
	store.Payments = append(store.Payments, entity.Payment{
		ID:          *r.PaymentID,
		Amount:      r.Amount,
		PaymentDate: r.PaymentDate,
	})
}

// Malls devuelve el resultado; nunca nil.
func (b *Builder) Malls() []entity.Mall {
	if b.malls == nil {
		return []entity.Mall{}
	}
	return b.malls
}
