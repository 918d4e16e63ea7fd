package memory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/mekparts/pkg/domain/entities"
	"github.com/vsinha/mekparts/pkg/domain/repositories"
)

// Warehouse provides in-memory spare part storage indexed by type key
type Warehouse struct {
	mutex sync.RWMutex
	order []uuid.UUID
	parts map[uuid.UUID]*entities.Part
	byKey map[entities.TypeKey][]*entities.Part
}

// NewWarehouse creates a new in-memory warehouse
func NewWarehouse() *Warehouse {
	return &Warehouse{
		parts: make(map[uuid.UUID]*entities.Part),
		byKey: make(map[entities.TypeKey][]*entities.Part),
	}
}

// Verify interface compliance
var _ repositories.Warehouse = (*Warehouse)(nil)

// LoadParts loads spare records into the warehouse
func (w *Warehouse) LoadParts(parts []*entities.Part) error {
	for _, p := range parts {
		if _, err := w.AddPart(p); err != nil {
			return err
		}
	}
	return nil
}

// CheckForExistingSparePart returns the stack p would merge into
func (w *Warehouse) CheckForExistingSparePart(p *entities.Part) (*entities.Part, bool) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.existing(p)
}

func (w *Warehouse) existing(p *entities.Part) (*entities.Part, bool) {
	if !p.Kind.IsFungible() {
		return nil, false
	}
	for _, spare := range w.byKey[p.Key()] {
		if spare.ID != p.ID && entities.IsSameStatus(spare, p) {
			return spare, true
		}
	}
	return nil, false
}

// FindReplacement returns the best acceptable spare without consuming it
func (w *Warehouse) FindReplacement(missing *entities.Part, refit bool) (*entities.Part, bool) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.best(missing, refit)
}

// best prefers undamaged spares, then spares built for the exact slot, then
// the least damaged, then the oldest
func (w *Warehouse) best(missing *entities.Part, refit bool) (*entities.Part, bool) {
	var (
		found *entities.Part
		score int
	)
	for _, spare := range w.byKey[missing.Key()] {
		if !entities.IsAcceptableReplacement(missing, spare, refit) {
			continue
		}
		s := spare.Hits() * 4
		if spare.Hits() > 0 {
			s += 1000
		}
		if !exactSlot(missing, spare) {
			s += 100
		}
		if found == nil || s < score {
			found, score = spare, s
		}
	}
	return found, found != nil
}

func exactSlot(missing, spare *entities.Part) bool {
	return spare.MainLocation() == missing.MainLocation() &&
		spare.Subtype == missing.Subtype &&
		spare.Rear == missing.Rear
}

// TakeReplacement consumes one unit of the best acceptable spare
func (w *Warehouse) TakeReplacement(missing *entities.Part, refit bool) (*entities.Part, bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	spare, ok := w.best(missing, refit)
	if !ok {
		return nil, false
	}
	if spare.Quantity() > 1 {
		spare.SetQuantity(spare.Quantity() - 1)
		taken := spare.Clone()
		return taken, true
	}
	w.remove(spare)
	return spare, true
}

// AddPart stores an uninstalled record, merging it into a matching stack
func (w *Warehouse) AddPart(p *entities.Part) (*entities.Part, error) {
	if p.IsInstalled() {
		return nil, fmt.Errorf("part %s is installed and cannot be stored", p.ID)
	}
	if p.IsMissing() {
		return nil, fmt.Errorf("missing part %s cannot be stored", p.ID)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, exists := w.parts[p.ID]; exists {
		return nil, fmt.Errorf("part %s is already stored", p.ID)
	}
	if stack, ok := w.existing(p); ok {
		stack.SetQuantity(stack.Quantity() + p.Quantity())
		return stack, nil
	}

	key := p.Key()
	w.order = append(w.order, p.ID)
	w.parts[p.ID] = p
	w.byKey[key] = append(w.byKey[key], p)
	return p, nil
}

// RemovePart deletes a stored record outright
func (w *Warehouse) RemovePart(p *entities.Part) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if _, ok := w.parts[p.ID]; !ok {
		return fmt.Errorf("part %s is not in the warehouse", p.ID)
	}
	w.remove(p)
	return nil
}

func (w *Warehouse) remove(p *entities.Part) {
	delete(w.parts, p.ID)
	if i := slices.Index(w.order, p.ID); i >= 0 {
		w.order = slices.Delete(w.order, i, i+1)
	}
	key := p.Key()
	stack := w.byKey[key]
	if i := slices.Index(stack, p); i >= 0 {
		stack = slices.Delete(stack, i, i+1)
	}
	if len(stack) == 0 {
		delete(w.byKey, key)
	} else {
		w.byKey[key] = stack
	}
}

// Take consumes up to n units from undamaged records of the template's type,
// oldest first
func (w *Warehouse) Take(template *entities.Part, n int) int {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	taken := 0
	for _, spare := range slices.Clone(w.byKey[template.Key()]) {
		if taken >= n {
			break
		}
		if !spare.IsPresent() || spare.Hits() > 0 {
			continue
		}
		need := n - taken
		if q := spare.Quantity(); q <= need {
			taken += q
			w.remove(spare)
		} else {
			spare.SetQuantity(q - need)
			taken += need
		}
	}
	return taken
}

// Get returns a stored record by ID
func (w *Warehouse) Get(id uuid.UUID) (*entities.Part, bool) {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	p, ok := w.parts[id]
	return p, ok
}

// Parts returns stored records in insertion order
func (w *Warehouse) Parts() []*entities.Part {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	parts := make([]*entities.Part, 0, len(w.order))
	for _, id := range w.order {
		parts = append(parts, w.parts[id])
	}
	return parts
}

// Count returns the total quantity of undamaged spares of the template's type
func (w *Warehouse) Count(template *entities.Part) int {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	total := 0
	for _, spare := range w.byKey[template.Key()] {
		if spare.Hits() == 0 {
			total += spare.Quantity()
		}
	}
	return total
}

// TotalValue returns the summed value of every stored record
func (w *Warehouse) TotalValue() decimal.Decimal {
	w.mutex.RLock()
	defer w.mutex.RUnlock()

	total := decimal.Zero
	for _, p := range w.parts {
		total = total.Add(p.Value())
	}
	return total
}
