package fruit

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrUnknownFruit is returned for identifiers that are not registered.
	ErrUnknownFruit = errors.New("unknown fruit")

	// ErrDuplicate is returned when an identifier is registered twice.
	ErrDuplicate = errors.New("fruit already registered")

	// ErrNegativeWeight is returned by Validate for a negative spawn weight.
	ErrNegativeWeight = errors.New("negative spawn weight")

	// ErrInvalidConfig is returned by Validate for other bad values.
	ErrInvalidConfig = errors.New("invalid fruit config")
)

// Registry holds one behavior per identifier and an index by category.
// Category lists keep registration order so selection is reproducible.
type Registry struct {
	behaviors  map[string]Behavior
	byCategory map[Category][]string
	order      []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		behaviors:  make(map[string]Behavior),
		byCategory: make(map[Category][]string),
	}
}

// Register adds a behavior under its configured identifier.
func (r *Registry) Register(b Behavior) error {
	cfg := b.Config()
	if cfg.ID == "" {
		return fmt.Errorf("fruit: empty id: %w", ErrInvalidConfig)
	}
	if _, exists := r.behaviors[cfg.ID]; exists {
		return fmt.Errorf("fruit: %q: %w", cfg.ID, ErrDuplicate)
	}

	r.behaviors[cfg.ID] = b
	r.byCategory[cfg.Category] = append(r.byCategory[cfg.Category], cfg.ID)
	r.order = append(r.order, cfg.ID)
	return nil
}

// MustRegister is Register that panics, for static registration.
func (r *Registry) MustRegister(bs ...Behavior) {
	for _, b := range bs {
		if err := r.Register(b); err != nil {
			panic(err)
		}
	}
}

// Get returns the behavior for id.
func (r *Registry) Get(id string) (Behavior, bool) {
	b, ok := r.behaviors[id]
	return b, ok
}

// Config returns the configuration for id.
func (r *Registry) Config(id string) (Config, bool) {
	b, ok := r.behaviors[id]
	if !ok {
		return Config{}, false
	}
	return b.Config(), true
}

// IDs returns every identifier in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ByCategory returns the identifiers of one category in registration order.
func (r *Registry) ByCategory(c Category) []string {
	ids := r.byCategory[c]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Tune replaces the configuration of a registered behavior. Category and
// identifier are fixed.
func (r *Registry) Tune(id string, fn func(*Config)) error {
	b, ok := r.behaviors[id]
	if !ok {
		return fmt.Errorf("fruit: %q: %w", id, ErrUnknownFruit)
	}
	cfg := b.Config()
	fn(&cfg)
	cfg.ID = id
	cfg.Category = b.Config().Category

	if t, ok := b.(tuned); ok {
		b = t.Behavior
	}
	r.behaviors[id] = tuned{Behavior: b, cfg: cfg}
	return nil
}

// Validate checks every registered configuration.
func (r *Registry) Validate() error {
	var errs []error
	for _, id := range r.order {
		cfg := r.behaviors[id].Config()
		if cfg.Weight < 0 {
			errs = append(errs, fmt.Errorf("fruit: %q weight %d: %w", id, cfg.Weight, ErrNegativeWeight))
		}
		if cfg.Growth < 0 {
			errs = append(errs, fmt.Errorf("fruit: %q growth %d: %w", id, cfg.Growth, ErrInvalidConfig))
		}
		if cfg.Unlock < 0 {
			errs = append(errs, fmt.Errorf("fruit: %q unlock %d: %w", id, cfg.Unlock, ErrInvalidConfig))
		}
		if cfg.Lifetime < 0 {
			errs = append(errs, fmt.Errorf("fruit: %q lifetime %v: %w", id, cfg.Lifetime, ErrInvalidConfig))
		}
	}
	return errors.Join(errs...)
}

type candidate struct {
	id     string
	weight int
}

func (r *Registry) candidates(c Category, length int) ([]candidate, int) {
	var (
		out   []candidate
		total int
	)
	for _, id := range r.byCategory[c] {
		cfg := r.behaviors[id].Config()
		if !cfg.Unlocked(length) {
			continue
		}
		w := cfg.EffectiveWeight(length)
		out = append(out, candidate{id: id, weight: w})
		total += w
	}
	return out, total
}

// TotalWeight returns the summed effective weight of the eligible entries.
func (r *Registry) TotalWeight(c Category, length int) int {
	_, total := r.candidates(c, length)
	return total
}

// Select walks the eligible entries with a draw in [0, TotalWeight).
func (r *Registry) Select(c Category, length, draw int) (string, bool) {
	cands, total := r.candidates(c, length)
	if len(cands) == 0 || total <= 0 {
		return "", false
	}
	for _, cd := range cands {
		if draw < cd.weight {
			return cd.id, true
		}
		draw -= cd.weight
	}
	return cands[len(cands)-1].id, true
}

// RandomByCategory picks an eligible identifier of the category, weighted
// by effective weight at the given snake length.
func (r *Registry) RandomByCategory(c Category, length int, rng *rand.Rand) (string, bool) {
	total := r.TotalWeight(c, length)
	if total <= 0 {
		return "", false
	}
	return r.Select(c, length, rng.Intn(total))
}
