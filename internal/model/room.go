package model

import "fmt"

// Room is a saved document: the cabinets of one design plus the run slabs
// joining them. Geometry is never stored; it is resolved on load.
type Room struct {
	Name       string    `json:"name" yaml:"name"`
	Settings   Settings  `json:"settings" yaml:"settings"`
	Cabinets   []Cabinet `json:"cabinets" yaml:"cabinets"`
	Benchtops  []Slab    `json:"benchtops" yaml:"benchtops"`
	Kickers    []Slab    `json:"kickers" yaml:"kickers"`
	Views      ViewSet   `json:"views" yaml:"views"`
	NextSlabID int       `json:"nextSlabId" yaml:"nextSlabId"`
}

func NewRoom(name string) Room {
	return Room{
		Name:       name,
		Settings:   DefaultSettings(),
		Cabinets:   []Cabinet{},
		Benchtops:  []Slab{},
		Kickers:    []Slab{},
		Views:      NewViewSet(),
		NextSlabID: 1,
	}
}

// FindCabinet returns a pointer to the cabinet with the given ID, or nil.
func (r *Room) FindCabinet(id string) *Cabinet {
	for i := range r.Cabinets {
		if r.Cabinets[i].ID == id {
			return &r.Cabinets[i]
		}
	}
	return nil
}

// AddCabinet appends a cabinet to the room.
func (r *Room) AddCabinet(c Cabinet) {
	r.Cabinets = append(r.Cabinets, c)
}

// RemoveCabinet removes a cabinet by ID and drops it from every view.
// Returns true if found and removed.
func (r *Room) RemoveCabinet(id string) bool {
	for i, c := range r.Cabinets {
		if c.ID == id {
			r.Cabinets = append(r.Cabinets[:i], r.Cabinets[i+1:]...)
			r.Views.Unassign(id)
			return true
		}
	}
	return false
}

// AddSlab stores a slab in the list for its category and assigns it the
// next free ID. The stored copy is returned.
func (r *Room) AddSlab(s Slab) Slab {
	if r.NextSlabID <= 0 {
		r.NextSlabID = r.maxSlabID() + 1
	}
	s.ID = r.NextSlabID
	r.NextSlabID++
	if s.Category == SlabKicker {
		r.Kickers = append(r.Kickers, s)
	} else {
		r.Benchtops = append(r.Benchtops, s)
	}
	return s
}

// Slabs returns the slabs with the given IDs in the given category, in
// first-seen order. Repeated IDs are dropped; unknown IDs are an error.
func (r *Room) Slabs(category SlabCategory, ids []int) ([]Slab, error) {
	pool := r.slabList(category)
	out := make([]Slab, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		found := false
		for _, s := range *pool {
			if s.ID == id {
				out = append(out, s)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("no %s with id %d", category, id)
		}
	}
	return out, nil
}

// ApplyMerge deletes the merge sources and stores the synthesized slab,
// which receives a fresh ID. The stored slab is returned.
func (r *Room) ApplyMerge(result MergeResult) Slab {
	pool := r.slabList(result.Slab.Category)
	drop := make(map[int]bool, len(result.Sources))
	for _, id := range result.Sources {
		drop[id] = true
	}
	kept := (*pool)[:0]
	for _, s := range *pool {
		if !drop[s.ID] {
			kept = append(kept, s)
		}
	}
	*pool = kept
	return r.AddSlab(result.Slab)
}

func (r *Room) slabList(category SlabCategory) *[]Slab {
	if category == SlabKicker {
		return &r.Kickers
	}
	return &r.Benchtops
}

func (r *Room) maxSlabID() int {
	max := 0
	for _, s := range append(append([]Slab{}, r.Benchtops...), r.Kickers...) {
		if s.ID > max {
			max = s.ID
		}
	}
	return max
}
