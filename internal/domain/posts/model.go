package posts

import (
	"sort"
	"time"
)

// LikeSet es el conjunto de ids de mascotas que dieron like. Sin orden,
// sin duplicados por construcción. Los ids son referencias débiles: si
// la mascota se borra después, el id puede quedar colgando y cuenta
// igual hasta que un toggle lo quite.
type LikeSet map[string]struct{}

func NewLikeSet(ids ...string) LikeSet {
	s := make(LikeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s LikeSet) Contains(petID string) bool {
	_, ok := s[petID]
	return ok
}

func (s LikeSet) Add(petID string) {
	s[petID] = struct{}{}
}

func (s LikeSet) Remove(petID string) {
	delete(s, petID)
}

func (s LikeSet) Count() int {
	return len(s)
}

// IDs devuelve los elementos ordenados, solo para serializar establemente.
func (s LikeSet) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clone copia el set para no compartir estado mutable entre lecturas.
func (s LikeSet) Clone() LikeSet {
	c := make(LikeSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Post es una actualización con foto de una mascota. Nace con el like
// set vacío; los likes solo mutan vía Service.ToggleLike.
type Post struct {
	ID    string
	PetID string

	ImageData []byte
	Likes     LikeSet

	CreatedAt time.Time
}

// LikeCount siempre es la cardinalidad del set, nunca un contador aparte.
func (p Post) LikeCount() int {
	return p.Likes.Count()
}

func (p Post) IsLikedBy(petID string) bool {
	return p.Likes.Contains(petID)
}
