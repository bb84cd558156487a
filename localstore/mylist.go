package localstore

import (
	"encoding/json"
	"sync"
)

// MediaType disambiguates catalog items: the same numeric id can name
// both a movie and a series, so identity is always the (id, mediaType)
// pair. The type is explicit rather than inferred from payload shape.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

type MyListItem struct {
	ID           int       `json:"id"`
	MediaType    MediaType `json:"mediaType"`
	Title        string    `json:"title"`
	BackdropPath string    `json:"backdrop_path"`
	PosterPath   string    `json:"poster_path,omitempty"`
}

// MyList holds the user's favorited catalog items. Each (id, mediaType)
// pair appears at most once; every mutation re-persists the whole list.
type MyList struct {
	mu    sync.Mutex
	store *Store
	items []MyListItem
}

// NewMyList loads the persisted list. A missing or malformed blob
// yields an empty list.
func NewMyList(store *Store) *MyList {
	l := &MyList{store: store}
	if raw, ok := store.Get(KeyMyList); ok {
		var items []MyListItem
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			l.items = items
		}
	}
	return l
}

func (l *MyList) indexOf(id int, mediaType MediaType) int {
	for i, item := range l.items {
		if item.ID == id && item.MediaType == mediaType {
			return i
		}
	}
	return -1
}

func (l *MyList) persist() error {
	raw, err := json.Marshal(l.items)
	if err != nil {
		return err
	}
	return l.store.Set(KeyMyList, string(raw))
}

// Toggle removes the item if present, appends it otherwise, and
// persists the result. Reports whether the item ended up in the list.
func (l *MyList) Toggle(item MyListItem) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	added := false
	if i := l.indexOf(item.ID, item.MediaType); i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
	} else {
		l.items = append(l.items, item)
		added = true
	}

	return added, l.persist()
}

// Add appends the item unless its (id, mediaType) pair is already present.
func (l *MyList) Add(item MyListItem) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(item.ID, item.MediaType) >= 0 {
		return nil
	}
	l.items = append(l.items, item)
	return l.persist()
}

// Remove deletes the item with the given identity, if present.
func (l *MyList) Remove(id int, mediaType MediaType) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexOf(id, mediaType)
	if i < 0 {
		return nil
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return l.persist()
}

// Contains reports whether the (id, mediaType) pair is in the list.
func (l *MyList) Contains(id int, mediaType MediaType) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.indexOf(id, mediaType) >= 0
}

// Items returns a copy of the current list in insertion order.
func (l *MyList) Items() []MyListItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]MyListItem, len(l.items))
	copy(out, l.items)
	return out
}
