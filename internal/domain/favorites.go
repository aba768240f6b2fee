package domain

import "time"

// FavoriteEntry is a full product snapshot kept in the favorites list so it
// remains renderable without a network read. Entries are unique by product ID.
type FavoriteEntry struct {
	Product Product   `json:"product"`
	AddedAt time.Time `json:"added_at"`
}

// Favorites holds the ordered collection of favorite entries.
type Favorites struct {
	Entries []FavoriteEntry `json:"entries"`
}

// Contains reports whether an entry exists for the given product ID.
func (f *Favorites) Contains(productID int64) bool {
	return f.Find(productID) >= 0
}

// Find returns the index of the entry for the given product ID, or -1.
func (f *Favorites) Find(productID int64) int {
	for i := range f.Entries {
		if f.Entries[i].Product.ID == productID {
			return i
		}
	}
	return -1
}
