package domain

// Store is owned by exactly one owner account.
type Store struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

// Menu is a sellable item of a store. Price is in points.
type Menu struct {
	ID      int64  `json:"id"`
	StoreID int64  `json:"store_id"`
	Name    string `json:"name"`
	Price   int64  `json:"price"`
}
