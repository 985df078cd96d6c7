package model

// CatalogueEntry describes one physical board before it is registered.
type CatalogueEntry struct {
	Location Location
	Size     Size
}

// DefaultCatalogue is the fixed set of boards around the ground, in
// board-number order.
func DefaultCatalogue() []CatalogueEntry {
	var out []CatalogueEntry
	add := func(loc Location, size Size, n int) {
		for i := 0; i < n; i++ {
			out = append(out, CatalogueEntry{Location: loc, Size: size})
		}
	}
	add(LocationMainStand, SizeLarge, 6)
	add(LocationFarSide, SizeStandard, 6)
	add(LocationHomeEnd, SizeStandard, 3)
	add(LocationAwayEnd, SizeSmall, 3)
	add(LocationClubhouse, SizeSmall, 2)
	return out
}
