package gallery

// Tile is what the grid needs to draw one item. Index is the position in the
// filtered view and is the value passed to Viewer.Open on click.
type Tile struct {
	Source   string
	Title    string
	Category string
	Kind     Kind
	Index    int
}

// Caption is the second overlay line: the category for images, "Video" for videos.
func (t Tile) Caption() string {
	if t.Kind == KindVideo {
		return "Video"
	}
	return t.Category
}

// BuildTiles projects a view into tiles, one per item, in view order.
func BuildTiles(view []MediaItem) []Tile {
	tiles := make([]Tile, len(view))
	for i, item := range view {
		tiles[i] = Tile{
			Source:   item.Source,
			Title:    item.Title,
			Category: item.Category,
			Kind:     item.Kind,
			Index:    i,
		}
	}
	return tiles
}

// Grid turns tiles into display nodes of type N. Rendering is a full rebuild,
// so calling Render several times in a row is safe.
type Grid[N any] struct {
	// Build creates the node for tile. open must be wired to the node's click.
	Build func(tile Tile, open func()) N
	// AfterRender, when set, receives the nodes created by the last Render.
	AfterRender func(tiles []Tile, nodes []N)
}

// Render rebuilds every node for view. Clicking a node calls open with its
// tile index.
func (g *Grid[N]) Render(view []MediaItem, open func(index int)) []N {
	tiles := BuildTiles(view)
	nodes := make([]N, len(tiles))
	for i, tile := range tiles {
		idx := tile.Index
		nodes[i] = g.Build(tile, func() { open(idx) })
	}
	if g.AfterRender != nil {
		g.AfterRender(tiles, nodes)
	}
	return nodes
}
