// Package cta emulates cooperative thread arrays ("tiles") on goroutines.
//
// A tile is a fixed-width group of NT lanes that execute the same program and
// meet at group-wide barriers. Each lane owns VT items of work, so a tile covers
// NV = NT*VT items. Tiles never share state: everything a tile needs besides
// its read-only inputs lives in a tile-scoped shared value created once per
// tile by the launcher.
//
// Basic usage:
//
//	grid, err := cta.NewGrid(cta.Params{NT: 128, VT: 7})
//	if err != nil {
//	    return err
//	}
//	cta.Launch(grid, numTiles,
//	    func(tile int) *[]int { s := make([]int, grid.Params().NV()); return &s },
//	    func(l *cta.Lane, shared *[]int) {
//	        // write phase
//	        l.Sync()
//	        // read phase
//	    })
//
// Access to shared state follows a write, barrier, read discipline. Every lane
// of a tile must execute the same number of Sync calls; a lane that returns
// early would leave the others blocked.
package cta
