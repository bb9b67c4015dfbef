// Package view keeps a rendered table overlay in sync with the document.
//
// A View owns the presentation of one table: the class and style
// attributes of the table element and every cell, and a grip overlay with
// one selection grip per column, one per row and a corner control. The
// host supplies three collaborators:
//
//   - Surface receives rendered attributes.
//   - GripRenderer receives grip counts and geometry.
//   - LayoutHost measures the rendered table after the next layout pass.
//
// Each Update re-renders everything. Grip counts change immediately, while
// geometry waits for AfterNextFrame; a frame scheduled before a later
// Update is dropped. Without a layout host, or when measurement fails,
// grips are sized proportionally (100/width % per column).
//
// Manager maps table ids to views and implements editor.Observer:
//
//	views := view.NewManager(func(id string) (view.Surface, view.GripRenderer) {
//	    r := view.NewRecorder()
//	    return r, r
//	}, nil, view.WithSelectHandler(ed.SelectInTable))
//	ed.AddObserver(views)
package view
