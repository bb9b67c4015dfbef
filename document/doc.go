// Package document provides an in-memory document host for the table
// editor.
//
// A document is a sequence of top-level blocks: tables and opaque raw
// markup. Positions follow the table node sizes of package model; a raw
// block occupies two positions plus one per rune of its markup. Position 0
// lies before the first block and Size() after the last.
//
// Document implements editor.Host and editor.TableLocator:
//
//	doc, warnings, err := document.Open("page.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ed := editor.New(doc)
//	pos, _ := doc.TablePos(0)
//	ed.SetCursor(pos + 2)
//	ed.AddRowAfter()
package document
