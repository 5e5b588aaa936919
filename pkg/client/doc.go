// Package client is a Go client for the fundex HTTP API.
//
//	c, _ := client.New("http://localhost:3000")
//	funds, _ := c.List(ctx, client.ListQuery{Currency: "USD", SortBy: "vintage", SortDir: "desc"})
//	f, _ := c.Update(ctx, funds[0].ID, client.Patch{}.SetVintage(2021))
//	_ = c.Delete(ctx, f.ID)
//
// # Autosave
//
// An Autosaver coalesces rapid edits into a single update once the user
// stops typing:
//
//	saver := c.Autosaver(id, client.WithDelay(650*time.Millisecond))
//	saver.Mark(client.Patch{}.SetName("Alpha II"))
//	saver.Mark(client.Patch{}.SetDescription("mid-market buyout"))
//	f, err := saver.Flush(ctx)
//
// Errors returned by the client match ErrNotFound, ErrValidation and
// ErrRateLimited with errors.Is.
package client
