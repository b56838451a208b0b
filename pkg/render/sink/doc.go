// Package sink provides [render.Canvas] backends that produce files.
//
// [Bitmap] rasterizes with fogleman/gg and encodes PNG. [SVG] records path
// commands and text and serializes them with ajstarks/svgo. Both follow the
// canvas model used by [render.Draw]: a current path, painted by Stroke or
// Fill without being consumed, and separate stroke and fill colors.
//
//	bm := sink.NewBitmap(800, 600, sink.WithScale(2))
//	render.Clear(bm, scene, theme)
//	render.Draw(bm, scene, theme)
//	err := bm.EncodePNG(w)
package sink
