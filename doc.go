/*
Package gridimg overlays a configurable grid on an image.

A grid is n×n cells (1 to 10) drawn in a chosen color and line width, with
an optional diagonal through every cell and optional cell numbers (1..n²,
row-major). Two fit modes decide how the output canvas is sized:

  - Stretch keeps the image's natural size and stretches the cells to it;
    only the inner lines are drawn. Without an image a 300×300 canvas is used.
  - Contain scales the image into a container keeping its aspect ratio and
    centers a square grid on it, including its border lines.

Main features:

  - Pure geometry (ComputeGeometry) separated from rasterization (Render)
  - Observable parameter store with clamping of out of range values
  - Background decoding with stale results dropped (last request wins)
  - PNG export and print jobs (lp spooling or a self-printing HTML page)
  - Terminal preview (pkg/preview) and an interactive front end (cmd/gridimg)

Basic Usage:

	session := gridimg.NewSession(gridimg.NewStore(gridimg.DefaultParams()), gridimg.Bounds{Width: 800, Height: 600})
	defer session.Close()

	if res := <-session.OpenFile("photo.jpg"); res.Err != nil {
	    log.Fatal(res.Err)
	}

	session.Store().SetGridSize(6)
	session.Store().SetShowNumbers(true)

	path, err := gridimg.SavePNG(session.Surface(), ".")
	if err != nil {
	    log.Fatal(err)
	}

Rendering directly:

	img, err := gridimg.OpenFile("photo.jpg")
	if err != nil {
	    log.Fatal(err)
	}
	surface := gridimg.NewSurface()
	g, err := gridimg.RenderFrame(surface, img, gridimg.Bounds{}, gridimg.DefaultParams())
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(g.OutputWidth, g.OutputHeight, len(g.Lines()))

Every render starts from a fresh canvas, so rendering the same inputs twice
produces identical pixels.
*/
package gridimg
