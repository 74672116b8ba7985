package main

import "github.com/faiface/pixel/pixelgl"

// pixelgl needs access to the main thread for any command that opens a
// window, so the whole CLI runs inside pixelgl.Run. Commands that never
// touch pixelgl (version, --headless, --terminal) pay nothing extra for
// this.
func main() {
	pixelgl.Run(Execute)
}
