package viewer

import (
	"github.com/Faultbox/glbview/internal/engine/camera"
)

// Surface is anything sized to the window: the GL viewport or the UI layer.
type Surface interface {
	Resize(width, height int)
}

// Resize fits the camera aspect ratio to width by height and resizes
// each surface. Degenerate sizes from minimised windows are ignored.
func Resize(cam *camera.Perspective, width, height int, surfaces ...Surface) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	cam.SetAspect(float32(width) / float32(height))
	for _, s := range surfaces {
		s.Resize(width, height)
	}
	return true
}
