package viewer

import (
	"go.uber.org/zap"

	"github.com/Faultbox/glbview/internal/engine/picking"
	"github.com/Faultbox/glbview/internal/engine/scene"
	"github.com/Faultbox/glbview/internal/logger"
)

// Alerter shows a message and returns once the user dismisses it.
type Alerter interface {
	Alert(message string)
}

// Picker identifies the model part under the pointer.
type Picker struct {
	Camera    picking.Projector
	Raycaster *picking.Raycaster
	Alerter   Alerter
	Title     *Title

	// OnPick runs for every hit before the alert is shown
	OnPick func(*scene.Node)

	model    *scene.Node
	selected *scene.Node
	log      *zap.Logger
}

// NewPicker creates a picker that casts rays from cam.
func NewPicker(cam picking.Projector, alerter Alerter, title *Title) *Picker {
	return &Picker{
		Camera:    cam,
		Raycaster: picking.NewRaycaster(),
		Alerter:   alerter,
		Title:     title,
		log:       logger.Named("picking"),
	}
}

// SetModel sets the subtree clicks are tested against.
func (p *Picker) SetModel(root *scene.Node) {
	p.model = root
}

// Selected returns the last part hit, or nil.
func (p *Picker) Selected() *scene.Node {
	return p.selected
}

// Click picks at window position x, y in a viewport of w by h and
// reports whether a part was hit. Misses leave the selection alone.
func (p *Picker) Click(x, y, w, h float32) bool {
	if p.model == nil {
		return false
	}

	root := p.model
	for root.Parent != nil {
		root = root.Parent
	}
	root.UpdateWorldMatrix()
	p.Raycaster.SetFromCamera(picking.NDC(x, y, w, h), p.Camera)

	for _, hit := range p.Raycaster.IntersectObject(p.model, true) {
		if hit.Object == nil {
			continue
		}
		p.selected = hit.Object
		name := hit.Object.DisplayName()
		p.log.Debug("part picked",
			zap.String("name", name),
			zap.Float32("distance", hit.Distance),
			zap.Int("face", hit.FaceIndex))

		if p.OnPick != nil {
			p.OnPick(hit.Object)
		}
		if p.Alerter != nil {
			p.Alerter.Alert(name)
		}
		if p.Title != nil {
			p.Title.Show(name)
		}
		return true
	}
	return false
}
