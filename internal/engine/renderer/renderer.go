// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/glbview/internal/engine/camera"
	"github.com/Faultbox/glbview/internal/engine/debug"
	"github.com/Faultbox/glbview/internal/engine/lighting"
	"github.com/Faultbox/glbview/internal/engine/scene"
	"github.com/Faultbox/glbview/internal/engine/shader"
	"github.com/Faultbox/glbview/internal/engine/texture"
	"github.com/Faultbox/glbview/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
	Exposure   float32

	// Background sphere; radius 0 disables it
	SkyRadius float32

	// Axes helper length; 0 disables it
	AxesSize float32

	Lights []lighting.SpotLight
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	meshProgram *shader.Program
	skyProgram  *shader.Program
	lineProgram *shader.Program

	lights *lighting.SpotLightBuffer

	primitives map[*scene.Primitive]*gpuPrimitive
	textures   map[*image.RGBA]uint32
	white      uint32

	sky    *gpuPrimitive
	skyTex uint32

	axes      *lineBatch
	selection *lineBatch
	selected  *scene.Node
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:     cfg,
		primitives: make(map[*scene.Primitive]*gpuPrimitive),
		textures:   make(map[*image.RGBA]uint32),
		lights:     lighting.NewSpotLightBuffer(cfg.Lights),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)

	var err error
	if r.meshProgram, err = shader.New(meshVertexShader, meshFragmentShader); err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	if r.skyProgram, err = shader.New(skyVertexShader, skyFragmentShader); err != nil {
		return nil, fmt.Errorf("sky shader: %w", err)
	}
	if r.lineProgram, err = shader.New(lineVertexShader, lineFragmentShader); err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}

	r.white = texture.White()
	r.axes = newLineBatch()
	r.selection = newLineBatch()
	if cfg.AxesSize > 0 {
		r.axes.set(debug.AxesLines(cfg.AxesSize))
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, g := range r.primitives {
		g.delete()
	}
	for _, id := range r.textures {
		texture.Delete(id)
	}
	if r.sky != nil {
		r.sky.delete()
	}
	texture.Delete(r.skyTex)
	texture.Delete(r.white)
	r.axes.delete()
	r.selection.delete()
	r.meshProgram.Delete()
	r.skyProgram.Delete()
	r.lineProgram.Delete()
}

// Resize sets the viewport to the drawable size in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// SetBackground maps img onto the inside of the background sphere.
// A nil image removes the sphere so only the clear colour shows.
func (r *Renderer) SetBackground(img *image.RGBA) {
	if r.sky != nil {
		r.sky.delete()
		r.sky = nil
	}
	texture.Delete(r.skyTex)
	r.skyTex = 0
	if img == nil || r.config.SkyRadius <= 0 {
		return
	}

	sphere := SphereGeometry(r.config.SkyRadius, 60, 40)
	MirrorX(sphere)
	r.sky = uploadPrimitive(sphere)
	// V runs bottom-up on the sphere
	r.skyTex = texture.Upload(texture.FlipVertical(img), true)
}

// SetSelection outlines the world bounds of n; nil clears the outline.
func (r *Renderer) SetSelection(n *scene.Node) {
	r.selected = n
}

// Render draws the background, the node tree, helpers and the selection box.
func (r *Renderer) Render(root *scene.Node, cam *camera.Perspective) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := cam.ViewProjection()

	if r.sky != nil {
		gl.Disable(gl.CULL_FACE)
		r.skyProgram.Use()
		r.skyProgram.SetMat4("uViewProj", viewProj)
		r.skyProgram.SetFloat("uExposure", r.exposure())
		r.skyProgram.SetInt("uTexture", 0)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.skyTex)
		r.sky.draw()
	}

	if root != nil {
		root.UpdateWorldMatrix()
		r.drawTree(root, cam, viewProj)
	}

	r.drawLines(viewProj)
	gl.BindVertexArray(0)
}

func (r *Renderer) exposure() float32 {
	if r.config.Exposure <= 0 {
		return 1
	}
	return r.config.Exposure
}

func (r *Renderer) drawTree(root *scene.Node, cam *camera.Perspective, viewProj mgl32.Mat4) {
	p := r.meshProgram
	p.Use()
	p.SetMat4("uViewProj", viewProj)
	p.SetVec3("uCameraPos", cam.Position)
	p.SetFloat("uExposure", r.exposure())
	p.SetVec3("uSkyColor", mgl32.Vec3{0.55, 0.55, 0.58})
	p.SetVec3("uGroundColor", mgl32.Vec3{0.25, 0.24, 0.22})
	p.SetInt("uBaseColorTex", 0)

	lb := r.lights
	p.SetInt("uLightCount", int32(lb.Count()))
	if lb.Count() > 0 {
		n := int32(lighting.MaxSpotLights)
		pos, dir, col, cos := lb.Positions(), lb.Directions(), lb.Colors(), lb.Cosines()
		gl.Uniform3fv(p.Uniform("uLightPos[0]"), n, &pos[0])
		gl.Uniform3fv(p.Uniform("uLightDir[0]"), n, &dir[0])
		gl.Uniform3fv(p.Uniform("uLightColor[0]"), n, &col[0])
		gl.Uniform1fv(p.Uniform("uLightCos[0]"), n, &cos[0])
	}

	gl.ActiveTexture(gl.TEXTURE0)
	root.TraverseVisible(func(n *scene.Node) {
		if n.Mesh == nil {
			return
		}
		model := n.WorldMatrix()
		p.SetMat4("uModel", model)
		normal := model.Mat3().Inv().Transpose()
		gl.UniformMatrix3fv(p.Uniform("uNormalMatrix"), 1, false, &normal[0])

		for _, prim := range n.Mesh.Primitives {
			g, ok := r.primitives[prim]
			if !ok {
				g = uploadPrimitive(prim)
				r.primitives[prim] = g
			}
			if prim.Material.DoubleSided {
				gl.Disable(gl.CULL_FACE)
			} else {
				gl.Enable(gl.CULL_FACE)
			}
			p.SetVec4("uBaseColor", prim.Material.BaseColor)
			gl.BindTexture(gl.TEXTURE_2D, r.textureFor(prim.Material.Texture))
			g.draw()
		}
	})
	gl.Disable(gl.CULL_FACE)
}

func (r *Renderer) textureFor(img *image.RGBA) uint32 {
	if img == nil {
		return r.white
	}
	if id, ok := r.textures[img]; ok {
		return id
	}
	id := texture.Upload(img, true)
	r.textures[img] = id
	return id
}

func (r *Renderer) drawLines(viewProj mgl32.Mat4) {
	var sel []float32
	if r.selected != nil {
		if b, ok := scene.WorldBounds(r.selected); ok {
			sel = debug.BBoxWireframe(b, debug.DefaultBBoxPadding, debug.SelectionColor)
		}
	}
	r.selection.set(sel)

	r.lineProgram.Use()
	r.lineProgram.SetMat4("uViewProj", viewProj)
	r.axes.draw()
	r.selection.draw()
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}
