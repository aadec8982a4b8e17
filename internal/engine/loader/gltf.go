// Package loader reads glTF 2.0 / GLB assets into scene nodes and animation clips.
package loader

import (
	"fmt"
	"image"
	"io"
	"io/fs"
	"path"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/glbview/internal/engine/animation"
	"github.com/Faultbox/glbview/internal/engine/scene"
	"github.com/Faultbox/glbview/internal/engine/texture"
	"github.com/Faultbox/glbview/internal/logger"
)

// Result is a fully built model, ready to be added to a scene.
type Result struct {
	Root  *scene.Node
	Clips []*animation.Clip
}

// Decode parses a glTF or GLB stream. fsys resolves external buffer and
// image URIs; it may be nil for self-contained GLB files.
func Decode(r io.Reader, fsys fs.FS) (*Result, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoderFS(r, fsys).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode gltf: %w", err)
	}
	return Build(doc, fsys)
}

// Build converts a decoded document into scene nodes and clips.
func Build(doc *gltf.Document, fsys fs.FS) (*Result, error) {
	b := &builder{
		doc:       doc,
		fsys:      fsys,
		images:    make(map[int]*image.RGBA),
		materials: make(map[int]scene.Material),
		meshes:    make(map[int]*scene.Mesh),
		nodes:     make([]*scene.Node, len(doc.Nodes)),
	}

	for i, n := range doc.Nodes {
		node, err := b.node(n)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		b.nodes[i] = node
	}
	for i, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < 0 || c >= len(b.nodes) {
				return nil, fmt.Errorf("node %d: child index %d out of range", i, c)
			}
			b.nodes[i].Add(b.nodes[c])
		}
	}

	root := b.root()

	clips := make([]*animation.Clip, 0, len(doc.Animations))
	for i, a := range doc.Animations {
		clip, err := b.clip(i, a)
		if err != nil {
			return nil, fmt.Errorf("animation %d: %w", i, err)
		}
		clips = append(clips, clip)
	}

	root.UpdateWorldMatrix()
	return &Result{Root: root, Clips: clips}, nil
}

type builder struct {
	doc  *gltf.Document
	fsys fs.FS

	images    map[int]*image.RGBA
	materials map[int]scene.Material
	meshes    map[int]*scene.Mesh
	nodes     []*scene.Node
}

// root gathers the default scene's nodes under one group node.
func (b *builder) root() *scene.Node {
	root := scene.NewNode("Scene")

	var top []int
	if len(b.doc.Scenes) > 0 {
		si := 0
		if b.doc.Scene != nil && *b.doc.Scene < len(b.doc.Scenes) {
			si = *b.doc.Scene
		}
		s := b.doc.Scenes[si]
		if s.Name != "" {
			root.Name = s.Name
		}
		top = s.Nodes
	} else {
		// No scenes: every parentless node is a root
		for i, n := range b.nodes {
			if n.Parent == nil {
				top = append(top, i)
			}
		}
	}

	for _, i := range top {
		if i >= 0 && i < len(b.nodes) {
			root.Add(b.nodes[i])
		}
	}
	return root
}

var identity = mgl32.Ident4()

func (b *builder) node(n *gltf.Node) (*scene.Node, error) {
	node := scene.NewNode(n.Name)

	m := n.MatrixOrDefault()
	var mat mgl32.Mat4
	for i := range m {
		mat[i] = float32(m[i])
	}
	if mat != identity {
		node.SetMatrix(mat)
	} else {
		t := n.TranslationOrDefault()
		r := n.RotationOrDefault()
		s := n.ScaleOrDefault()
		node.Translation = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
		node.Rotation = mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
		node.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
	}

	if n.Mesh != nil {
		mesh, err := b.mesh(*n.Mesh)
		if err != nil {
			return nil, err
		}
		node.Mesh = mesh
	}
	return node, nil
}

func (b *builder) mesh(idx int) (*scene.Mesh, error) {
	if m, ok := b.meshes[idx]; ok {
		return m, nil
	}
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", idx)
	}
	src := b.doc.Meshes[idx]
	mesh := &scene.Mesh{Name: src.Name}

	for pi, p := range src.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			logger.Debug("skipping non-triangle primitive",
				zap.String("mesh", src.Name), zap.Int("primitive", pi))
			continue
		}
		prim, err := b.primitive(p)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", src.Name, pi, err)
		}
		mesh.Primitives = append(mesh.Primitives, prim)
	}

	b.meshes[idx] = mesh
	return mesh, nil
}

func (b *builder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

func (b *builder) primitive(p *gltf.Primitive) (*scene.Primitive, error) {
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("missing POSITION attribute")
	}
	acr, err := b.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(b.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}
	prim := &scene.Primitive{Positions: positions}

	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		if acr, err := b.accessor(idx); err == nil {
			if prim.Normals, err = modeler.ReadNormal(b.doc, acr, nil); err != nil {
				return nil, fmt.Errorf("read normals: %w", err)
			}
		}
	}
	if idx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		if acr, err := b.accessor(idx); err == nil {
			if prim.TexCoords, err = modeler.ReadTextureCoord(b.doc, acr, nil); err != nil {
				return nil, fmt.Errorf("read texcoords: %w", err)
			}
		}
	}

	if p.Indices != nil {
		acr, err := b.accessor(*p.Indices)
		if err != nil {
			return nil, err
		}
		if prim.Indices, err = modeler.ReadIndices(b.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		prim.Indices = make([]uint32, len(positions))
		for i := range prim.Indices {
			prim.Indices[i] = uint32(i)
		}
	}
	for _, i := range prim.Indices {
		if int(i) >= len(positions) {
			return nil, fmt.Errorf("index %d out of range (%d vertices)", i, len(positions))
		}
	}

	if len(prim.Normals) != len(positions) {
		prim.ComputeNormals()
	}

	prim.Material = scene.DefaultMaterial()
	if p.Material != nil {
		mat, err := b.material(*p.Material)
		if err != nil {
			return nil, err
		}
		prim.Material = mat
	}

	prim.ComputeBounds()
	return prim, nil
}

func (b *builder) material(idx int) (scene.Material, error) {
	if m, ok := b.materials[idx]; ok {
		return m, nil
	}
	if idx < 0 || idx >= len(b.doc.Materials) {
		return scene.Material{}, fmt.Errorf("material index %d out of range", idx)
	}
	src := b.doc.Materials[idx]

	mat := scene.DefaultMaterial()
	mat.Name = src.Name
	mat.DoubleSided = src.DoubleSided

	if pbr := src.PBRMetallicRoughness; pbr != nil {
		f := pbr.BaseColorFactorOrDefault()
		mat.BaseColor = [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}

		if pbr.BaseColorTexture != nil {
			img, err := b.texture(pbr.BaseColorTexture.Index)
			if err != nil {
				// A broken texture should not lose the whole model
				logger.Warn("base colour texture unusable",
					zap.String("material", src.Name), zap.Error(err))
			}
			mat.Texture = img
		}
	}

	b.materials[idx] = mat
	return mat, nil
}

func (b *builder) texture(idx int) (*image.RGBA, error) {
	if idx < 0 || idx >= len(b.doc.Textures) {
		return nil, fmt.Errorf("texture index %d out of range", idx)
	}
	src := b.doc.Textures[idx].Source
	if src == nil {
		return nil, nil
	}
	if img, ok := b.images[*src]; ok {
		return img, nil
	}
	if *src < 0 || *src >= len(b.doc.Images) {
		return nil, fmt.Errorf("image index %d out of range", *src)
	}
	im := b.doc.Images[*src]

	data, hint, err := b.imageData(im)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(data, hint)
	if err != nil {
		return nil, err
	}
	b.images[*src] = img
	return img, nil
}

func (b *builder) imageData(im *gltf.Image) ([]byte, string, error) {
	hint := im.MimeType
	switch {
	case im.BufferView != nil:
		if *im.BufferView < 0 || *im.BufferView >= len(b.doc.BufferViews) {
			return nil, "", fmt.Errorf("image buffer view %d out of range", *im.BufferView)
		}
		data, err := modeler.ReadBufferView(b.doc, b.doc.BufferViews[*im.BufferView])
		return data, hint, err
	case im.IsEmbeddedResource():
		data, err := im.MarshalData()
		return data, hint, err
	case im.URI != "":
		if b.fsys == nil {
			return nil, "", fmt.Errorf("external image %q with no file system", im.URI)
		}
		data, err := fs.ReadFile(b.fsys, path.Clean(im.URI))
		if hint == "" {
			hint = im.URI
		}
		return data, hint, err
	}
	return nil, "", fmt.Errorf("image has no data")
}
