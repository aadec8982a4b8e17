package renderer

import _ "embed"

//go:embed shaders/mesh.vert
var meshVertexShader string

//go:embed shaders/mesh.frag
var meshFragmentShader string

//go:embed shaders/sky.vert
var skyVertexShader string

//go:embed shaders/sky.frag
var skyFragmentShader string

//go:embed shaders/line.vert
var lineVertexShader string

//go:embed shaders/line.frag
var lineFragmentShader string
