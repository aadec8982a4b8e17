// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Assets     AssetsConfig     `yaml:"assets"`
	Camera     CameraConfig     `yaml:"camera"`
	Animation  AnimationConfig  `yaml:"animation"`
	Picking    PickingConfig    `yaml:"picking"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Title      string  `yaml:"title"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	MSAA       int     `yaml:"msaa"` // Multisample count, 0 disables
	Exposure   float32 `yaml:"exposure"`
	Background string  `yaml:"background"` // Clear colour, "#rrggbb"
	ShowAxes   bool    `yaml:"show_axes"`
}

// AssetsConfig holds asset file paths.
type AssetsConfig struct {
	Model      string `yaml:"model"`      // Binary glTF (.glb) with an embedded animation
	Background string `yaml:"background"` // Image mapped on the inside of the background sphere
}

// CameraConfig holds camera and orbit control settings.
type CameraConfig struct {
	FOV           float32    `yaml:"fov"` // Vertical, degrees
	Near          float32    `yaml:"near"`
	Far           float32    `yaml:"far"`
	Position      [3]float32 `yaml:"position"`      // Applied once the model is loaded
	Target        [3]float32 `yaml:"target"`        // Applied once the model is loaded
	InitialTarget [3]float32 `yaml:"initial_target"` // Used before the model arrives
	MinDistance   float32    `yaml:"min_distance"`
	MaxDistance   float32    `yaml:"max_distance"`
	Damping       bool       `yaml:"damping"`
	DampingFactor float32    `yaml:"damping_factor"`
}

// AnimationConfig holds playback settings.
type AnimationConfig struct {
	AutoPlay           bool    `yaml:"auto_play"`
	PlaceholderMaxTime float64 `yaml:"placeholder_max_time"` // Seconds, until the clip loads
	ModelScale         float32 `yaml:"model_scale"`
}

// PickingConfig holds click-to-identify settings.
type PickingConfig struct {
	Alert  bool    `yaml:"alert"`  // Show a blocking message box on hit
	Sound  string  `yaml:"sound"`  // Optional WAV played on hit
	Volume float64 `yaml:"volume"` // 0.0 to 1.0
}

// ScreenshotConfig holds F12 capture settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // "png" or "webp"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:      "glbview",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
			Exposure:   1.0,
			Background: "#bbbbbb",
			ShowAxes:   true,
		},
		Assets: AssetsConfig{
			Model:      "models/gltf/Path6.glb",
			Background: "textures/3.png",
		},
		Camera: CameraConfig{
			FOV:           45,
			Near:          0.1,
			Far:           1000,
			Position:      [3]float32{0, 6, 5},
			Target:        [3]float32{0, 4.5, 0},
			InitialTarget: [3]float32{0, 5, 1},
			MinDistance:   1,
			MaxDistance:   10,
			Damping:       true,
			DampingFactor: 0.05,
		},
		Animation: AnimationConfig{
			AutoPlay:           true,
			PlaceholderMaxTime: 6,
			ModelScale:         4,
		},
		Picking: PickingConfig{
			Alert:  true,
			Sound:  "",
			Volume: 0.8,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
