package config

import (
	"fmt"
	"os"

	"github.com/decker502/aurafx/internal/particle"
	"github.com/decker502/aurafx/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultParticleConfigPath 粒子配置文件的默认路径（嵌入资源）
const DefaultParticleConfigPath = "data/particles.yaml"

// ParticleConfig 粒子叠加层配置
//
// 控制过渡动画的粒子数量、生成参数、衰减曲线和渲染参数。
// 所有“每帧”数值都以帧为单位（目标 60 TPS），不依赖 deltaTime。
//
// 配置文件位置: data/particles.yaml
type ParticleConfig struct {
	// BaseCount 强度为 1 时的目标粒子数；目标 = floor(BaseCount × intensity)
	BaseCount int `yaml:"baseCount"`

	Spawn      SpawnConfig      `yaml:"spawn"`
	Bounce     BounceConfig     `yaml:"bounce"`
	Trail      TrailConfig      `yaml:"trail"`
	Decay      DecayConfig      `yaml:"decay"`
	Render     RenderConfig     `yaml:"render"`
	Overlay    OverlayConfig    `yaml:"overlay"`
	Transition TransitionConfig `yaml:"transition"`
}

// SpawnConfig 新粒子的初始属性
//
// Spread 字段按强度缩放：
//   - Size    = SizeBase + r × SizeSpread × intensity
//   - VX, VY  = (r − 0.5) × SpeedSpread × intensity
//   - Glow    = r × GlowSpread × intensity
type SpawnConfig struct {
	SizeBase    float64        `yaml:"sizeBase"`
	SizeSpread  float64        `yaml:"sizeSpread"`
	SpeedSpread float64        `yaml:"speedSpread"`
	GlowSpread  float64        `yaml:"glowSpread"`
	Opacity     particle.Range `yaml:"opacity"`
	Hue         particle.Range `yaml:"hue"` // 蓝 → 紫色带（度）
	Saturation  float64        `yaml:"saturation"`
	Lightness   particle.Range `yaml:"lightness"`
	TrailChance float64        `yaml:"trailChance"` // 粒子可拖尾的概率
}

// BounceConfig 边界反弹
type BounceConfig struct {
	// Damping 反弹后速度乘数的随机范围
	Damping particle.Range `yaml:"damping"`
}

// TrailConfig 拖尾发射参数
type TrailConfig struct {
	EmitChance    float64 `yaml:"emitChance"`    // 每帧每个可拖尾粒子的发射概率
	SizeFactor    float64 `yaml:"sizeFactor"`    // 拖尾尺寸 = 粒子尺寸 × SizeFactor
	OpacityFactor float64 `yaml:"opacityFactor"` // 拖尾透明度 = 粒子透明度 × OpacityFactor
}

// DecayConfig 衰减曲线
type DecayConfig struct {
	ParticleOpacityStep float64 `yaml:"particleOpacityStep"` // 非激活时每帧减少的透明度
	ParticleGlowFactor  float64 `yaml:"particleGlowFactor"`  // 非激活时每帧光晕乘数
	TrailOpacityStep    float64 `yaml:"trailOpacityStep"`
	TrailSizeFactor     float64 `yaml:"trailSizeFactor"`
	TrailMinSize        float64 `yaml:"trailMinSize"`
}

// RenderConfig 渲染参数
type RenderConfig struct {
	FadeAlpha           float64 `yaml:"fadeAlpha"`           // 半透明黑色覆盖的透明度（运动模糊）
	TrailGradientScale  float64 `yaml:"trailGradientScale"`  // 拖尾渐变半径 = 尺寸 × 该值
	ParticleEdgeOpacity float64 `yaml:"particleEdgeOpacity"` // 粒子边缘透明度 = 中心透明度 × 该值
}

// OverlayConfig 叠加层合成参数
type OverlayConfig struct {
	ActiveOpacity float64 `yaml:"activeOpacity"`
	FadeSeconds   float64 `yaml:"fadeSeconds"`
}

// TransitionConfig 页面过渡
type TransitionConfig struct {
	DurationSeconds  float64 `yaml:"durationSeconds"`
	DefaultIntensity float64 `yaml:"defaultIntensity"`
	ActiveIntensity  float64 `yaml:"activeIntensity"` // 过渡期间乘在用户强度上的系数
}

// DefaultParticleConfig 返回内置默认配置（与 data/particles.yaml 一致）
func DefaultParticleConfig() *ParticleConfig {
	return &ParticleConfig{
		BaseCount: 80,
		Spawn: SpawnConfig{
			SizeBase:    1,
			SizeSpread:  3,
			SpeedSpread: 3,
			GlowSpread:  10,
			Opacity:     particle.Range{Min: 0.4, Max: 1.0},
			Hue:         particle.Range{Min: 190, Max: 270},
			Saturation:  1.0,
			Lightness:   particle.Range{Min: 0.65, Max: 0.80},
			TrailChance: 0.3,
		},
		Bounce: BounceConfig{
			Damping: particle.Range{Min: 0.95, Max: 1.05},
		},
		Trail: TrailConfig{
			EmitChance:    0.3,
			SizeFactor:    0.8,
			OpacityFactor: 0.7,
		},
		Decay: DecayConfig{
			ParticleOpacityStep: 0.02,
			ParticleGlowFactor:  0.9,
			TrailOpacityStep:    0.03,
			TrailSizeFactor:     0.97,
			TrailMinSize:        0.1,
		},
		Render: RenderConfig{
			FadeAlpha:           0.1,
			TrailGradientScale:  2,
			ParticleEdgeOpacity: 0.5,
		},
		Overlay: OverlayConfig{
			ActiveOpacity: 0.85,
			FadeSeconds:   0.5,
		},
		Transition: TransitionConfig{
			DurationSeconds:  0.9,
			DefaultIntensity: 1.0,
			ActiveIntensity:  1.5,
		},
	}
}

// LoadParticleConfig 加载粒子配置
//
// 以 "data/" 开头的路径优先从嵌入资源读取（需先调用 embedded.Init），
// 否则从磁盘读取（供 cmd/ 工具使用 --config 参数）。
//
// 参数:
//   - path: 配置文件路径（如 "data/particles.yaml"）
//
// 返回:
//   - *ParticleConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadParticleConfig(path string) (*ParticleConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read particle config: %w", err)
	}
	return ParseParticleConfig(data)
}

// ParseParticleConfig 解析 YAML 数据
//
// 未出现在 YAML 中的字段保持默认值。
func ParseParticleConfig(data []byte) (*ParticleConfig, error) {
	cfg := DefaultParticleConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse particle config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid particle config: %w", err)
	}

	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

// Validate 验证配置有效性
//
// 检查：
//   - BaseCount 为正数
//   - 概率值在 [0, 1] 内
//   - 乘数与步长为正，衰减因子小于 1（保证衰减最终结束）
//   - 透明度、亮度范围在 [0, 1] 内
func (c *ParticleConfig) Validate() error {
	if c.BaseCount <= 0 {
		return fmt.Errorf("baseCount must be positive, got %d", c.BaseCount)
	}

	if c.Spawn.SizeBase <= 0 {
		return fmt.Errorf("spawn.sizeBase must be positive, got %v", c.Spawn.SizeBase)
	}
	if c.Spawn.SizeSpread < 0 || c.Spawn.SpeedSpread < 0 || c.Spawn.GlowSpread < 0 {
		return fmt.Errorf("spawn spreads must not be negative")
	}
	if err := checkUnitRange("spawn.opacity", c.Spawn.Opacity); err != nil {
		return err
	}
	if c.Spawn.Opacity.Min <= 0 {
		return fmt.Errorf("spawn.opacity must start above 0, got %v", c.Spawn.Opacity)
	}
	if err := checkUnitRange("spawn.lightness", c.Spawn.Lightness); err != nil {
		return err
	}
	if c.Spawn.Saturation < 0 || c.Spawn.Saturation > 1 {
		return fmt.Errorf("spawn.saturation must be in [0, 1], got %v", c.Spawn.Saturation)
	}
	if err := checkProbability("spawn.trailChance", c.Spawn.TrailChance); err != nil {
		return err
	}

	if c.Bounce.Damping.Min <= 0 {
		return fmt.Errorf("bounce.damping must be positive, got %v", c.Bounce.Damping)
	}

	if err := checkProbability("trail.emitChance", c.Trail.EmitChance); err != nil {
		return err
	}
	if c.Trail.SizeFactor <= 0 || c.Trail.OpacityFactor <= 0 {
		return fmt.Errorf("trail factors must be positive")
	}

	if c.Decay.ParticleOpacityStep <= 0 || c.Decay.TrailOpacityStep <= 0 {
		return fmt.Errorf("decay opacity steps must be positive")
	}
	if c.Decay.ParticleGlowFactor < 0 || c.Decay.ParticleGlowFactor >= 1 {
		return fmt.Errorf("decay.particleGlowFactor must be in [0, 1), got %v", c.Decay.ParticleGlowFactor)
	}
	if c.Decay.TrailSizeFactor <= 0 || c.Decay.TrailSizeFactor >= 1 {
		return fmt.Errorf("decay.trailSizeFactor must be in (0, 1), got %v", c.Decay.TrailSizeFactor)
	}
	if c.Decay.TrailMinSize < 0 {
		return fmt.Errorf("decay.trailMinSize must not be negative, got %v", c.Decay.TrailMinSize)
	}

	if c.Render.FadeAlpha <= 0 || c.Render.FadeAlpha > 1 {
		return fmt.Errorf("render.fadeAlpha must be in (0, 1], got %v", c.Render.FadeAlpha)
	}
	if c.Render.TrailGradientScale <= 0 {
		return fmt.Errorf("render.trailGradientScale must be positive, got %v", c.Render.TrailGradientScale)
	}
	if c.Render.ParticleEdgeOpacity < 0 || c.Render.ParticleEdgeOpacity > 1 {
		return fmt.Errorf("render.particleEdgeOpacity must be in [0, 1], got %v", c.Render.ParticleEdgeOpacity)
	}

	if c.Overlay.ActiveOpacity < 0 || c.Overlay.ActiveOpacity > 1 {
		return fmt.Errorf("overlay.activeOpacity must be in [0, 1], got %v", c.Overlay.ActiveOpacity)
	}
	if c.Overlay.FadeSeconds < 0 {
		return fmt.Errorf("overlay.fadeSeconds must not be negative, got %v", c.Overlay.FadeSeconds)
	}
	if c.Transition.DurationSeconds <= 0 {
		return fmt.Errorf("transition.durationSeconds must be positive, got %v", c.Transition.DurationSeconds)
	}
	if c.Transition.DefaultIntensity <= 0 {
		return fmt.Errorf("transition.defaultIntensity must be positive, got %v", c.Transition.DefaultIntensity)
	}
	if c.Transition.ActiveIntensity <= 0 {
		return fmt.Errorf("transition.activeIntensity must be positive, got %v", c.Transition.ActiveIntensity)
	}

	return nil
}

// TargetPopulation 返回给定强度下的目标粒子数 floor(BaseCount × intensity)
func (c *ParticleConfig) TargetPopulation(intensity float64) int {
	if intensity <= 0 {
		return 0
	}
	return int(float64(c.BaseCount) * intensity)
}

func checkProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s must be in [0, 1], got %v", name, p)
	}
	return nil
}

func checkUnitRange(name string, r particle.Range) error {
	if r.Min < 0 || r.Max > 1 || r.Min > r.Max {
		return fmt.Errorf("%s must be within [0, 1], got %v", name, r)
	}
	return nil
}
