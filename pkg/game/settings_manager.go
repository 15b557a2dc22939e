package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 强度可调范围（界面 +/- 每次 0.5）
const (
	MinIntensity  = 0.5
	MaxIntensity  = 3.0
	IntensityStep = 0.5
)

// Settings 用户设置
type Settings struct {
	Intensity        float64 `yaml:"intensity"`        // 过渡粒子强度
	ParticlesEnabled bool    `yaml:"particlesEnabled"` // 关闭后不挂载粒子叠加层
	Fullscreen       bool    `yaml:"fullscreen"`       // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		Intensity:        1.0,
		ParticlesEnabled: true,
		Fullscreen:       false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	settings     *Settings
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 参数：
//   - gdataManager: gdata 存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，使用默认设置。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或数据不存在时使用默认设置。
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.Intensity = clampIntensity(loaded.Intensity)

	sm.settings = loaded
	log.Printf("[SettingsManager] settings loaded (intensity=%.1f)", loaded.Intensity)
	return nil
}

// Save 保存设置到 gdata
//
// 降级模式下直接返回 nil。
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] settings saved")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// SetIntensity 设置粒子强度，限制在 [MinIntensity, MaxIntensity]
// 仅修改内存，需调用 Save() 持久化
func (sm *SettingsManager) SetIntensity(intensity float64) {
	sm.settings.Intensity = clampIntensity(intensity)
}

// StepIntensity 按 IntensityStep 增减强度并返回新值
func (sm *SettingsManager) StepIntensity(steps int) float64 {
	sm.SetIntensity(sm.settings.Intensity + float64(steps)*IntensityStep)
	return sm.settings.Intensity
}

// SetParticlesEnabled 设置粒子叠加层开关
func (sm *SettingsManager) SetParticlesEnabled(enabled bool) {
	sm.settings.ParticlesEnabled = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

func clampIntensity(v float64) float64 {
	if !(v >= MinIntensity) {
		return MinIntensity
	}
	if v > MaxIntensity {
		return MaxIntensity
	}
	return v
}
