package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// EngineSettings 引擎的可持久化偏好设置
// 这些设置是全局的，不绑定到具体的天气会话
type EngineSettings struct {
	// 动画设置
	TargetFPS    int  `yaml:"targetFps"`    // 目标帧率
	MaxParticles int  `yaml:"maxParticles"` // 粒子数上限
	Animations   bool `yaml:"animations"`   // 动画总开关

	// 诊断设置
	Verbose bool `yaml:"verbose"` // 是否输出诊断日志
}

// DefaultEngineSettings 返回默认设置
func DefaultEngineSettings() *EngineSettings {
	return &EngineSettings{
		TargetFPS:    30,
		MaxParticles: 150,
		Animations:   true,
		Verbose:      false,
	}
}

// SettingsManager 设置管理器
// 负责引擎偏好设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *EngineSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "skyfx"
	settingsProperty = "engine"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 如果加载设置失败返回错误（不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultEngineSettings(),
	}

	// 尝试加载已保存的设置
	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultEngineSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultEngineSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultEngineSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded EngineSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultEngineSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
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

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *EngineSettings {
	return sm.settings
}

// SetTargetFPS 设置目标帧率（限制在 1 ~ 60）
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetTargetFPS(fps int) {
	if fps < 1 {
		fps = 1
	}
	if fps > 60 {
		fps = 60
	}
	sm.settings.TargetFPS = fps
}

// SetMaxParticles 设置粒子数上限（不低于 1）
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetMaxParticles(n int) {
	if n < 1 {
		n = 1
	}
	sm.settings.MaxParticles = n
}

// SetAnimations 设置动画总开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetAnimations(enabled bool) {
	sm.settings.Animations = enabled
}

// SetVerbose 设置诊断日志开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetVerbose(enabled bool) {
	sm.settings.Verbose = enabled
}
