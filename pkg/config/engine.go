// Package config 引擎配置（YAML）
//
// 查找顺序：显式路径 -> ./configs/engine.yaml -> 内置默认值。
// 缺失或越界的字段被强制为默认值，而不是报错。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/decker502/lol/pkg/physics"
	"gopkg.in/yaml.v3"
)

// LocalPath 工作目录下的默认配置路径
const LocalPath = "configs/engine.yaml"

// Engine 引擎配置
type Engine struct {
	Title          string  `yaml:"title"`
	ScreenWidth    int     `yaml:"screenWidth"`    // 屏幕像素宽
	ScreenHeight   int     `yaml:"screenHeight"`   // 屏幕像素高
	PixelsPerMeter float64 `yaml:"pixelsPerMeter"` // 相机默认缩放
	StepSeconds    float64 `yaml:"stepSeconds"`    // 固定物理步长
	VelocityIters  int     `yaml:"velocityIterations"`
	PositionIters  int     `yaml:"positionIterations"`
	GravityX       float64 `yaml:"gravityX"`
	GravityY       float64 `yaml:"gravityY"` // y 轴向下为正
	AppName        string  `yaml:"appName"`  // gdata 存储名
	RecordsPath    string  `yaml:"recordsPath"`
	AssetDir       string  `yaml:"assetDir"`
	MusicVolume    float64 `yaml:"musicVolume"` // 0.0 ~ 1.0
	SoundVolume    float64 `yaml:"soundVolume"` // 0.0 ~ 1.0
	Verbose        bool    `yaml:"verbose"`
}

// DefaultEngine 默认配置
func DefaultEngine() Engine {
	return Engine{
		Title:          "Lol",
		ScreenWidth:    960,
		ScreenHeight:   640,
		PixelsPerMeter: 20,
		StepSeconds:    1.0 / 45,
		VelocityIters:  8,
		PositionIters:  3,
		AppName:        "lol",
		RecordsPath:    "~/.lol/records.db",
		AssetDir:       "assets",
		MusicVolume:    0.7,
		SoundVolume:    0.8,
	}
}

// Gravity 默认重力向量
func (e Engine) Gravity() physics.Vec { return physics.Vec{X: e.GravityX, Y: e.GravityY} }

// Load 按查找顺序加载配置
//
// 显式路径读取或解析失败时返回错误；本地默认文件不存在时静默使用默认值。
func Load(customPath string) (Engine, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultEngine(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return Parse(data)
	}
	data, err := os.ReadFile(LocalPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return DefaultEngine(), fmt.Errorf("failed to read config %s: %w", LocalPath, err)
		}
		return DefaultEngine(), nil
	}
	return Parse(data)
}

// Parse 在默认值之上解析 YAML
func Parse(data []byte) (Engine, error) {
	cfg := DefaultEngine()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultEngine(), fmt.Errorf("failed to parse engine config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (e *Engine) normalize() {
	d := DefaultEngine()
	if e.ScreenWidth <= 0 {
		e.ScreenWidth = d.ScreenWidth
	}
	if e.ScreenHeight <= 0 {
		e.ScreenHeight = d.ScreenHeight
	}
	if e.PixelsPerMeter <= 0 {
		e.PixelsPerMeter = d.PixelsPerMeter
	}
	if e.StepSeconds <= 0 {
		e.StepSeconds = d.StepSeconds
	}
	if e.VelocityIters <= 0 {
		e.VelocityIters = d.VelocityIters
	}
	if e.PositionIters <= 0 {
		e.PositionIters = d.PositionIters
	}
	if e.AppName == "" {
		e.AppName = d.AppName
	}
	if e.RecordsPath == "" {
		e.RecordsPath = d.RecordsPath
	}
	e.MusicVolume = clampVolume(e.MusicVolume)
	e.SoundVolume = clampVolume(e.SoundVolume)
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
